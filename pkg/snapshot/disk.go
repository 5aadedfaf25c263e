package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/glintkit/glint/internal/errors"
)

// DiskStore writes snapshots to a local directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a DiskStore, creating the directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("E030").Wrap(err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the store's base directory.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the snapshot atomically: a temp file in the same
// directory, then a rename, so readers never observe a partial write.
func (s *DiskStore) Save(ctx context.Context, name, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, objectName(name))

	tmp, err := os.CreateTemp(s.dir, ".snapshot-*")
	if err != nil {
		return "", errors.New("E030").Wrap(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errors.New("E030").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", errors.New("E030").Wrap(err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", errors.New("E030").Wrap(err)
	}
	return path, nil
}

// Load reads a snapshot back by name.
func (s *DiskStore) Load(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, objectName(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("E031").WithDetailf("no snapshot named %q", name)
		}
		return "", errors.New("E031").Wrap(err)
	}
	return string(data), nil
}
