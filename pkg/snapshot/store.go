package snapshot

import (
	"context"
	"strings"
)

// Store persists rendered HTML snapshots.
type Store interface {
	// Save writes a snapshot under a name and returns its location: a
	// filesystem path for disk stores, an object URL for S3.
	Save(ctx context.Context, name, html string) (string, error)

	// Load reads a snapshot back by name.
	Load(ctx context.Context, name string) (string, error)
}

// objectName normalizes a snapshot name to a safe key with the .html
// extension. Path separators are flattened so names never escape the
// store's base location.
func objectName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}
	return name
}
