package snapshot

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glintkit/glint/internal/errors"
)

func TestDiskRoundTrip(t *testing.T) {
	store, err := NewDiskStore(filepath.Join(t.TempDir(), "snaps"))
	if err != nil {
		t.Fatal(err)
	}

	path, err := store.Save(context.Background(), "glint-titlebar", "<h1>hi</h1>")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Base(path) != "glint-titlebar.html" {
		t.Errorf("unexpected path %q", path)
	}

	html, err := store.Load(context.Background(), "glint-titlebar")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if html != "<h1>hi</h1>" {
		t.Errorf("unexpected content %q", html)
	}
}

func TestDiskSaveOverwrites(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := store.Save(ctx, "a", "one"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(ctx, "a", "two"); err != nil {
		t.Fatal(err)
	}

	html, err := store.Load(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if html != "two" {
		t.Errorf("expected latest content, got %q", html)
	}
}

func TestDiskLoadMissing(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.Load(context.Background(), "nope")

	var ge *errors.GlintError
	if !stderrors.As(err, &ge) || ge.Code != "E031" {
		t.Errorf("expected E031, got %v", err)
	}
}

func TestDiskNameFlattening(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	path, err := store.Save(context.Background(), "../escape", "x")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("snapshot escaped the base dir: %q", path)
	}
	if strings.Contains(filepath.Base(path), "/") {
		t.Errorf("unexpected separator in %q", path)
	}
}

func TestDiskNoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.Save(context.Background(), "a", "x"); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".snapshot-") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestDiskCancelledContext(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Save(ctx, "a", "x"); err == nil {
		t.Error("expected save to honor cancellation")
	}
	if _, err := store.Load(ctx, "a"); err == nil {
		t.Error("expected load to honor cancellation")
	}
}

func TestS3KeyPrefix(t *testing.T) {
	store := NewS3Store(nil, "bucket", "snaps")
	if got := store.key("glint-titlebar"); got != "snaps/glint-titlebar.html" {
		t.Errorf("unexpected key %q", got)
	}

	store = NewS3Store(nil, "bucket", "")
	if got := store.key("a/b"); got != "a-b.html" {
		t.Errorf("unexpected key %q", got)
	}
}
