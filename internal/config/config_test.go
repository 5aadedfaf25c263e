package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/glintkit/glint/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := New()

	if cfg.Host != "localhost" {
		t.Errorf("unexpected host %q", cfg.Host)
	}
	if cfg.Port != 3000 {
		t.Errorf("unexpected port %d", cfg.Port)
	}
	if cfg.Snapshot.Dir != "snapshots" {
		t.Errorf("unexpected snapshot dir %q", cfg.Snapshot.Dir)
	}
	if cfg.Address() != "localhost:3000" {
		t.Errorf("unexpected address %q", cfg.Address())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": "demo", "port": 8080, "snapshot": {"dir": "out"}}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("unexpected name %q", cfg.Name)
	}
	if cfg.Port != 8080 {
		t.Errorf("unexpected port %d", cfg.Port)
	}
	// Omitted fields keep their defaults.
	if cfg.Host != "localhost" {
		t.Errorf("unexpected host %q", cfg.Host)
	}
	if got := cfg.SnapshotPath(); got != filepath.Join(dir, "out") {
		t.Errorf("unexpected snapshot path %q", got)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())

	var ge *errors.GlintError
	if !stderrors.As(err, &ge) || ge.Code != "E020" {
		t.Errorf("expected E020, got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": `)

	_, err := Load(dir)

	var ge *errors.GlintError
	if !stderrors.As(err, &ge) || ge.Code != "E021" {
		t.Errorf("expected E021, got %v", err)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"port": 99999}`)

	_, err := Load(dir)

	var ge *errors.GlintError
	if !stderrors.As(err, &ge) || ge.Code != "E022" {
		t.Errorf("expected E022, got %v", err)
	}
}

func TestBucketRequiresRegion(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"snapshot": {"bucket": "b"}}`)

	_, err := Load(dir)

	var ge *errors.GlintError
	if !stderrors.As(err, &ge) || ge.Code != "E022" {
		t.Errorf("expected E022, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := New()
	cfg.Name = "demo"
	if err := cfg.SaveTo(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "demo" || loaded.Port != cfg.Port {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `{}`)

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	// Resolve symlinks so the comparison survives /tmp indirection.
	wantRoot, _ := filepath.EvalSymlinks(root)
	gotRoot, _ := filepath.EvalSymlinks(found)
	if gotRoot != wantRoot {
		t.Errorf("expected root %q, got %q", wantRoot, gotRoot)
	}
}

func TestFindProjectRootMissing(t *testing.T) {
	_, err := FindProjectRoot(t.TempDir())

	var ge *errors.GlintError
	if !stderrors.As(err, &ge) || ge.Code != "E020" {
		t.Errorf("expected E020, got %v", err)
	}
}
