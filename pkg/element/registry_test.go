package element

import (
	"testing"

	"github.com/glintkit/glint/internal/errors"
)

func TestRegistryDefineAndNew(t *testing.T) {
	r := NewRegistry()

	if err := r.Define("test-light", func() Element { return newTestLight() }); err != nil {
		t.Fatalf("define failed: %v", err)
	}

	if !r.Defined("test-light") {
		t.Error("expected tag to be defined")
	}

	el, err := r.New("test-light")
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if el.Schema().Tag != "test-light" {
		t.Errorf("unexpected schema tag %q", el.Schema().Tag)
	}

	// Each New returns a fresh instance.
	other, _ := r.New("test-light")
	if el == other {
		t.Error("expected distinct element instances")
	}
}

func TestRegistryRejectsInvalidTag(t *testing.T) {
	r := NewRegistry()
	err := r.Define("nohyphen", func() Element { return newTestLight() })

	var ge *errors.GlintError
	if !errorsAs(err, &ge) || ge.Code != "E001" {
		t.Errorf("expected E001, got %v", err)
	}
}

func TestRegistryRejectsDuplicate(t *testing.T) {
	r := NewRegistry()
	factory := func() Element { return newTestLight() }

	if err := r.Define("test-light", factory); err != nil {
		t.Fatal(err)
	}
	err := r.Define("test-light", factory)

	var ge *errors.GlintError
	if !errorsAs(err, &ge) || ge.Code != "E002" {
		t.Errorf("expected E002, got %v", err)
	}
}

func TestRegistryRejectsTagMismatch(t *testing.T) {
	r := NewRegistry()
	err := r.Define("other-tag", func() Element { return newTestLight() })

	var ge *errors.GlintError
	if !errorsAs(err, &ge) || ge.Code != "E010" {
		t.Errorf("expected E010, got %v", err)
	}
}

func TestRegistryUnknownTag(t *testing.T) {
	r := NewRegistry()
	_, err := r.New("not-defined")

	var ge *errors.GlintError
	if !errorsAs(err, &ge) || ge.Code != "E003" {
		t.Errorf("expected E003, got %v", err)
	}
}

func TestRegistryTagsSorted(t *testing.T) {
	r := NewRegistry()

	light := func() Element { return newTestLight() }
	// Define under a second name via a wrapper schema is not possible
	// for testLight (schema tag is fixed), so just verify ordering with
	// a single entry plus Defined checks.
	if err := r.Define("test-light", light); err != nil {
		t.Fatal(err)
	}

	tags := r.Tags()
	if len(tags) != 1 || tags[0] != "test-light" {
		t.Errorf("unexpected tags: %v", tags)
	}
	if r.Defined("something-else") {
		t.Error("unexpected tag defined")
	}
}
