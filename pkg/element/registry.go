package element

import (
	"sort"
	"sync"

	"github.com/glintkit/glint/internal/errors"
)

// Registry maps custom-element tag names to factories. It plays the
// role of the platform's custom-element registry: Define is the
// registration boundary, New is instantiation by the host.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Define registers a factory under a tag name. The tag must be a valid
// custom-element name, must not already be defined, and must match the
// schema of the elements the factory produces. The factory is probed
// once so schema mistakes surface at startup rather than at first use.
func (r *Registry) Define(tag string, factory Factory) error {
	if factory == nil {
		return errors.New("E001").WithDetailf("tag %q registered with a nil factory", tag)
	}
	if !ValidTag(tag) {
		return errors.New("E001").
			WithDetailf("tag %q must be lowercase and contain a hyphen", tag).
			WithSuggestion(`use a name like "glint-titlebar"`)
	}

	probe := factory()
	schema := probe.Schema()
	if err := schema.Validate(); err != nil {
		return err
	}
	if schema.Tag != tag {
		return errors.New("E010").
			WithDetailf("factory for %q produces elements declaring tag %q", tag, schema.Tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[tag]; exists {
		return errors.New("E002").
			WithDetailf("tag %q was already defined", tag).
			WithSuggestion("define each tag once at startup")
	}
	r.factories[tag] = factory
	return nil
}

// New instantiates a fresh element for a tag.
func (r *Registry) New(tag string) (Element, error) {
	r.mu.RLock()
	factory, ok := r.factories[tag]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.New("E003").
			WithDetailf("tag %q has not been defined", tag).
			WithSuggestion("call Define before instantiating")
	}
	return factory(), nil
}

// Defined reports whether a tag has been registered.
func (r *Registry) Defined(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[tag]
	return ok
}

// Tags returns all defined tags, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Default is the process-wide registry used by the package-level
// helpers, mirroring the document's global custom-element registry.
var Default = NewRegistry()

// Define registers a factory on the default registry.
func Define(tag string, factory Factory) error {
	return Default.Define(tag, factory)
}

// New instantiates a tag from the default registry.
func New(tag string) (Element, error) {
	return Default.New(tag)
}
