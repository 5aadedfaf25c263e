package element

import (
	"strings"

	"github.com/glintkit/glint/internal/errors"
)

// PropSpec describes one declared property of an element.
type PropSpec struct {
	// Name is the property name (e.g. "darkMode").
	Name string

	// Attr is the boundary attribute this property reflects to, or ""
	// when the property is not reflected (e.g. "dark-mode").
	Attr string

	// Triggers marks the property as a re-render trigger: assigning a
	// new value schedules a render. Non-trigger properties (like a
	// formatter function) never schedule anything.
	Triggers bool

	// Default documents the construction-time value.
	Default any
}

// Schema is the compile-time declaration of an element: its tag name
// and its fixed property set.
type Schema struct {
	Tag   string
	Props []PropSpec
}

// reservedTags are hyphenated names the custom-element platform
// reserves; they cannot be defined.
var reservedTags = map[string]bool{
	"annotation-xml":   true,
	"color-profile":    true,
	"font-face":        true,
	"font-face-src":    true,
	"font-face-uri":    true,
	"font-face-format": true,
	"font-face-name":   true,
	"missing-glyph":    true,
}

// ValidTag reports whether tag is a valid custom-element tag name:
// lowercase, starts with a letter, contains a hyphen, and is not a
// reserved name.
func ValidTag(tag string) bool {
	if tag == "" || reservedTags[tag] {
		return false
	}
	if tag[0] < 'a' || tag[0] > 'z' {
		return false
	}
	hyphen := false
	for _, r := range tag {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
			hyphen = true
		case r == '.' || r == '_':
		default:
			return false
		}
	}
	return hyphen
}

// Validate checks the schema's internal consistency.
func (s Schema) Validate() error {
	if !ValidTag(s.Tag) {
		return errors.New("E001").
			WithDetailf("tag %q must be lowercase and contain a hyphen", s.Tag).
			WithSuggestion(`use a name like "glint-titlebar"`)
	}

	names := make(map[string]bool, len(s.Props))
	attrs := make(map[string]bool, len(s.Props))
	for _, p := range s.Props {
		if p.Name == "" {
			return errors.New("E010").WithDetailf("tag %q declares a property with no name", s.Tag)
		}
		if names[p.Name] {
			return errors.New("E011").WithDetailf("tag %q declares %q twice", s.Tag, p.Name)
		}
		names[p.Name] = true

		if p.Attr != "" {
			if attrs[p.Attr] {
				return errors.New("E012").WithDetailf("tag %q reflects attribute %q twice", s.Tag, p.Attr)
			}
			attrs[p.Attr] = true
		}
	}
	return nil
}

// Prop returns the spec for a property name.
func (s Schema) Prop(name string) (PropSpec, bool) {
	for _, p := range s.Props {
		if p.Name == name {
			return p, true
		}
	}
	return PropSpec{}, false
}

// TriggerProps returns the names of properties whose mutation schedules
// a re-render, in declaration order.
func (s Schema) TriggerProps() []string {
	var out []string
	for _, p := range s.Props {
		if p.Triggers {
			out = append(out, p.Name)
		}
	}
	return out
}

// ReflectedAttrs maps boundary attribute names to property names.
func (s Schema) ReflectedAttrs() map[string]string {
	out := make(map[string]string)
	for _, p := range s.Props {
		if p.Attr != "" {
			out[p.Attr] = p.Name
		}
	}
	return out
}

// normalizeAttr lowercases an attribute name the way the document
// boundary does.
func normalizeAttr(name string) string {
	return strings.ToLower(name)
}
