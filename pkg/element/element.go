package element

import "github.com/glintkit/glint/pkg/vdom"

// Element is a renderable custom element.
type Element interface {
	// Schema returns the element's compile-time property declaration.
	Schema() Schema

	// Render produces the element's render description. Rendering must
	// be free of side effects and idempotent: two renders with
	// unchanged properties yield identical descriptions.
	Render() *vdom.VNode
}

// AttributeReceiver is implemented by elements that accept inbound
// boundary attribute changes (the document side of two-way reflection).
// present is false when the attribute was removed.
type AttributeReceiver interface {
	ApplyAttribute(name, value string, present bool)
}

// Factory constructs a fresh element instance with its default
// property values.
type Factory func() Element
