package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <h1>, custom tags
	KindText                  // plain text node
	KindFragment              // grouping without a wrapper
	KindRaw                   // raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node of a render description.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText and KindRaw
	NID      string   // Node identity (assigned when mounted)
}

// Props holds attribute values keyed by attribute name.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Clone returns a deep copy of the node. Used by tests and by hosts
// that need to keep a previous description while mutating the next.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}
	clone := &VNode{
		Kind: v.Kind,
		Tag:  v.Tag,
		Key:  v.Key,
		Text: v.Text,
		NID:  v.NID,
	}
	if v.Props != nil {
		clone.Props = make(Props, len(v.Props))
		for k, val := range v.Props {
			clone.Props[k] = val
		}
	}
	if v.Children != nil {
		clone.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}
