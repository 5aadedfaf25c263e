package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil to allow conditional attributes and children.
			continue

		case Attr:
			applyAttr(node, v)

		case []Attr:
			for _, attr := range v {
				applyAttr(node, attr)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for a text child.
			node.Children = append(node.Children, &VNode{
				Kind: KindText,
				Text: v,
			})
		}
	}

	return node
}

func applyAttr(node *VNode, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
		return
	}
	node.Props[a.Key] = a.Value
}

// Text creates a text node.
func Text(text string) *VNode {
	return &VNode{Kind: KindText, Text: text}
}

// Raw creates a raw HTML node. The content is written without escaping;
// never pass untrusted input.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...*VNode) *VNode {
	kept := make([]*VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kept = append(kept, child)
		}
	}
	return &VNode{Kind: KindFragment, Children: kept}
}

// Document structure

func Html(args ...any) *VNode  { return createElement("html", args) }
func Head(args ...any) *VNode  { return createElement("head", args) }
func Body(args ...any) *VNode  { return createElement("body", args) }
func Title(args ...any) *VNode { return createElement("title", args) }
func Meta(args ...any) *VNode  { return createElement("meta", args) }
func Link(args ...any) *VNode  { return createElement("link", args) }

// Sectioning and headings

func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }

// Text content

func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }
func Pre(args ...any) *VNode  { return createElement("pre", args) }
func Ul(args ...any) *VNode   { return createElement("ul", args) }
func Ol(args ...any) *VNode   { return createElement("ol", args) }
func Li(args ...any) *VNode   { return createElement("li", args) }
func A(args ...any) *VNode    { return createElement("a", args) }
func Code(args ...any) *VNode { return createElement("code", args) }
func Br(args ...any) *VNode   { return createElement("br", args) }

// Scripting

func Script(args ...any) *VNode { return createElement("script", args) }
func Style(args ...any) *VNode  { return createElement("style", args) }

// CustomElement creates an element with a custom tag name. Element
// implementations use this for their root node so the boundary tag
// matches the registry tag.
func CustomElement(tag string, args ...any) *VNode {
	return createElement(tag, args)
}
