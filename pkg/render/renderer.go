package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/glintkit/glint/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed output with indentation. Intended
	// for development; it increases output size.
	Pretty bool

	// Indent is the string used per indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string

	// IncludeNIDs emits data-nid attributes on element nodes so the
	// live client can address patches. SSR pages served by pkg/host
	// enable this; one-shot snapshot rendering does not.
	IncludeNIDs bool
}

// Renderer writes render descriptions as HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a tree to a complete HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		return r.renderText(w, node)
	case vdom.KindFragment:
		return r.renderFragment(w, node, depth)
	case vdom.KindRaw:
		return r.renderRaw(w, node)
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}

	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	if r.config.IncludeNIDs && node.NID != "" {
		if _, err := fmt.Fprintf(w, ` data-nid="%s"`, node.NID); err != nil {
			return err
		}
	}

	if vdom.IsVoidElement(tag) {
		if _, err := w.Write([]byte{'>'}); err != nil {
			return err
		}
		if r.config.Pretty {
			w.Write([]byte{'\n'})
		}
		return nil
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		w.Write([]byte{'\n'})
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		w.Write([]byte{'\n'})
	}

	return nil
}

// renderText renders a text node with HTML escaping.
func (r *Renderer) renderText(w io.Writer, node *vdom.VNode) error {
	_, err := w.Write([]byte(escapeHTML(node.Text)))
	return err
}

// renderFragment renders a fragment's children without a wrapper.
func (r *Renderer) renderFragment(w io.Writer, node *vdom.VNode, depth int) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderRaw renders raw HTML without escaping.
func (r *Renderer) renderRaw(w io.Writer, node *vdom.VNode) error {
	_, err := w.Write([]byte(node.Text))
	return err
}

// renderAttributes writes attributes in sorted order for deterministic
// output. Bool values have presence semantics.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		present, value := vdom.AttrValue(node.Props[key])
		if !present {
			continue
		}

		if _, isBool := node.Props[key].(bool); isBool {
			if _, err := fmt.Fprintf(w, " %s", key); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(value)); err != nil {
			return err
		}
	}

	return nil
}

// isInlineElement reports whether children stay on the same line in
// pretty mode.
func isInlineElement(tag string) bool {
	switch tag {
	case "a", "span", "strong", "em", "b", "i", "u", "code", "small", "h1", "h2", "h3", "title":
		return true
	default:
		return false
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		w.Write([]byte(r.config.Indent))
	}
}
