package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrOf creates an arbitrary attribute. Prefer the typed helpers below
// where one exists.
func AttrOf(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with the
// Style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// TitleAttr sets the title attribute (named to avoid conflict with the
// Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }

// Data creates a data-* attribute.
// Example: Data("tag", "glint-titlebar") → data-tag="glint-titlebar".
func Data(key, value string) Attr { return attr("data-"+key, value) }

// BoolAttr sets an attribute with presence semantics: the attribute is
// rendered bare when value is true and omitted when false. Reflected
// boolean properties (e.g. dark-mode) use this.
func BoolAttr(key string, value bool) Attr { return attr(key, value) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr { return attr("aria-hidden", hidden) }

// Misc attributes

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Content sets the content attribute (meta tags).
func Content(content string) Attr { return attr("content", content) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// TypeAttr sets the type attribute.
func TypeAttr(t string) Attr { return attr("type", t) }

// Src sets the src attribute.
func Src(src string) Attr { return attr("src", src) }
