// Package titlebar implements <glint-titlebar>, a reactive title bar
// element: a formatted heading, a positioned dot marker, and a
// dark-mode flag reflected to the document boundary.
package titlebar

import (
	"fmt"
	"strconv"

	"github.com/glintkit/glint/pkg/element"
	"github.com/glintkit/glint/pkg/reactive"
	"github.com/glintkit/glint/pkg/vdom"
)

// Tag is the element's registered tag name.
const Tag = "glint-titlebar"

// Construction defaults.
const (
	DefaultTitle    = "You are awesome"
	DefaultBarTitle = "I am dot"
)

// AttrDarkMode is the boundary attribute darkMode reflects to.
const AttrDarkMode = "dark-mode"

// Bar describes the positioned dot marker. X and Y are pixel offsets;
// Title is the marker's boundary title, empty when absent.
type Bar struct {
	X     float64
	Y     float64
	Title string
}

// Formatter transforms a stringified value before it is framed by
// prefix and suffix. A nil Formatter passes values through unchanged.
type Formatter func(string) string

// TitleBar is the element state. Title, DarkMode and Bar are trigger
// properties: assigning a new value schedules a re-render on the
// owning scheduler. The formatter is deliberately a plain field, so
// swapping it never schedules anything.
type TitleBar struct {
	title    *reactive.Signal[string]
	darkMode *reactive.Signal[bool]
	bar      *reactive.Signal[Bar]

	formatter Formatter
}

var (
	_ element.Element           = (*TitleBar)(nil)
	_ element.AttributeReceiver = (*TitleBar)(nil)
)

// New constructs a title bar with its default property values. No
// side effects beyond field initialization.
func New() *TitleBar {
	return &TitleBar{
		title:    reactive.NewSignal(DefaultTitle),
		darkMode: reactive.NewSignal(false),
		bar:      reactive.NewSignal(Bar{X: 0, Y: 0, Title: DefaultBarTitle}),
	}
}

// Factory adapts New for registry registration.
func Factory() element.Element {
	return New()
}

// Schema declares the fixed property set. Exactly three properties
// trigger re-renders; exactly one reflects to a boundary attribute.
func (t *TitleBar) Schema() element.Schema {
	return element.Schema{
		Tag: Tag,
		Props: []element.PropSpec{
			{Name: "title", Triggers: true, Default: DefaultTitle},
			{Name: "darkMode", Attr: AttrDarkMode, Triggers: true, Default: false},
			{Name: "bar", Triggers: true, Default: Bar{Title: DefaultBarTitle}},
			{Name: "formatter", Triggers: false},
		},
	}
}

// Title returns the current title without subscribing.
func (t *TitleBar) Title() string { return t.title.Peek() }

// SetTitle assigns the title, scheduling a re-render if it changed.
func (t *TitleBar) SetTitle(title string) { t.title.Set(title) }

// DarkMode returns the current dark-mode flag without subscribing.
func (t *TitleBar) DarkMode() bool { return t.darkMode.Peek() }

// SetDarkMode assigns the flag, scheduling a re-render if it changed.
func (t *TitleBar) SetDarkMode(on bool) { t.darkMode.Set(on) }

// Bar returns the current marker without subscribing.
func (t *TitleBar) Bar() Bar { return t.bar.Peek() }

// SetBar assigns the marker, scheduling a re-render if it changed by
// value.
func (t *TitleBar) SetBar(bar Bar) { t.bar.Set(bar) }

// Formatter returns the current formatter.
func (t *TitleBar) Formatter() Formatter { return t.formatter }

// SetFormatter swaps the formatter. This is not an observed property:
// no re-render is scheduled, and the new formatter takes effect on the
// next render caused by a trigger property.
func (t *TitleBar) SetFormatter(f Formatter) { t.formatter = f }

// Render produces the element's description: the root carries the
// reflected dark-mode attribute, the heading shows the formatted
// title, and the dot marker is positioned from Bar in pixels with
// Bar.Title as its boundary title.
func (t *TitleBar) Render() *vdom.VNode {
	bar := t.bar.Get()

	return vdom.CustomElement(Tag,
		vdom.Class("titlebar"),
		vdom.BoolAttr(AttrDarkMode, t.darkMode.Get()),
		vdom.H1(t.Format(t.title.Get())),
		vdom.Div(
			vdom.Class("dot"),
			vdom.StyleAttr(fmt.Sprintf("left:%spx; top:%spx", px(bar.X), px(bar.Y))),
			vdom.TitleAttr(bar.Title),
		),
	)
}

// ApplyAttribute handles inbound boundary attribute writes. Presence
// of dark-mode sets the flag; removal clears it.
func (t *TitleBar) ApplyAttribute(name, _ string, present bool) {
	if name == AttrDarkMode {
		t.darkMode.Set(present)
	}
}

// px formats a pixel offset without trailing zeros.
func px(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
