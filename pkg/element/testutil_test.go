package element

import (
	stderrors "errors"

	"github.com/glintkit/glint/pkg/reactive"
	"github.com/glintkit/glint/pkg/vdom"
)

func errorsAs(err error, target any) bool {
	return stderrors.As(err, target)
}

// testLight is a minimal element used across the package tests: two
// trigger properties (one reflected) and one plain field.
type testLight struct {
	label *reactive.Signal[string]
	lit   *reactive.Signal[bool]

	// speed is intentionally not reactive; mutating it must never
	// schedule a render.
	speed int
}

func newTestLight() *testLight {
	return &testLight{
		label: reactive.NewSignal("off"),
		lit:   reactive.NewSignal(false),
	}
}

func (l *testLight) Schema() Schema {
	return Schema{
		Tag: "test-light",
		Props: []PropSpec{
			{Name: "label", Triggers: true, Default: "off"},
			{Name: "lit", Attr: "lit", Triggers: true, Default: false},
			{Name: "speed"},
		},
	}
}

func (l *testLight) Render() *vdom.VNode {
	return vdom.CustomElement("test-light",
		vdom.BoolAttr("lit", l.lit.Get()),
		vdom.Span(l.label.Get()),
	)
}

func (l *testLight) ApplyAttribute(name, _ string, present bool) {
	if name == "lit" {
		l.lit.Set(present)
	}
}
