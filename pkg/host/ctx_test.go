package host

import (
	stderrors "errors"
	"testing"

	"github.com/glintkit/glint/internal/errors"
	"github.com/glintkit/glint/pkg/element"
	"github.com/glintkit/glint/pkg/titlebar"
)

func mountTitlebar(t *testing.T) (*element.Scheduler, *element.Instance, *titlebar.TitleBar) {
	t.Helper()
	bar := titlebar.New()
	sched := element.NewScheduler()
	inst, err := sched.Mount(bar)
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	return sched, inst, bar
}

func TestDispatchSetAttr(t *testing.T) {
	_, inst, bar := mountTitlebar(t)

	c := &Ctx{Instance: inst, Event: Event{Type: EventSetAttr, Name: titlebar.AttrDarkMode, Value: ""}}
	if err := Dispatch(c, nil); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if !bar.DarkMode() {
		t.Error("expected dark mode set")
	}
}

func TestDispatchRemoveAttr(t *testing.T) {
	_, inst, bar := mountTitlebar(t)
	bar.SetDarkMode(true)

	c := &Ctx{Instance: inst, Event: Event{Type: EventRemoveAttr, Name: titlebar.AttrDarkMode}}
	if err := Dispatch(c, nil); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if bar.DarkMode() {
		t.Error("expected dark mode cleared")
	}
}

func TestDispatchUnsupportedEvent(t *testing.T) {
	_, inst, _ := mountTitlebar(t)

	c := &Ctx{Instance: inst, Event: Event{Type: "bogus"}}
	err := Dispatch(c, nil)

	var ge *errors.GlintError
	if !stderrors.As(err, &ge) || ge.Code != "E041" {
		t.Errorf("expected E041, got %v", err)
	}
}

func TestMiddlewareOrdering(t *testing.T) {
	_, inst, _ := mountTitlebar(t)

	var order []string
	mw := func(name string) Middleware {
		return func(c *Ctx, next func() error) error {
			order = append(order, name+"-in")
			err := next()
			order = append(order, name+"-out")
			return err
		}
	}

	c := &Ctx{Instance: inst, Event: Event{Type: EventSetAttr, Name: titlebar.AttrDarkMode}}
	if err := Dispatch(c, []Middleware{mw("outer"), mw("inner")}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	want := []string{"outer-in", "inner-in", "inner-out", "outer-out"}
	if len(order) != len(want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestMiddlewareShortCircuit(t *testing.T) {
	_, inst, bar := mountTitlebar(t)

	blocked := stderrors.New("blocked")
	deny := func(c *Ctx, next func() error) error {
		return blocked
	}

	c := &Ctx{Instance: inst, Event: Event{Type: EventSetAttr, Name: titlebar.AttrDarkMode}}
	if err := Dispatch(c, []Middleware{deny}); !stderrors.Is(err, blocked) {
		t.Fatalf("expected short-circuit error, got %v", err)
	}
	if bar.DarkMode() {
		t.Error("short-circuited event must not reach the instance")
	}
}
