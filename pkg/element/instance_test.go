package element

import (
	"testing"

	"github.com/glintkit/glint/pkg/reactive"
	"github.com/glintkit/glint/pkg/vdom"
)

func mustMount(t *testing.T, el Element) (*Scheduler, *Instance) {
	t.Helper()
	sched := NewScheduler()
	inst, err := sched.Mount(el)
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	return sched, inst
}

func TestMountRendersOnce(t *testing.T) {
	_, inst := mustMount(t, newTestLight())

	if inst.Renders() != 1 {
		t.Errorf("expected 1 initial render, got %d", inst.Renders())
	}
	if inst.Tree() == nil {
		t.Fatal("expected a tree after mount")
	}
	if inst.Tree().NID == "" {
		t.Error("expected root to carry a node identity")
	}
	if inst.IsDirty() {
		t.Error("freshly mounted instance must not be dirty")
	}
}

func TestTriggerPropertySchedulesRender(t *testing.T) {
	light := newTestLight()
	sched, inst := mustMount(t, light)

	light.label.Set("on")

	if !inst.IsDirty() {
		t.Fatal("expected instance to be dirty after trigger mutation")
	}

	updates := sched.Flush()
	if len(updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(updates))
	}
	if inst.Renders() != 2 {
		t.Errorf("expected 2 renders, got %d", inst.Renders())
	}

	patches := updates[0].Patches
	if len(patches) != 1 || patches[0].Op != vdom.PatchSetText || patches[0].Value != "on" {
		t.Errorf("unexpected patches: %v", patches)
	}
}

func TestMutationsCoalesce(t *testing.T) {
	light := newTestLight()
	sched, inst := mustMount(t, light)

	// Several synchronous mutations before the next flush.
	light.label.Set("a")
	light.lit.Set(true)
	light.label.Set("b")

	updates := sched.Flush()
	if len(updates) != 1 {
		t.Fatalf("expected mutations to coalesce into 1 update, got %d", len(updates))
	}
	if inst.Renders() != 2 {
		t.Errorf("expected exactly 1 re-render, got %d total renders", inst.Renders())
	}

	// The flush reflects the most recently assigned values.
	tree := inst.Tree()
	if tree.Children[0].Children[0].Text != "b" {
		t.Errorf("expected latest label value, got %q", tree.Children[0].Children[0].Text)
	}
}

func TestReactiveBatchCoalesces(t *testing.T) {
	light := newTestLight()
	sched, inst := mustMount(t, light)

	reactive.Batch(func() {
		light.label.Set("x")
		light.lit.Set(true)
	})

	if got := len(sched.Flush()); got != 1 {
		t.Errorf("expected 1 update, got %d", got)
	}
	if inst.Renders() != 2 {
		t.Errorf("expected 2 renders, got %d", inst.Renders())
	}
}

func TestNonTriggerFieldDoesNotRender(t *testing.T) {
	light := newTestLight()
	sched, inst := mustMount(t, light)

	before := inst.Renders()
	light.speed = 99

	if inst.IsDirty() {
		t.Error("plain field mutation must not mark the instance dirty")
	}
	if got := sched.Flush(); got != nil {
		t.Errorf("expected no updates, got %v", got)
	}
	if inst.Renders() != before {
		t.Errorf("render count changed: %d -> %d", before, inst.Renders())
	}
}

func TestUnchangedValueDoesNotRender(t *testing.T) {
	light := newTestLight()
	sched, inst := mustMount(t, light)

	light.label.Set("off") // same as default

	if inst.IsDirty() {
		t.Error("unchanged value must not mark the instance dirty")
	}
	_ = sched.Flush()
	if inst.Renders() != 1 {
		t.Errorf("expected 1 render, got %d", inst.Renders())
	}
}

func TestInboundAttributeReflection(t *testing.T) {
	light := newTestLight()
	sched, inst := mustMount(t, light)

	inst.SetAttribute("lit", "")
	if !light.lit.Peek() {
		t.Error("expected lit to be set by attribute write")
	}

	sched.Flush()
	if _, present := inst.Attribute("lit"); !present {
		t.Error("expected lit attribute present after render")
	}

	inst.RemoveAttribute("lit")
	if light.lit.Peek() {
		t.Error("expected lit to be cleared by attribute removal")
	}

	sched.Flush()
	if _, present := inst.Attribute("lit"); present {
		t.Error("expected lit attribute absent after render")
	}
}

func TestUnknownAttributeIgnored(t *testing.T) {
	light := newTestLight()
	sched, inst := mustMount(t, light)

	inst.SetAttribute("unknown", "x")
	if inst.IsDirty() {
		t.Error("undeclared attribute must be ignored")
	}
	_ = sched.Flush()
	if inst.Renders() != 1 {
		t.Errorf("expected 1 render, got %d", inst.Renders())
	}
	_ = light
}

func TestRenderIdempotent(t *testing.T) {
	light := newTestLight()
	_, inst := mustMount(t, light)

	prev := inst.Tree()
	next := inst.render()

	if patches := vdom.Diff(prev, next); len(patches) != 0 {
		t.Errorf("expected identical descriptions, got patches %v", patches)
	}
}

func TestDispose(t *testing.T) {
	light := newTestLight()
	sched, inst := mustMount(t, light)

	inst.Dispose()
	light.label.Set("zzz")

	if inst.IsDirty() {
		t.Error("disposed instance must not go dirty")
	}
	if got := sched.Flush(); got != nil {
		t.Errorf("expected no updates after dispose, got %v", got)
	}
}

func TestDisposeDetachesFromSignals(t *testing.T) {
	light := newTestLight()
	_, inst := mustMount(t, light)

	if light.label.Subscribers() != 1 || light.lit.Subscribers() != 1 {
		t.Fatal("expected the mounted instance to be subscribed to its signals")
	}

	inst.Dispose()

	// Disposal must not leave the instance lingering in subscriber
	// lists; on long-lived shared signals that is a leak.
	if got := light.label.Subscribers(); got != 0 {
		t.Errorf("label has %d subscribers after dispose, want 0", got)
	}
	if got := light.lit.Subscribers(); got != 0 {
		t.Errorf("lit has %d subscribers after dispose, want 0", got)
	}
}
