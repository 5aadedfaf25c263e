package gtest

import (
	"strings"
	"testing"

	"github.com/glintkit/glint/pkg/element"
	"github.com/glintkit/glint/pkg/render"
	"github.com/glintkit/glint/pkg/vdom"
)

// Harness wires a mounted element to a private scheduler.
type Harness struct {
	t     *testing.T
	sched *element.Scheduler
	inst  *element.Instance
}

// Mount mounts an element on a fresh scheduler and fails the test if
// the initial render errors.
//
// Example:
//
//	h := gtest.Mount(t, titlebar.New())
//	gtest.ExpectContains(t, h.Tree(), "You are awesome")
func Mount(t *testing.T, el element.Element) *Harness {
	t.Helper()
	sched := element.NewScheduler()
	inst, err := sched.Mount(el)
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	return &Harness{t: t, sched: sched, inst: inst}
}

// Instance returns the mounted instance.
func (h *Harness) Instance() *element.Instance {
	return h.inst
}

// Tree returns the most recently rendered description.
func (h *Harness) Tree() *vdom.VNode {
	return h.inst.Tree()
}

// Flush drains the scheduler, re-rendering every dirty instance once,
// and returns the coalesced updates.
func (h *Harness) Flush() []element.Update {
	return h.sched.Flush()
}

// ExpectRenders asserts the instance's total render count.
//
// Example:
//
//	el.SetTitle("a")
//	el.SetTitle("b")
//	h.Flush()
//	h.ExpectRenders(2) // mount + one coalesced re-render
func (h *Harness) ExpectRenders(want uint64) {
	h.t.Helper()
	if got := h.inst.Renders(); got != want {
		h.t.Errorf("expected %d renders, got %d", want, got)
	}
}

// RenderToString renders a VNode and returns the HTML string.
// This is useful for asserting on rendered output.
//
// Example:
//
//	html := gtest.RenderToString(el.Render())
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ExpectBareAttribute asserts that rendered output contains a
// presence-only attribute, rendered without a value.
func ExpectBareAttribute(t *testing.T, node *vdom.VNode, attr string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, " "+attr+">") && !strings.Contains(html, " "+attr+" ") {
		t.Errorf("expected bare attribute %q not found, got:\n%s", attr, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
