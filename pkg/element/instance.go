package element

import (
	"sync"
	"sync/atomic"

	"github.com/glintkit/glint/pkg/reactive"
	"github.com/glintkit/glint/pkg/vdom"
)

// Instance is a mounted element. It implements reactive.Listener:
// rendering runs under the instance's tracking context, so every signal
// the element reads subscribes the instance, and signal writes mark it
// dirty on the owning scheduler.
type Instance struct {
	id     uint64
	el     Element
	schema Schema
	sched  *Scheduler

	// gen produces node identities for this instance's trees.
	gen vdom.NIDGenerator

	// lastTree is the most recent render description, used for diffing
	// and for reading reflected attributes.
	lastTree *vdom.VNode
	treeMu   sync.RWMutex

	// sources are the signals render passes subscribed this instance
	// to; Dispose detaches it from each.
	sources map[reactive.Source]struct{}

	// dirty coalesces mutations between flushes (CAS).
	dirty atomic.Bool

	// renders counts completed render passes. Tests and metrics use it
	// to observe that non-trigger mutations schedule nothing.
	renders atomic.Uint64

	disposed atomic.Bool
}

var _ reactive.Listener = (*Instance)(nil)

// newInstance mounts an element on a scheduler and performs the initial
// render.
func newInstance(el Element, sched *Scheduler) (*Instance, error) {
	schema := el.Schema()
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	inst := &Instance{
		id:     reactive.NextID(),
		el:     el,
		schema: schema,
		sched:  sched,
	}
	inst.render()
	return inst, nil
}

// Element returns the mounted element.
func (in *Instance) Element() Element {
	return in.el
}

// Schema returns the element's validated schema.
func (in *Instance) Schema() Schema {
	return in.schema
}

// Tag returns the element's tag name.
func (in *Instance) Tag() string {
	return in.schema.Tag
}

// ID implements reactive.Listener.
func (in *Instance) ID() uint64 {
	return in.id
}

// MarkDirty implements reactive.Listener. The CAS ensures repeated
// mutations before the next flush schedule exactly one render.
func (in *Instance) MarkDirty() {
	if in.disposed.Load() {
		return
	}
	if in.dirty.CompareAndSwap(false, true) {
		if in.sched != nil {
			in.sched.enqueue(in)
		}
	}
}

// IsDirty reports whether a render is pending.
func (in *Instance) IsDirty() bool {
	return in.dirty.Load()
}

// Renders returns the number of completed render passes.
func (in *Instance) Renders() uint64 {
	return in.renders.Load()
}

// Tree returns the last render description.
func (in *Instance) Tree() *vdom.VNode {
	in.treeMu.RLock()
	defer in.treeMu.RUnlock()
	return in.lastTree
}

// render runs the element's Render under this instance's tracking
// context, keeps node identities stable, and stores the new tree.
func (in *Instance) render() *vdom.VNode {
	var tree *vdom.VNode
	sources := reactive.WithListener(in, func() {
		tree = in.el.Render()
	})

	in.treeMu.Lock()
	if in.lastTree != nil {
		vdom.CopyNIDs(in.lastTree, tree)
	}
	vdom.AssignNIDs(tree, &in.gen)
	in.lastTree = tree
	if in.sources == nil {
		in.sources = make(map[reactive.Source]struct{}, len(sources))
	}
	for _, s := range sources {
		in.sources[s] = struct{}{}
	}
	in.treeMu.Unlock()

	in.renders.Add(1)
	return tree
}

// renderPatches re-renders and returns the diff against the previous
// description. Called by the scheduler during Flush.
func (in *Instance) renderPatches() []vdom.Patch {
	in.treeMu.RLock()
	prev := in.lastTree
	in.treeMu.RUnlock()

	next := in.render()
	return vdom.Diff(prev, next)
}

// SetAttribute applies an inbound boundary attribute write. Attributes
// that are not declared as reflected in the schema are ignored, the
// same way the document ignores unobserved attributes.
func (in *Instance) SetAttribute(name, value string) {
	in.applyAttribute(name, value, true)
}

// RemoveAttribute applies an inbound boundary attribute removal.
func (in *Instance) RemoveAttribute(name string) {
	in.applyAttribute(name, "", false)
}

func (in *Instance) applyAttribute(name, value string, present bool) {
	name = normalizeAttr(name)
	if _, ok := in.schema.ReflectedAttrs()[name]; !ok {
		return
	}
	receiver, ok := in.el.(AttributeReceiver)
	if !ok {
		return
	}
	receiver.ApplyAttribute(name, value, present)
}

// Attribute reads a reflected attribute from the last rendered root.
// The second result is false when the attribute is absent.
func (in *Instance) Attribute(name string) (string, bool) {
	in.treeMu.RLock()
	defer in.treeMu.RUnlock()

	if in.lastTree == nil || in.lastTree.Props == nil {
		return "", false
	}
	raw, ok := in.lastTree.Props[normalizeAttr(name)]
	if !ok {
		return "", false
	}
	present, value := vdom.AttrValue(raw)
	if !present {
		return "", false
	}
	return value, true
}

// Dispose detaches the instance: it is unsubscribed from every signal
// it read, and further mutations no longer schedule renders.
func (in *Instance) Dispose() {
	in.disposed.Store(true)

	in.treeMu.Lock()
	in.lastTree = nil
	sources := in.sources
	in.sources = nil
	in.treeMu.Unlock()

	for s := range sources {
		s.Unsubscribe(in)
	}
}
