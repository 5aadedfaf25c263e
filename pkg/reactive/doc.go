// Package reactive provides the fine-grained reactivity primitives that
// drive element re-rendering in Glint.
//
// A Signal holds a value. Reading it with Get during a tracked context
// (an element render) subscribes the current listener; writing it with
// Set notifies subscribers only when the value actually changed. Batch
// groups several writes so that each affected listener is notified once.
//
//	title := reactive.NewSignal("You are awesome")
//
//	reactive.Batch(func() {
//	    title.Set("Hello")
//	    dark.Set(true)
//	})
//	// the element re-renders once with both changes
package reactive
