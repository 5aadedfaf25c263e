package element

import (
	"sync"

	"github.com/glintkit/glint/pkg/vdom"
)

// Update is the result of re-rendering one dirty instance.
type Update struct {
	Instance *Instance
	Patches  []vdom.Patch
}

// Scheduler collects dirty instances and re-renders each exactly once
// per flush. One scheduler serves one host session (or one test
// harness); flushes happen on the session's goroutine, which is what
// gives property mutations their single-threaded batching semantics.
type Scheduler struct {
	mu    sync.Mutex
	queue []*Instance

	// notifyCh wakes the session event loop. Buffered so enqueue never
	// blocks; a pending wakeup covers any number of enqueues.
	notifyCh chan struct{}
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		notifyCh: make(chan struct{}, 1),
	}
}

// Mount validates the element's schema, performs the initial render,
// and returns the mounted instance.
func (s *Scheduler) Mount(el Element) (*Instance, error) {
	return newInstance(el, s)
}

// enqueue adds a dirty instance. Called from Instance.MarkDirty, which
// already deduplicates via its CAS.
func (s *Scheduler) enqueue(in *Instance) {
	s.mu.Lock()
	s.queue = append(s.queue, in)
	s.mu.Unlock()

	select {
	case s.notifyCh <- struct{}{}:
	default:
		// A wakeup is already pending.
	}
}

// Notify returns the channel that signals pending work.
func (s *Scheduler) Notify() <-chan struct{} {
	return s.notifyCh
}

// Pending reports whether any instance awaits a render.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue) > 0
}

// Flush re-renders every dirty instance once and returns the resulting
// patch sets. Mutations applied after Flush drains the queue schedule
// the next flush; each flush reflects the most recently assigned
// values at the time it renders.
func (s *Scheduler) Flush() []Update {
	s.mu.Lock()
	queue := s.queue
	s.queue = nil
	s.mu.Unlock()

	if len(queue) == 0 {
		return nil
	}

	var updates []Update
	for _, in := range queue {
		// Clear before rendering so writes made during the render pass
		// (by other goroutines) are not lost.
		if !in.dirty.CompareAndSwap(true, false) {
			continue
		}
		if in.disposed.Load() {
			continue
		}
		updates = append(updates, Update{
			Instance: in,
			Patches:  in.renderPatches(),
		})
	}
	return updates
}
