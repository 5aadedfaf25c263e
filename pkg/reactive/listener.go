package reactive

// Listener is anything that can be notified when a dependency changes.
// Mounted element instances implement it: MarkDirty schedules a re-render.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}
