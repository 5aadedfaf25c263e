package reactive

// Batch groups multiple signal updates into a single notification phase.
// All updates inside fn are collected, deduplicated by listener ID, and
// delivered once when the outermost batch completes.
//
// Batches can be nested; notifications only fire when the outermost
// batch returns.
//
//	reactive.Batch(func() {
//	    title.Set("Hello")
//	    dark.Set(true)
//	    bar.Set(titlebar.Bar{X: 4, Y: 2})
//	})
//	// one notification per affected listener
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	unique := make([]Listener, 0, len(updates))
	for _, l := range updates {
		id := l.ID()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, l)
		}
	}

	for _, l := range unique {
		l.MarkDirty()
	}
}
