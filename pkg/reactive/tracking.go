package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for one goroutine. Each
// goroutine gets its own context so sessions can render elements
// concurrently without sharing tracking state.
type trackingContext struct {
	// currentListener is what is currently tracking dependencies.
	// nil means reads do not create subscriptions.
	currentListener Listener

	// batchDepth tracks nested Batch() calls. When > 0, signal updates
	// queue notifications instead of firing immediately.
	batchDepth int

	// pendingUpdates accumulates listeners to notify when the outermost
	// batch completes. Deduplicated by ID before notification.
	pendingUpdates []Listener

	// sources accumulates the subscription targets of the current
	// listener, reported by WithListener.
	sources []Source
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// goroutineID extracts the current goroutine's ID from the runtime stack.
// Implementation detail; not exposed.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> ".
	var id uint64
	for i := 10; i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := goroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

func currentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener sets the listener for dependency tracking and
// returns the previous one so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

func batchDepth() int {
	return getTrackingContext().batchDepth
}

func incrementBatchDepth() {
	getTrackingContext().batchDepth++
}

// decrementBatchDepth returns true when the outermost batch completes.
func decrementBatchDepth() bool {
	ctx := getTrackingContext()
	ctx.batchDepth--
	return ctx.batchDepth == 0
}

// recordSource notes a subscription made by the current listener.
func recordSource(s Source) {
	ctx := getTrackingContext()
	ctx.sources = append(ctx.sources, s)
}

func queuePendingUpdate(l Listener) {
	ctx := getTrackingContext()
	ctx.pendingUpdates = append(ctx.pendingUpdates, l)
}

func drainPendingUpdates() []Listener {
	ctx := getTrackingContext()
	updates := ctx.pendingUpdates
	ctx.pendingUpdates = nil
	return updates
}

// WithListener runs fn with l installed as the tracking listener and
// returns the sources fn subscribed l to. Signal reads inside fn
// subscribe l; the returned sources let the listener's owner detach it
// again on disposal.
func WithListener(l Listener, fn func()) []Source {
	ctx := getTrackingContext()
	oldListener := ctx.currentListener
	oldSources := ctx.sources
	ctx.currentListener = l
	ctx.sources = nil
	defer func() {
		ctx.currentListener = oldListener
		ctx.sources = oldSources
	}()

	fn()
	return ctx.sources
}

// Untracked runs fn without tracking signal reads as dependencies.
// For single reads prefer Signal.Peek, which is clearer in intent.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
