package reactive

import "testing"

func TestBatchCoalesces(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal("x")
	listener := newTestListener()

	WithListener(listener, func() {
		_ = a.Get()
		_ = b.Get()
	})

	Batch(func() {
		a.Set(1)
		b.Set("y")
		a.Set(2)
	})

	if listener.dirtyCount() != 1 {
		t.Errorf("expected 1 coalesced notification, got %d", listener.dirtyCount())
	}
}

func TestBatchNested(t *testing.T) {
	a := NewSignal(0)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = a.Get()
	})

	Batch(func() {
		a.Set(1)
		Batch(func() {
			a.Set(2)
		})
		// Inner batch completion must not flush notifications.
		if listener.dirtyCount() != 0 {
			t.Errorf("notification fired before outermost batch completed")
		}
	})

	if listener.dirtyCount() != 1 {
		t.Errorf("expected 1 notification after outer batch, got %d", listener.dirtyCount())
	}
}

func TestBatchNoChanges(t *testing.T) {
	a := NewSignal(5)
	listener := newTestListener()

	WithListener(listener, func() {
		_ = a.Get()
	})

	Batch(func() {
		a.Set(5) // unchanged
	})

	if listener.dirtyCount() != 0 {
		t.Errorf("expected no notification, got %d", listener.dirtyCount())
	}
}

func TestBatchMultipleListeners(t *testing.T) {
	a := NewSignal(0)
	l1 := newTestListener()
	l2 := newTestListener()

	WithListener(l1, func() { _ = a.Get() })
	WithListener(l2, func() { _ = a.Get() })

	Batch(func() {
		a.Set(1)
		a.Set(2)
	})

	if l1.dirtyCount() != 1 || l2.dirtyCount() != 1 {
		t.Errorf("expected 1 notification each, got %d and %d", l1.dirtyCount(), l2.dirtyCount())
	}
}
