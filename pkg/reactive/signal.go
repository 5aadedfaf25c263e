package reactive

import (
	"reflect"
	"sync"
)

// Source is a subscription target. WithListener reports the sources a
// listener was subscribed to so its owner can detach it on disposal.
type Source interface {
	Unsubscribe(l Listener)
}

// signalBase provides type-erased subscriber management shared by all
// Signal instantiations.
type signalBase struct {
	id uint64

	// subs are the listeners subscribed to this signal.
	subs []Listener

	// subMu protects subs.
	subMu sync.RWMutex
}

// subscribe adds a listener, deduplicating by listener ID.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}
	s.subs = append(s.subs, l)
}

// Unsubscribe implements Source.
func (s *signalBase) Unsubscribe(l Listener) {
	s.unsubscribe(l)
}

// unsubscribe removes a listener. Order is not preserved.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notifySubscribers notifies all subscribers that the value changed.
// Copies the subscriber list before notifying so no lock is held during
// callbacks. Inside a batch, notifications are queued instead.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	if batchDepth() > 0 {
		for _, sub := range subs {
			queuePendingUpdate(sub)
		}
		return
	}

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// Signal is a reactive value container. Reading a Signal during a
// tracked context (an element render) subscribes the current listener
// to change notifications.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// mu protects value.
	mu sync.RWMutex

	// equal determines whether a write changed the value.
	// nil means default equality.
	equal func(T, T) bool
}

// NewSignal creates a signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: NextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener,
// if any.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Track the dependency after releasing the value lock.
	if l := currentListener(); l != nil {
		s.base.subscribe(l)
		recordSource(&s.base)
	}

	return value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Update atomically reads and updates the value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// WithEquals configures a custom equality function. Useful for record
// types where reflect.DeepEqual has the wrong semantics or is too slow.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// Unsubscribe detaches a listener from this signal. Called when an
// instance is disposed.
func (s *Signal[T]) Unsubscribe(l Listener) {
	s.base.unsubscribe(l)
}

// Subscribers reports how many listeners are currently attached.
// Useful for verifying listener cleanup.
func (s *Signal[T]) Subscribers() int {
	s.base.subMu.RLock()
	defer s.base.subMu.RUnlock()
	return len(s.base.subs)
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common scalar types and reflect.DeepEqual
// for everything else (records like titlebar.Bar compare by value).
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int32:
		return av == any(b).(int32)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float32:
		return av == any(b).(float32)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
