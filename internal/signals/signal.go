// Package signals is a small SolidJS-style reactive system: Signal holds a
// value, Computed derives one, Effect reacts to changes, with automatic
// dependency tracking via a single active-subscriber slot. Adapted from
// the teacher's signals package, which used this engine to drive markdown
// demo re-rendering; here it drives editor chrome only (status line,
// cursor readout, dirty indicator — see status.go) and is never on the
// path that mutates the document model itself.
package signals

import (
	"reflect"
	"sync"
)

// dependency is anything a subscriber can depend on.
type dependency interface {
	subscribe(s subscriber)
	unsubscribe(s subscriber)
}

// subscriber is anything that reacts to a dependency changing.
type subscriber interface {
	onDependencyChanged()
	trackDependency(d dependency)
}

var (
	trackingMu sync.Mutex
	tracking   subscriber

	batchMu    sync.Mutex
	batchDepth int
	batchQueue map[subscriber]struct{}
)

// Batch defers subscriber notifications until fn returns, coalescing
// multiple Set calls into one downstream Effect run.
func Batch(fn func()) {
	batchMu.Lock()
	batchDepth++
	batchMu.Unlock()

	defer func() {
		batchMu.Lock()
		batchDepth--
		var queue map[subscriber]struct{}
		if batchDepth == 0 {
			queue = batchQueue
			batchQueue = nil
		}
		batchMu.Unlock()
		for sub := range queue {
			sub.onDependencyChanged()
		}
	}()

	fn()
}

func notify(subs map[subscriber]struct{}) {
	batchMu.Lock()
	if batchDepth > 0 {
		if batchQueue == nil {
			batchQueue = make(map[subscriber]struct{})
		}
		for s := range subs {
			batchQueue[s] = struct{}{}
		}
		batchMu.Unlock()
		return
	}
	batchMu.Unlock()
	for s := range subs {
		s.onDependencyChanged()
	}
}

func currentSubscriber() subscriber {
	trackingMu.Lock()
	defer trackingMu.Unlock()
	return tracking
}

func withSubscriber(sub subscriber, fn func()) {
	trackingMu.Lock()
	prev := tracking
	tracking = sub
	trackingMu.Unlock()

	fn()

	trackingMu.Lock()
	tracking = prev
	trackingMu.Unlock()
}

// Signal is a reactive value cell.
type Signal[T any] struct {
	mu   sync.RWMutex
	val  T
	subs map[subscriber]struct{}
}

// NewSignal returns a Signal holding the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{val: initial, subs: make(map[subscriber]struct{})}
}

func (s *Signal[T]) subscribe(sub subscriber)   { s.mu.Lock(); s.subs[sub] = struct{}{}; s.mu.Unlock() }
func (s *Signal[T]) unsubscribe(sub subscriber) { s.mu.Lock(); delete(s.subs, sub); s.mu.Unlock() }

// Get reads the value, registering the active Computed/Effect (if any) as
// a dependent.
func (s *Signal[T]) Get() T {
	if sub := currentSubscriber(); sub != nil {
		sub.trackDependency(s)
		s.subscribe(sub)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.val
}

// Peek reads the value without establishing a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.val
}

// Set stores a new value and notifies dependents, skipping the notify if
// the value is unchanged.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	if reflect.DeepEqual(s.val, v) {
		s.mu.Unlock()
		return
	}
	s.val = v
	subs := make(map[subscriber]struct{}, len(s.subs))
	for sub := range s.subs {
		subs[sub] = struct{}{}
	}
	s.mu.Unlock()
	notify(subs)
}
