package signals

import "sync"

// Computed is a cached derived value, recomputed lazily the next time it
// is read after one of its dependencies changes.
type Computed[T any] struct {
	mu    sync.Mutex
	fn    func() T
	val   T
	dirty bool
	deps  map[dependency]struct{}
	subs  map[subscriber]struct{}
}

// NewComputed returns a Computed that evaluates fn on first read and
// whenever a tracked dependency subsequently changes.
func NewComputed[T any](fn func() T) *Computed[T] {
	return &Computed[T]{fn: fn, dirty: true, deps: make(map[dependency]struct{}), subs: make(map[subscriber]struct{})}
}

func (c *Computed[T]) subscribe(sub subscriber)   { c.mu.Lock(); c.subs[sub] = struct{}{}; c.mu.Unlock() }
func (c *Computed[T]) unsubscribe(sub subscriber) { c.mu.Lock(); delete(c.subs, sub); c.mu.Unlock() }

func (c *Computed[T]) trackDependency(d dependency) {
	c.mu.Lock()
	c.deps[d] = struct{}{}
	c.mu.Unlock()
}

func (c *Computed[T]) onDependencyChanged() {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return
	}
	c.dirty = true
	subs := make(map[subscriber]struct{}, len(c.subs))
	for s := range c.subs {
		subs[s] = struct{}{}
	}
	c.mu.Unlock()
	notify(subs)
}

// Get returns the current value, recomputing if dirty.
func (c *Computed[T]) Get() T {
	if sub := currentSubscriber(); sub != nil {
		sub.trackDependency(c)
		c.subscribe(sub)
	}

	c.mu.Lock()
	if c.dirty {
		for d := range c.deps {
			d.unsubscribe(c)
		}
		c.deps = make(map[dependency]struct{})
		c.mu.Unlock()

		var v T
		withSubscriber(c, func() { v = c.fn() })

		c.mu.Lock()
		c.val = v
		c.dirty = false
	}
	defer c.mu.Unlock()
	return c.val
}
