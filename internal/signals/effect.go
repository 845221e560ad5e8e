package signals

import "sync"

// Effect runs fn once at creation and again whenever a dependency read
// during the last run changes.
type Effect struct {
	mu       sync.Mutex
	fn       func()
	deps     map[dependency]struct{}
	disposed bool
}

// CreateEffect builds and immediately runs an Effect.
func CreateEffect(fn func()) *Effect {
	e := &Effect{fn: fn, deps: make(map[dependency]struct{})}
	e.Run()
	return e
}

func (e *Effect) trackDependency(d dependency) {
	e.mu.Lock()
	e.deps[d] = struct{}{}
	e.mu.Unlock()
}

func (e *Effect) onDependencyChanged() {
	batchMu.Lock()
	if batchDepth > 0 {
		if batchQueue == nil {
			batchQueue = make(map[subscriber]struct{})
		}
		batchQueue[e] = struct{}{}
		batchMu.Unlock()
		return
	}
	batchMu.Unlock()
	e.Run()
}

// Run re-executes fn, first unsubscribing from the previous run's
// dependencies so stale edges don't linger.
func (e *Effect) Run() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	old := e.deps
	e.deps = make(map[dependency]struct{})
	e.mu.Unlock()

	for d := range old {
		d.unsubscribe(e)
	}

	withSubscriber(e, e.fn)
}

// Dispose unsubscribes the Effect from all dependencies; it will not run
// again.
func (e *Effect) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	for d := range e.deps {
		d.unsubscribe(e)
	}
	e.deps = nil
}
