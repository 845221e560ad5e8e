package arena

// Scratch is a save-point into an Arena: a bump offset recorded at
// ScratchBegin and restored at End. Save-points must nest strictly LIFO,
// matching spec §4.A; End always asserts this.
type Scratch struct {
	a      *Arena
	mark   int
	parent *Scratch
}

// pool holds the two scratch arenas the spec calls "per-thread". This
// editor core runs a single-threaded cooperative event loop (spec §5): one
// goroutine builds the UI, mutates the buffer, and renders. A real
// thread-local registry keyed by goroutine ID is not idiomatic Go and
// would require runtime internals; since the loop never migrates its
// scratch usage across goroutines mid-call, a package-level pair serves
// the same purpose without hidden per-goroutine state (see DESIGN.md,
// Open Question OQ-1). Each scratch arena is a full Arena, not a child of
// another, so that a caller holding arena A can request scratch that never
// aliases A.
var pool [2]*Arena

func init() {
	pool[0] = New(0)
	pool[1] = New(0)
}

// open tracks the innermost open save-point per pool slot, to
// enforce LIFO nesting.
var open [2]*Scratch

// ScratchBegin returns a save-point into whichever pool arena is not the
// given conflict arena (or pool[0] if conflict is nil or unrelated to
// either pool arena). This is the "does not alias a caller-provided
// arena" contract from spec §4.A.
func ScratchBegin(conflict *Arena) *Scratch {
	slot := 0
	if conflict == pool[0] {
		slot = 1
	}
	a := pool[slot]
	s := &Scratch{a: a, mark: a.offset, parent: open[slot]}
	open[slot] = s
	return s
}

// Arena returns the underlying scratch arena, for allocating temporary
// storage during the save-point's lifetime.
func (s *Scratch) Arena() *Arena { return s.a }

// End restores the arena's bump offset to the save-point's mark. It
// panics if save-points were not ended in LIFO order, catching the bug
// class spec §4.A warns about (aliasing or use-after-scope of scratch
// storage).
func (s *Scratch) End() {
	slot := 0
	if s.a == pool[1] {
		slot = 1
	}
	if open[slot] != s {
		panic("arena: scratch save-points ended out of LIFO order")
	}
	open[slot] = s.parent
	s.a.offset = s.mark
}
