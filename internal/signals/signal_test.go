package signals

import "testing"

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(1)
	if s.Get() != 1 {
		t.Fatalf("expected 1, got %d", s.Get())
	}
	s.Set(2)
	if s.Peek() != 2 {
		t.Fatalf("expected 2, got %d", s.Peek())
	}
}

func TestComputedRecomputesOnDependencyChange(t *testing.T) {
	s := NewSignal(1)
	runs := 0
	c := NewComputed(func() int {
		runs++
		return s.Get() * 2
	})
	if c.Get() != 2 || runs != 1 {
		t.Fatalf("expected 2 after 1 run, got %d after %d runs", c.Get(), runs)
	}
	s.Set(5)
	if c.Get() != 10 {
		t.Fatalf("expected 10, got %d", c.Get())
	}
}

func TestEffectReRunsOnChange(t *testing.T) {
	s := NewSignal(0)
	seen := []int{}
	CreateEffect(func() {
		seen = append(seen, s.Get())
	})
	s.Set(1)
	s.Set(2)
	if len(seen) != 3 || seen[2] != 2 {
		t.Fatalf("expected effect to run 3 times ending at 2, got %v", seen)
	}
}

func TestBatchCoalescesEffectRuns(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	runs := 0
	CreateEffect(func() {
		runs++
		_ = a.Get() + b.Get()
	})
	runs = 0
	Batch(func() {
		a.Set(1)
		b.Set(1)
	})
	if runs != 1 {
		t.Fatalf("expected batched update to run effect once, got %d", runs)
	}
}

func TestStatusLineText(t *testing.T) {
	s := NewStatusLine("INSERT")
	if got := s.Text(); got != "INSERT 1:1" {
		t.Fatalf("expected %q, got %q", "INSERT 1:1", got)
	}
	s.SetCursor(4, 9)
	s.Dirty.Set(true)
	if got := s.Text(); got != "INSERT [+] 5:10" {
		t.Fatalf("expected %q, got %q", "INSERT [+] 5:10", got)
	}
}
