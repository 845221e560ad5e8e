package arena

import "testing"

func TestAllocBumpsOffset(t *testing.T) {
	a := New(0)
	s1 := a.Alloc(10, 1)
	if len(s1) != 10 {
		t.Fatalf("expected 10 bytes, got %d", len(s1))
	}
	if a.Offset() != 10 {
		t.Fatalf("expected offset 10, got %d", a.Offset())
	}
	s2 := a.Alloc(5, 1)
	if len(s2) != 5 || a.Offset() != 15 {
		t.Fatalf("second alloc did not bump offset correctly: %d", a.Offset())
	}
}

func TestAllocAlignment(t *testing.T) {
	a := New(0)
	a.Alloc(3, 1)
	s := a.Alloc(8, 8)
	if a.Offset()%8 != 0 {
		t.Fatalf("expected 8-byte aligned offset, got %d", a.Offset())
	}
	if len(s) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(s))
	}
}

func TestResetRewindsOffsetKeepsCommit(t *testing.T) {
	a := New(0)
	a.Alloc(1000, 1)
	commitBefore := a.Commit()
	a.Reset()
	if a.Offset() != 0 {
		t.Fatalf("expected offset 0 after reset, got %d", a.Offset())
	}
	if a.Commit() != commitBefore {
		t.Fatalf("reset should not shrink commit: before=%d after=%d", commitBefore, a.Commit())
	}
}

func TestAllocGrowsCommitInChunks(t *testing.T) {
	a := New(0)
	a.Alloc(commitChunk+1, 1)
	if a.Commit() < commitChunk+1 {
		t.Fatalf("commit should have grown to cover allocation, got %d", a.Commit())
	}
	if a.Commit()%commitChunk != 0 {
		t.Fatalf("commit should grow in commitChunk increments, got %d", a.Commit())
	}
}

func TestAllocPastCapacityPanics(t *testing.T) {
	a := New(16)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on over-capacity allocation")
		}
	}()
	a.Alloc(17, 1)
}

func TestScratchBeginAvoidsConflict(t *testing.T) {
	caller := New(0)
	s := ScratchBegin(caller)
	defer s.End()
	if s.Arena() == caller {
		t.Fatal("scratch arena must not alias the conflict arena")
	}
}

func TestScratchLIFOViolationPanics(t *testing.T) {
	s1 := ScratchBegin(nil)
	s2 := ScratchBegin(nil)
	defer func() {
		s2.End()
		s1.End()
	}()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-order scratch end")
		}
	}()
	s1.End()
}

func TestGrowSliceDoublingFloor(t *testing.T) {
	a := New(0)
	gs := NewGrowSlice[int](a)
	for i := 0; i < 5; i++ {
		gs.Append(i)
	}
	if gs.Len() != 5 {
		t.Fatalf("expected 5 elements, got %d", gs.Len())
	}
	if cap(gs.Slice()) < minFloor {
		t.Fatalf("expected first growth to respect floor of %d, got cap %d", minFloor, cap(gs.Slice()))
	}
}

func TestAppendIntRoundTrips(t *testing.T) {
	cases := []int{0, 1, 9, 10, 42, 99, 100, 101, 1234, -7, -100}
	for _, c := range cases {
		got := string(AppendInt(nil, c))
		want := wantItoa(c)
		if got != want {
			t.Errorf("AppendInt(%d) = %q, want %q", c, got, want)
		}
	}
}

func wantItoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func TestRepeatString(t *testing.T) {
	got := string(RepeatString(nil, "ab", 3))
	if got != "ababab" {
		t.Fatalf("expected ababab, got %q", got)
	}
}
