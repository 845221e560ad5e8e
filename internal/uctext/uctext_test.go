package uctext

import "testing"

func TestMeasureForwardASCII(t *testing.T) {
	text := []byte("hello\nworld")
	res, _ := MeasureForward(text, 0, Position{}, NoStop, NoStop, NoStop)
	if res.NewOffset != len(text) {
		t.Fatalf("expected to consume whole buffer, got offset %d", res.NewOffset)
	}
	if res.NewPos.Line != 1 {
		t.Fatalf("expected line 1 after crossing one newline, got %d", res.NewPos.Line)
	}
	if res.NewPos.Col != 5 {
		t.Fatalf("expected col 5 ('world'), got %d", res.NewPos.Col)
	}
}

func TestMeasureForwardGraphemeStop(t *testing.T) {
	text := []byte("abcdef")
	res, _ := MeasureForward(text, 0, Position{}, NoStop, 3, NoStop)
	if res.Graphemes != 3 || res.NewOffset != 3 {
		t.Fatalf("expected to stop after 3 graphemes at offset 3, got graphemes=%d offset=%d", res.Graphemes, res.NewOffset)
	}
}

func TestMeasureForwardColumnStop(t *testing.T) {
	text := []byte("abcdef")
	res, _ := MeasureForward(text, 0, Position{}, 3, NoStop, NoStop)
	if res.NewPos.Col != 3 {
		t.Fatalf("expected to stop at column 3, got %d", res.NewPos.Col)
	}
}

func TestMeasureForwardCombiningCluster(t *testing.T) {
	// "a" + combining acute accent is a single extended grapheme cluster.
	text := []byte("áb")
	res, _ := MeasureForward(text, 0, Position{}, NoStop, 1, NoStop)
	if res.Graphemes != 1 {
		t.Fatalf("expected 1 grapheme for combined cluster, got %d", res.Graphemes)
	}
	if res.NewOffset != len("á") {
		t.Fatalf("expected cluster boundary after combining mark, got offset %d", res.NewOffset)
	}
}

func TestMeasureBackwardSimple(t *testing.T) {
	text := []byte("hello")
	res := MeasureBackward(text, len(text), Position{Col: 5}, NoStop, 2)
	if res.Graphemes != 2 {
		t.Fatalf("expected 2 graphemes consumed, got %d", res.Graphemes)
	}
	if res.NewOffset != 3 {
		t.Fatalf("expected offset 3 ('hel|lo'), got %d", res.NewOffset)
	}
}

func TestMeasureBackwardCrossesNewline(t *testing.T) {
	text := []byte("ab\ncd")
	res := MeasureBackward(text, len(text), Position{Line: 1, Col: 2}, NoStop, 3)
	if !res.CrossedNewline {
		t.Fatalf("expected crossed newline")
	}
	if res.NewPos.Col >= 0 {
		t.Fatalf("expected negative column after crossing newline, got %d", res.NewPos.Col)
	}
}

func TestNewlinesForwardAndBackward(t *testing.T) {
	text := []byte("a\nb\nc\nd")
	line := 0
	off := NewlinesForward(text, 0, &line, 2)
	if line != 2 {
		t.Fatalf("expected line 2, got %d", line)
	}
	if text[off] != 'c' {
		t.Fatalf("expected offset at 'c', got byte %q", text[off])
	}

	back := NewlinesBackward(text, off, &line, 0)
	if line != 0 {
		t.Fatalf("expected line back to 0, got %d", line)
	}
	if back != 0 {
		t.Fatalf("expected offset back to 0, got %d", back)
	}
}
