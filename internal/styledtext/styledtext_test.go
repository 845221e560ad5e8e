package styledtext

import "testing"

func TestPlainText(t *testing.T) {
	chunks := Parse("hello world")
	if len(chunks) != 1 || chunks[0].Text != "hello world" {
		t.Fatalf("expected single plain chunk, got %+v", chunks)
	}
}

func TestBoldSpan(t *testing.T) {
	chunks := Parse("a **b** c")
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %+v", chunks)
	}
	if chunks[1].Text != "b" || !chunks[1].Style.Bold {
		t.Fatalf("expected bold %q, got %+v", "b", chunks[1])
	}
}

func TestColorSpan(t *testing.T) {
	chunks := Parse("#red(warning)")
	if len(chunks) != 1 || chunks[0].Text != "warning" || chunks[0].Style.FG != ColorIndex("red") {
		t.Fatalf("expected red warning chunk, got %+v", chunks)
	}
}

func TestHoleNumbering(t *testing.T) {
	chunks := Parse("%v and %v")
	var holes []int
	for _, c := range chunks {
		if c.Hole {
			holes = append(holes, c.HoleID)
		}
	}
	if len(holes) != 2 || holes[0] != 0 || holes[1] != 1 {
		t.Fatalf("expected holes [0 1], got %v", holes)
	}
}
