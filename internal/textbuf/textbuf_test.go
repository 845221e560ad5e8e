package textbuf

import (
	"testing"

	"vted/internal/uctext"
)

func TestWriteAdvancesCursorAndText(t *testing.T) {
	tb := New(nil, NoWrap)
	tb.Write([]byte("hello"), false)
	if string(tb.Text()) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", tb.Text())
	}
	if tb.Cursor.Offset != 5 {
		t.Fatalf("expected cursor offset 5, got %d", tb.Cursor.Offset)
	}
}

func TestWriteInMiddleMovesGap(t *testing.T) {
	tb := New([]byte("held"), NoWrap)
	tb.Cursor.Offset = 2
	tb.Write([]byte("ll"), false)
	if string(tb.Text()) != "hellld" {
		t.Fatalf("expected %q, got %q", "hellld", tb.Text())
	}
}

func TestDeleteForwardAndBackward(t *testing.T) {
	tb := New([]byte("hello"), NoWrap)
	tb.Cursor.Offset = 5
	tb.Delete(-1)
	if string(tb.Text()) != "hell" {
		t.Fatalf("expected %q, got %q", "hell", tb.Text())
	}
	tb.Cursor.Offset = 0
	tb.Delete(1)
	if string(tb.Text()) != "ell" {
		t.Fatalf("expected %q, got %q", "ell", tb.Text())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	tb := New(nil, NoWrap)
	tb.Write([]byte("abc"), false)
	if string(tb.Text()) != "abc" {
		t.Fatalf("setup failed: %q", tb.Text())
	}
	if !tb.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if string(tb.Text()) != "" {
		t.Fatalf("expected empty text after undo, got %q", tb.Text())
	}
	if !tb.Redo() {
		t.Fatal("expected redo to succeed")
	}
	if string(tb.Text()) != "abc" {
		t.Fatalf("expected %q after redo, got %q", "abc", tb.Text())
	}
	if tb.Redo() {
		t.Fatal("expected no further redo")
	}
}

func TestUndoNoopOnEmptyLog(t *testing.T) {
	tb := New(nil, NoWrap)
	if tb.Undo() {
		t.Fatal("expected undo on empty log to report no-op")
	}
}

func TestOvertypeReplacesGraphemeUnderCursor(t *testing.T) {
	tb := New([]byte("abc"), NoWrap)
	tb.Cursor.Offset = 0
	tb.Write([]byte("X"), true)
	if string(tb.Text()) != "Xbc" {
		t.Fatalf("expected %q, got %q", "Xbc", tb.Text())
	}
}

func TestMoveToLogicalSeeksLineAndColumn(t *testing.T) {
	tb := New([]byte("ab\ncde\nfg"), NoWrap)
	tb.MoveToLogical(uctext.Position{Line: 1, Col: 2})
	if tb.Cursor.Offset != len("ab\ncd") {
		t.Fatalf("expected offset %d, got %d", len("ab\ncd"), tb.Cursor.Offset)
	}
	if tb.Cursor.Logical.Line != 1 || tb.Cursor.Logical.Col != 2 {
		t.Fatalf("expected logical (1,2), got %+v", tb.Cursor.Logical)
	}
}

func TestMoveDeltaCrossesLine(t *testing.T) {
	tb := New([]byte("ab\ncd"), NoWrap)
	tb.Cursor.Offset = 2 // end of "ab"
	tb.Cursor.Logical.Line = 0
	tb.Cursor.Logical.Col = 2
	tb.MoveDelta(1)
	if tb.Cursor.Offset != 3 {
		t.Fatalf("expected offset 3 after crossing newline, got %d", tb.Cursor.Offset)
	}
	if tb.Cursor.Logical.Line != 1 || tb.Cursor.Logical.Col != 0 {
		t.Fatalf("expected logical (1,0), got %+v", tb.Cursor.Logical)
	}
}

func TestStripBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hi")...)
	stripped, had := StripBOM(data)
	if !had || string(stripped) != "hi" {
		t.Fatalf("expected BOM stripped to %q, got %q hadBOM=%v", "hi", stripped, had)
	}
}
