package textbuf

import "vted/internal/uctext"

// Write inserts str at the cursor. In overtype mode the deletion range is
// extended to cover exactly one grapheme cluster after the cursor; a
// preceding cluster that str would combine with is not replaced.
func (tb *TextBuffer) Write(str []byte, overtype bool) {
	begin := tb.Cursor.Offset
	end := begin

	if overtype && len(str) > 0 {
		fwd, _ := tb.measureForward(begin, uctext.Position{}, uctext.NoStop, 1, NoWrap)
		end = fwd.NewOffset
	}

	removed := tb.Extract(begin, end, nil)
	before := tb.Cursor

	tb.ensureGap(begin, len(str)-(end-begin))
	extra := end - begin
	tb.gapLen += extra
	tb.textLength -= extra

	tb.insertAtGap(str)

	tb.recordChange(before, removed, append([]byte(nil), str...))
	tb.recomputeCursorAcrossInsert(begin, len(str))
	tb.Dirty = true
}

// insertAtGap copies str into the front of the gap and advances gapOff,
// shrinking the gap and growing textLength.
func (tb *TextBuffer) insertAtGap(str []byte) {
	if len(str) == 0 {
		return
	}
	copy(tb.buf[tb.gapOff:tb.gapOff+len(str)], str)
	tb.gapOff += len(str)
	tb.gapLen -= len(str)
	tb.textLength += len(str)
}

// recomputeCursorAcrossInsert re-measures the cursor's grapheme position
// across the insertion boundary, since str may combine with a preceding or
// following character: it re-walks from the line start by grapheme count
// rather than trusting the raw byte offset, so a cluster that now spans the
// insertion boundary is counted once.
func (tb *TextBuffer) recomputeCursorAcrossInsert(insertOffset, insertedLen int) {
	tb.seekToByteOffset(insertOffset + insertedLen)
}

// seekToByteOffset walks forward grapheme-by-grapheme from the current
// line start until the cursor's byte offset reaches target exactly,
// handling the case where a combining cluster straddles it.
func (tb *TextBuffer) seekToByteOffset(target int) {
	lineStart := tb.currentLineStart()
	off := lineStart
	col := 0
	line := tb.Cursor.Logical.Line
	for off < target {
		res, _ := tb.measureForward(off, uctext.Position{Line: line}, uctext.NoStop, 1, NoWrap)
		if res.NewOffset == off {
			break
		}
		if res.CrossedNewline {
			line++
			col = 0
			lineStart = res.NewOffset
		} else {
			col++
		}
		off = res.NewOffset
	}
	tb.Cursor.Offset = off
	tb.Cursor.Logical = uctext.Position{Line: line, Col: col}
	tb.syncVisualAfterStep()
}

// Delete moves a virtual cursor by delta grapheme steps (delta may be
// negative), removes the byte range between the current position and that
// virtual cursor, and records a change with empty insertion.
func (tb *TextBuffer) Delete(delta int) {
	begin := tb.Cursor.Offset
	var end int
	if delta >= 0 {
		res, _ := tb.measureForward(begin, tb.Cursor.Logical, uctext.NoStop, delta, NoWrap)
		end = res.NewOffset
	} else {
		// Step the real cursor to the low end so the recorded change
		// carries the position its removed bytes came from.
		tb.MoveDelta(delta)
		end = tb.Cursor.Offset
	}
	lo, hi := begin, end
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return
	}

	removed := tb.Extract(lo, hi, nil)
	before := tb.Cursor

	tb.ensureGap(lo, 0)
	tb.gapOff = lo
	tb.gapLen += hi - lo
	tb.textLength -= hi - lo

	tb.recordChange(before, removed, nil)
	tb.Cursor.Offset = lo
	tb.seekToByteOffset(lo)
	tb.Dirty = true
}
