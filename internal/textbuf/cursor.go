package textbuf

import "vted/internal/uctext"

// measureForward is measure_forward generalized across the gap: it
// re-issues readForward at the advanced offset each time a run ends
// without satisfying the stop condition, the idiom spec §4.E names
// explicitly ("callers iterate by reissuing read_forward at the advanced
// offset").
func (tb *TextBuffer) measureForward(offset int, start uctext.Position, columnStop, graphemeStop, wrapColumn int) (uctext.ForwardResult, int) {
	pos := start
	off := offset
	total := 0
	wrapOff := -1
	crossed := false

	for {
		run := tb.readForward(off)
		if len(run) == 0 {
			break
		}
		gs := graphemeStop
		if graphemeStop != uctext.NoStop {
			gs = graphemeStop - total
			if gs <= 0 {
				break
			}
		}
		res, wo := uctext.MeasureForward(run, 0, pos, columnStop, gs, wrapColumn)
		if wo >= 0 {
			wrapOff = off + wo
		}
		consumed := res.NewOffset
		pos = res.NewPos
		total += res.Graphemes
		off += consumed
		crossed = crossed || res.CrossedNewline

		if consumed < len(run) {
			break // a stop condition was satisfied mid-run
		}
		if columnStop != uctext.NoStop && pos.Col >= columnStop {
			break
		}
		if graphemeStop != uctext.NoStop && total >= graphemeStop {
			break
		}
	}

	return uctext.ForwardResult{NewOffset: off, NewPos: pos, Graphemes: total, CrossedNewline: crossed}, wrapOff
}

// measureBackward is the backward counterpart.
func (tb *TextBuffer) measureBackward(offset int, start uctext.Position, columnStop, graphemeStop int) uctext.ForwardResult {
	pos := start
	off := offset
	total := 0
	crossed := false

	for {
		run := tb.readBackward(off)
		if len(run) == 0 {
			break
		}
		gs := graphemeStop
		if graphemeStop != uctext.NoStop {
			gs = graphemeStop - total
			if gs <= 0 {
				break
			}
		}
		res := uctext.MeasureBackward(run, len(run), pos, columnStop, gs)
		consumed := len(run) - res.NewOffset
		pos = res.NewPos
		total += res.Graphemes
		off -= consumed
		crossed = crossed || res.CrossedNewline

		if res.NewOffset > 0 {
			break
		}
		if columnStop != uctext.NoStop && pos.Col <= -columnStop {
			break
		}
		if graphemeStop != uctext.NoStop && total >= graphemeStop {
			break
		}
	}

	return uctext.ForwardResult{NewOffset: off, NewPos: pos, Graphemes: total, CrossedNewline: crossed}
}

// lineStartOffset returns the logical offset of the first byte of line
// target, seeking forward or backward from the cursor's current line.
func (tb *TextBuffer) lineStartOffset(target int) int {
	cur := tb.Cursor.Logical.Line
	off := tb.Cursor.Offset
	// Walk to the start of the current line first so NewlinesForward and
	// NewlinesBackward always begin from a known line-start offset.
	off = tb.currentLineStart()

	if target > cur {
		off = tb.newlinesForward(off, &cur, target)
	} else if target < cur {
		off = tb.newlinesBackward(off, &cur, target)
	}
	return off
}

// currentLineStart scans backward from the cursor to the start of its
// current line.
func (tb *TextBuffer) currentLineStart() int {
	off := tb.Cursor.Offset
	for {
		run := tb.readBackward(off)
		if len(run) == 0 {
			return 0
		}
		for i := len(run) - 1; i >= 0; i-- {
			if run[i] == '\n' {
				return off - (len(run) - i - 1)
			}
		}
		off -= len(run)
	}
}

func (tb *TextBuffer) newlinesForward(offset int, line *int, lineStop int) int {
	for *line < lineStop {
		run := tb.readForward(offset)
		if len(run) == 0 {
			return offset
		}
		idx := -1
		for i, c := range run {
			if c == '\n' {
				idx = i
				break
			}
		}
		if idx < 0 {
			offset += len(run)
			continue
		}
		offset += idx + 1
		*line++
	}
	return offset
}

func (tb *TextBuffer) newlinesBackward(offset int, line *int, lineStop int) int {
	moved := false
	for *line > lineStop && offset > 0 {
		run := tb.readBackward(offset)
		if len(run) == 0 {
			return 0
		}
		idx := -1
		for i := len(run) - 1; i >= 0; i-- {
			if run[i] == '\n' {
				idx = i
				break
			}
		}
		if idx < 0 {
			offset -= len(run)
			continue
		}
		offset -= len(run) - idx
		*line--
		moved = true
	}
	// offset now sits on the newline that ends the target line; step back
	// to that line's first byte.
	for moved && offset > 0 {
		run := tb.readBackward(offset)
		for i := len(run) - 1; i >= 0; i-- {
			if run[i] == '\n' {
				return offset - (len(run) - i - 1)
			}
		}
		offset -= len(run)
	}
	return offset
}

// MoveToLogical seeks the cursor to line pos.Line, then to grapheme
// pos.Col within that line.
func (tb *TextBuffer) MoveToLogical(pos uctext.Position) {
	lineStart := tb.lineStartOffset(pos.Line)

	wrap := NoWrap
	if tb.WordWrapColumns >= 0 {
		wrap = tb.WordWrapColumns
	}
	res, _ := tb.measureForward(lineStart, uctext.Position{Line: pos.Line}, uctext.NoStop, pos.Col, wrap)

	tb.Cursor.Offset = res.NewOffset
	tb.Cursor.Logical = uctext.Position{Line: pos.Line, Col: res.Graphemes}
	tb.Cursor.Visual = tb.visualForLogical(lineStart, pos.Line, res.Graphemes)
}

// visualForLogical recomputes the visual row/column by re-walking from
// lineStart with soft-wrap bookkeeping, used whenever the logical target
// is authoritative (MoveToLogical, line seeks).
func (tb *TextBuffer) visualForLogical(lineStart, line, graphemeCol int) uctext.Position {
	if tb.WordWrapColumns < 0 {
		return uctext.Position{Line: line, Col: graphemeCol}
	}
	res, _ := tb.measureForward(lineStart, uctext.Position{}, uctext.NoStop, graphemeCol, tb.WordWrapColumns)
	return res.NewPos
}

// MoveToVisual seeks the cursor to visual row/column pos; crossing a
// soft-wrap boundary increments visual.Line without incrementing
// logical.Line.
func (tb *TextBuffer) MoveToVisual(pos uctext.Position) {
	// Soft-wrap aware seeking requires counting wrapped rows, which this
	// buffer does not cache; approximate by treating visual rows as
	// logical lines when word wrap is disabled, and otherwise re-deriving
	// from the start of text (the word-wrap-only slow path spec §4.E
	// tolerates reflow being the expensive operation).
	if tb.WordWrapColumns < 0 {
		tb.MoveToLogical(uctext.Position{Line: pos.Line, Col: pos.Col})
		return
	}

	off := 0
	logicalLine := 0
	visLine := 0
	visCol := 0
	for visLine < pos.Line {
		run := tb.readForward(off)
		if len(run) == 0 {
			break
		}
		res, wrapOff := uctext.MeasureForward(run, 0, uctext.Position{Col: visCol}, tb.WordWrapColumns, 1, tb.WordWrapColumns)
		_ = wrapOff
		if res.Graphemes == 0 {
			break
		}
		off += res.NewOffset
		if res.CrossedNewline {
			logicalLine++
			visLine++
			visCol = 0
		} else if res.NewPos.Col == 0 {
			visLine++
			visCol = 0
		} else {
			visCol = res.NewPos.Col
		}
	}

	res, _ := tb.measureForward(off, uctext.Position{Line: logicalLine, Col: visCol}, pos.Col, uctext.NoStop, tb.WordWrapColumns)
	tb.Cursor.Offset = res.NewOffset
	tb.Cursor.Logical = uctext.Position{Line: res.NewPos.Line, Col: res.Graphemes}
	tb.Cursor.Visual = uctext.Position{Line: pos.Line, Col: res.NewPos.Col}
}

// MoveDelta steps the cursor by one grapheme (delta=+1 or -1); if the step
// would not advance (end-of-line), it wraps to the start of the next line
// or the end of the previous.
func (tb *TextBuffer) MoveDelta(delta int) {
	if delta >= 0 {
		for d := 0; d < delta; d++ {
			tb.stepForward()
		}
	} else {
		for d := 0; d < -delta; d++ {
			tb.stepBackward()
		}
	}
}

func (tb *TextBuffer) stepForward() {
	if tb.Cursor.Offset >= tb.textLength {
		return
	}
	res, _ := tb.measureForward(tb.Cursor.Offset, tb.Cursor.Logical, uctext.NoStop, 1, NoWrap)
	if res.CrossedNewline {
		tb.Cursor.Logical = uctext.Position{Line: tb.Cursor.Logical.Line + 1, Col: 0}
	} else {
		tb.Cursor.Logical.Col++
	}
	tb.Cursor.Offset = res.NewOffset
	tb.syncVisualAfterStep()
}

func (tb *TextBuffer) stepBackward() {
	if tb.Cursor.Offset <= 0 {
		return
	}
	res := tb.measureBackward(tb.Cursor.Offset, uctext.Position{}, uctext.NoStop, 1)
	tb.Cursor.Offset = res.NewOffset
	if res.CrossedNewline {
		tb.Cursor.Logical.Line--
		lineStart := tb.currentLineStart()
		// Recount graphemes on the new line up to the cursor to find its
		// column.
		measured, _ := tb.measureForward(lineStart, uctext.Position{}, tb.Cursor.Offset-lineStart, uctext.NoStop, NoWrap)
		tb.Cursor.Logical.Col = measured.Graphemes
	} else {
		tb.Cursor.Logical.Col--
		if tb.Cursor.Logical.Col < 0 {
			tb.Cursor.Logical.Col = 0
		}
	}
	tb.syncVisualAfterStep()
}

func (tb *TextBuffer) syncVisualAfterStep() {
	lineStart := tb.currentLineStart()
	tb.Cursor.Visual = tb.visualForLogical(lineStart, tb.Cursor.Logical.Line, tb.Cursor.Logical.Col)
}

// Reflow recomputes visual_pos to match width: saves the current logical
// position, resets word-wrap width, and re-seeks by logical position. This
// is the only operation that changes the interpretation of visual
// coordinates.
func (tb *TextBuffer) Reflow(width int) {
	saved := tb.Cursor.Logical
	tb.WordWrapColumns = width
	tb.MoveToLogical(saved)
}
