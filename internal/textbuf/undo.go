package textbuf

// recordChange appends a new change to the undo log, linking it after the
// current tail and truncating whatever forward (redo) branch existed
// there: a fresh edit after an undo discards the undone future, matching
// every editor's undo model.
func (tb *TextBuffer) recordChange(before Cursor, removed, inserted []byte) {
	if tb.tail < 0 {
		// Every logged change is undone; the whole log is the redo branch.
		tb.log.Reset()
	}
	idx := tb.log.Len()
	tb.log.Append(Change{prev: tb.tail, next: -1, Before: before, Removed: removed, Inserted: inserted})
	if tb.tail >= 0 {
		tb.log.Slice()[tb.tail].next = idx
	}
	tb.tail = idx
}

// Undo applies the tail change in reverse (swapping removed and inserted,
// then restoring the pre-change cursor) and moves the tail to its
// predecessor. Returns false if there is nothing to undo.
func (tb *TextBuffer) Undo() bool {
	if tb.tail < 0 {
		return false
	}
	c := tb.log.Slice()[tb.tail]
	tb.applyChange(c.Before, c.Inserted, c.Removed)
	tb.tail = c.prev
	tb.Dirty = true
	return true
}

// Redo follows tail.next (or the log's first entry if tail is -1) and
// reapplies it forward. Returns false if there is nothing to redo.
func (tb *TextBuffer) Redo() bool {
	var idx int
	if tb.tail < 0 {
		if tb.log.Len() == 0 {
			return false
		}
		idx = 0
	} else {
		idx = tb.log.Slice()[tb.tail].next
		if idx < 0 {
			return false
		}
	}
	c := tb.log.Slice()[idx]
	tb.applyChange(c.Before, c.Removed, c.Inserted)
	tb.tail = idx
	tb.Dirty = true
	return true
}

// applyChange is the shared primitive for undo and redo: seek to the
// change's recorded cursor position, remove the currently-present bytes,
// insert the replacement bytes, and recompute the cursor across the
// affected region.
func (tb *TextBuffer) applyChange(at Cursor, currentlyPresent, replacement []byte) {
	tb.Cursor = at
	begin := at.Offset
	end := begin + len(currentlyPresent)

	tb.ensureGap(begin, len(replacement)-len(currentlyPresent))
	tb.gapLen += end - begin
	tb.textLength -= end - begin

	tb.insertAtGap(replacement)
	tb.seekToByteOffset(begin + len(replacement))
}
