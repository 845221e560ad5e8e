package tui

import (
	"vted/internal/styledtext"
	"vted/internal/uctext"
	"vted/internal/uiinput"
)

// Button is a bordered, clickable label. It reports whether it was clicked
// this frame. Grounded on the teacher's Box+Text composition idiom in
// tui/layout_api.go, extended with input consumption.
func Button(c *UiContext, parent *UiNode, label string) (n *UiNode, clicked bool) {
	n = c.ContainerBegin(parent, "button:"+label)
	defer c.ContainerEnd()
	AttrBorder(n, true)
	AttrPadding(n, 0)

	text := c.ContainerBegin(n, "label")
	text.Kind = ContentText
	text.Chunks = styledtext.Parse(label)
	c.ContainerEnd()

	// A press on the label hit-tests to the label (the innermost node), so
	// the label and the button's own border both count as the button.
	in, ok := c.InputMouse(text)
	if !ok {
		in, ok = c.InputMouse(n)
	}
	if ok && in.MouseAction == uiinput.MouseLeft {
		clicked = true
	}
	return n, clicked
}

// StyledLabel is a non-interactive run of inline-styled text, e.g. a
// status line built from internal/signals.StatusLine.Text().
func StyledLabel(c *UiContext, parent *UiNode, label string, id string) *UiNode {
	n := c.ContainerBegin(parent, "label:"+id)
	defer c.ContainerEnd()
	n.Kind = ContentText
	n.Chunks = styledtext.Parse(label)
	return n
}

// ScrollAreaState is the persisted scroll offset for a ScrollArea widget,
// kept by the caller across frames (it cannot live on the per-frame
// UiNode, which is discarded every BeginFrame).
type ScrollAreaState struct {
	OffsetY int
}

// ScrollArea is a container that accepts mouse wheel input to adjust
// st.OffsetY. It does not clip its children, and st.OffsetY is not applied
// to their layout. Children must be added to the
// returned node before calling c.ContainerEnd() (the caller owns that
// call, matching the Begin/End symmetry of ContainerBegin directly).
func ScrollArea(c *UiContext, parent *UiNode, id string, st *ScrollAreaState) *UiNode {
	n := c.ContainerBegin(parent, "scroll:"+id)
	n.Kind = ContentScrollArea

	if in, ok := c.InputMouse(n); ok {
		switch in.MouseAction {
		case uiinput.MouseScrollUp:
			st.OffsetY--
		case uiinput.MouseScrollDown:
			st.OffsetY++
		}
		if st.OffsetY < 0 {
			st.OffsetY = 0
		}
	}
	return n
}

// TextArea binds an editable textbuf.TextBuffer to a node, routes
// keyboard/text input into the buffer when focused, and scrolls to keep
// the cursor visible. Grounded on spec §4.F's TextArea variant-content
// design note; the actual editing semantics (Write/Delete/MoveDelta) are
// internal/textbuf's, not re-implemented here.
func TextArea(c *UiContext, parent *UiNode, id string, state *TextAreaState) *UiNode {
	n := c.ContainerBegin(parent, "textarea:"+id)
	defer c.ContainerEnd()
	n.Kind = ContentTextArea
	n.TextArea = state

	if txt, ok := c.InputText(n, state.Focused); ok {
		state.Buffer.Write(txt, state.Overtype)
	}
	if key, ok := c.InputKeyboard(n, state.Focused); ok {
		applyTextAreaKey(state, key)
	}

	scrollTextAreaToCursor(n)
	return n
}

func applyTextAreaKey(state *TextAreaState, key uiinput.Key) {
	tb := state.Buffer
	switch key.Named {
	case uiinput.Left:
		tb.MoveDelta(-1)
	case uiinput.Right:
		tb.MoveDelta(1)
	case uiinput.Up:
		if line := tb.Cursor.Logical.Line - 1; line >= 0 {
			tb.MoveToLogical(uctext.Position{Line: line, Col: tb.Cursor.Logical.Col})
		}
	case uiinput.Down:
		tb.MoveToLogical(uctext.Position{Line: tb.Cursor.Logical.Line + 1, Col: tb.Cursor.Logical.Col})
	case uiinput.Back:
		tb.Delete(-1)
	case uiinput.Delete:
		tb.Delete(1)
	case uiinput.Enter:
		tb.Write([]byte("\n"), state.Overtype)
	case uiinput.Tab:
		tb.Write([]byte("\t"), state.Overtype)
	case uiinput.Insert:
		state.Overtype = !state.Overtype
	default:
		if key.Named == uiinput.NamedNone && key.Rune != 0 {
			tb.Write([]byte(string(key.Rune)), state.Overtype)
		}
	}
}

func scrollTextAreaToCursor(n *UiNode) {
	ta := n.TextArea
	if ta == nil || ta.Buffer == nil {
		return
	}
	h := n.Inner.H
	if h <= 0 {
		h = 1
	}
	line := ta.Buffer.Cursor.Logical.Line
	if line < ta.ScrollLine {
		ta.ScrollLine = line
	}
	if line >= ta.ScrollLine+h {
		ta.ScrollLine = line - h + 1
	}
}

// MenuBarState tracks which top-level menu, if any, is open.
type MenuBarState struct {
	OpenIndex int // -1 = none open
}

// MenuBarItem is one top-level menu entry and its flyout items.
type MenuBarItem struct {
	Label string
	Items []string
}

// MenuBar renders a horizontal strip of menu labels, opening a floated
// flyout container under whichever one is clicked. Returns the clicked
// flyout item's text, or "" if none was clicked this frame. Grounded on
// spec §4.F's floater positioning rule (origin = parent.outer.topleft +
// offset - gravity*size): each flyout floats off its owning label with
// GravityY 0 (top-aligned under the label) and GravityX 0.
func MenuBar(c *UiContext, parent *UiNode, st *MenuBarState, items []MenuBarItem) string {
	bar := c.ContainerBegin(parent, "menubar")
	defer c.ContainerEnd()
	cols := make([]int, len(items))
	for i := range cols {
		cols[i] = len(items[i].Label) + 2
	}
	AttrGridColumns(bar, cols)

	selected := ""
	for i, item := range items {
		label := c.ContainerBegin(bar, "menu:"+item.Label)
		label.Kind = ContentText
		label.Chunks = styledtext.Parse(item.Label)

		if in, ok := c.InputMouse(label); ok && in.MouseAction == uiinput.MouseLeft {
			if st.OpenIndex == i {
				st.OpenIndex = -1
			} else {
				st.OpenIndex = i
			}
		}

		if st.OpenIndex == i {
			flyout := c.ContainerBegin(label, "flyout")
			AttrBorder(flyout, true)
			// OffsetY of 1: the menu bar is a single text row, so the
			// flyout always opens directly beneath it. label.Outer isn't
			// resolved yet at build time (Layout runs after the whole
			// tree is built), so this can't instead read the label's
			// measured height.
			AttrFloat(flyout, FloatSpec{OffsetY: 1, GravityX: 0, GravityY: 0})
			for _, it := range item.Items {
				entry := c.ContainerBegin(flyout, "item:"+it)
				entry.Kind = ContentText
				entry.Chunks = styledtext.Parse(it)
				if in, ok := c.InputMouse(entry); ok && in.MouseAction == uiinput.MouseLeft {
					selected = it
					st.OpenIndex = -1
				}
				c.ContainerEnd()
			}
			c.ContainerEnd()
		}

		c.ContainerEnd()
	}
	return selected
}
