package tui

import (
	"testing"

	"vted/internal/textbuf"
	"vted/internal/uiinput"
)

func TestButtonClickedOnMousePressWithinBounds(t *testing.T) {
	screen := NewScreen(20, 5)
	c := NewContext(screen)

	press := uiinput.Input{Kind: uiinput.Mouse, MouseAction: uiinput.MouseLeft, MousePos: uiinput.Position{Col: 1, Row: 1}}
	root := c.BeginFrame(20, 5, []uiinput.Input{press})

	_, clicked := Button(c, root, "OK")
	c.Layout(root, 20, 5)

	// The click is hit-tested against last frame's node map, which is
	// empty on the very first frame, so nothing should be clicked yet.
	if clicked {
		t.Fatalf("expected no click on first frame (no prior node map to hit-test against)")
	}

	// Second frame: now the node map from frame 1 is populated, so a
	// press inside the button's rect should register.
	root2 := c.BeginFrame(20, 5, []uiinput.Input{press})
	_, clicked2 := Button(c, root2, "OK")
	c.Layout(root2, 20, 5)
	if !clicked2 {
		t.Fatalf("expected a press inside the button to register on the second frame")
	}
}

func TestTextAreaRoutesKeyboardWhenFocused(t *testing.T) {
	buf, _ := textbuf.Load([]byte("hi"), textbuf.NoWrap)
	screen := NewScreen(20, 5)
	c := NewContext(screen)

	state := &TextAreaState{Buffer: buf, Focused: true}

	key := uiinput.Input{Kind: uiinput.Keyboard, Key: uiinput.Key{Rune: 'x'}}
	root := c.BeginFrame(20, 5, []uiinput.Input{key})
	TextArea(c, root, "doc", state)
	c.Layout(root, 20, 5)

	if string(buf.Text()) != "xhi" {
		t.Fatalf("expected keyboard input routed into focused textarea, got %q", string(buf.Text()))
	}
}

func TestTextAreaIgnoresInputWhenUnfocused(t *testing.T) {
	buf, _ := textbuf.Load([]byte("hi"), textbuf.NoWrap)
	screen := NewScreen(20, 5)
	c := NewContext(screen)

	state := &TextAreaState{Buffer: buf, Focused: false}

	key := uiinput.Input{Kind: uiinput.Keyboard, Key: uiinput.Key{Rune: 'x'}}
	root := c.BeginFrame(20, 5, []uiinput.Input{key})
	TextArea(c, root, "doc", state)
	c.Layout(root, 20, 5)

	if string(buf.Text()) != "hi" {
		t.Fatalf("expected unfocused textarea to ignore input, got %q", string(buf.Text()))
	}
}

func TestMenuBarClosedWithoutInput(t *testing.T) {
	screen := NewScreen(40, 10)
	c := NewContext(screen)
	st := &MenuBarState{OpenIndex: -1}
	items := []MenuBarItem{{Label: "File", Items: []string{"Save", "Quit"}}}

	root := c.BeginFrame(40, 10, nil)
	selected := MenuBar(c, root, st, items)
	c.Layout(root, 40, 10)

	if selected != "" {
		t.Fatalf("expected no selection without input, got %q", selected)
	}
	if st.OpenIndex != -1 {
		t.Fatalf("expected menu closed without input, got openIndex=%d", st.OpenIndex)
	}
}
