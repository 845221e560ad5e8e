package tui

import "vted/internal/uiinput"

// Input routing implements spec §4.F's single-consumer model: within one
// frame, the first widget that calls one of the Input* query methods below
// and gets a non-empty result "consumes" the frame's input — every later
// query that frame sees nothing, tracked by c.consumed. RESIZE inputs are
// never consumable (every interested node sees them) since they aren't a
// pointer/keyboard gesture aimed at one widget.

// InputResize returns the frame's resize event, if any. Not gated by
// input_consumed: every node that lays out against the terminal size needs
// to see it.
func (c *UiContext) InputResize() (w, h int, ok bool) {
	for _, in := range c.pendingInputs {
		if in.Kind == uiinput.Resize {
			return in.Width, in.Height, true
		}
	}
	return 0, 0, false
}

// InputMouse returns the frame's mouse event if n is the node the last
// mouse press landed on (hit-tested against the previous frame's node map,
// per spec §4.F) and nothing else has consumed input yet.
func (c *UiContext) InputMouse(n *UiNode) (uiinput.Input, bool) {
	if c.consumed {
		return uiinput.Input{}, false
	}
	for _, in := range c.pendingInputs {
		if in.Kind != uiinput.Mouse {
			continue
		}
		hit := c.hitTest(in.MousePos.Col, in.MousePos.Row)
		if hit != n.ID {
			continue
		}
		c.consumed = true
		return in, true
	}
	return uiinput.Input{}, false
}

// InputText returns the frame's pasted/typed text if n is focused and no
// earlier widget consumed input this frame.
func (c *UiContext) InputText(n *UiNode, focused bool) ([]byte, bool) {
	if c.consumed || !focused {
		return nil, false
	}
	for _, in := range c.pendingInputs {
		if in.Kind == uiinput.Text {
			c.consumed = true
			return in.Text, true
		}
	}
	return nil, false
}

// InputKeyboard returns the frame's key event if n is focused and no
// earlier widget consumed input this frame.
func (c *UiContext) InputKeyboard(n *UiNode, focused bool) (uiinput.Key, bool) {
	if c.consumed || !focused {
		return uiinput.Key{}, false
	}
	for _, in := range c.pendingInputs {
		if in.Kind == uiinput.Keyboard {
			c.consumed = true
			return in.Key, true
		}
	}
	return uiinput.Key{}, false
}

// ConsumeShortcut matches a global keyboard shortcut (e.g. a menu
// accelerator) regardless of focus, still subject to single-consumer
// semantics.
func (c *UiContext) ConsumeShortcut(key uiinput.Key) bool {
	if c.consumed {
		return false
	}
	for _, in := range c.pendingInputs {
		if in.Kind == uiinput.Keyboard && in.Key == key {
			c.consumed = true
			return true
		}
	}
	return false
}

// hitTest walks the previous frame's node map (the one Layout just
// rebuilt, since InputMouse runs during this frame's build but after
// BeginFrame, before this frame's own Layout call) and returns the node
// whose rectangle contains the point with the smallest area. ConsumesMouse
// is not consulted.
func (c *UiContext) hitTest(col, row int) uint64 {
	var best uint64
	bestArea := -1
	for id, snap := range c.nodeMap {
		r := snap.Outer
		if col < r.X || col >= r.X+r.W || row < r.Y || row >= r.Y+r.H {
			continue
		}
		area := r.W * r.H
		if bestArea == -1 || area < bestArea {
			bestArea = area
			best = id
		}
	}
	return best
}
