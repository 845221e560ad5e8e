package tui

import (
	"math"

	"vted/internal/styledtext"
)

// RenderFrame paints the resolved tree rooted at root into the Screen's
// back buffer: for each node, background fill, then border, then content;
// no scrollbar is drawn. A single recursive walk does all of this per node
// (rather than separate tree walks) since
// each pass only touches cells the node itself owns; grounded on the
// teacher's renderNode in tui/render.go, generalized from its text/markup
// node kinds to this package's Container/Text/TextArea/ScrollArea kinds
// and extended with the cursor-position bookkeeping renderNode never
// needed (the teacher never drew an editable, focus-tracking textarea).
func (c *UiContext) RenderFrame(root *UiNode) {
	c.screen.Frame(func(buf *Buffer) {
		var cursorX, cursorY int
		var cursorSet bool
		paintNode(buf, root, &cursorX, &cursorY, &cursorSet)
		if cursorSet {
			c.screen.CursorX, c.screen.CursorY = cursorX, cursorY
			c.screen.CursorVisible = true
		} else {
			c.screen.CursorVisible = false
		}
	})
}

func paintNode(buf *Buffer, n *UiNode, cursorX, cursorY *int, cursorSet *bool) {
	if n.Outer.W <= 0 || n.Outer.H <= 0 {
		return
	}

	paintBackground(buf, n)
	if n.Border {
		paintBorder(buf, n)
	}

	switch n.Kind {
	case ContentText:
		paintStyledText(buf, n.Inner, n.Chunks, n.Foreground, n.Background)
	case ContentTextArea:
		paintTextArea(buf, n, cursorX, cursorY, cursorSet)
	case ContentScrollArea:
		// A ScrollArea's own content is whatever children it has, painted
		// where layout placed them; the scroll offset is not applied by
		// layout or here, so nothing extra is painted.
	}

	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		paintNode(buf, ch, cursorX, cursorY, cursorSet)
	}
}

func paintBackground(buf *Buffer, n *UiNode) {
	if n.Background.Index < 0 && !n.Background.Truecolor {
		return
	}
	for y := n.Outer.Y; y < n.Outer.Y+n.Outer.H; y++ {
		for x := n.Outer.X; x < n.Outer.X+n.Outer.W; x++ {
			cell := buf.Get(x, y)
			cell.Style.Bg = blend(cell.Style.Bg, n.Background)
			buf.Set(x, y, cell.Ch, cell.Style)
		}
	}
}

// blend mixes src and dst with equal weight in linear light (sRGB decoded,
// averaged, re-encoded) when both are truecolor; there is no alpha value.
// An indexed src, or a non-truecolor dst, is simply replaced by src.
func blend(dst, src Color) Color {
	if src.Index < 0 && !src.Truecolor {
		return dst
	}
	if !src.Truecolor {
		return src
	}
	if !dst.Truecolor {
		return src
	}
	return Color{
		Truecolor: true,
		R:         blendChannel(dst.R, src.R),
		G:         blendChannel(dst.G, src.G),
		B:         blendChannel(dst.B, src.B),
	}
}

var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		c := float64(i) / 255
		if c <= 0.04045 {
			srgbToLinear[i] = c / 12.92
		} else {
			srgbToLinear[i] = math.Pow((c+0.055)/1.055, 2.4)
		}
	}
}

func linearToSRGB(c float64) uint8 {
	if c <= 0.0031308 {
		c = c * 12.92
	} else {
		c = 1.055*math.Pow(c, 1/2.4) - 0.055
	}
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return uint8(c*255 + 0.5)
}

func blendChannel(dst, src uint8) uint8 {
	lin := (srgbToLinear[dst] + srgbToLinear[src]) / 2
	return linearToSRGB(lin)
}

func paintBorder(buf *Buffer, n *UiNode) {
	r := n.Outer
	st := CellStyle{Fg: n.Foreground}
	for x := r.X; x < r.X+r.W; x++ {
		buf.Set(x, r.Y, '─', st)
		buf.Set(x, r.Y+r.H-1, '─', st)
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		buf.Set(r.X, y, '│', st)
		buf.Set(r.X+r.W-1, y, '│', st)
	}
	buf.Set(r.X, r.Y, '┌', st)
	buf.Set(r.X+r.W-1, r.Y, '┐', st)
	buf.Set(r.X, r.Y+r.H-1, '└', st)
	buf.Set(r.X+r.W-1, r.Y+r.H-1, '┘', st)
}

func paintStyledText(buf *Buffer, rect Rect, chunks []styledtext.Chunk, fg, bg Color) {
	x, y := rect.X, rect.Y
	for _, c := range chunks {
		st := chunkStyle(c, fg, bg)
		for _, r := range c.Text {
			if r == '\n' {
				y++
				x = rect.X
				continue
			}
			if y >= rect.Y+rect.H {
				return
			}
			buf.Set(x, y, r, st)
			x++
		}
	}
}

func chunkStyle(c styledtext.Chunk, fg, bg Color) CellStyle {
	st := CellStyle{Fg: fg, Bg: bg, Bold: c.Style.Bold, Underline: c.Style.Underline, Reverse: c.Style.Reverse}
	if c.Style.FG >= 0 {
		st.Fg = Color{Index: c.Style.FG}
	}
	if c.Style.BG >= 0 {
		st.Bg = Color{Index: c.Style.BG}
	}
	return st
}

// paintTextArea renders the visible lines of a TextAreaState's buffer
// starting at ScrollLine/ScrollCol and records the focused cursor's screen
// position into cursorX/cursorY. No selection band is painted.
func paintTextArea(buf *Buffer, n *UiNode, cursorX, cursorY *int, cursorSet *bool) {
	ta := n.TextArea
	if ta == nil || ta.Buffer == nil {
		return
	}
	rect := n.Inner
	text := string(ta.Buffer.Text())
	lineNo := 0
	col := 0
	x, y := rect.X-ta.ScrollCol, rect.Y-ta.ScrollLine
	startLine := ta.ScrollLine

	cur := ta.Buffer.Cursor.Logical

	emit := func(r rune) {
		if lineNo >= startLine && y >= rect.Y && y < rect.Y+rect.H && x >= rect.X && x < rect.X+rect.W {
			buf.Set(x, y, r, CellStyle{Fg: n.Foreground, Bg: n.Background})
		}
	}

	for _, r := range text {
		if lineNo == cur.Line && col == cur.Col && ta.Focused {
			if y >= rect.Y && y < rect.Y+rect.H && x >= rect.X && x < rect.X+rect.W {
				*cursorX, *cursorY = x, y
				*cursorSet = true
			}
		}
		if r == '\n' {
			lineNo++
			col = 0
			y++
			x = rect.X - ta.ScrollCol
			continue
		}
		emit(r)
		x++
		col++
	}
	if lineNo == cur.Line && col == cur.Col && ta.Focused {
		if y >= rect.Y && y < rect.Y+rect.H && x >= rect.X && x < rect.X+rect.W {
			*cursorX, *cursorY = x, y
			*cursorSet = true
		}
	}
}
