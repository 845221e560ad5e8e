package tui

import (
	"github.com/clipperhouse/displaywidth"

	"vted/internal/styledtext"
)

// Layout resolves the outer/inner rectangles of every node in the tree
// rooted at root into availW x availH cells, then rebuilds c.nodeMap from
// the resolved snapshots. Adapted from the teacher's layout_engine.go
// two-pass Measure-then-Draw walk: Measure's bottom-up intrinsic sizing
// becomes measureIntrinsic below, and Draw's top-down rectangle
// distribution becomes resolveRect; the single Row/Col Fixed/Flex/Auto axis
// is generalized to the spec's per-column absolute/fractional grid track
// list, and floaters (absent from the teacher entirely) are positioned in
// a dedicated third pass after their logical parent's rect is known.
func (c *UiContext) Layout(root *UiNode, availW, availH int) {
	sizes := map[*UiNode]intrinsics{}
	measureIntrinsic(root, sizes)
	resolveRect(root, Rect{X: 0, Y: 0, W: availW, H: availH}, sizes)
	resolveFloaters(root, sizes)

	newMap := make(map[uint64]NodeSnapshot, len(c.nodeMap))
	collectSnapshots(root, newMap)
	c.nodeMap = newMap
}

type intrinsics struct {
	w, h int
}

func measureIntrinsic(n *UiNode, sizes map[*UiNode]intrinsics) intrinsics {
	var childW, childH int
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		ci := measureIntrinsic(ch, sizes)
		if len(n.GridColumns) > 0 {
			childW += ci.w
			if ci.h > childH {
				childH = ci.h
			}
		} else {
			if ci.w > childW {
				childW = ci.w
			}
			childH += ci.h
		}
	}

	switch n.Kind {
	case ContentText:
		w, h := measureStyledText(n.Chunks)
		if w > childW {
			childW = w
		}
		if h > childH {
			childH = h
		}
	case ContentTextArea, ContentScrollArea:
		if childW < 4 {
			childW = 4
		}
		if childH < 1 {
			childH = 1
		}
	}

	pad := n.Padding
	if n.Border {
		pad++
	}
	iw := childW + 2*pad
	ih := childH + 2*pad
	sizes[n] = intrinsics{w: iw, h: ih}
	return intrinsics{w: iw, h: ih}
}

// measureStyledText returns the column width of the widest line and the
// number of lines in a flattened chunk run, using displaywidth for
// wide-glyph-aware measurement (spec §4.F's wide-glyph-aware rendering
// requirement applies to measurement too, not just painting).
func measureStyledText(chunks []styledtext.Chunk) (w, h int) {
	h = 1
	lineW := 0
	for _, c := range chunks {
		for _, r := range c.Text {
			if r == '\n' {
				if lineW > w {
					w = lineW
				}
				lineW = 0
				h++
				continue
			}
			lineW += displaywidth.String(string(r))
		}
	}
	if lineW > w {
		w = lineW
	}
	return w, h
}

func resolveRect(n *UiNode, outer Rect, sizes map[*UiNode]intrinsics) {
	n.Outer = outer
	n.OuterClipped = outer
	pad := n.Padding
	if n.Border {
		pad++
	}
	inner := Rect{
		X: outer.X + pad,
		Y: outer.Y + pad,
		W: max(outer.W-2*pad, 0),
		H: max(outer.H-2*pad, 0),
	}
	n.Inner = inner
	n.InnerClipped = inner

	children := n.Children()
	if len(children) == 0 {
		return
	}

	if len(n.GridColumns) > 0 {
		cols := resolveTracks(n.GridColumns, inner.W)
		x := inner.X
		for i, ch := range children {
			w := 0
			if i < len(cols) {
				w = cols[i]
			}
			resolveRect(ch, Rect{X: x, Y: inner.Y, W: w, H: inner.H}, sizes)
			x += w
		}
		return
	}

	y := inner.Y
	remaining := inner.H
	for _, ch := range children {
		h := sizes[ch].h
		if h > remaining {
			h = remaining
		}
		if h < 0 {
			h = 0
		}
		resolveRect(ch, Rect{X: inner.X, Y: y, W: inner.W, H: h}, sizes)
		y += h
		remaining -= h
	}
}

// resolveTracks turns a grid-column spec into concrete widths: positive
// entries pass through as absolute cell counts, negative entries share the
// width left over after absolute columns are subtracted in proportion to
// their magnitude (spec §4.F grid layout: "negative = fractional-of-remainder").
func resolveTracks(spec []int, total int) []int {
	out := make([]int, len(spec))
	used := 0
	fracSum := 0
	for _, s := range spec {
		if s >= 0 {
			used += s
		} else {
			fracSum += -s
		}
	}
	remaining := total - used
	if remaining < 0 {
		remaining = 0
	}
	for i, s := range spec {
		if s >= 0 {
			out[i] = s
			continue
		}
		if fracSum == 0 {
			out[i] = 0
			continue
		}
		out[i] = remaining * (-s) / fracSum
	}
	return out
}

// resolveFloaters walks the tree after normal-flow rects are resolved and
// repositions every float-attributed node relative to its parent's outer
// rect: origin = parent.outer.topleft + offset - gravity*size (spec §4.F).
func resolveFloaters(n *UiNode, sizes map[*UiNode]intrinsics) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Float.Active {
			size := sizes[ch]
			x := n.Outer.X + ch.Float.OffsetX - ch.Float.GravityX*size.w
			y := n.Outer.Y + ch.Float.OffsetY - ch.Float.GravityY*size.h
			resolveRect(ch, Rect{X: x, Y: y, W: size.w, H: size.h}, sizes)
		}
		resolveFloaters(ch, sizes)
	}
}

func collectSnapshots(n *UiNode, out map[uint64]NodeSnapshot) {
	out[n.ID] = NodeSnapshot{
		ID:            n.ID,
		Outer:         n.Outer,
		Inner:         n.Inner,
		Kind:          n.Kind,
		Float:         n.Float,
		ConsumesMouse: n.Kind == ContentTextArea || n.Kind == ContentScrollArea,
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		collectSnapshots(ch, out)
	}
}
