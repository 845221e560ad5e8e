// Package tui is the immediate-mode terminal UI engine of spec §4.F: a
// per-frame node tree built with Begin/End calls, laid out with a grid
// resolver, and rendered with a differential SGR-diffing serializer.
//
// Adapted from the teacher's tui package: screen.go's double-buffered Cell
// grid and differential renderUnlocked become this package's two-pass
// color-bitmap renderer (render.go); layout.go/layout_engine.go's
// measure-then-draw two-pass walk becomes the grid layout resolver
// (layout.go), generalized from a single Row/Col Fixed/Flex axis to
// per-column absolute/fractional grid tracks; term.go's raw-mode/alt-screen
// handling becomes terminal.go, extended with the palette probe and
// bracketed-paste/mouse modes spec §6 requires. Unlike the teacher's
// *LayoutNode tree (rebuilt as Go pointers every frame, leaked to the
// garbage collector each time), UiNode is addressed by stable numeric ID
// across frames via the node map. Nodes themselves are plain Go
// allocations held in two alternating per-generation pools (see UiContext).
package tui

import (
	"vted/internal/styledtext"
	"vted/internal/textbuf"
)

// ContentKind is the tag of the variant a UiNode holds, per spec §9's "use a
// tagged variant {Container, Text(chunks), TextArea(buffer-handle),
// ScrollArea(offset)} instead of a tagged union" design note.
type ContentKind int

const (
	ContentContainer ContentKind = iota
	ContentText
	ContentTextArea
	ContentScrollArea
)

// Rect is an integer terminal-cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// FloatSpec positions a node relative to its logical parent's outer rect
// instead of in normal grid flow: origin = parent.outer.TopLeft + Offset -
// Gravity*Size.
type FloatSpec struct {
	Active       bool
	OffsetX      int
	OffsetY      int
	GravityX     int // 0 or 1
	GravityY     int
}

// Color is a palette index (0-15) or, with Truecolor set, a direct 24-bit
// value.
type Color struct {
	Index     int // -1 = unset
	Truecolor bool
	R, G, B   uint8
}

var NoColor = Color{Index: -1}

// UiNode is one node of the per-frame immediate-mode tree.
type UiNode struct {
	ID uint64

	Parent, FirstChild, LastChild, NextSibling, PrevSibling *UiNode

	// Attributes
	Padding     int
	Border      bool
	GridColumns []int // positive = absolute cell width, negative = fractional share
	Background  Color
	Foreground  Color
	Float       FloatSpec

	// Content
	Kind      ContentKind
	Chunks    []styledtext.Chunk
	TextArea  *TextAreaState

	// Computed by layout
	Outer, Inner, OuterClipped, InnerClipped Rect
}

// TextAreaState binds a textarea node to a document and its reflow/scroll
// state, held by the caller across frames (buffer-handle per spec
// §9's variant-content design note: the TextBuffer outlives frames, the
// node does not).
type TextAreaState struct {
	Buffer      *textbuf.TextBuffer
	ScrollLine  int
	ScrollCol   int
	Focused     bool
	Overtype    bool
}

// AddChild appends child to the end of n's child list.
func (n *UiNode) AddChild(child *UiNode) {
	child.Parent = n
	child.PrevSibling = n.LastChild
	child.NextSibling = nil
	if n.LastChild != nil {
		n.LastChild.NextSibling = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
}

// Children returns n's children in order. Intended for layout/render
// walks, not hot per-frame iteration of large trees.
func (n *UiNode) Children() []*UiNode {
	var out []*UiNode
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}
