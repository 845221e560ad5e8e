package tui

import (
	"vted/internal/arena"
	"vted/internal/uiinput"
)

// idHasher builds a stable per-frame node ID from the call-stack shape that
// produced it: a parent hash folded with a per-parent child counter, so the
// same Begin/End call sequence on every frame addresses the same ID. The
// label passed to ContainerBegin is folded into the hash as well. Grounded on the common
// immediate-mode-GUI idiom of hashing ImGui-style "ID stack" frames; the
// teacher has no equivalent (its LayoutNode tree is addressed by live Go
// pointer identity alone, which cannot survive across frames).
type idHasher struct {
	stack []uint64
	seen  map[uint64]int
}

func newIDHasher() *idHasher {
	return &idHasher{stack: []uint64{1469598103934665603}, seen: map[uint64]int{}}
}

func (h *idHasher) fnv(parent uint64, s string) uint64 {
	const prime = 1099511628211
	hash := parent
	for i := 0; i < len(s); i++ {
		hash ^= uint64(s[i])
		hash *= prime
	}
	return hash
}

func (h *idHasher) push(label string) uint64 {
	parent := h.stack[len(h.stack)-1]
	n := h.seen[parent]
	h.seen[parent] = n + 1
	id := h.fnv(parent, label)
	id = h.fnv(id, string(rune('0'+n%10))+label)
	id ^= uint64(n) * 2654435761
	h.stack = append(h.stack, id)
	return id
}

func (h *idHasher) pop() {
	h.stack = h.stack[:len(h.stack)-1]
}

// NodeSnapshot is the read-only, per-ID record retained in UiContext's node
// map across frame rotation, per spec §4.F: "the node map survives frame
// rotation holding read-only snapshot values, not live pointers into either
// arena" — so that input routing can hit-test against last frame's layout
// while this frame's tree is still being built.
type NodeSnapshot struct {
	ID              uint64
	Outer, Inner    Rect
	Kind            ContentKind
	Float           FloatSpec
	ConsumesMouse   bool
}

// UiContext is the per-window immediate-mode build/layout/render/input
// state. Two generation-indexed node pools stand in for the spec's two
// rotating bump arenas (see DESIGN.md OQ-4): because a real arena-of-structs
// would require unsafe pointer reinterpretation that safe Go's GrowSlice
// cannot offer once a node holds pointers to sibling nodes, UiContext
// instead alternates which generation's plain Go-allocated node slice is
// "live" for building, while the previous generation's NodeSnapshot map
// entries remain valid for one extra frame of hit-testing. renderArena is
// a real arena.Arena allocated for byte-oriented scratch work; the current
// layout and render code does not allocate from it.
type UiContext struct {
	gen      int
	pools    [2][]*UiNode
	roots    [2]*UiNode
	hasher   *idHasher

	nodeMap  map[uint64]NodeSnapshot

	renderArena *arena.Arena

	width, height int

	// Input routing state for the frame currently being built.
	pendingInputs []uiinput.Input
	consumed      bool
	mouseHit      uint64 // ID of the node the last mouse-down landed on, per previous frame's map

	screen *Screen
}

// NewContext creates a UiContext bound to the given terminal Screen.
func NewContext(screen *Screen) *UiContext {
	return &UiContext{
		nodeMap:     make(map[uint64]NodeSnapshot),
		renderArena: arena.New(0),
		screen:      screen,
	}
}

// newNode allocates a UiNode in the currently building generation's pool.
func (c *UiContext) newNode() *UiNode {
	n := &UiNode{Foreground: NoColor, Background: NoColor}
	c.pools[c.gen] = append(c.pools[c.gen], n)
	return n
}

// BeginFrame starts building a new frame: it rotates to the other
// generation's node pool (discarding it for the GC to reclaim) and resets
// the ID hasher, but leaves the node map from the previous frame intact
// until Layout replaces it.
func (c *UiContext) BeginFrame(width, height int, inputs []uiinput.Input) *UiNode {
	c.gen = 1 - c.gen
	c.pools[c.gen] = c.pools[c.gen][:0]
	c.hasher = newIDHasher()
	c.width, c.height = width, height
	c.pendingInputs = inputs
	c.consumed = false

	root := c.newNode()
	root.ID = c.hasher.stack[0]
	root.Kind = ContentContainer
	c.roots[c.gen] = root
	return root
}

// ContainerBegin opens a container node as a child of parent, addressed by
// label within parent's ID scope, and pushes it onto the hasher stack so
// nested Begin calls fold into its ID.
func (c *UiContext) ContainerBegin(parent *UiNode, label string) *UiNode {
	id := c.hasher.push(label)
	n := c.newNode()
	n.ID = id
	n.Kind = ContentContainer
	parent.AddChild(n)
	return n
}

// ContainerEnd closes the innermost open container opened by ContainerBegin.
func (c *UiContext) ContainerEnd() {
	c.hasher.pop()
}

// AttrPadding sets uniform cell padding inside a container's border.
func AttrPadding(n *UiNode, cells int) *UiNode { n.Padding = cells; return n }

// AttrBorder toggles a single-line border drawn in the node's outer rect.
func AttrBorder(n *UiNode, on bool) *UiNode { n.Border = on; return n }

// AttrGridColumns sets the grid column tracks for laying out n's children:
// positive entries are absolute cell widths, negative entries are a
// fractional share of the remaining width after absolute columns are
// subtracted (spec §4.F's grid-based layout).
func AttrGridColumns(n *UiNode, cols []int) *UiNode { n.GridColumns = cols; return n }

// AttrBackground sets n's background color.
func AttrBackground(n *UiNode, c Color) *UiNode { n.Background = c; return n }

// AttrForeground sets n's foreground color.
func AttrForeground(n *UiNode, c Color) *UiNode { n.Foreground = c; return n }

// AttrFloat positions n relative to its parent's outer rect instead of in
// grid flow.
func AttrFloat(n *UiNode, f FloatSpec) *UiNode { n.Float = Active(f); return n }

// Active is a small helper so call sites can write AttrFloat(n,
// tui.Active(tui.FloatSpec{...})) without repeating Active: true.
func Active(f FloatSpec) FloatSpec { f.Active = true; return f }

// Root returns the root node of the generation currently being built.
func (c *UiContext) Root() *UiNode { return c.roots[c.gen] }
