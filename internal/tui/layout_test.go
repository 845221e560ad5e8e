package tui

import "testing"

func TestResolveTracksAbsoluteAndFractional(t *testing.T) {
	got := resolveTracks([]int{10, -1, -2}, 40)
	want := []int{10, 10, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("track %d: want %d, got %d", i, want[i], got[i])
		}
	}
}

func TestResolveTracksAllFractionalSplitsEvenly(t *testing.T) {
	got := resolveTracks([]int{-1, -1}, 10)
	if got[0] != 5 || got[1] != 5 {
		t.Fatalf("expected even split, got %v", got)
	}
}

func TestLayoutStacksChildrenVertically(t *testing.T) {
	screen := NewScreen(80, 24)
	c := NewContext(screen)
	root := c.BeginFrame(80, 24, nil)

	a := c.ContainerBegin(root, "a")
	c.ContainerEnd()
	_ = a

	b := c.ContainerBegin(root, "b")
	c.ContainerEnd()
	_ = b

	c.Layout(root, 80, 24)

	if root.Inner.W != 80 || root.Inner.H != 24 {
		t.Fatalf("root inner rect wrong: %+v", root.Inner)
	}
	if a.Outer.W != 80 || b.Outer.W != 80 || b.Outer.Y != a.Outer.Y+a.Outer.H {
		t.Fatalf("children not stacked vertically: a=%+v b=%+v", a.Outer, b.Outer)
	}
}

func TestContainerIDsStableAcrossFrames(t *testing.T) {
	screen := NewScreen(80, 24)
	c := NewContext(screen)

	root1 := c.BeginFrame(80, 24, nil)
	n1 := c.ContainerBegin(root1, "editor")
	c.ContainerEnd()

	root2 := c.BeginFrame(80, 24, nil)
	n2 := c.ContainerBegin(root2, "editor")
	c.ContainerEnd()

	if n1.ID != n2.ID {
		t.Fatalf("expected stable ID across frames, got %d and %d", n1.ID, n2.ID)
	}
}

func TestFloaterPositionedByGravity(t *testing.T) {
	screen := NewScreen(80, 24)
	c := NewContext(screen)
	root := c.BeginFrame(80, 24, nil)

	parent := c.ContainerBegin(root, "parent")
	child := c.ContainerBegin(parent, "child")
	AttrFloat(child, FloatSpec{OffsetX: 5, OffsetY: 2, GravityX: 0, GravityY: 0})
	c.ContainerEnd()
	c.ContainerEnd()

	c.Layout(root, 80, 24)

	if child.Outer.X != parent.Outer.X+5 || child.Outer.Y != parent.Outer.Y+2 {
		t.Fatalf("floater not positioned relative to parent: %+v vs parent %+v", child.Outer, parent.Outer)
	}
}
