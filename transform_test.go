package kamilo

import (
	"math"
	"testing"

	"github.com/kazikikaziki/kamilo/mathx"
)

func TestLocalToWorldWorldToLocalRoundTrip(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	child := e.NewNode("child")
	e.SetRoot(root)
	root.AddChild(child)

	root.SetPosition(mathx.Vec3{X: 5, Y: 10, Z: 0})
	child.SetPosition(mathx.Vec3{X: 1, Y: 2, Z: 3})
	e.recomputeTreeAndTags()

	p := mathx.Vec3{X: 7, Y: -3, Z: 2}
	world := child.LocalToWorld(p)
	back, ok := child.WorldToLocal(world)
	if !ok {
		t.Fatal("WorldToLocal failed on an invertible transform")
	}
	const eps = 1e-9
	if math.Abs(back.X-p.X) > eps || math.Abs(back.Y-p.Y) > eps || math.Abs(back.Z-p.Z) > eps {
		t.Fatalf("round trip = %+v, want %+v", back, p)
	}
}

func TestLayerPriorityPropagatesToDefaultDescendants(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	child := e.NewNode("child")
	grandchild := e.NewNode("grandchild")
	e.SetRoot(root)
	root.AddChild(child)
	child.AddChild(grandchild)

	root.Layer = 5
	root.Priority = 9
	root.LocalRenderOrder = RenderOrderTree
	// child stays RenderOrderDefault: it must inherit root's layer/priority.
	grandchild.Layer = 1
	grandchild.LocalRenderOrder = RenderOrderTree

	e.recomputeTreeAndTags()

	if child.treeLayer != 5 || child.treePriority != 9 {
		t.Fatalf("child tree layer/priority = %d/%d, want 5/9", child.treeLayer, child.treePriority)
	}
	if grandchild.treeLayer != 1 {
		t.Fatalf("grandchild with RenderOrderTree must pin its own layer, got %d", grandchild.treeLayer)
	}
}
