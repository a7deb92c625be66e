package kamilo

import "testing"

func TestTickOrderReadyBeforeStart(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)

	var order []string
	child := e.NewNode("child")
	child.Hooks().Ready = func(n *Node) { order = append(order, "ready") }
	child.Hooks().Start = func(n *Node, dt float64) { order = append(order, "start") }
	child.Hooks().Step = func(n *Node, dt float64) { order = append(order, "step") }
	root.AddChild(child)
	e.pendingReady = append(e.pendingReady, child)

	e.Tick(1.0/60, 0)

	if len(order) != 3 || order[0] != "ready" || order[1] != "start" || order[2] != "step" {
		t.Fatalf("expected [ready start step], got %v", order)
	}

	order = nil
	e.Tick(1.0/60, 0)
	if len(order) != 1 || order[0] != "step" {
		t.Fatalf("expected only step on the second tick, got %v", order)
	}
}

func TestTickRespectsNoEnableFlag(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)
	child := e.NewNode("child")
	root.AddChild(child)
	child.SetFlags(child.Flags() | FlagNoEnable)

	stepped := false
	child.Hooks().Step = func(n *Node, dt float64) { stepped = true }
	e.Tick(1.0/60, 0)
	if stepped {
		t.Fatal("expected FlagNoEnable node to be skipped by gameplay tick")
	}

	stepped = false
	e.Tick(1.0/60, TickDontCareEnable)
	if !stepped {
		t.Fatal("expected TickDontCareEnable to override FlagNoEnable")
	}
}

func TestSystemTickIgnoresPause(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)
	child := e.NewNode("child")
	child.SetFlags(child.Flags() | FlagSystem)
	root.AddChild(child)

	e.SetDebugPause(true)
	systemStepped, gameplayStepped := false, false
	child.Hooks().SystemStep = func(n *Node, dt float64) { systemStepped = true }
	child.Hooks().Step = func(n *Node, dt float64) { gameplayStepped = true }

	e.Tick(1.0/60, 0)
	if !systemStepped {
		t.Fatal("expected system tick to run even while paused")
	}
	if gameplayStepped {
		t.Fatal("expected gameplay tick to be skipped while paused")
	}
}

func TestFrameCountAdvances(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)
	if e.FrameCount() != 0 {
		t.Fatalf("expected frame count 0 before any tick, got %d", e.FrameCount())
	}
	e.Tick(1.0/60, 0)
	e.Tick(1.0/60, 0)
	if e.FrameCount() != 2 {
		t.Fatalf("expected frame count 2 after two ticks, got %d", e.FrameCount())
	}
}

func TestInspectorHooksRunInPhaseOrder(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)

	var order []Phase
	e.AddInspectorHook("trace", PhasePreFrame, func(e *Engine) { order = append(order, PhasePreFrame) })
	e.AddInspectorHook("trace", PhaseSignal, func(e *Engine) { order = append(order, PhaseSignal) })
	e.AddInspectorHook("trace", PhaseSystemTick, func(e *Engine) { order = append(order, PhaseSystemTick) })
	e.AddInspectorHook("trace", PhaseGameplayTick, func(e *Engine) { order = append(order, PhaseGameplayTick) })

	e.Tick(1.0/60, 0)
	want := []Phase{PhasePreFrame, PhaseSignal, PhaseSystemTick, PhaseGameplayTick}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestSnapshotReportsLiveNodeCount(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)
	e.NewNode("other")

	snap := e.Snapshot()
	if snap["live_nodes"] != 2 {
		t.Fatalf("expected live_nodes=2, got %v", snap["live_nodes"])
	}
}

func TestDestroySweepsTreeAndEndsManagers(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	child := e.NewNode("child")
	e.SetRoot(root)
	root.AddChild(child)

	var removed int
	e.RemovingCallback = func(batch []*Node) { removed = len(batch) }
	ended := false
	e.AddManager(Manager{End: func(e *Engine) { ended = true }})

	e.Destroy()
	if removed != 2 {
		t.Fatalf("expected both nodes in the final sweep, got %d", removed)
	}
	if !ended {
		t.Fatal("expected manager End hooks to run during Destroy")
	}
	if e.Root() != nil {
		t.Fatal("expected root to be cleared after Destroy")
	}
}

func TestRenderBuildSortsByTreeLayer(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)

	var order []string
	add := func(name string, layer int) *Node {
		n := e.NewNode(name)
		n.Layer = layer
		n.LocalRenderOrder = RenderOrderTree
		n.Hooks().Render = func(n *Node) { order = append(order, n.Name()) }
		root.AddChild(n)
		return n
	}
	add("back", 2)
	add("front", 5)
	add("mid", 3)

	e.recomputeTreeAndTags()
	e.RenderBuild()

	want := []string{"back", "mid", "front"}
	for i, name := range want {
		if order[i] != name {
			t.Fatalf("render order = %v, want %v", order, want)
		}
	}
}

func TestRenderBuildAtomicSubtreeStaysContiguous(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)

	var order []string
	record := func(n *Node) { order = append(order, n.Name()) }

	atomic := e.NewNode("atomic")
	atomic.AtomicSubtree = true
	atomic.Hooks().Render = record
	root.AddChild(atomic)

	// Inside the atomic subtree this child's high layer must not let any
	// sibling's commands interleave; it shares the subtree root's key.
	inner := e.NewNode("inner")
	inner.Layer = 5
	inner.LocalRenderOrder = RenderOrderTree
	inner.Hooks().Render = record
	atomic.AddChild(inner)

	sibling := e.NewNode("sibling")
	sibling.Layer = 2
	sibling.LocalRenderOrder = RenderOrderTree
	sibling.Hooks().Render = record
	root.AddChild(sibling)

	e.recomputeTreeAndTags()
	e.RenderBuild()

	want := []string{"atomic", "inner", "sibling"}
	if len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Fatalf("render order = %v, want %v", order, want)
	}
}

func TestRenderBuildRenderAfterChildren(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)

	var order []string
	record := func(n *Node) { order = append(order, n.Name()) }

	parent := e.NewNode("parent")
	parent.RenderAfterChildren = true
	parent.Hooks().Render = record
	root.AddChild(parent)

	child := e.NewNode("child")
	child.Hooks().Render = record
	parent.AddChild(child)

	e.recomputeTreeAndTags()
	e.RenderBuild()

	if len(order) != 2 || order[0] != "child" || order[1] != "parent" {
		t.Fatalf("render order = %v, want [child parent]", order)
	}
}
