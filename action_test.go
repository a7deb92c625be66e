package kamilo

import "testing"

type recordingAction struct {
	name  string
	trace *[]string
}

func (a recordingAction) Enter(n *Node) { *a.trace = append(*a.trace, a.name+":enter") }
func (a recordingAction) Step(n *Node, dt float64) {
	*a.trace = append(*a.trace, a.name+":step")
}
func (a recordingAction) Exit(n *Node) { *a.trace = append(*a.trace, a.name+":exit") }

func TestSetActionUpdateNowPromotesImmediately(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)
	n := e.NewNode("n")
	root.AddChild(n)

	var trace []string
	n.SetAction(recordingAction{name: "walk", trace: &trace}, true)
	if n.CurrentAction() == nil {
		t.Fatal("expected updateNow=true to promote the action immediately")
	}
	if len(trace) != 1 || trace[0] != "walk:enter" {
		t.Fatalf("expected immediate Enter, got %v", trace)
	}
}

func TestSetActionDeferredWaitsForTick(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)
	n := e.NewNode("n")
	root.AddChild(n)

	var trace []string
	n.SetAction(recordingAction{name: "walk", trace: &trace}, false)
	if n.CurrentAction() != nil {
		t.Fatal("expected updateNow=false to leave current action unset until the next tick")
	}
	e.Tick(1.0/60, 0)
	if n.CurrentAction() == nil {
		t.Fatal("expected the staged action to be promoted by the tick")
	}
}

func TestSwapExitsOldActionBeforeEnteringNew(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)
	n := e.NewNode("n")
	root.AddChild(n)

	var trace []string
	n.SetAction(recordingAction{name: "walk", trace: &trace}, true)
	n.SetAction(recordingAction{name: "jump", trace: &trace}, true)

	want := []string{"walk:enter", "walk:exit", "jump:enter"}
	if len(trace) != len(want) {
		t.Fatalf("expected %v, got %v", want, trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, trace)
		}
	}
}

func TestActionStepsOncePerGameplayTick(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)
	n := e.NewNode("n")
	root.AddChild(n)

	var trace []string
	n.SetAction(recordingAction{name: "walk", trace: &trace}, true)
	trace = nil
	e.Tick(1.0/60, 0)
	e.Tick(1.0/60, 0)

	count := 0
	for _, s := range trace {
		if s == "walk:step" {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected exactly 2 steps across 2 ticks, got %d (trace=%v)", count, trace)
	}
}

func TestCancelActionExitsExactlyOnce(t *testing.T) {
	e := NewEngine(Config{})
	root := e.NewNode("root")
	e.SetRoot(root)
	n := e.NewNode("n")
	root.AddChild(n)

	var trace []string
	n.SetAction(recordingAction{name: "walk", trace: &trace}, true)
	n.Remove()
	e.Present()

	exits := 0
	for _, s := range trace {
		if s == "walk:exit" {
			exits++
		}
	}
	if exits != 1 {
		t.Fatalf("expected Exit to run exactly once on removal, got %d (trace=%v)", exits, trace)
	}
}
