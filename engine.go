package kamilo

// engine.go implements the frame scheduler (spec component F): the fixed
// per-frame phase order, node registration/lookup, and the deferred-removal
// sweep. Grounded on the teacher's scene.go (Scene.Update/Scene.Draw phase
// separation, the gameShell/ebiten.RunGame integration) generalized from a
// single fixed Scene to the spec's Engine + node-tree + action + signal +
// scene-stack composition, and on original_source/Kamilo/KNodeTickFlags for
// the DONTCARE_ENABLE/DONTCARE_PAUSED/ENTERONLY tick-flag contract.

import "sort"

// Phase names a scheduler phase boundary, used to tag inspector hooks and
// (internally) to order the fixed per-frame pipeline.
type Phase int

const (
	PhasePreFrame Phase = iota
	PhaseSignal
	PhaseSystemTick
	PhaseGameplayTick
	PhaseRenderBuild
	PhaseRenderFlush
	PhasePresent
	PhaseDestroy
)

// Config configures a new Engine. The zero value is valid; NewEngine fills
// in defaults the way the teacher's RunConfig does.
type Config struct {
	// Debug starts the engine with debug-mode assertions enabled.
	Debug bool
}

// Engine owns the node tree, the signal bus, the scene stack, the registered
// managers, and drives them all through the fixed per-frame schedule
// described in spec 4.F. There is normally exactly one Engine per process;
// kamilo.DebugMode() mirrors the most recently configured instance's debug
// flag for code that only has a *Node to work from.
type Engine struct {
	debug  bool
	paused bool // debug-pause latch; gates the gameplay-tick phase
	exit   bool // post_exit() latch, observed at the top of the next Run iteration

	eidAlloc eidAllocator
	nodes    map[EID]*Node
	root     *Node

	pendingReady  []*Node
	pendingRemove []*Node

	// RemovingCallback, if set, is invoked once per frame's deferred-
	// destruction sweep with the contiguous batch of nodes about to be
	// disposed (spec 4.D: "a contiguous array of pointers so the user can
	// index databases").
	RemovingCallback func(removed []*Node)

	bus *signalBus

	managers []Manager

	scenes          map[string]Scene
	currentSceneID  string
	currentScene    Scene
	currentParams   NamedValues
	nextSceneID     string
	nextSceneParams NamedValues
	hasNextScene    bool
	sceneClock      int

	// SceneChanging, if set, runs once per transition before the outgoing
	// scene's OnExit, and may rewrite the incoming scene's parameters.
	// Grounded on original_source/Kamilo/KScene.h's KGameSceneSystemCallback.
	SceneChanging func(args *SceneTransitionArgs)

	inspectorHooks []InspectorHook

	tagIndex map[string][]*Node

	frameCount uint64
}

// NewEngine creates an Engine with an empty node tree and no registered
// scenes. Call SetRoot before the first Tick.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		nodes:  make(map[EID]*Node),
		bus:    newSignalBus(),
		scenes: make(map[string]Scene),
		debug:  cfg.Debug,
	}
	globalDebug = cfg.Debug
	return e
}

// registerNode records n in the engine's id->node table. Called by NewNode.
func (e *Engine) registerNode(n *Node) {
	e.nodes[n.id] = n
}

// nodeByID looks up a live or pending node by id, or nil if it has never
// existed or has already been disposed.
func (e *Engine) nodeByID(id EID) *Node {
	return e.nodes[id]
}

// SetRoot installs root as the tree the scheduler walks. root must already
// exist via NewNode.
func (e *Engine) SetRoot(root *Node) { e.root = root }

// Root returns the engine's root node, or nil if SetRoot has not been called.
func (e *Engine) Root() *Node { return e.root }

// AddManager registers a manager callback bundle. Managers run in
// registration order within each phase they implement (spec 6: "a manager
// is a callback bundle... the scheduler invokes them in registration order
// within each phase").
func (e *Engine) AddManager(m Manager) { e.managers = append(e.managers, m) }

// SetDebugPause toggles the latch that suspends the gameplay-tick phase
// (spec 4.F). System ticks are unaffected.
func (e *Engine) SetDebugPause(paused bool) { e.paused = paused }

// DebugPaused reports the current debug-pause latch state.
func (e *Engine) DebugPaused() bool { return e.paused }

// PostExit latches a shutdown request observed at the top of the next Run
// iteration (spec 5: "post_exit() is latched and observed at the top of
// each iteration").
func (e *Engine) PostExit() { e.exit = true }

// ExitRequested reports whether PostExit has been called.
func (e *Engine) ExitRequested() bool { return e.exit }

// FrameCount returns the number of completed Tick calls.
func (e *Engine) FrameCount() uint64 { return e.frameCount }

// recomputeTreeAndTags folds the whole tree's transform/colour/flag/tag
// inheritance and rebuilds the tag index alongside it (spec 4.D: "tag
// index... updated atomically on tag add/remove and on tree
// attach/detach"). Called once per frame at the start of RenderBuild, so
// render output reflects the inheritance values as they stand after that
// frame's gameplay tick (spec 5's ordering guarantee); in-frame mutations
// after render-build affect only the next frame.
func (e *Engine) recomputeTreeAndTags() {
	if e.root == nil {
		return
	}
	idx := make(map[string][]*Node)
	recomputeTree(e.root, nil, false, idx)
	e.tagIndex = idx
}

// nodesWithTreeTag returns the live nodes whose tree-combined tag set
// contains tag, as of the last recompute pass (spec 4.D: "get_nodes_by_tag
// is O(1) lookup + O(k) copy").
func (e *Engine) nodesWithTreeTag(tag string) []*Node {
	return e.tagIndex[tag]
}

// walkAll visits n and its live descendants in pre-order, skipping only
// fully-disposed nodes (flagInvalid). Used by the system-tick phase, which
// per spec 4.F must run "regardless of the enabled/paused state of
// ancestors (but respect the invalid bit)".
func walkAll(n *Node, fn func(*Node)) {
	if n == nil || n.flags&flagInvalid != 0 {
		return
	}
	fn(n)
	for _, c := range n.children {
		walkAll(c, fn)
	}
}

// walkLive visits n and its descendants in pre-order, stopping at any node
// marked for removal or already disposed (its whole subtree is skipped,
// since Remove cascades the mark down at call time). The foldable flag
// bits are accumulated down the walk and handed to fn, so the tick phases
// observe flag inheritance live rather than as of the last render-build
// fold.
func walkLive(n *Node, inherited NodeFlags, fn func(n *Node, eff NodeFlags)) {
	if n == nil || n.flags&(flagMarkRemove|flagInvalid) != 0 {
		return
	}
	eff := n.flags | (inherited & foldableFlags)
	fn(n, eff)
	for _, c := range n.children {
		walkLive(c, eff, fn)
	}
}

// Tick advances the engine by one frame's update phases: pre-frame
// callbacks, signal delivery, system tick, and gameplay tick. Deferred
// destruction runs in Present, not here. Rendering is driven separately
// via RenderBuild/RenderFlush/Present so headless
// callers (tests, dedicated-server style loops) can Tick without a Device.
func (e *Engine) Tick(dt float64, flags TickFlags) {
	e.frameCount++
	e.runPreFrame(dt)
	e.runSignalDeliveryPhase()
	e.runSystemTick(dt)
	e.runGameplayTick(dt, flags)
}

// runPreFrame processes the previous frame's newly-attached nodes' ready
// callbacks, runs registered managers' Frame hook, and resolves the scene
// stack's queued transition (spec 4.J).
func (e *Engine) runPreFrame(dt float64) {
	e.runInspectorHooks(PhasePreFrame)

	pending := e.pendingReady
	e.pendingReady = nil
	for _, n := range pending {
		if n.flags&flagInvalid != 0 || n.ready {
			continue
		}
		n.ready = true
		if n.hooks.Ready != nil {
			n.hooks.Ready(n)
		}
	}

	for _, m := range e.managers {
		if m.Frame != nil {
			m.Frame(e, dt)
		}
	}

	e.runSceneTransition()
}

func (e *Engine) runSignalDeliveryPhase() {
	e.runInspectorHooks(PhaseSignal)
	e.runSignalPhase()
}

func (e *Engine) runSystemTick(dt float64) {
	e.runInspectorHooks(PhaseSystemTick)
	if e.root == nil {
		return
	}
	walkAll(e.root, func(n *Node) {
		if n.flags&FlagSystem == 0 {
			return
		}
		if n.hooks.SystemStep != nil {
			n.hooks.SystemStep(n, dt)
		}
	})
}

func (e *Engine) runGameplayTick(dt float64, flags TickFlags) {
	e.runInspectorHooks(PhaseGameplayTick)
	if e.root == nil {
		return
	}
	if e.paused && flags&TickDontCarePaused == 0 {
		return
	}

	walkLive(e.root, 0, func(n *Node, eff NodeFlags) {
		if eff&FlagNoEnable != 0 && flags&TickDontCareEnable == 0 {
			return
		}
		if !n.started {
			n.started = true
			if n.hooks.Start != nil {
				n.hooks.Start(n, dt)
			}
		}
		e.promoteAction(n)
		e.stepAction(n, dt)
		for _, m := range e.managers {
			if m.Step != nil {
				m.Step(e, dt)
			}
		}
		if eff&FlagNoUpdate == 0 && n.hooks.Step != nil {
			n.hooks.Step(n, dt)
		}
	})

	if flags&TickEnterOnly != 0 {
		return
	}

	walkLive(e.root, 0, func(n *Node, eff NodeFlags) {
		if eff&FlagNoEnable != 0 && flags&TickDontCareEnable == 0 {
			return
		}
		if eff&FlagNoUpdate == 0 && n.hooks.LateStep != nil {
			n.hooks.LateStep(n, dt)
		}
	})
}

// renderEntry pairs a node with the key the render-build sort uses: its
// tree-combined layer and priority, tie-broken by traversal sequence. Every
// node under an atomic subtree shares the subtree root's key, so no other
// node's commands can interleave with the subtree's, and a nested atomic
// descendant stays contiguous within its outermost atomic ancestor's run.
type renderEntry struct {
	n        *Node
	layer    int
	priority int
	seq      int64
}

// gatherRenderEntries visits the tree in render order, honoring
// RenderAfterChildren (own entry lands after the subtree's rather than
// before) and WillRender (returning false skips this node but not its
// subtree).
func gatherRenderEntries(n *Node, group *renderEntry, seq *int64, out *[]renderEntry) {
	if n == nil || n.flags&(flagMarkRemove|flagInvalid) != 0 {
		return
	}
	if n.treeFlags&FlagNoRender != 0 {
		return
	}
	self := renderEntry{n: n, layer: n.treeLayer, priority: n.treePriority}
	childGroup := group
	if group != nil {
		// Inside an atomic subtree every node shares the root's key; equal
		// keys make the stable sort preserve append order, which is exactly
		// the traversal order within the subtree.
		self.layer, self.priority, self.seq = group.layer, group.priority, group.seq
	} else if n.AtomicSubtree {
		self.seq = *seq
		*seq++
		childGroup = &self
	}
	willRender := n.hooks.WillRender == nil || n.hooks.WillRender(n)
	if !n.RenderAfterChildren && willRender {
		if group == nil && childGroup == nil {
			self.seq = *seq
			*seq++
		}
		*out = append(*out, self)
	}
	for _, c := range n.children {
		gatherRenderEntries(c, childGroup, seq, out)
	}
	if n.RenderAfterChildren && willRender {
		// Allocating the sequence number only now keeps this entry after
		// its subtree's even when every key field else is equal.
		if group == nil && childGroup == nil {
			self.seq = *seq
			*seq++
		}
		*out = append(*out, self)
	}
}

// RenderBuild folds the tree's transform/colour/flag/tag inheritance (so
// render output reflects the values as they stand after this frame's
// gameplay tick, per spec 5), then walks the live tree in render order,
// sorts the visited nodes by tree-combined layer then priority (stable, so
// equal keys keep their traversal order, which also keeps each atomic
// subtree's shared-key run contiguous), and invokes each node's Render
// hook, then the registered managers' Render hook. Call once per frame,
// after Tick, before RenderFlush.
func (e *Engine) RenderBuild() {
	e.recomputeTreeAndTags()
	e.runInspectorHooks(PhaseRenderBuild)
	if e.root != nil {
		var entries []renderEntry
		seq := int64(0)
		gatherRenderEntries(e.root, nil, &seq, &entries)
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.layer != b.layer {
				return a.layer < b.layer
			}
			if a.priority != b.priority {
				return a.priority < b.priority
			}
			return a.seq < b.seq
		})
		for _, en := range entries {
			if en.n.hooks.Render != nil {
				en.n.hooks.Render(en.n)
			}
		}
	}
	for _, m := range e.managers {
		if m.Render != nil {
			m.Render(e)
		}
	}
}

// RenderFlush marks the render-flush phase boundary for inspector hooks.
// The actual draw-list submission to a device is driven by application code
// holding a *gfx.DrawList and a gfx.Device; the core only exposes the tap.
func (e *Engine) RenderFlush() {
	e.runInspectorHooks(PhaseRenderFlush)
}

// Present marks the present phase boundary, then runs the deferred-
// destruction sweep (spec 4.F step 8). Call once per frame, last.
func (e *Engine) Present() {
	e.runInspectorHooks(PhasePresent)
	e.runDestroyPhase()
}

// Destroy tears the engine down: the whole tree is marked for removal, the
// deferred-destruction sweep runs one final time (so RemovingCallback still
// observes every node), and registered managers' End hooks run in order.
// Call once, after the run loop has exited.
func (e *Engine) Destroy() {
	if e.root != nil {
		e.root.Remove()
	}
	e.runDestroyPhase()
	e.root = nil
	e.EndManagers()
}

// runDestroyPhase sweeps nodes marked for removal: it invokes
// RemovingCallback once with the whole contiguous batch, then disposes each
// one (cancelling its action, severing tree links, dropping its EID slot
// and any signals still queued for it).
func (e *Engine) runDestroyPhase() {
	e.runInspectorHooks(PhaseDestroy)
	if len(e.pendingRemove) == 0 {
		return
	}
	batch := e.pendingRemove
	e.pendingRemove = nil
	if e.RemovingCallback != nil {
		e.RemovingCallback(batch)
	}
	for _, n := range batch {
		delete(e.nodes, n.id)
		n.dispose()
	}
}
