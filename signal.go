package kamilo

// signal.go implements the signal bus (spec 4.C): fire-and-forget delivery
// to live nodes by tag, by single target (immediate or queued until the
// target becomes live), delayed delivery counted in scheduler ticks, and
// ancestor/subtree broadcast walks. Grounded on the teacher's node tree plus
// original_source/Kamilo/KNamedValues.h for the argument bag shape.

// SignalFunc is a node's signal hook. It returns true if the signal was
// consumed, which stops an ancestor-walk broadcast from continuing upward.
type SignalFunc func(n *Node, tag string, args NamedValues) bool

type pendingSignal struct {
	tag  string
	args NamedValues
}

type delayedSignal struct {
	target     EID
	tag        string
	args       NamedValues
	framesLeft int
}

// signalBus owns the queues backing Engine's signal-delivery phase. It is
// not safe for concurrent use; all signal traffic is drained on the
// scheduler's own goroutine.
type signalBus struct {
	pendingByTarget map[EID][]pendingSignal
	delayed         []delayedSignal
}

func newSignalBus() *signalBus {
	return &signalBus{pendingByTarget: make(map[EID][]pendingSignal)}
}

// deliver offers tag/args first to the current action's QuerySignal
// capability (if it implements one), then to n's own signal hook, returning
// whether either consumed it. A node with neither is treated as not
// consuming. Registered managers observe the delivery afterward via their
// Signal hook (spec 6).
func deliver(n *Node, tag string, args NamedValues) bool {
	if n == nil {
		return false
	}
	consumed := false
	if q, ok := n.actionCurrent.(SignalQuerier); ok {
		consumed = q.QuerySignal(n, tag, args)
	}
	if !consumed && n.hooks.Signal != nil {
		consumed = n.hooks.Signal(n, tag, args)
	}
	if n.eng != nil {
		for _, m := range n.eng.managers {
			if m.Signal != nil {
				m.Signal(n.eng, n.id, tag, args)
			}
		}
	}
	return consumed
}

// Send delivers tag/args to target immediately if it is live; otherwise the
// signal is queued and delivered by the first later signal-delivery phase
// that finds the target live, per spec 4.C's "send" operation.
func (e *Engine) Send(target EID, tag string, args NamedValues) {
	n := e.nodeByID(target)
	if n != nil && n.IsLive() {
		deliver(n, tag, args)
		return
	}
	e.bus.pendingByTarget[target] = append(e.bus.pendingByTarget[target], pendingSignal{tag: tag, args: args})
}

// SendDelayed queues tag/args for delivery exactly frames scheduler ticks
// from now, provided target is still live at that point; otherwise it is
// silently dropped (spec 4.C, property P6).
func (e *Engine) SendDelayed(target EID, tag string, args NamedValues, frames int) {
	if frames <= 0 {
		e.Send(target, tag, args)
		return
	}
	e.bus.delayed = append(e.bus.delayed, delayedSignal{target: target, tag: tag, args: args, framesLeft: frames})
}

// BroadcastTag delivers tag/args to every live node whose tree-combined tag
// set contains tag, in tree pre-order as of the last fold pass (the tag
// index is rebuilt at the start of RenderBuild).
func (e *Engine) BroadcastTag(tag string, args NamedValues) {
	for _, n := range e.nodesWithTreeTag(tag) {
		deliver(n, tag, args)
	}
}

// BroadcastToParents walks from n up through its ancestors, delivering
// tag/args to each in turn and stopping as soon as one hook returns true
// (consumed), per spec 4.C.
func (e *Engine) BroadcastToParents(n *Node, tag string, args NamedValues) {
	for cur := n; cur != nil; cur = cur.parent {
		if deliver(cur, tag, args) {
			return
		}
	}
}

// BroadcastToChildren delivers tag/args to n and its descendants in
// pre-order, unconditionally (the return value is ignored: subtree
// broadcasts do not short-circuit).
func (e *Engine) BroadcastToChildren(n *Node, tag string, args NamedValues) {
	if n == nil {
		return
	}
	deliver(n, tag, args)
	for _, c := range n.children {
		e.BroadcastToChildren(c, tag, args)
	}
}

// runSignalPhase drains due delayed signals and any pending per-target
// queues whose target has become live, called once per frame from the
// scheduler's signal-delivery phase.
func (e *Engine) runSignalPhase() {
	remaining := e.bus.delayed[:0]
	for _, ds := range e.bus.delayed {
		ds.framesLeft--
		if ds.framesLeft > 0 {
			remaining = append(remaining, ds)
			continue
		}
		if n := e.nodeByID(ds.target); n != nil && n.IsLive() {
			deliver(n, ds.tag, ds.args)
		}
	}
	e.bus.delayed = remaining

	for target, queue := range e.bus.pendingByTarget {
		n := e.nodeByID(target)
		if n == nil || !n.IsLive() {
			continue
		}
		for _, ps := range queue {
			deliver(n, ps.tag, ps.args)
		}
		delete(e.bus.pendingByTarget, target)
	}
}

// cancelTarget discards any signals still queued for target, called during
// the deferred-destruction sweep so a removed node never receives mail it
// can no longer act on.
func (e *Engine) cancelTarget(target EID) {
	delete(e.bus.pendingByTarget, target)
	remaining := e.bus.delayed[:0]
	for _, ds := range e.bus.delayed {
		if ds.target != target {
			remaining = append(remaining, ds)
		}
	}
	e.bus.delayed = remaining
}
