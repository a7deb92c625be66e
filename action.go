package kamilo

// action.go implements the per-node cooperative action runtime (spec
// component E): a node owns at most one running action at a time, staged
// swaps happen at a scheduler-defined tick boundary, and an action never
// suspends mid-step — it returns control after every call and is driven
// again on the next tick.

// Action is a polymorphic per-node behaviour: {enter, step, exit}. A node
// owns its current action exclusively; starting a new one always exits the
// old one first (an action is never re-entered).
type Action interface {
	Enter(n *Node)
	Step(n *Node, dt float64)
	Exit(n *Node)
}

// SignalQuerier is an optional capability an Action may implement to
// observe signals addressed to its host node before the node's own Signal
// hook runs. Returning true consumes the signal.
type SignalQuerier interface {
	QuerySignal(n *Node, tag string, args NamedValues) bool
}

// SceneRequester is an optional capability demonstrating the action-
// environment interface described by the runtime: an action may ask the
// scheduler for a scene transition without the scheduler needing to know
// anything about the action's concrete type.
type SceneRequester interface {
	QueryNextScene() (id string, params NamedValues, ok bool)
}

// SetAction stages new into n's next-action slot. If updateNow is true and
// n belongs to an engine, the staged action is promoted at once: the
// current action's Exit and the new action's Enter run inside this call.
// Otherwise promotion happens at n's visit in the next gameplay tick,
// before that tick's step call. Passing nil stages an empty action: when
// it is promoted, the current action is exited and n is left with none.
func (n *Node) SetAction(newAction Action, updateNow bool) {
	n.actionNext = newAction
	n.hasNextAction = true
	if updateNow && n.eng != nil {
		n.eng.promoteAction(n)
	}
}

// CurrentAction returns the action currently running on n, or nil.
func (n *Node) CurrentAction() Action { return n.actionCurrent }

// promoteAction exits the current action (if any), installs the staged
// next action as current, and calls Enter on it. Called by the scheduler's
// tick phase and, eagerly, by SetAction when updateNow is requested.
func (e *Engine) promoteAction(n *Node) {
	if !n.hasNextAction {
		return
	}
	if n.actionCurrent != nil {
		n.actionCurrent.Exit(n)
	}
	n.actionCurrent = n.actionNext
	n.actionNext = nil
	n.hasNextAction = false
	if n.actionCurrent != nil {
		n.actionCurrent.Enter(n)
	}
}

// stepAction advances n's current action by dt, if any.
func (e *Engine) stepAction(n *Node, dt float64) {
	if n.actionCurrent != nil {
		n.actionCurrent.Step(n, dt)
	}
}

// cancelAction runs during deferred destruction: it exits the current
// action exactly once and discards both slots, per the runtime's
// cancellation rule.
func (n *Node) cancelAction() {
	if n.actionCurrent != nil {
		n.actionCurrent.Exit(n)
	}
	n.actionCurrent = nil
	n.actionNext = nil
	n.hasNextAction = false
}
