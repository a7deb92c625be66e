package kamilo

// manager.go implements the "manager" extension point named in spec 6: a
// callback bundle an embedding application registers once via
// Engine.AddManager, implementing any subset of the phase hooks. Grounded on
// the teacher's single updateFunc/OnUpdate callback fields (scene.go,
// node.go), generalized to a registrable ordered list.

// Manager is a callback bundle implementing any subset of the engine's
// phase hooks. A nil field means the manager does not participate in that
// phase. The scheduler invokes registered managers in registration order
// within each phase (spec 6).
type Manager struct {
	// Start runs when StartManagers is called; AddManager does not run it.
	Start func(e *Engine)
	// End runs once, when the engine is torn down.
	End func(e *Engine)
	// Frame runs every frame during the pre-frame phase, before signal
	// delivery and before the scene stack's transition check.
	Frame func(e *Engine, dt float64)
	// AppFrame runs each time RunAppFrame is called, for integrations that
	// need a look at the frame's final state (e.g. a CLI snapshot tool
	// polling Engine.Snapshot). Neither Present nor Run calls RunAppFrame.
	AppFrame func(e *Engine, dt float64)
	// Signal runs on every delivery to a live node (Send, SendDelayed,
	// BroadcastTag and the other broadcasts), after the node's own Signal
	// hook, whether or not the node consumed it.
	Signal func(e *Engine, target EID, tag string, args NamedValues)
	// Step runs once per live, enabled node during the gameplay tick's
	// first sub-pass, interleaved with that node's own Step hook.
	Step func(e *Engine, dt float64)
	// Render runs once per frame during render-build, after every node's
	// own Render hook has been invoked.
	Render func(e *Engine)
}

// StartManagers runs every registered manager's Start hook. Call once,
// after all managers have been added via AddManager.
func (e *Engine) StartManagers() {
	for _, m := range e.managers {
		if m.Start != nil {
			m.Start(e)
		}
	}
}

// EndManagers runs every registered manager's End hook, in registration
// order, for orderly shutdown.
func (e *Engine) EndManagers() {
	for _, m := range e.managers {
		if m.End != nil {
			m.End(e)
		}
	}
}

// RunAppFrame runs every registered manager's AppFrame hook. Call once per
// frame, after Present.
func (e *Engine) RunAppFrame(dt float64) {
	for _, m := range e.managers {
		if m.AppFrame != nil {
			m.AppFrame(e, dt)
		}
	}
}
