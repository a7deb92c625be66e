package kamilo

// inspector.go implements component L: hookable taps at scheduler phase
// boundaries plus a flat counter snapshot. Resolved from
// original_source/Kamilo/KInspector.h and KSnapshotter.h, both of which are
// purely hookable and GUI-agnostic in the original — the inspector GUI and
// CLI snapshot tool themselves stay out of scope per spec 1; the core only
// exposes the tap.

// InspectorHook is a named callback invoked at a specific scheduler phase
// boundary, registered via Engine.AddInspectorHook.
type InspectorHook struct {
	Label string
	Phase Phase
	Fn    func(e *Engine)
}

// AddInspectorHook registers fn to run at the start of every occurrence of
// phase, labeled for an external tool's display purposes. Hooks run in
// registration order.
func (e *Engine) AddInspectorHook(label string, phase Phase, fn func(e *Engine)) {
	e.inspectorHooks = append(e.inspectorHooks, InspectorHook{Label: label, Phase: phase, Fn: fn})
}

// runInspectorHooks invokes every hook registered for phase, in
// registration order.
func (e *Engine) runInspectorHooks(phase Phase) {
	for _, h := range e.inspectorHooks {
		if h.Phase == phase && h.Fn != nil {
			h.Fn(e)
		}
	}
}

// Snapshot returns a flat dump of engine counters for an external CLI/GUI
// tool to print: the frame counter, the registered node count (live_nodes
// counts every node in the engine's id table, attached or not), pending
// removals, the number of targets with queued signals, the delayed signal
// count, the current scene id, the scene clock and the debug-pause latch.
func (e *Engine) Snapshot() map[string]any {
	queuedTargets := len(e.bus.pendingByTarget)
	return map[string]any{
		"frame":            e.frameCount,
		"live_nodes":       len(e.nodes),
		"pending_remove":   len(e.pendingRemove),
		"queued_signals":   queuedTargets,
		"delayed_signals":  len(e.bus.delayed),
		"current_scene_id": e.currentSceneID,
		"scene_clock":      e.sceneClock,
		"debug_paused":     e.paused,
	}
}
