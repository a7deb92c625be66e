package kamilo

// flags.go collects the node flag bits, tick flags, and render-order enum
// grounded on original_source/Kamilo/KNode.h's Flag/KNodeTickFlag/
// KLocalRenderOrder enums, which the distilled spec names only in prose
// (spec 3, "per-node flag bits").

// NodeFlags is a bitmask of per-node state.
type NodeFlags uint32

const (
	// FlagNoEnable disables gameplay tick for this node and its descendants
	// (the tree-combined fold is an OR, so any ancestor setting it wins).
	FlagNoEnable NodeFlags = 1 << iota
	// FlagNoUpdate suppresses the per-node update hooks specifically (actions
	// still advance; the user Step and LateStep hooks are skipped).
	FlagNoUpdate
	// FlagNoRender makes the node (and by tree-combined OR, its descendants)
	// invisible to the render-build phase.
	FlagNoRender
	// FlagSystem marks a node as a system node: its system-step hook runs
	// every frame regardless of debug-pause and regardless of the enabled
	// state of any ancestor.
	FlagSystem
	// flagMarkRemove is set by Remove and never cleared (disposal adds
	// flagInvalid alongside it); internal, observed via IsMarkedRemove.
	flagMarkRemove
	// flagInvalid is set once deferred destruction has actually run;
	// internal, observed via IsInvalid.
	flagInvalid
)

// TickFlags modify how a single tick call treats a node, per spec 4.F.
type TickFlags uint32

const (
	// TickDontCareEnable runs gameplay tick even if FlagNoEnable is set
	// somewhere in the ancestor chain.
	TickDontCareEnable TickFlags = 1 << iota
	// TickDontCarePaused runs gameplay tick even while the scheduler's
	// debug-pause latch is set.
	TickDontCarePaused
	// TickEnterOnly runs only action promotion and the first step,
	// skipping the late-step sub-pass.
	TickEnterOnly
)

// LocalRenderOrder selects how a node's render attributes combine with its
// parent's when computing effective layer/priority (spec 3: "local-render-
// order enum {default, tree}").
type LocalRenderOrder uint8

const (
	// RenderOrderDefault lets the tree-combined layer/priority propagate
	// down from the nearest non-default ancestor.
	RenderOrderDefault LocalRenderOrder = iota
	// RenderOrderTree pins this node's own layer/priority, stopping
	// propagation from ancestors for this node and (by tree-combined fold)
	// its descendants that are themselves RenderOrderDefault.
	RenderOrderTree
)

// Category distinguishes the grouping scheme a tag-like lookup uses,
// grounded on KNode.h's Category enum (layer/priority/tag grouping share
// the same index machinery in the original).
type Category uint8

const (
	CategoryLayer Category = iota
	CategoryPriority
	CategoryTag
)
