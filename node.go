package kamilo

import "github.com/kazikikaziki/kamilo/mathx"

// node.go implements the node tree: identity, ownership, transform/colour/
// tag inheritance, render attributes, and lifecycle hooks. Grounded on the
// teacher's node.go (AddChild/RemoveChild/dispose shape, the upward-only
// markSubtreeDirty convention) and original_source/Kamilo/KNode.h for the
// flag/category enums captured in flags.go.

// Hooks bundles the function-pointer capabilities a node may opt into. A nil
// field means the node does not participate in that phase; leaving every
// field nil is valid and common for purely structural nodes.
type Hooks struct {
	// Ready runs once, the frame after the node is attached to a live tree.
	Ready func(n *Node)
	// Start runs once, immediately before the node's first gameplay tick.
	Start func(n *Node, dt float64)
	// Step runs every gameplay tick's first sub-pass.
	Step func(n *Node, dt float64)
	// LateStep runs every gameplay tick's second sub-pass, after every node
	// in the tree has completed Step.
	LateStep func(n *Node, dt float64)
	// SystemStep runs every frame regardless of the enabled state of any
	// ancestor and regardless of the debug-pause latch, for nodes flagged
	// FlagSystem.
	SystemStep func(n *Node, dt float64)
	// WillRender runs during render-build, before Render; returning false
	// skips Render for this node (but not its children).
	WillRender func(n *Node) bool
	// Render emits draw commands for this node during render-build.
	Render func(n *Node)
	// GUI holds an immediate-mode overlay callback. No engine phase invokes
	// it.
	GUI func(n *Node)
	// Signal handles an incoming signal; see SignalFunc.
	Signal SignalFunc
}

// Node is a single entry in the scene tree. Nodes are always heap-allocated
// and referenced by pointer; EID exists to give stable, comparable identity
// to code that cannot hold a live pointer (signal targets, save data,
// cross-frame references).
type Node struct {
	id   EID
	eng  *Engine
	name string

	parent   *Node
	children []*Node

	actionCurrent Action
	actionNext    Action
	hasNextAction bool

	pos    mathx.Vec3
	scale  mathx.Vec3
	rot    mathx.Quat
	custom *mathx.Mat4

	InheritTransform bool

	color           Color
	specular        Color
	InheritColor    bool
	InheritSpecular bool

	flags NodeFlags

	tags            map[string]struct{}
	TagsInheritable bool

	Layer               int
	Priority            int
	AtomicSubtree       bool
	RenderAfterChildren bool
	ViewCulling         bool
	LocalRenderOrder    LocalRenderOrder

	// derived, recomputed during the tree-fold pass (see transform.go's
	// recomputeTree)
	worldMatrix  mathx.Mat4
	treeColor    Color
	treeSpecular Color
	treeFlags    NodeFlags
	treeTags     map[string]struct{}
	treeLayer    int
	treePriority int

	dirty bool

	ready   bool
	started bool

	hooks    Hooks
	UserData any
}

// NewNode creates a detached node owned by e. The node is not part of any
// tree and receives no ticks until attached via AddChild.
func (e *Engine) NewNode(name string) *Node {
	n := &Node{
		eng:              e,
		id:               e.eidAlloc.create(),
		name:             name,
		scale:            mathx.Vec3{X: 1, Y: 1, Z: 1},
		rot:              mathx.QuatIdentity,
		InheritTransform: true,
		color:            ColorWhite,
		specular:         ColorWhite,
		InheritColor:     true,
		InheritSpecular:  true,
		treeColor:        ColorWhite,
		treeSpecular:     ColorWhite,
		worldMatrix:      mathx.Mat4Identity,
		dirty:            true,
	}
	e.registerNode(n)
	return n
}

// ID returns the node's stable identity.
func (n *Node) ID() EID { return n.id }

// Name returns the node's (not necessarily unique) name.
func (n *Node) Name() string { return n.name }

// Parent returns the node's parent, or nil if detached or the root.
func (n *Node) Parent() *Node { return n.parent }

// IsLive reports whether n is attached to a tree and has not been disposed.
func (n *Node) IsLive() bool {
	if n.flags&(flagInvalid|flagMarkRemove) != 0 || n.eng == nil || !n.eng.eidAlloc.valid(n.id) {
		return false
	}
	top := n
	for top.parent != nil {
		top = top.parent
	}
	return top == n.eng.root
}

// IsMarkedRemove reports whether Remove has been called on n but deferred
// destruction has not yet run.
func (n *Node) IsMarkedRemove() bool { return n.flags&flagMarkRemove != 0 }

// IsInvalid reports whether n is no longer usable: Remove has been called
// (the mark is monotonic and never clears) or deferred destruction has
// already disposed it.
func (n *Node) IsInvalid() bool { return n.flags&(flagMarkRemove|flagInvalid) != 0 }

// Flags returns the node's own (non-tree-combined) flag bits.
func (n *Node) Flags() NodeFlags { return n.flags }

// SetFlags replaces n's own flag bits (the internal mark-remove/invalid bits
// are preserved) and marks n dirty so the tree-combined fold picks up the
// change next pass.
func (n *Node) SetFlags(f NodeFlags) {
	n.flags = (n.flags & (flagMarkRemove | flagInvalid)) | (f &^ (flagMarkRemove | flagInvalid))
	n.markDirty()
}

// TreeFlags returns the tree-combined flag bits as of the last fold pass.
func (n *Node) TreeFlags() NodeFlags { return n.treeFlags }

// Hooks returns a pointer to n's hook bundle so callers can assign
// individual function fields in place, e.g. n.Hooks().Step = myStep.
func (n *Node) Hooks() *Hooks { return &n.hooks }

// --- tree manipulation -----------------------------------------------------

// AddChild appends child as n's last child. A child that already has a
// parent is detached from it first; an attach that would create a cycle is
// refused.
func (n *Node) AddChild(child *Node) bool {
	return n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at index idx among n's children, clamping idx
// into [0, len(children)]. A child that already has a parent is detached
// from it first. Returns false if child is nil or n itself, or if attaching
// it would create a cycle (child is an ancestor of n).
func (n *Node) AddChildAt(child *Node, idx int) bool {
	if DebugMode() {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if child == nil || child == n {
		return false
	}
	if child.isAncestorOf(n) {
		return false
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(n.children) {
		idx = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	child.parent = n
	child.markDirty()
	if n.eng != nil {
		n.eng.pendingReady = append(n.eng.pendingReady, child)
	}
	if DebugMode() {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	return true
}

// isAncestorOf reports whether candidate is n itself or a descendant of n
// (used to refuse cycle-creating reparents).
func (n *Node) isAncestorOf(candidate *Node) bool {
	if candidate == n {
		return true
	}
	for _, c := range n.children {
		if c.isAncestorOf(candidate) {
			return true
		}
	}
	return false
}

// RemoveChild detaches child from n's child list without disposing it. The
// child becomes a detached, still-usable root.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.removeChildAt(i)
			return true
		}
	}
	return false
}

// RemoveChildAt detaches the child at idx. Panics if idx is out of range,
// matching slice semantics.
func (n *Node) RemoveChildAt(idx int) {
	n.removeChildAt(idx)
}

func (n *Node) removeChildAt(idx int) {
	child := n.children[idx]
	copy(n.children[idx:], n.children[idx+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil
	child.markDirty()
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// RemoveChildren detaches every child of n without disposing them.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
		c.markDirty()
	}
	n.children = n.children[:0]
}

// Children returns n's children in order. The returned slice must not be
// mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at idx, or nil if out of range.
func (n *Node) ChildAt(idx int) *Node {
	if idx < 0 || idx >= len(n.children) {
		return nil
	}
	return n.children[idx]
}

// FindChild returns the first direct child named name, or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// FindChildInTree returns the first descendant named name, or nil. At each
// node, all direct children are checked before the search descends into any
// of them.
func (n *Node) FindChildInTree(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	for _, c := range n.children {
		if found := c.FindChildInTree(name); found != nil {
			return found
		}
	}
	return nil
}

// TraverseParents calls fn for n and each ancestor up to (and including)
// the root, stopping early if fn returns false.
func (n *Node) TraverseParents(fn func(*Node) bool) {
	for cur := n; cur != nil; cur = cur.parent {
		if !fn(cur) {
			return
		}
	}
}

// TraverseChildren calls fn for n's descendants in pre-order, stopping the
// entire traversal early if fn returns false for any node.
func (n *Node) TraverseChildren(fn func(*Node) bool) bool {
	for _, c := range n.children {
		if !fn(c) {
			return false
		}
		if !c.TraverseChildren(fn) {
			return false
		}
	}
	return true
}

// --- tags -------------------------------------------------------------------

// AddTag adds tag to n's own tag set and marks n dirty so the tree-combined
// fold and tag index pick up the change on the next pass.
func (n *Node) AddTag(tag string) {
	if n.tags == nil {
		n.tags = make(map[string]struct{})
	}
	n.tags[tag] = struct{}{}
	n.markDirty()
}

// RemoveTag removes tag from n's own tag set.
func (n *Node) RemoveTag(tag string) {
	delete(n.tags, tag)
	n.markDirty()
}

// HasOwnTag reports whether tag is in n's own (not tree-combined) tag set.
func (n *Node) HasOwnTag(tag string) bool {
	_, ok := n.tags[tag]
	return ok
}

// HasTag reports whether tag is in n's tree-combined tag set as of the last
// fold pass.
func (n *Node) HasTag(tag string) bool {
	_, ok := n.treeTags[tag]
	return ok
}

// --- transform setters --------------------------------------------------

// Position returns n's local position.
func (n *Node) Position() mathx.Vec3 { return n.pos }

// SetPosition sets n's local position and marks n dirty.
func (n *Node) SetPosition(p mathx.Vec3) {
	n.pos = p
	n.markDirty()
}

// Scale returns n's local scale.
func (n *Node) Scale() mathx.Vec3 { return n.scale }

// SetScale sets n's local scale and marks n dirty.
func (n *Node) SetScale(s mathx.Vec3) {
	n.scale = s
	n.markDirty()
}

// Rotation returns n's local rotation.
func (n *Node) Rotation() mathx.Quat { return n.rot }

// SetRotation sets n's local rotation and marks n dirty.
func (n *Node) SetRotation(q mathx.Quat) {
	n.rot = q
	n.markDirty()
}

// SetCustomMatrix overrides n's local transform with m directly, ignoring
// position/scale/rotation until cleared via ClearCustomMatrix.
func (n *Node) SetCustomMatrix(m mathx.Mat4) {
	cp := m
	n.custom = &cp
	n.markDirty()
}

// ClearCustomMatrix reverts to the position/scale/rotation composition.
func (n *Node) ClearCustomMatrix() {
	n.custom = nil
	n.markDirty()
}

// WorldMatrix returns n's world matrix as of the last fold pass. Reading it
// does not itself trigger recomputation: the scheduler folds the whole tree
// once per frame, at the start of RenderBuild (see
// Engine.recomputeTreeAndTags).
func (n *Node) WorldMatrix() mathx.Mat4 { return n.worldMatrix }

// Color returns n's own (not tree-combined) colour.
func (n *Node) Color() Color { return n.color }

// SetColor sets n's own colour and marks n dirty.
func (n *Node) SetColor(c Color) {
	n.color = c
	n.markDirty()
}

// TreeColor returns n's tree-combined colour as of the last fold pass.
func (n *Node) TreeColor() Color { return n.treeColor }

func (n *Node) computeLocalMatrix() mathx.Mat4 {
	if n.custom != nil {
		return *n.custom
	}
	t := mathx.Mat4Translation(n.pos)
	r := n.rot.ToMat4()
	s := mathx.Mat4Scale(n.scale)
	return t.Mul(r).Mul(s)
}

// markDirty flags n as needing a transform/colour/tag/flag recompute on the
// next fold pass. It deliberately does not recurse into children: the fold
// pass forces a recompute of any descendant whose ancestor just recomputed,
// mirroring the teacher's markSubtreeDirty/updateWorldTransform split
// between "mark" and "propagate-on-walk".
func (n *Node) markDirty() {
	n.dirty = true
}

// --- lifecycle ------------------------------------------------------------

// Remove marks n and its subtree for destruction at the end of the current
// frame (spec's deferred-destruction phase). Safe to call more than once.
func (n *Node) Remove() {
	if n.flags&flagMarkRemove != 0 {
		return
	}
	n.flags |= flagMarkRemove
	if n.eng != nil {
		n.eng.pendingRemove = append(n.eng.pendingRemove, n)
	}
	for _, c := range n.children {
		c.Remove()
	}
}

// dispose releases n's own resources and severs its tree links. Called only
// by the scheduler's deferred-destruction sweep, after the removing
// callback has already observed n.
func (n *Node) dispose() {
	n.cancelAction()
	n.RemoveFromParent()
	n.children = nil
	n.flags |= flagInvalid
	if n.eng != nil {
		n.eng.cancelTarget(n.id)
		n.eng.eidAlloc.dispose(n.id)
	}
}
