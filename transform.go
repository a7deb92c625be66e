package kamilo

import "github.com/kazikikaziki/kamilo/mathx"

// transform.go folds per-node local state into tree-combined world
// transform, colour, flags, tags, and render order in a single top-down
// pass. Grounded on the teacher's transform.go (updateWorldTransform's
// parentRecomputed-forces-child-recompute cascade), generalized from 2D
// affine matrices to mathx.Mat4/Quat and extended to fold colour, flags,
// tags, and layer/priority alongside the transform in the same walk.

const foldableFlags = FlagNoEnable | FlagNoUpdate | FlagNoRender

// recomputeTree walks n and its descendants, recomputing any node whose own
// dirty flag is set or whose parent was just recomputed (force), and always
// recursing into children regardless (children may themselves be dirty even
// when n is not).
func recomputeTree(n *Node, parent *Node, force bool, tagIndex map[string][]*Node) {
	recompute := n.dirty || force
	if recompute {
		local := n.computeLocalMatrix()
		if n.InheritTransform && parent != nil {
			n.worldMatrix = parent.worldMatrix.Mul(local)
		} else {
			n.worldMatrix = local
		}

		if n.InheritColor && parent != nil {
			n.treeColor = parent.treeColor.Mul(n.color)
		} else {
			n.treeColor = n.color
		}
		if n.InheritSpecular && parent != nil {
			n.treeSpecular = parent.treeSpecular.Mul(n.specular)
		} else {
			n.treeSpecular = n.specular
		}

		if parent != nil {
			n.treeFlags = n.flags | (parent.treeFlags & foldableFlags)
		} else {
			n.treeFlags = n.flags
		}

		n.treeTags = foldTags(n, parent)

		switch n.LocalRenderOrder {
		case RenderOrderTree:
			n.treeLayer = n.Layer
			n.treePriority = n.Priority
		default:
			if parent != nil {
				n.treeLayer = parent.treeLayer
				n.treePriority = parent.treePriority
			} else {
				n.treeLayer = n.Layer
				n.treePriority = n.Priority
			}
		}

		n.dirty = false
	}

	if tagIndex != nil && n.IsLive() {
		for tag := range n.treeTags {
			tagIndex[tag] = append(tagIndex[tag], n)
		}
	}

	for _, c := range n.children {
		recomputeTree(c, n, recompute, tagIndex)
	}
}

// foldTags computes n's tree-combined tag set: n's own tags, plus the
// parent's tree-combined tags if the parent has opted its own tags into
// inheritance (spec 4.D: "ancestor marks its own tags as inheritable").
func foldTags(n, parent *Node) map[string]struct{} {
	if len(n.tags) == 0 && (parent == nil || !parent.TagsInheritable || len(parent.treeTags) == 0) {
		return nil
	}
	out := make(map[string]struct{}, len(n.tags))
	for t := range n.tags {
		out[t] = struct{}{}
	}
	if parent != nil && parent.TagsInheritable {
		for t := range parent.treeTags {
			out[t] = struct{}{}
		}
	}
	return out
}

// WorldToLocal converts a world-space point into n's local coordinate
// space, using n's world matrix as of the last fold pass.
func (n *Node) WorldToLocal(p mathx.Vec3) (mathx.Vec3, bool) {
	inv, ok := n.worldMatrix.Inverse()
	if !ok {
		return mathx.Vec3{}, false
	}
	return inv.TransformPoint(p), true
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p mathx.Vec3) mathx.Vec3 {
	return n.worldMatrix.TransformPoint(p)
}
