package gfx

// drawlist.go implements the draw-list fuser (spec 4.H): a sequence of
// draw commands is built in submission order, adjacent commands sharing a
// compatible material/primitive/stencil/mask are fused into a single
// device draw call, and the fused list is later submitted to a Device.
// Adapted directly from the teacher's batch.go/render.go (commandBatchKey,
// appendSpriteQuad's index base-offset logic, mergeSort's stable
// ordering), generalized from willow's sprite-specific batching to the
// spec's general material-compatibility rule (4.G/4.H).

import "github.com/kazikikaziki/kamilo/mathx"

// stateEpsilon bounds the transform/projection equality test two batches
// must pass to fuse (spec 4.H: "transform/projection equal within eps").
const stateEpsilon = 1e-6

// DrawItem is one fused (or not-yet-fused) run of vertices sharing a
// single device draw call.
type DrawItem struct {
	Order      int64
	Primitive  PrimitiveType
	Material   *Material
	Transform  mathx.Mat4
	Projection mathx.Mat4
	Stencil    StencilState
	Mask       ColorWriteMask

	Vertices []Vertex
	Indices  []uint32
}

func (a *DrawItem) sameState(prim PrimitiveType, mat *Material, transform, projection mathx.Mat4, stencil StencilState, mask ColorWriteMask, indexed bool) bool {
	if a.Primitive != prim || a.Mask != mask {
		return false
	}
	if a.Stencil != stencil {
		return false
	}
	if !a.Material.Compatible(mat) {
		return false
	}
	if !a.Transform.NearEqual(transform, stateEpsilon) || !a.Projection.NearEqual(projection, stateEpsilon) {
		return false
	}
	// An indexed item is never fused with a non-indexed one (spec 4.H).
	if (len(a.Indices) > 0) != indexed {
		return false
	}
	// Strips and fans cannot be concatenated without altering their
	// connectivity (spec 4.H); only triangle/line lists fuse.
	return prim == PrimitiveTriangles || prim == PrimitiveLines
}

// DrawList accumulates DrawItems in submission order, fusing each new
// append into the previous item when state is compatible. The current
// transform and projection matrices are part of the list's state record
// (spec 4.H); each appended batch is stamped with them.
type DrawList struct {
	items []DrawItem
	order int64

	transform  mathx.Mat4
	projection mathx.Mat4

	// screenSource is the texture view of the frame's active render target,
	// installed once per frame by the host loop. Draw snapshots it into a
	// shader's screen-texture cache immediately before submitting any item
	// whose shader references that input (spec 4.G).
	screenSource *Texture
}

// NewDrawList returns an empty draw list with identity transform and
// projection.
func NewDrawList() *DrawList {
	return &DrawList{transform: mathx.Mat4Identity, projection: mathx.Mat4Identity}
}

// Reset clears the list for reuse, keeping backing storage. Transform and
// projection revert to identity; the screen source is dropped and must be
// reinstalled for the new frame.
func (d *DrawList) Reset() {
	d.items = d.items[:0]
	d.order = 0
	d.transform = mathx.Mat4Identity
	d.projection = mathx.Mat4Identity
	d.screenSource = nil
}

// SetScreenSource installs the texture view Draw snapshots for shaders
// referencing the screen-texture input. Call once per frame, after Reset,
// with the frame's active render target.
func (d *DrawList) SetScreenSource(t *Texture) { d.screenSource = t }

// SetTransform sets the model-view transform stamped onto subsequently
// appended batches.
func (d *DrawList) SetTransform(m mathx.Mat4) { d.transform = m }

// Transform returns the current model-view transform.
func (d *DrawList) Transform() mathx.Mat4 { return d.transform }

// SetProjection sets the projection stamped onto subsequently appended
// batches.
func (d *DrawList) SetProjection(m mathx.Mat4) { d.projection = m }

// Projection returns the current projection.
func (d *DrawList) Projection() mathx.Mat4 { return d.projection }

// NextOrder returns the next monotonic submission-order value and
// advances the counter. The value is stored in a new item's Order field;
// Draw submits items in insertion order and does not sort by it. Ordering
// by layer, priority, render-after-children and atomic subtree is decided
// before any command is added, by the root package's RenderBuild node
// sort.
func (d *DrawList) NextOrder() int64 {
	o := d.order
	d.order++
	return o
}

// Len returns the number of fused items currently in the list.
func (d *DrawList) Len() int { return len(d.items) }

// Items returns the fused draw items in submission order.
func (d *DrawList) Items() []DrawItem { return d.items }

// AddVertices appends a primitive batch, fusing it into the last item if
// compatible, or opening a new item otherwise.
func (d *DrawList) AddVertices(order int64, mat *Material, prim PrimitiveType, stencil StencilState, mask ColorWriteMask, verts []Vertex, indices []uint32) {
	if n := len(d.items); n > 0 {
		last := &d.items[n-1]
		if last.sameState(prim, mat, d.transform, d.projection, stencil, mask, len(indices) > 0) {
			base := uint32(len(last.Vertices))
			last.Vertices = append(last.Vertices, verts...)
			for _, idx := range indices {
				last.Indices = append(last.Indices, idx+base)
			}
			return
		}
	}
	item := DrawItem{
		Order:      order,
		Primitive:  prim,
		Material:   mat,
		Transform:  d.transform,
		Projection: d.projection,
		Stencil:    stencil,
		Mask:       mask,
		Vertices:   append([]Vertex(nil), verts...),
		Indices:    append([]uint32(nil), indices...),
	}
	d.items = append(d.items, item)
}

// AddMesh appends one submesh of mesh, re-basing its index range (if any)
// to the mesh's own local vertex indexing before handing off to
// AddVertices, so the caller never has to re-derive submesh index offsets
// itself.
func (d *DrawList) AddMesh(order int64, mat *Material, mesh *Mesh, sub Submesh, stencil StencilState, mask ColorWriteMask) {
	if mesh == nil || sub.Count <= 0 {
		return
	}
	end := sub.Start + sub.Count
	if end > len(mesh.Vertices) {
		end = len(mesh.Vertices)
	}
	if sub.Start >= end {
		return
	}
	verts := mesh.Vertices[sub.Start:end]

	if len(mesh.Indices) == 0 {
		d.AddVertices(order, mat, sub.Primitive, stencil, mask, verts, nil)
		return
	}

	// mesh.Indices are absolute into mesh.Vertices; re-base them relative
	// to sub.Start so AddVertices's own base-offset logic (relative to the
	// slice it receives) lines up.
	idx := make([]uint32, 0, len(mesh.Indices))
	for _, i := range mesh.Indices {
		if int(i) >= sub.Start && int(i) < end {
			idx = append(idx, i-uint32(sub.Start))
		}
	}
	d.AddVertices(order, mat, sub.Primitive, stencil, mask, verts, idx)
}

// Draw submits every fused item to dev in order. The caller is
// responsible for BeginScene/EndScene and any render-target/viewport
// setup around this call.
func (d *DrawList) Draw(dev Device) {
	for i := range d.items {
		item := &d.items[i]
		dev.SetProjection(item.Projection)
		dev.SetView(item.Transform)
		var tex DeviceTexture
		var shader DeviceShader
		if item.Material != nil {
			if item.Material.Texture != nil {
				tex = item.Material.Texture.handle
			}
			if item.Material.Shader != nil {
				if item.Material.Shader.UsesScreenTexture() {
					// Snapshot the target as it stands before this item's
					// pass, so the shader samples a copy and never the
					// active target itself.
					item.Material.Shader.PrepareScreenTexture(d.screenSource)
				}
				shader = item.Material.Shader.handle
			}
			dev.SetStencil(item.Stencil)
			dev.SetColorWriteMask(item.Mask)
			dev.SetBlend(item.Material.Blend)
			dev.SetFilter(item.Material.Filter)
			dev.SetAddress(item.Material.Wrap)
		}
		dev.DrawVertices(item.Vertices, item.Indices, item.Primitive, shader, tex)
	}
}
