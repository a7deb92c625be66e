package gfx

// mesh.go implements Mesh (spec 3, 4.G): append-only vertex and index
// arrays, submesh records, and a lazily-computed AABB invalidated on any
// vertex write. Adapted from the teacher's mesh.go (computeMeshAABB,
// meshAABBDirty, ensureTransformedVerts — the dirty-flag/high-water-mark
// conventions), generalized from willow's ebiten.Vertex-specific 2D layout
// to the spec's shared Vertex layout (position/diffuse/specular/uv0/uv1).

import "github.com/kazikikaziki/kamilo/mathx"

// Submesh names one draw range within a Mesh's shared vertex/index arrays.
type Submesh struct {
	Start     int
	Count     int
	Primitive PrimitiveType
	Material  *Material
}

// Mesh owns a vertex array and optional index array, plus a list of
// submesh records.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Submeshes []Submesh

	aabb      mathx.AABB
	aabbDirty bool
}

// NewMesh returns an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{aabbDirty: true}
}

// AppendVertices appends verts to the mesh's vertex array and marks the
// AABB dirty, returning the starting index the caller can use when
// building a submesh or index range.
func (m *Mesh) AppendVertices(verts []Vertex) int {
	start := len(m.Vertices)
	m.Vertices = append(m.Vertices, verts...)
	m.aabbDirty = true
	return start
}

// AppendIndices appends idx to the mesh's index array.
func (m *Mesh) AppendIndices(idx []uint32) {
	m.Indices = append(m.Indices, idx...)
}

// AddSubmesh appends a submesh record.
func (m *Mesh) AddSubmesh(s Submesh) {
	m.Submeshes = append(m.Submeshes, s)
}

// SetPositions bulk-writes the position channel of verts[from:from+len(xyz)]
// using a stride-aware path shared with SetColors/SetUVs (spec 4.G:
// "Position/colour/uv setters share a stride-aware bulk path").
func (m *Mesh) SetPositions(from int, xyz []mathx.Vec3) {
	m.bulkWrite(from, len(xyz), func(i int, v *Vertex) {
		v.X, v.Y, v.Z = float32(xyz[i].X), float32(xyz[i].Y), float32(xyz[i].Z)
	})
}

// SetColors bulk-writes the diffuse colour channel.
func (m *Mesh) SetColors(from int, colors []Color32) {
	m.bulkWrite(from, len(colors), func(i int, v *Vertex) { v.Diffuse = colors[i] })
}

// SetSpecular bulk-writes the specular colour channel.
func (m *Mesh) SetSpecular(from int, colors []Color32) {
	m.bulkWrite(from, len(colors), func(i int, v *Vertex) { v.Specular = colors[i] })
}

// SetUV0 bulk-writes the first UV channel.
func (m *Mesh) SetUV0(from int, uvs []mathx.Vec2) {
	m.bulkWrite(from, len(uvs), func(i int, v *Vertex) { v.U0, v.V0 = float32(uvs[i].X), float32(uvs[i].Y) })
}

// SetUV1 bulk-writes the second UV channel.
func (m *Mesh) SetUV1(from int, uvs []mathx.Vec2) {
	m.bulkWrite(from, len(uvs), func(i int, v *Vertex) { v.U1, v.V1 = float32(uvs[i].X), float32(uvs[i].Y) })
}

func (m *Mesh) bulkWrite(from, n int, write func(i int, v *Vertex)) {
	for i := 0; i < n && from+i < len(m.Vertices); i++ {
		write(i, &m.Vertices[from+i])
	}
	m.aabbDirty = true
}

// AABB returns the mesh's full bounding box, recomputing it if any vertex
// write has occurred since the last call.
func (m *Mesh) AABB() mathx.AABB {
	if m.aabbDirty {
		m.recomputeAABB()
	}
	return m.aabb
}

// AABBRange returns the bounding box of the contiguous vertex range
// [start, start+count), always recomputed (not cached, since a sub-range
// query is assumed infrequent relative to full-mesh queries).
func (m *Mesh) AABBRange(start, count int) mathx.AABB {
	end := start + count
	if end > len(m.Vertices) {
		end = len(m.Vertices)
	}
	if start >= end {
		return mathx.AABB{}
	}
	return boundsOf(m.Vertices[start:end])
}

func (m *Mesh) recomputeAABB() {
	m.aabb = boundsOf(m.Vertices)
	m.aabbDirty = false
}

func boundsOf(verts []Vertex) mathx.AABB {
	if len(verts) == 0 {
		return mathx.AABB{}
	}
	min := mathx.Vec3{X: float64(verts[0].X), Y: float64(verts[0].Y), Z: float64(verts[0].Z)}
	max := min
	for _, v := range verts[1:] {
		p := mathx.Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return mathx.AABB{Min: min, Max: max}
}
