package gfx

import (
	"testing"

	"github.com/kazikikaziki/kamilo/mathx"
)

func TestMeshAABBRecomputesOnWrite(t *testing.T) {
	m := NewMesh()
	m.AppendVertices([]Vertex{{X: -1, Y: -2, Z: 0}, {X: 3, Y: 4, Z: 5}})
	box := m.AABB()
	if box.Min != (mathx.Vec3{X: -1, Y: -2, Z: 0}) || box.Max != (mathx.Vec3{X: 3, Y: 4, Z: 5}) {
		t.Fatalf("AABB() = %+v", box)
	}

	m.SetPositions(0, []mathx.Vec3{{X: -10, Y: 0, Z: 0}})
	box = m.AABB()
	if box.Min.X != -10 {
		t.Fatalf("AABB() after SetPositions = %+v, want Min.X == -10", box)
	}
}

func TestMeshAABBRangeIsolatesSubmesh(t *testing.T) {
	m := NewMesh()
	m.AppendVertices([]Vertex{{X: 0}, {X: 1}, {X: 100}, {X: 101}})
	box := m.AABBRange(0, 2)
	if box.Max.X != 1 {
		t.Fatalf("AABBRange(0,2).Max.X = %v, want 1", box.Max.X)
	}
	box = m.AABBRange(2, 2)
	if box.Min.X != 100 {
		t.Fatalf("AABBRange(2,2).Min.X = %v, want 100", box.Min.X)
	}
}

func TestMaterialCompatible(t *testing.T) {
	tex := &Texture{}
	a := &Material{Texture: tex, Blend: BlendNormal, Filter: FilterLinear, Diffuse: Color{1, 1, 1, 1}}
	b := &Material{Texture: tex, Blend: BlendNormal, Filter: FilterLinear, Diffuse: Color{1, 1, 1, 0.999}}
	if !a.Compatible(b) {
		t.Fatalf("expected compatible materials within epsilon")
	}

	c := &Material{Texture: tex, Blend: BlendAdd, Filter: FilterLinear, Diffuse: Color{1, 1, 1, 1}}
	if a.Compatible(c) {
		t.Fatalf("expected different blend modes to be incompatible")
	}

	d := &Material{Texture: tex, Blend: BlendNormal, Filter: FilterLinear, Diffuse: Color{1, 1, 1, 1}, Callback: func(any) {}}
	if a.Compatible(d) {
		t.Fatalf("expected material with callback to never be compatible")
	}
}
