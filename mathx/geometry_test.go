package mathx

import (
	"math"
	"testing"
)

func TestAABBRayTestHitAndMiss(t *testing.T) {
	box := AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	r := Ray{Origin: Vec3{-5, 0, 0}, Dir: Vec3{1, 0, 0}}
	dist, ok := box.RayTest(r)
	if !ok || dist != 4 {
		t.Fatalf("RayTest hit = (%v, %v), want (4, true)", dist, ok)
	}

	miss := Ray{Origin: Vec3{-5, 5, 0}, Dir: Vec3{1, 0, 0}}
	if _, ok := box.RayTest(miss); ok {
		t.Fatal("RayTest reported a hit for a parallel miss ray")
	}
}

func TestAABBRayTestOriginInsideReturnsExit(t *testing.T) {
	box := AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	r := Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{1, 0, 0}}
	dist, ok := box.RayTest(r)
	if !ok || dist != 1 {
		t.Fatalf("RayTest from inside = (%v, %v), want (1, true)", dist, ok)
	}
}

func TestSphereRayTest(t *testing.T) {
	s := Sphere{Center: Vec3{0, 0, 0}, Radius: 2}
	r := Ray{Origin: Vec3{-10, 0, 0}, Dir: Vec3{1, 0, 0}}
	dist, ok := s.RayTest(r)
	if !ok || dist != 8 {
		t.Fatalf("RayTest = (%v, %v), want (8, true)", dist, ok)
	}

	miss := Ray{Origin: Vec3{-10, 10, 0}, Dir: Vec3{1, 0, 0}}
	if _, ok := s.RayTest(miss); ok {
		t.Fatal("RayTest reported a hit for a clear miss")
	}
}

func TestSphereTestOverlap(t *testing.T) {
	a := Sphere{Center: Vec3{0, 0, 0}, Radius: 1}
	b := Sphere{Center: Vec3{1.5, 0, 0}, Radius: 1}
	if !a.SphereTest(b) {
		t.Fatal("expected overlapping spheres")
	}
	c := Sphere{Center: Vec3{10, 0, 0}, Radius: 1}
	if a.SphereTest(c) {
		t.Fatal("expected non-overlapping spheres")
	}
}

func TestPerpendicularFootClampsToSegment(t *testing.T) {
	foot := PerpendicularFoot(Vec3{0, 0, 0}, Vec3{10, 0, 0}, Vec3{5, 5, 0})
	if foot != (Vec3{5, 0, 0}) {
		t.Fatalf("PerpendicularFoot = %+v, want {5 0 0}", foot)
	}
	beyond := PerpendicularFoot(Vec3{0, 0, 0}, Vec3{10, 0, 0}, Vec3{50, 5, 0})
	if beyond != (Vec3{10, 0, 0}) {
		t.Fatalf("PerpendicularFoot beyond segment = %+v, want clamp to {10 0 0}", beyond)
	}
}

func TestTriangleContainsPoint(t *testing.T) {
	a, b, c := Vec3{0, 0, 0}, Vec3{4, 0, 0}, Vec3{0, 4, 0}
	normal := Vec3{0, 0, 1}
	if !TriangleContainsPoint(a, b, c, Vec3{1, 1, 0}, normal) {
		t.Fatal("expected interior point to be contained")
	}
	// On-edge and on-vertex points are treated as inside (spec 4.A).
	if !TriangleContainsPoint(a, b, c, Vec3{2, 0, 0}, normal) {
		t.Fatal("expected on-edge point to be contained")
	}
	if !TriangleContainsPoint(a, b, c, a, normal) {
		t.Fatal("expected on-vertex point to be contained")
	}
	if TriangleContainsPoint(a, b, c, Vec3{10, 10, 0}, normal) {
		t.Fatal("expected outside point to be rejected")
	}
}

func TestTriangleContainsPointDegenerateIsNeverInside(t *testing.T) {
	// Collinear points form a zero-area triangle.
	a, b, c := Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{2, 0, 0}
	normal := Vec3{0, 0, 1}
	if TriangleContainsPoint(a, b, c, Vec3{1, 0, 0}, normal) {
		t.Fatal("degenerate triangle must report not-inside")
	}
}

func TestPlaneRayTest(t *testing.T) {
	// The plane z = 5, hit head-on from the origin.
	p := Plane{Normal: Vec3{0, 0, 1}, D: -5}
	r := Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{0, 0, 1}}
	if d, ok := p.RayTest(r); !ok || d != 5 {
		t.Fatalf("RayTest() = (%v, %v), want (5, true)", d, ok)
	}
	// Pointing away: the crossing is behind the origin.
	if _, ok := p.RayTest(Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{0, 0, -1}}); ok {
		t.Fatal("expected miss for a ray pointing away from the plane")
	}
	// Parallel ray.
	if _, ok := p.RayTest(Ray{Origin: Vec3{0, 0, 0}, Dir: Vec3{1, 0, 0}}); ok {
		t.Fatal("expected miss for a ray parallel to the plane")
	}
}

func TestCapsuleDistanceToPoint(t *testing.T) {
	c := Capsule{A: Vec3{0, 0, 0}, B: Vec3{10, 0, 0}, Radius: 2}
	if d := c.DistanceToPoint(Vec3{5, 5, 0}); math.Abs(d-3) > 1e-12 {
		t.Fatalf("DistanceToPoint(mid side) = %v, want 3", d)
	}
	// Beyond an endpoint the nearest feature is the cap sphere.
	if d := c.DistanceToPoint(Vec3{13, 0, 0}); math.Abs(d-1) > 1e-12 {
		t.Fatalf("DistanceToPoint(past end) = %v, want 1", d)
	}
	// Inside reports negative.
	if d := c.DistanceToPoint(Vec3{5, 0, 0}); d >= 0 {
		t.Fatalf("DistanceToPoint(axis point) = %v, want negative", d)
	}
}

func TestCapsuleSphereTest(t *testing.T) {
	c := Capsule{A: Vec3{0, 0, 0}, B: Vec3{10, 0, 0}, Radius: 1}
	if !c.SphereTest(Sphere{Center: Vec3{5, 2, 0}, Radius: 1}) {
		t.Fatal("expected touching sphere to overlap")
	}
	if c.SphereTest(Sphere{Center: Vec3{5, 5, 0}, Radius: 1}) {
		t.Fatal("expected distant sphere to miss")
	}
}

func TestCapsuleRayTest(t *testing.T) {
	c := Capsule{A: Vec3{0, 0, 0}, B: Vec3{10, 0, 0}, Radius: 1}
	// Straight down onto the middle of the body.
	if d, ok := c.RayTest(Ray{Origin: Vec3{5, 5, 0}, Dir: Vec3{0, -1, 0}}); !ok || math.Abs(d-4) > 1e-9 {
		t.Fatalf("RayTest(body) = (%v, %v), want (4, true)", d, ok)
	}
	// Along the axis into the A end cap.
	if d, ok := c.RayTest(Ray{Origin: Vec3{-5, 0, 0}, Dir: Vec3{1, 0, 0}}); !ok || math.Abs(d-4) > 1e-9 {
		t.Fatalf("RayTest(cap) = (%v, %v), want (4, true)", d, ok)
	}
	if _, ok := c.RayTest(Ray{Origin: Vec3{5, 5, 0}, Dir: Vec3{0, 1, 0}}); ok {
		t.Fatal("expected miss for a ray pointing away")
	}
}
