package mathx

import (
	"math"
	"testing"
)

func TestQuatFromAxisAngleZeroAxis(t *testing.T) {
	q, ok := QuatFromAxisAngle(Vec3{}, math.Pi)
	if ok {
		t.Fatal("expected failure for zero axis")
	}
	if q != QuatIdentity {
		t.Fatalf("expected identity on failure, got %v", q)
	}
}

func TestSlerpBoundaries(t *testing.T) {
	a, _ := QuatFromAxisAngle(Vec3{0, 1, 0}, 0)
	b, _ := QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)

	at0 := Slerp(a, b, 0)
	if !almostEqual(at0.Dot(a), 1, 1e-6) {
		t.Fatalf("Slerp(a,b,0) should equal a, got %v", at0)
	}
	at1 := Slerp(a, b, 1)
	// at t=1 the result represents the same rotation as b, possibly negated.
	if !almostEqual(math.Abs(at1.Dot(b)), 1, 1e-6) {
		t.Fatalf("Slerp(a,b,1) should equal b (up to sign), got %v", at1)
	}
}

func TestSlerpShorterArc(t *testing.T) {
	a := Quat{0, 0, 0, 1}
	b := Quat{0, 0, 0, -1} // same rotation as a, negated -> dot < 0
	mid := Slerp(a, b, 0.5)
	if mid.Dot(a) < 0 {
		t.Fatalf("slerp did not take shorter arc: %v", mid)
	}
}

func TestMat4InverseSingular(t *testing.T) {
	var singular Mat4 // all zero: determinant 0
	inv, ok := singular.Inverse()
	if ok {
		t.Fatal("expected failure inverting singular matrix")
	}
	if inv != Mat4Identity {
		t.Fatalf("expected identity on failure, got %v", inv)
	}
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := Mat4Translation(Vec3{1, 2, 3}).Mul(Mat4Scale(Vec3{2, 2, 2}))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected success inverting non-singular matrix")
	}
	id := m.Mul(inv)
	for i, v := range Mat4Identity {
		if !almostEqual(id[i], v, 1e-6) {
			t.Fatalf("m * m^-1 != identity at %d: got %v", i, id)
		}
	}
}
