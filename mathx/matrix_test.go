package mathx

import "testing"

func TestMat4TranslationTransformsPoint(t *testing.T) {
	m := Mat4Translation(Vec3{1, 2, 3})
	p := m.TransformPoint(Vec3{0, 0, 0})
	if p != (Vec3{1, 2, 3}) {
		t.Fatalf("TransformPoint = %+v, want {1 2 3}", p)
	}
}

func TestMat4ScaleTransformsVector(t *testing.T) {
	m := Mat4Scale(Vec3{2, 3, 4})
	v := m.TransformVector(Vec3{1, 1, 1})
	if v != (Vec3{2, 3, 4}) {
		t.Fatalf("TransformVector = %+v, want {2 3 4}", v)
	}
}

func TestMat4MulComposesTranslationThenScale(t *testing.T) {
	// world = T * S applied to a point: scale first, then translate.
	scale := Mat4Scale(Vec3{2, 2, 2})
	trans := Mat4Translation(Vec3{10, 0, 0})
	world := trans.Mul(scale)
	p := world.TransformPoint(Vec3{1, 1, 1})
	if p != (Vec3{12, 2, 2}) {
		t.Fatalf("TransformPoint = %+v, want {12 2 2}", p)
	}
}

func TestMat4IdentityInverseIsIdentity(t *testing.T) {
	inv, ok := Mat4Identity.Inverse()
	if !ok || inv != Mat4Identity {
		t.Fatalf("Inverse() = (%+v, %v), want (Identity, true)", inv, ok)
	}
}

func TestMat4TransposeRoundTrips(t *testing.T) {
	m := Mat4Translation(Vec3{1, 2, 3})
	if m.Transpose().Transpose() != m {
		t.Fatal("Transpose(Transpose(m)) != m")
	}
}

func TestMat4NearEqual(t *testing.T) {
	m := Mat4Translation(Vec3{1, 2, 3})
	o := m
	o[3] += 1e-9
	if !m.NearEqual(o, 1e-6) {
		t.Fatal("expected matrices within eps to compare equal")
	}
	o[3] += 1
	if m.NearEqual(o, 1e-6) {
		t.Fatal("expected matrices past eps to compare unequal")
	}
}
