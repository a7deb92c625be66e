package mathx

import "testing"

func almostEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestVec3NormalizedZero(t *testing.T) {
	v, ok := Vec3{}.Normalized()
	if ok {
		t.Fatalf("expected failure normalizing zero vector, got %v", v)
	}
	if v != (Vec3{}) {
		t.Fatalf("output must be untouched (zero) on failure, got %v", v)
	}
}

func TestVec3NormalizedUnit(t *testing.T) {
	v, ok := Vec3{3, 4, 0}.Normalized()
	if !ok {
		t.Fatal("expected success")
	}
	if !almostEqual(v.Len(), 1, 1e-9) {
		t.Fatalf("expected unit length, got %v", v.Len())
	}
}

func TestRepeatI(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 4, 0},
		{5, 4, 1},
		{-1, 4, 3},
		{-5, 4, 3},
		{4, 4, 0},
	}
	for _, c := range cases {
		got := RepeatI(c.a, c.b)
		if got != c.want {
			t.Errorf("RepeatI(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
		if got < 0 || got >= c.b {
			t.Errorf("RepeatI(%d,%d) = %d out of [0,%d)", c.a, c.b, got, c.b)
		}
	}
}

func TestRepeatIRandomized(t *testing.T) {
	for a := -1000; a <= 1000; a += 7 {
		got := RepeatI(a, 17)
		if got < 0 || got >= 17 {
			t.Fatalf("RepeatI(%d,17) = %d out of range", a, got)
		}
	}
}
