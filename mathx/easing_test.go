package mathx

import "testing"

func TestPennerEasingBoundaries(t *testing.T) {
	fns := []EaseFunc{
		EaseInSine, EaseOutSine, EaseInOutSine,
		EaseInQuad, EaseOutQuad, EaseInOutQuad,
		EaseInCubic, EaseOutCubic, EaseInOutCubic,
		EaseInQuart, EaseOutQuart, EaseInOutQuart,
		EaseInQuint, EaseOutQuint, EaseInOutQuint,
		EaseInExpo, EaseOutExpo, EaseInOutExpo,
		EaseInCirc, EaseOutCirc, EaseInOutCirc,
	}
	for i, fn := range fns {
		if got := fn(0); got < -0.001 || got > 0.001 {
			t.Errorf("fns[%d](0) = %v, want ~0", i, got)
		}
		if got := fn(1); got < 0.999 || got > 1.001 {
			t.Errorf("fns[%d](1) = %v, want ~1", i, got)
		}
	}
}

func TestEaseStepAndConstants(t *testing.T) {
	if EaseStep(0.5) != 0 || EaseStep(1) != 1 {
		t.Fatal("EaseStep must be 0 until t reaches 1")
	}
	if EaseKeep(0.9) != 0 {
		t.Fatal("EaseKeep must hold 0")
	}
	if EaseOne(0.1) != 1 {
		t.Fatal("EaseOne must hold 1")
	}
	if EaseLinear(0.37) != 0.37 {
		t.Fatal("EaseLinear must be the identity")
	}
}

func TestSmoothstepAndSmootherstepEndpoints(t *testing.T) {
	if EaseSmoothstep(0) != 0 || EaseSmoothstep(1) != 1 {
		t.Fatal("EaseSmoothstep endpoints must be 0 and 1")
	}
	if EaseSmootherstep(0) != 0 || EaseSmootherstep(1) != 1 {
		t.Fatal("EaseSmootherstep endpoints must be 0 and 1")
	}
	if got := EaseSmoothstep(0.5); got != 0.5 {
		t.Fatalf("EaseSmoothstep(0.5) = %v, want 0.5 (symmetric curve)", got)
	}
}

func TestAnimatorSortsKeysAndClampsRange(t *testing.T) {
	a := NewAnimator([]Key{
		{Time: 1, Value: 10},
		{Time: 0, Value: 0},
	})
	if got := a.Eval(-5); got != 0 {
		t.Fatalf("Eval before first key = %v, want 0", got)
	}
	if got := a.Eval(5); got != 10 {
		t.Fatalf("Eval after last key = %v, want 10", got)
	}
	if got := a.Eval(0.5); got != 5 {
		t.Fatalf("Eval(0.5) = %v, want 5 (linear midpoint)", got)
	}
}

func TestAnimatorPerKeyEasingMode(t *testing.T) {
	a := NewAnimator([]Key{
		{Time: 0, Value: 0, Ease: EaseStep},
		{Time: 1, Value: 10},
	})
	if got := a.Eval(0.5); got != 0 {
		t.Fatalf("Eval(0.5) with EaseStep segment = %v, want 0", got)
	}
	if got := a.Eval(1); got != 10 {
		t.Fatalf("Eval(1) = %v, want 10", got)
	}
}

func TestAnimatorEmpty(t *testing.T) {
	a := NewAnimator(nil)
	if a.Eval(0.5) != 0 {
		t.Fatal("empty animator must evaluate to 0")
	}
}
