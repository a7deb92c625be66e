package mathx

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// EaseFunc maps a normalized time t in [0, 1] to an eased fraction, typically
// also in [0, 1] (back/elastic variants legitimately overshoot).
type EaseFunc func(t float64) float64

// wrap adapts a Penner-style ease.TweenFunc (t, b, c, d float32) float32,
// the shape the teacher already depends on for TweenGroup, to a plain
// [0,1]->[0,1] EaseFunc.
func wrap(fn ease.TweenFunc) EaseFunc {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// The Penner family: 8 curves (Sine, Quad, Cubic, Quart, Quint, Expo, Circ,
// Back) each in In/Out/InOut variants, delegating to github.com/tanema/gween/ease
// so the easing catalogue reuses the exact curve math the teacher's tweens do.
var (
	EaseInSine    = wrap(ease.InSine)
	EaseOutSine   = wrap(ease.OutSine)
	EaseInOutSine = wrap(ease.InOutSine)

	EaseInQuad    = wrap(ease.InQuad)
	EaseOutQuad   = wrap(ease.OutQuad)
	EaseInOutQuad = wrap(ease.InOutQuad)

	EaseInCubic    = wrap(ease.InCubic)
	EaseOutCubic   = wrap(ease.OutCubic)
	EaseInOutCubic = wrap(ease.InOutCubic)

	EaseInQuart    = wrap(ease.InQuart)
	EaseOutQuart   = wrap(ease.OutQuart)
	EaseInOutQuart = wrap(ease.InOutQuart)

	EaseInQuint    = wrap(ease.InQuint)
	EaseOutQuint   = wrap(ease.OutQuint)
	EaseInOutQuint = wrap(ease.InOutQuint)

	EaseInExpo    = wrap(ease.InExpo)
	EaseOutExpo   = wrap(ease.OutExpo)
	EaseInOutExpo = wrap(ease.InOutExpo)

	EaseInCirc    = wrap(ease.InCirc)
	EaseOutCirc   = wrap(ease.OutCirc)
	EaseInOutCirc = wrap(ease.InOutCirc)

	EaseInBack    = wrap(ease.InBack)
	EaseOutBack   = wrap(ease.OutBack)
	EaseInOutBack = wrap(ease.InOutBack)
)

// EaseLinear is the identity easing function.
func EaseLinear(t float64) float64 { return t }

// EaseStep is a discontinuous step: 0 until t reaches 1, then 1.
func EaseStep(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 0
}

// EaseKeep holds at 0 for the entire interval; useful as a piecewise segment
// that freezes a value until the next key takes over.
func EaseKeep(t float64) float64 { return 0 }

// EaseOne is constant 1 for the entire interval.
func EaseOne(t float64) float64 { return 1 }

// EaseSmoothstep is the classic 3t²-2t³ smooth interpolant.
func EaseSmoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// EaseSmootherstep is Ken Perlin's 6t⁵-15t⁴+10t³ improved interpolant.
func EaseSmootherstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * t * (t*(t*6-15) + 10)
}

// Key is one control point of a piecewise animation curve.
type Key struct {
	Time  float64
	Value float64
	Ease  EaseFunc // interpolation used from this key to the next; nil means EaseLinear
}

// Animator evaluates a piecewise time-keyed curve: keys are sorted by time,
// and each segment is evaluated using the departing key's easing mode.
type Animator struct {
	keys []Key
}

// NewAnimator builds an Animator from keys, sorting them by time. A copy of
// the slice is kept so later caller mutation of the input does not affect it.
func NewAnimator(keys []Key) *Animator {
	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &Animator{keys: sorted}
}

// Eval returns the interpolated value at time t. Before the first key it
// returns the first key's value; after the last key it returns the last
// key's value.
func (a *Animator) Eval(t float64) float64 {
	n := len(a.keys)
	if n == 0 {
		return 0
	}
	if t <= a.keys[0].Time {
		return a.keys[0].Value
	}
	if t >= a.keys[n-1].Time {
		return a.keys[n-1].Value
	}
	for i := 0; i < n-1; i++ {
		k0, k1 := a.keys[i], a.keys[i+1]
		if t >= k0.Time && t <= k1.Time {
			span := k1.Time - k0.Time
			if span <= Epsilon {
				return k1.Value
			}
			fn := k0.Ease
			if fn == nil {
				fn = EaseLinear
			}
			local := (t - k0.Time) / span
			e := fn(local)
			return k0.Value + (k1.Value-k0.Value)*e
		}
	}
	return a.keys[n-1].Value
}
