package motion

import (
	"math"

	"github.com/tanema/gween/ease"
)

// CubicBezier is a CSS-style timing curve through (0,0), (X1,Y1), (X2,Y2),
// (1,1). X1 and X2 must lie in [0, 1]; Y values may overshoot for
// anticipation and bounce effects.
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// Valid reports whether the control points describe a monotonic-in-x curve.
func (b CubicBezier) Valid() bool {
	for _, v := range [4]float64{b.X1, b.Y1, b.X2, b.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.X1 >= 0 && b.X1 <= 1 && b.X2 >= 0 && b.X2 <= 1
}

// At returns the eased output for progress x in [0, 1].
func (b CubicBezier) At(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	cx := 3 * b.X1
	bx := 3*(b.X2-b.X1) - cx
	ax := 1 - cx - bx
	cy := 3 * b.Y1
	by := 3*(b.Y2-b.Y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleDX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	// Newton-Raphson first, bisection if the slope is too flat.
	t := x
	for i := 0; i < 8; i++ {
		err := sampleX(t) - x
		if math.Abs(err) < 1e-7 {
			return ((ay*t+by)*t + cy) * t
		}
		d := sampleDX(t)
		if math.Abs(d) < 1e-6 {
			break
		}
		t -= err / d
	}
	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < 64 && hi-lo > 1e-9; i++ {
		if sampleX(t) < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return ((ay*t+by)*t + cy) * t
}

// TweenFunc adapts the curve to gween's easing signature.
func (b CubicBezier) TweenFunc() ease.TweenFunc {
	return func(t, begin, change, duration float32) float32 {
		if duration <= 0 {
			return begin + change
		}
		return begin + change*float32(b.At(float64(t/duration)))
	}
}

// CSS keyword curves.
var (
	EaseCSS      = CubicBezier{0.25, 0.1, 0.25, 1}
	EaseInCSS    = CubicBezier{0.42, 0, 1, 1}
	EaseOutCSS   = CubicBezier{0, 0, 0.58, 1}
	EaseInOutCSS = CubicBezier{0.42, 0, 0.58, 1}
	namedEasings = map[string]ease.TweenFunc{
		"linear":       ease.Linear,
		"ease":         EaseCSS.TweenFunc(),
		"easeIn":       EaseInCSS.TweenFunc(),
		"easeOut":      EaseOutCSS.TweenFunc(),
		"easeInOut":    EaseInOutCSS.TweenFunc(),
		"inQuad":       ease.InQuad,
		"outQuad":      ease.OutQuad,
		"inOutQuad":    ease.InOutQuad,
		"inCubic":      ease.InCubic,
		"outCubic":     ease.OutCubic,
		"inOutCubic":   ease.InOutCubic,
		"inSine":       ease.InSine,
		"outSine":      ease.OutSine,
		"inOutSine":    ease.InOutSine,
		"inExpo":       ease.InExpo,
		"outExpo":      ease.OutExpo,
		"inOutExpo":    ease.InOutExpo,
		"inBack":       ease.InBack,
		"outBack":      ease.OutBack,
		"inOutBack":    ease.InOutBack,
		"outBounce":    ease.OutBounce,
		"outElastic":   ease.OutElastic,
		"inOutElastic": ease.InOutElastic,
	}
)

// EasingByName returns a built-in easing: the CSS keywords ("ease",
// "easeInOut", ...) or one of gween's Penner curves ("outCubic", ...).
func EasingByName(name string) (ease.TweenFunc, bool) {
	fn, ok := namedEasings[name]
	return fn, ok
}

// easeProgress evaluates fn as a normalized curve: progress in, eased
// progress out.
func easeProgress(fn ease.TweenFunc, p float64) float64 {
	if fn == nil {
		return p
	}
	return float64(fn(float32(p), 0, 1, 1))
}
