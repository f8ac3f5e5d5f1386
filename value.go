package motion

import (
	"fmt"
	"math"
)

// maxComponents is the widest vector a Value can carry (e.g. an RGBA tint).
const maxComponents = 4

// Value is a resolved visual property value: either a scalar or a vector of
// 2 to 4 components. The zero Value carries no components and is treated as
// "missing" by validation.
type Value struct {
	n      uint8
	vector bool
	c      [maxComponents]float64
}

// Scalar returns a one-component scalar Value.
func Scalar(v float64) Value {
	return Value{n: 1, c: [maxComponents]float64{v}}
}

// Vec returns a two-component vector Value.
func Vec(x, y float64) Value {
	return Value{n: 2, vector: true, c: [maxComponents]float64{x, y}}
}

// Vector returns a vector Value with the given components. More than four
// components, or none, produce an invalid Value that fails validation.
func Vector(components ...float64) Value {
	if len(components) == 0 || len(components) > maxComponents {
		return Value{vector: true}
	}
	v := Value{n: uint8(len(components)), vector: true}
	copy(v.c[:], components)
	return v
}

// IsScalar reports whether v holds a single scalar.
func (v Value) IsScalar() bool { return v.n == 1 && !v.vector }

// IsZero reports whether v carries no components.
func (v Value) IsZero() bool { return v.n == 0 }

// Dim returns the number of components.
func (v Value) Dim() int { return int(v.n) }

// Float returns the first component. For scalars this is the value itself.
func (v Value) Float() float64 { return v.c[0] }

// At returns component i. Out-of-range indices return 0.
func (v Value) At(i int) float64 {
	if i < 0 || i >= int(v.n) {
		return 0
	}
	return v.c[i]
}

// Vec2 returns the first two components as a Vec2.
func (v Value) Vec2() Vec2 { return Vec2{X: v.c[0], Y: v.c[1]} }

// String formats the value for logs and test failures.
func (v Value) String() string {
	switch {
	case v.n == 0:
		return "<none>"
	case !v.vector:
		return fmt.Sprintf("%g", v.c[0])
	default:
		return fmt.Sprintf("%v", v.c[:v.n])
	}
}

// compatible reports whether a and b can be interpolated against each other.
func (v Value) compatible(o Value) bool {
	return v.n == o.n && v.vector == o.vector
}

// finite reports whether every component is a finite number.
func (v Value) finite() bool {
	for i := 0; i < int(v.n); i++ {
		if math.IsNaN(v.c[i]) || math.IsInf(v.c[i], 0) {
			return false
		}
	}
	return true
}

// lerpValue blends a toward b by t per component. a and b must be compatible.
func lerpValue(a, b Value, t float64) Value {
	out := a
	for i := 0; i < int(a.n); i++ {
		out.c[i] = a.c[i] + (b.c[i]-a.c[i])*t
	}
	return out
}
