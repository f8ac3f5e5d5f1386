package motion

import "math"

// Vec2 is a 2D vector used for positions, pointer offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in page coordinates. The origin is the
// top-left of the page, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersection returns the overlapping region of r and other. The result has
// zero width or height when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// NodeState is the lifecycle state of an AnimationNode.
type NodeState uint8

const (
	StateIdle    NodeState = iota // waiting for its trigger, output at start values
	StateArmed                    // triggered, start delay still pending
	StateRunning                  // interpolating toward its goal
	StateSettled                  // converged on its goal, no per-frame work
)

func (s NodeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateRunning:
		return "running"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of trigger event.
type EventType uint8

const (
	EventFire     EventType = iota // mount trigger fired
	EventEnter                     // element became visible past the threshold
	EventExit                      // element fell below the threshold
	EventProgress                  // scroll progress changed
	EventOffset                    // normalized pointer offset changed
)

func (e EventType) String() string {
	switch e {
	case EventFire:
		return "fire"
	case EventEnter:
		return "enter"
	case EventExit:
		return "exit"
	case EventProgress:
		return "progress"
	case EventOffset:
		return "offset"
	default:
		return "unknown"
	}
}

// Axis selects which pointer axis drives a scalar property.
type Axis uint8

const (
	AxisX Axis = iota // horizontal offset (default)
	AxisY             // vertical offset
)
