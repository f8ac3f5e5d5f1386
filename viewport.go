package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds an active eased scroll-to.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// glideAnim holds an active spring-smoothed scroll-to.
type glideAnim struct {
	targetX, targetY float64
	velX, velY       float64
	frequency        float64
	dampingRatio     float64
	spring           harmonica.Spring
	springDT         float64
}

// glideRest is the distance and speed, in pixels, below which a glide snaps
// onto its target.
const glideRest = 0.5

// Viewport is the visible window onto the page: its size and scroll offset.
// Visibility and scroll triggers read it; the host writes it through the
// Orchestrator so triggers observe every change.
type Viewport struct {
	// ScrollX and ScrollY are the page coordinates of the viewport's top-left.
	ScrollX, ScrollY float64
	// Width and Height are the viewport size in page units.
	Width, Height float64

	// BoundsEnabled clamps scrolling so the viewport stays within Bounds.
	BoundsEnabled bool
	// Bounds is the page extent used for clamping and page-scroll progress.
	Bounds Rect

	scroll *scrollAnim
	glide  *glideAnim
}

// NewViewport returns a viewport of the given size scrolled to the top.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// SetBounds enables scroll clamping to the given page extent.
func (v *Viewport) SetBounds(bounds Rect) {
	v.BoundsEnabled = true
	v.Bounds = bounds
}

// ClearBounds disables scroll clamping.
func (v *Viewport) ClearBounds() {
	v.BoundsEnabled = false
}

// VisibleBounds returns the visible area in page coordinates.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{X: v.ScrollX, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// VisibleFraction returns the fraction of r's area inside the viewport, in
// [0, 1]. Degenerate rectangles count as fully visible when they lie inside
// the viewport.
func (v *Viewport) VisibleFraction(r Rect) float64 {
	vis := v.VisibleBounds()
	if r.Area() <= 0 {
		if vis.Intersects(r) {
			return 1
		}
		return 0
	}
	return vis.Intersection(r).Area() / r.Area()
}

// ScreenToPage converts viewport-relative coordinates to page coordinates.
func (v *Viewport) ScreenToPage(sx, sy float64) (px, py float64) {
	return sx + v.ScrollX, sy + v.ScrollY
}

// PageToScreen converts page coordinates to viewport-relative coordinates.
func (v *Viewport) PageToScreen(px, py float64) (sx, sy float64) {
	return px - v.ScrollX, py - v.ScrollY
}

// MaxScrollY returns the largest vertical scroll offset allowed by Bounds.
// Without bounds it returns 0.
func (v *Viewport) MaxScrollY() float64 {
	if !v.BoundsEnabled {
		return 0
	}
	return math.Max(0, v.Bounds.Y+v.Bounds.Height-v.Height)
}

// ScrollTo animates the scroll offset to (x, y) over duration seconds. The
// target is clamped to Bounds. It replaces any scroll animation in progress.
func (v *Viewport) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	x, y = v.clampPoint(x, y)
	v.glide = nil
	v.scroll = &scrollAnim{
		tweenX: gween.New(float32(v.ScrollX), float32(x), duration, easeFn),
		tweenY: gween.New(float32(v.ScrollY), float32(y), duration, easeFn),
	}
}

// GlideTo springs the scroll offset toward (x, y). frequency is the angular
// frequency in radians per second and dampingRatio 1 is critically damped.
// The target is clamped to Bounds. It replaces any scroll animation in
// progress.
func (v *Viewport) GlideTo(x, y, frequency, dampingRatio float64) {
	x, y = v.clampPoint(x, y)
	v.scroll = nil
	v.glide = &glideAnim{
		targetX:      x,
		targetY:      y,
		frequency:    frequency,
		dampingRatio: dampingRatio,
	}
}

// Animating reports whether a ScrollTo or GlideTo is in progress.
func (v *Viewport) Animating() bool {
	return v.scroll != nil || v.glide != nil
}

// StopScroll cancels any scroll animation, leaving the offset where it is.
func (v *Viewport) StopScroll() {
	v.scroll = nil
	v.glide = nil
}

// ClampToBounds clamps the scroll offset to Bounds. No-op if BoundsEnabled
// is false.
func (v *Viewport) ClampToBounds() {
	if v.BoundsEnabled {
		v.clampToBounds()
	}
}

// update advances scroll animations and clamping. It reports whether the
// scroll offset changed.
func (v *Viewport) update(dt float64) bool {
	prevX, prevY := v.ScrollX, v.ScrollY

	if v.scroll != nil {
		if !v.scroll.doneX {
			val, done := v.scroll.tweenX.Update(float32(dt))
			v.ScrollX = float64(val)
			v.scroll.doneX = done
		}
		if !v.scroll.doneY {
			val, done := v.scroll.tweenY.Update(float32(dt))
			v.ScrollY = float64(val)
			v.scroll.doneY = done
		}
		if v.scroll.doneX && v.scroll.doneY {
			v.scroll = nil
		}
	}

	if g := v.glide; g != nil && dt > 0 {
		if g.springDT != dt {
			g.spring = harmonica.NewSpring(dt, g.frequency, g.dampingRatio)
			g.springDT = dt
		}
		v.ScrollX, g.velX = g.spring.Update(v.ScrollX, g.velX, g.targetX)
		v.ScrollY, g.velY = g.spring.Update(v.ScrollY, g.velY, g.targetY)
		if math.Abs(g.targetX-v.ScrollX) < glideRest && math.Abs(g.targetY-v.ScrollY) < glideRest &&
			math.Abs(g.velX) < glideRest && math.Abs(g.velY) < glideRest {
			v.ScrollX, v.ScrollY = g.targetX, g.targetY
			v.glide = nil
		}
	}

	if v.BoundsEnabled {
		v.clampToBounds()
	}
	return v.ScrollX != prevX || v.ScrollY != prevY
}

// clampToBounds restricts the scroll offset so the visible area stays within Bounds.
func (v *Viewport) clampToBounds() {
	v.ScrollX, v.ScrollY = v.clampPoint(v.ScrollX, v.ScrollY)
}

// clampPoint restricts a scroll offset to Bounds. No-op if BoundsEnabled is
// false.
func (v *Viewport) clampPoint(x, y float64) (float64, float64) {
	if !v.BoundsEnabled {
		return x, y
	}
	minX := v.Bounds.X
	maxX := v.Bounds.X + v.Bounds.Width - v.Width
	minY := v.Bounds.Y
	maxY := v.Bounds.Y + v.Bounds.Height - v.Height

	if minX > maxX {
		x = minX
	} else {
		x = math.Max(minX, math.Min(x, maxX))
	}
	if minY > maxY {
		y = minY
	} else {
		y = math.Max(minY, math.Min(y, maxY))
	}
	return x, y
}
