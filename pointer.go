package motion

import "math"

// pointerState is the most recent pointer position reported by the host, in
// viewport coordinates. Moves within one frame coalesce: sources only ever
// see the latest position.
type pointerState struct {
	x, y    float64
	present bool
	pressed bool
}

// pointerPage returns the pointer in page coordinates.
func (s *surface) pointerPage() (float64, float64) {
	if s.viewport == nil {
		return s.pointer.x, s.pointer.y
	}
	return s.viewport.ScreenToPage(s.pointer.x, s.pointer.y)
}

// pointerSource emits the pointer offset from the element center while the
// pointer is over the element, and a single (0, 0) when it leaves.
type pointerSource struct {
	surf     *surface
	el       *Element
	emit     func(TriggerEvent)
	handle   ClockHandle
	inside   bool
	last     Vec2
	disposed bool
}

func (p *pointerSource) tick(float64) {
	if p.disposed {
		return
	}
	if p.el.IsDisposed() {
		p.Dispose()
		return
	}
	b := p.el.Bounds()
	px, py := p.surf.pointerPage()
	inside := p.surf.pointer.present && b.Contains(px, py)
	if !inside {
		if p.inside {
			p.inside = false
			p.last = Vec2{}
			p.emit(TriggerEvent{Type: EventOffset})
		}
		return
	}
	off := PointerOffset(b, px, py)
	if p.inside && off == p.last {
		return
	}
	p.inside = true
	p.last = off
	p.emit(TriggerEvent{Type: EventOffset, Offset: off})
}

func (p *pointerSource) Dispose() {
	p.disposed = true
	p.handle.Remove()
}

func (p *pointerSource) Disposed() bool { return p.disposed }

// gestureSource emits enter when the pointer starts hovering (or pressing)
// the element and exit when that stops. Like the pointer source it samples
// the latest pointer state once per frame, so a move and release inside one
// frame coalesce.
type gestureSource struct {
	surf     *surface
	el       *Element
	press    bool
	emit     func(TriggerEvent)
	handle   ClockHandle
	active   bool
	disposed bool
}

func (g *gestureSource) tick(float64) {
	if g.disposed {
		return
	}
	if g.el.IsDisposed() {
		g.Dispose()
		return
	}
	ptr := g.surf.pointer
	px, py := g.surf.pointerPage()
	active := ptr.present && g.el.Bounds().Contains(px, py)
	if g.press {
		active = active && ptr.pressed
	}
	if active == g.active {
		return
	}
	g.active = active
	if active {
		g.emit(TriggerEvent{Type: EventEnter})
		return
	}
	g.emit(TriggerEvent{Type: EventExit})
}

func (g *gestureSource) Dispose() {
	g.disposed = true
	g.handle.Remove()
}

func (g *gestureSource) Disposed() bool { return g.disposed }

// PointerOffset normalizes (x, y) against the center of r using its
// half-width and half-height, clamping each axis to [-1, 1]. A degenerate
// axis reports 0.
func PointerOffset(r Rect, x, y float64) Vec2 {
	c := r.Center()
	var off Vec2
	if hw := r.Width / 2; hw > 0 {
		off.X = math.Max(-1, math.Min(1, (x-c.X)/hw))
	}
	if hh := r.Height / 2; hh > 0 {
		off.Y = math.Max(-1, math.Min(1, (y-c.Y)/hh))
	}
	return off
}
