package motion

import "math"

// TriggerEvent is one item of a trigger source's event stream.
type TriggerEvent struct {
	Type EventType
	// Progress is the clamped scroll progress for EventProgress.
	Progress float64
	// Offset is the normalized pointer offset for EventOffset, each axis in [-1, 1].
	Offset Vec2
}

// TriggerSource observes one element for one trigger and emits events until
// disposed. Dispose releases every frame, scroll, and pointer subscription
// the source holds and is safe to call more than once.
type TriggerSource interface {
	Dispose()
	Disposed() bool
}

// surface is the observation environment shared by all sources of one
// Orchestrator: the frame clock, the viewport, and the latest pointer state.
type surface struct {
	clock    *FrameClock
	viewport *Viewport
	pointer  pointerState

	visibility []*viewportSource
	scratch    []*viewportSource
	flush      ClockHandle
}

// observe starts watching el for t. When the platform cannot observe the
// requested condition (no viewport), the source falls back to firing once
// like a mount trigger so the element still reaches its final state.
func (s *surface) observe(el *Element, t Trigger, emit func(TriggerEvent)) TriggerSource {
	switch t.Type {
	case TriggerViewport:
		if s.viewport == nil {
			Logger().Warn("viewport observation unavailable, firing on mount", "element", el.Name)
			return s.observeMount(emit)
		}
		vs := &viewportSource{surf: s, el: el, threshold: t.Threshold, once: t.Once, emit: emit}
		s.visibility = append(s.visibility, vs)
		s.requestFlush()
		return vs
	case TriggerScroll:
		if s.viewport == nil {
			Logger().Warn("scroll observation unavailable, firing on mount", "element", el.Name)
			return s.observeMount(emit)
		}
		ss := &scrollSource{surf: s, el: el, trigger: t, emit: emit, last: -1}
		ss.handle = s.clock.Subscribe(PhaseTrigger, ss.tick)
		return ss
	case TriggerPointer:
		ps := &pointerSource{surf: s, el: el, emit: emit}
		ps.handle = s.clock.Subscribe(PhaseTrigger, ps.tick)
		return ps
	case TriggerHover, TriggerPress:
		gs := &gestureSource{surf: s, el: el, press: t.Type == TriggerPress, emit: emit}
		gs.handle = s.clock.Subscribe(PhaseTrigger, gs.tick)
		return gs
	default:
		return s.observeMount(emit)
	}
}

func (s *surface) observeMount(emit func(TriggerEvent)) TriggerSource {
	ms := &mountSource{emit: emit}
	ms.handle = s.clock.Subscribe(PhaseTrigger, ms.tick)
	return ms
}

// requestFlush schedules one visibility pass in the next trigger phase.
// Repeated requests before that tick coalesce.
func (s *surface) requestFlush() {
	if s.flush.Active() || len(s.visibility) == 0 {
		return
	}
	s.flush = s.clock.Subscribe(PhaseTrigger, s.flushVisibility)
}

func (s *surface) flushVisibility(float64) {
	s.flush.Remove()
	s.flush = ClockHandle{}
	// Sources may dispose themselves while emitting.
	s.scratch = append(s.scratch[:0], s.visibility...)
	for _, vs := range s.scratch {
		vs.check()
	}
	clear(s.scratch)
}

func (s *surface) removeVisibility(vs *viewportSource) {
	for i, v := range s.visibility {
		if v == vs {
			copy(s.visibility[i:], s.visibility[i+1:])
			s.visibility[len(s.visibility)-1] = nil
			s.visibility = s.visibility[:len(s.visibility)-1]
			break
		}
	}
	if len(s.visibility) == 0 {
		s.flush.Remove()
		s.flush = ClockHandle{}
	}
}

// --- Mount ---

// mountSource emits a single fire on the first tick after registration.
type mountSource struct {
	emit     func(TriggerEvent)
	handle   ClockHandle
	disposed bool
}

func (m *mountSource) tick(float64) {
	if m.disposed {
		return
	}
	m.Dispose()
	m.emit(TriggerEvent{Type: EventFire})
}

func (m *mountSource) Dispose() {
	m.disposed = true
	m.handle.Remove()
}

func (m *mountSource) Disposed() bool { return m.disposed }

// --- Viewport ---

// viewportSource emits enter/exit as the element's visible fraction crosses
// its threshold.
type viewportSource struct {
	surf      *surface
	el        *Element
	threshold float64
	once      bool
	visible   bool
	emit      func(TriggerEvent)
	disposed  bool
}

func (v *viewportSource) check() {
	if v.disposed {
		return
	}
	if v.el.IsDisposed() {
		v.Dispose()
		return
	}
	frac := v.surf.viewport.VisibleFraction(v.el.Bounds())
	var vis bool
	if v.threshold == 0 {
		vis = frac > 0
	} else {
		vis = frac >= v.threshold
	}
	if vis == v.visible {
		return
	}
	v.visible = vis
	if vis {
		if v.once {
			v.Dispose()
		}
		v.emit(TriggerEvent{Type: EventEnter})
		return
	}
	v.emit(TriggerEvent{Type: EventExit})
}

func (v *viewportSource) Dispose() {
	if v.disposed {
		return
	}
	v.disposed = true
	v.surf.removeVisibility(v)
}

func (v *viewportSource) Disposed() bool { return v.disposed }

// --- Scroll ---

// scrollSource emits clamped scroll progress at most once per frame, and
// only when the value changed since the last emission.
type scrollSource struct {
	surf     *surface
	el       *Element
	trigger  Trigger
	emit     func(TriggerEvent)
	handle   ClockHandle
	last     float64
	disposed bool
}

func (s *scrollSource) tick(float64) {
	if s.disposed {
		return
	}
	if s.el.IsDisposed() {
		s.Dispose()
		return
	}
	p := s.progress()
	if p == s.last {
		return
	}
	s.last = p
	s.emit(TriggerEvent{Type: EventProgress, Progress: p})
}

// progress maps the current scroll offset into [0, 1] across the span.
func (s *scrollSource) progress() float64 {
	vp := s.surf.viewport
	var start, end float64
	switch s.trigger.Span {
	case SpanElement:
		b := s.el.Bounds()
		start = b.Y - vp.Height
		end = b.Y + b.Height
	case SpanPage:
		// A page that cannot scroll reports no progress.
		if vp.MaxScrollY() <= 0 {
			return 0
		}
		start, end = 0, vp.MaxScrollY()
	default:
		start, end = s.trigger.RangeStart, s.trigger.RangeEnd
	}
	return ScrollProgress(vp.ScrollY, start, end)
}

func (s *scrollSource) Dispose() {
	s.disposed = true
	s.handle.Remove()
}

func (s *scrollSource) Disposed() bool { return s.disposed }

// ScrollProgress returns clamp((pos-start)/(end-start), 0, 1). An empty
// range reports 0 before it and 1 at or past it.
func ScrollProgress(pos, start, end float64) float64 {
	if end == start {
		if pos >= end {
			return 1
		}
		return 0
	}
	return clamp01((pos - start) / (end - start))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
