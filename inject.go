package motion

type syntheticKind uint8

const (
	synthScroll syntheticKind = iota
	synthPointer
	synthLeave
	synthResize
	synthPress
	synthRelease
)

// syntheticEvent is a single injected host event. Coordinates are in
// viewport space for pointer events and page space for scroll events,
// identical to what a real host reports.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectScroll queues a scroll to (x, y). The event is consumed by the next
// Update call.
func (o *Orchestrator) InjectScroll(x, y float64) {
	o.injectQueue = append(o.injectQueue, syntheticEvent{kind: synthScroll, x: x, y: y})
}

// InjectPointer queues a pointer move at viewport coordinates (x, y).
func (o *Orchestrator) InjectPointer(x, y float64) {
	o.injectQueue = append(o.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y})
}

// InjectPointerLeave queues the pointer leaving the viewport.
func (o *Orchestrator) InjectPointerLeave() {
	o.injectQueue = append(o.injectQueue, syntheticEvent{kind: synthLeave})
}

// InjectPointerPress queues the primary button going down (true) or up.
func (o *Orchestrator) InjectPointerPress(down bool) {
	kind := synthRelease
	if down {
		kind = synthPress
	}
	o.injectQueue = append(o.injectQueue, syntheticEvent{kind: kind})
}

// InjectResize queues a viewport resize.
func (o *Orchestrator) InjectResize(width, height float64) {
	o.injectQueue = append(o.injectQueue, syntheticEvent{kind: synthResize, x: width, y: height})
}

// InjectScrollSweep queues a vertical scroll from fromY to toY, linearly
// interpolated so the whole sweep consumes `frames` frames. Minimum frames
// is 1.
func (o *Orchestrator) InjectScrollSweep(fromY, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	x := 0.0
	if vp := o.surf.viewport; vp != nil {
		x = vp.ScrollX
	}
	if frames == 1 {
		o.InjectScroll(x, toY)
		return
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		o.InjectScroll(x, fromY+(toY-fromY)*t)
	}
}

// PendingInjections returns the number of queued synthetic events.
func (o *Orchestrator) PendingInjections() int {
	return len(o.injectQueue)
}

// processInjectedInput pops one event from the inject queue and routes it
// through the same entry points a host would call. Returns true if an
// event was consumed.
func (o *Orchestrator) processInjectedInput() bool {
	if len(o.injectQueue) == 0 {
		return false
	}
	evt := o.injectQueue[0]
	copy(o.injectQueue, o.injectQueue[1:])
	o.injectQueue = o.injectQueue[:len(o.injectQueue)-1]

	switch evt.kind {
	case synthScroll:
		o.SetScroll(evt.x, evt.y)
	case synthPointer:
		o.PointerMove(evt.x, evt.y)
	case synthLeave:
		o.PointerLeave()
	case synthResize:
		o.SetViewportSize(evt.x, evt.y)
	case synthPress:
		o.PointerPress(true)
	case synthRelease:
		o.PointerPress(false)
	}
	return true
}
