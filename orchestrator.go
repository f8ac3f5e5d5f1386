package motion

import (
	"time"

	"github.com/tanema/gween/ease"
)

// LifecycleStore is the interface for optional lifecycle forwarding. When set
// on an Orchestrator, every node state transition is reported to it.
type LifecycleStore interface {
	EmitLifecycle(event LifecycleEvent)
}

// LifecycleEvent describes one node state transition.
type LifecycleEvent struct {
	NodeID    uint32
	ElementID uint32
	Element   string
	From      NodeState
	To        NodeState
}

// Orchestrator is the top-level object that mounts animation nodes and
// stagger groups against elements, routes host input to their triggers, and
// drives the shared FrameClock.
type Orchestrator struct {
	clock *FrameClock
	surf  surface

	nodes   []*AnimationNode
	groups  []*StaggerGroup
	scratch []*AnimationNode

	nodeIDCounter  uint32
	groupIDCounter uint32

	store LifecycleStore
	debug bool

	viewportTick ClockHandle

	injectQueue []syntheticEvent
	script      *ScriptRunner
	capture     func(label string)
}

// NewOrchestrator creates an orchestrator driven by clock. A nil clock gets a
// fresh one. A nil viewport means visibility and scroll cannot be observed:
// those triggers then fire once on mount so elements still reach their
// final state.
func NewOrchestrator(clock *FrameClock, viewport *Viewport) *Orchestrator {
	if clock == nil {
		clock = NewFrameClock()
	}
	o := &Orchestrator{clock: clock}
	o.surf.clock = clock
	o.surf.viewport = viewport
	return o
}

// Clock returns the frame clock.
func (o *Orchestrator) Clock() *FrameClock {
	return o.clock
}

// Viewport returns the observed viewport, or nil.
func (o *Orchestrator) Viewport() *Viewport {
	return o.surf.viewport
}

// SetLifecycleStore sets the optional lifecycle bridge.
func (o *Orchestrator) SetLifecycleStore(store LifecycleStore) {
	o.store = store
}

// SetCaptureFunc sets the handler for script screenshot steps. Hosts that
// can read back a painted frame install one; nil removes it.
func (o *Orchestrator) SetCaptureFunc(fn func(label string)) {
	o.capture = fn
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-element
// access in tree operations panics and per-frame stats are logged at debug
// level.
func (o *Orchestrator) SetDebugMode(enabled bool) {
	o.debug = enabled
	globalDebug = enabled
}

func (o *Orchestrator) nextNodeID() uint32 {
	o.nodeIDCounter++
	return o.nodeIDCounter
}

// --- Mounting ---

// MountNode starts animating el: spec describes the properties and timing,
// t the condition that starts them. It fails with *InvalidTargetError when
// el is nil or disposed and with *SpecValidationError when spec or t is
// malformed; in both cases nothing is registered.
func (o *Orchestrator) MountNode(el *Element, t Trigger, spec MotionSpec) (*AnimationNode, error) {
	if err := checkTarget(el); err != nil {
		return nil, err
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	n := newAnimationNode(o, el, t, spec)
	o.nodes = append(o.nodes, n)
	n.source = o.surf.observe(el, t, n.handle)
	return n, nil
}

// UnmountNode tears the node down synchronously: its trigger source is
// disposed and its frame subscription removed, so no callback for it runs
// afterward. Unmounting twice is a no-op.
func (o *Orchestrator) UnmountNode(n *AnimationNode) {
	if n == nil || n.destroyed {
		return
	}
	n.destroy()
	o.removeNode(n)
}

// MountGroup mounts a stagger group. All children and the optional container
// node are validated before anything is registered.
func (o *Orchestrator) MountGroup(gs GroupSpec) (*StaggerGroup, error) {
	if err := checkTarget(gs.Container); err != nil {
		return nil, err
	}
	for _, c := range gs.Children {
		if err := checkTarget(c.Element); err != nil {
			return nil, err
		}
	}
	if err := gs.validate(); err != nil {
		return nil, err
	}

	o.groupIDCounter++
	g := &StaggerGroup{
		ID:           o.groupIDCounter,
		container:    gs.Container,
		trigger:      gs.Trigger,
		staggerDelay: gs.StaggerDelay,
		baseDelay:    gs.BaseDelay,
		orch:         o,
	}
	if gs.Self != nil {
		g.self = newAnimationNode(o, gs.Container, gs.Trigger, *gs.Self)
		g.self.group = g
		o.nodes = append(o.nodes, g.self)
	}
	g.children = make([]*AnimationNode, 0, len(gs.Children))
	for _, c := range gs.Children {
		n := newAnimationNode(o, c.Element, gs.Trigger, c.Spec)
		n.group = g
		g.children = append(g.children, n)
		o.nodes = append(o.nodes, n)
	}
	g.assignDelays()
	o.groups = append(o.groups, g)
	g.source = o.surf.observe(gs.Container, gs.Trigger, g.dispatch)
	return g, nil
}

// UnmountGroup disposes the group's trigger and unmounts the container node
// and every child still attached. Unmounting twice is a no-op.
func (o *Orchestrator) UnmountGroup(g *StaggerGroup) {
	if g == nil || g.destroyed {
		return
	}
	g.destroyed = true
	if g.source != nil {
		g.source.Dispose()
	}
	o.UnmountNode(g.self)
	for len(g.children) > 0 {
		o.UnmountNode(g.children[len(g.children)-1])
	}
	for i, gg := range o.groups {
		if gg == g {
			copy(o.groups[i:], o.groups[i+1:])
			o.groups[len(o.groups)-1] = nil
			o.groups = o.groups[:len(o.groups)-1]
			break
		}
	}
}

// Observe exposes the raw event stream of a trigger on el without binding
// it to a node. The caller must Dispose the returned source.
func (o *Orchestrator) Observe(el *Element, t Trigger, fn func(TriggerEvent)) (TriggerSource, error) {
	if err := checkTarget(el); err != nil {
		return nil, err
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return o.surf.observe(el, t, fn), nil
}

// CurrentValue returns the named output of n. It reports false for unknown
// properties.
func (o *Orchestrator) CurrentValue(n *AnimationNode, name string) (Value, bool) {
	if n == nil {
		return Value{}, false
	}
	return n.Value(name)
}

// Nodes returns every mounted node in mount order. The returned slice MUST
// NOT be mutated by the caller.
func (o *Orchestrator) Nodes() []*AnimationNode {
	return o.nodes
}

// Groups returns every mounted group. The returned slice MUST NOT be
// mutated by the caller.
func (o *Orchestrator) Groups() []*StaggerGroup {
	return o.groups
}

func checkTarget(el *Element) error {
	if el == nil {
		return &InvalidTargetError{}
	}
	if el.IsDisposed() {
		return &InvalidTargetError{Element: el.Name, ID: el.ID}
	}
	return nil
}

func (o *Orchestrator) removeNode(n *AnimationNode) {
	for i, c := range o.nodes {
		if c == n {
			copy(o.nodes[i:], o.nodes[i+1:])
			o.nodes[len(o.nodes)-1] = nil
			o.nodes = o.nodes[:len(o.nodes)-1]
			return
		}
	}
}

func (o *Orchestrator) emitLifecycle(n *AnimationNode, from, to NodeState) {
	if o.store == nil {
		return
	}
	o.store.EmitLifecycle(LifecycleEvent{
		NodeID:    n.ID,
		ElementID: n.element.ID,
		Element:   n.element.Name,
		From:      from,
		To:        to,
	})
}

// --- Host input ---

// SetScroll moves the viewport to (x, y), clamped to its bounds. Scroll
// triggers pick up the new offset on the next tick; repeated calls within a
// frame coalesce.
func (o *Orchestrator) SetScroll(x, y float64) {
	vp := o.surf.viewport
	if vp == nil {
		return
	}
	vp.StopScroll()
	o.viewportTick.Remove()
	o.viewportTick = ClockHandle{}
	vp.ScrollX, vp.ScrollY = x, y
	vp.ClampToBounds()
	o.surf.requestFlush()
}

// ScrollBy moves the viewport by (dx, dy).
func (o *Orchestrator) ScrollBy(dx, dy float64) {
	if vp := o.surf.viewport; vp != nil {
		o.SetScroll(vp.ScrollX+dx, vp.ScrollY+dy)
	}
}

// ScrollTo animates the viewport to y with an eased tween.
func (o *Orchestrator) ScrollTo(y float64, duration float64, easing ease.TweenFunc) {
	vp := o.surf.viewport
	if vp == nil {
		return
	}
	vp.ScrollTo(vp.ScrollX, y, float32(duration), easing)
	o.watchViewport()
}

// GlideTo springs the viewport to y. frequency is in radians per second; a
// dampingRatio of 1 is critically damped.
func (o *Orchestrator) GlideTo(y, frequency, dampingRatio float64) {
	vp := o.surf.viewport
	if vp == nil {
		return
	}
	vp.GlideTo(vp.ScrollX, y, frequency, dampingRatio)
	o.watchViewport()
}

// ScrollIntoView glides the viewport so el's top edge sits at the top of
// the viewport.
func (o *Orchestrator) ScrollIntoView(el *Element, frequency, dampingRatio float64) error {
	if err := checkTarget(el); err != nil {
		return err
	}
	o.GlideTo(el.Bounds().Y, frequency, dampingRatio)
	return nil
}

// SetViewportSize resizes the viewport.
func (o *Orchestrator) SetViewportSize(width, height float64) {
	vp := o.surf.viewport
	if vp == nil {
		return
	}
	vp.Width, vp.Height = width, height
	vp.ClampToBounds()
	o.surf.requestFlush()
}

// NotifyLayout tells visibility triggers that element boxes changed.
func (o *Orchestrator) NotifyLayout() {
	o.surf.requestFlush()
}

// PointerMove reports the pointer at (x, y) in viewport coordinates.
func (o *Orchestrator) PointerMove(x, y float64) {
	o.surf.pointer.x, o.surf.pointer.y = x, y
	o.surf.pointer.present = true
}

// PointerLeave reports that the pointer left the viewport. A held press is
// released with it.
func (o *Orchestrator) PointerLeave() {
	o.surf.pointer.present = false
	o.surf.pointer.pressed = false
}

// PointerPress reports the primary button (or a touch) going down or up at
// the last reported pointer position.
func (o *Orchestrator) PointerPress(down bool) {
	o.surf.pointer.pressed = down
}

// watchViewport keeps an input-phase subscription while the viewport is
// animating its scroll offset.
func (o *Orchestrator) watchViewport() {
	if o.viewportTick.Active() {
		return
	}
	o.viewportTick = o.clock.Subscribe(PhaseInput, o.stepViewport)
}

func (o *Orchestrator) stepViewport(dt float64) {
	vp := o.surf.viewport
	if vp.update(dt) {
		o.surf.requestFlush()
	}
	if !vp.Animating() {
		o.viewportTick.Remove()
		o.viewportTick = ClockHandle{}
	}
}

// --- Frame ---

// Update runs one host frame: scripted and injected input, teardown of
// nodes whose elements were disposed, then one clock tick of dt seconds if
// anything is subscribed. Only one Orchestrator per FrameClock should call
// Update; hosts sharing a clock tick it themselves.
func (o *Orchestrator) Update(dt float64) {
	if o.script != nil {
		o.script.step(o)
	}
	o.processInjectedInput()
	o.sweep()

	var t0 time.Time
	if o.debug {
		t0 = time.Now()
	}
	if !o.clock.Tick(dt) {
		return
	}
	if o.debug {
		stats := debugStats{
			frame:       o.clock.Frame(),
			tickTime:    time.Since(t0),
			subscribers: o.clock.Subscribers(),
			nodes:       len(o.nodes),
		}
		for _, n := range o.nodes {
			switch n.state {
			case StateRunning, StateArmed:
				stats.running++
			case StateSettled:
				stats.settled++
			}
		}
		o.debugLog(stats)
	}
}

// sweep unmounts nodes and groups whose elements were disposed.
func (o *Orchestrator) sweep() {
	for i := len(o.groups) - 1; i >= 0; i-- {
		if i < len(o.groups) && o.groups[i].container.IsDisposed() {
			o.UnmountGroup(o.groups[i])
		}
	}
	o.scratch = append(o.scratch[:0], o.nodes...)
	for _, n := range o.scratch {
		if n.element.IsDisposed() {
			o.UnmountNode(n)
		}
	}
	clear(o.scratch)
}
