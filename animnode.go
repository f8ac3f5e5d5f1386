package motion

import (
	"github.com/tanema/gween"
)

// driveMode is how a node is currently moving toward its goals.
type driveMode uint8

const (
	driveTween    driveMode = iota // eased tween from the held value to the goal
	driveSpring                    // spring chasing the goal
	driveLoop                      // endless start/target ping-pong
	driveScrub                     // eased scroll: output follows the goal directly
	driveApproach                  // loop re-entered mid-flight: tween to the target, then loop
)

// propState is the mutable progress of one property.
type propState struct {
	name    string
	start   Value
	target  Value
	axis    Axis
	current Value
	from    Value
	goal    Value
	vel     [maxComponents]float64
}

// AnimationNode binds one trigger and one timing model to the properties of
// a single element. It owns all of its state; reading output never touches
// anything shared. Create nodes with Orchestrator.MountNode or MountGroup.
type AnimationNode struct {
	ID uint32

	element *Element
	trigger Trigger
	timing  Timing

	props []propState
	index map[string]int

	state    NodeState
	mode     driveMode
	reversed bool

	delay     float64
	delayLeft float64
	elapsed   float64
	tween     *gween.Tween
	loop      *gween.Sequence

	source TriggerSource
	anim   ClockHandle
	orch   *Orchestrator
	group  *StaggerGroup

	destroyed bool
}

// newAnimationNode builds a node from an already validated spec. Every
// property starts at its start value.
func newAnimationNode(o *Orchestrator, el *Element, t Trigger, spec MotionSpec) *AnimationNode {
	names := spec.names()
	n := &AnimationNode{
		ID:      o.nextNodeID(),
		element: el,
		trigger: t,
		timing:  spec.Timing,
		props:   make([]propState, len(names)),
		index:   make(map[string]int, len(names)),
		delay:   spec.Timing.Delay,
		orch:    o,
	}
	for i, name := range names {
		p := spec.Properties[name]
		n.props[i] = propState{
			name:    name,
			start:   p.Start,
			target:  p.Target,
			axis:    p.Axis,
			current: p.Start,
			from:    p.Start,
			goal:    p.Start,
		}
		n.index[name] = i
	}
	return n
}

// Value returns the current output of the named property.
func (n *AnimationNode) Value(name string) (Value, bool) {
	i, ok := n.index[name]
	if !ok {
		return Value{}, false
	}
	return n.props[i].current, true
}

// Each calls fn for every property in name order with its current output.
func (n *AnimationNode) Each(fn func(name string, v Value)) {
	for i := range n.props {
		fn(n.props[i].name, n.props[i].current)
	}
}

// State returns the lifecycle state.
func (n *AnimationNode) State() NodeState { return n.state }

// Element returns the element being animated.
func (n *AnimationNode) Element() *Element { return n.element }

// Timing returns the node's timing model, including any stagger delay.
func (n *AnimationNode) Timing() Timing { return n.timing }

// Trigger returns the trigger the node was created with.
func (n *AnimationNode) Trigger() Trigger { return n.trigger }

// StartDelay returns the delay between the trigger firing and the node
// starting to move, including any stagger offset.
func (n *AnimationNode) StartDelay() float64 { return n.delay }

// Destroyed reports whether the node has been unmounted.
func (n *AnimationNode) Destroyed() bool { return n.destroyed }

// handle applies one trigger event.
func (n *AnimationNode) handle(ev TriggerEvent) {
	if n.destroyed {
		return
	}
	switch ev.Type {
	case EventFire, EventEnter:
		n.reversed = false
		for i := range n.props {
			n.props[i].goal = n.props[i].target
		}
		n.retarget(true)
	case EventExit:
		n.reverse()
	case EventProgress:
		for i := range n.props {
			p := &n.props[i]
			t := ev.Progress
			if n.timing.Kind == TimingEased {
				t = easeProgress(n.timing.easing(), t)
			}
			p.goal = lerpValue(p.start, p.target, t)
		}
		n.retarget(false)
	case EventOffset:
		for i := range n.props {
			p := &n.props[i]
			p.goal = pointerGoal(p, ev.Offset, n.trigger.Strength)
		}
		n.retarget(false)
	}
}

// reverse sends the node back toward its start values. A node that was
// triggered but has not started moving drops straight back to Idle.
func (n *AnimationNode) reverse() {
	switch n.state {
	case StateIdle:
		return
	case StateArmed:
		if !n.reversed && n.atStart() {
			n.anim.Remove()
			n.anim = ClockHandle{}
			n.setState(StateIdle)
			return
		}
	}
	n.reversed = true
	for i := range n.props {
		n.props[i].goal = n.props[i].start
	}
	n.retarget(true)
}

// retarget begins moving every property from its held value toward its goal.
func (n *AnimationNode) retarget(useDelay bool) {
	for i := range n.props {
		n.props[i].from = n.props[i].current
	}
	n.elapsed = 0

	switch n.timing.Kind {
	case TimingSpring:
		n.mode = driveSpring
	case TimingLoop:
		switch {
		case n.reversed || n.trigger.continuous():
			n.mode = driveTween
			n.tween = gween.New(0, 1, float32(n.timing.Duration), n.timing.easing())
		case n.atStart():
			n.startLoop(false)
		default:
			n.mode = driveApproach
			n.tween = gween.New(0, 1, float32(n.timing.Duration), n.timing.easing())
		}
	default:
		if n.trigger.Type == TriggerScroll {
			n.mode = driveScrub
		} else {
			n.mode = driveTween
			n.tween = gween.New(0, 1, float32(n.timing.Duration), n.timing.easing())
		}
	}

	if useDelay && n.delay > 0 {
		n.delayLeft = n.delay
		n.setState(StateArmed)
	} else {
		n.delayLeft = 0
		n.setState(StateRunning)
	}
	if !n.anim.Active() {
		n.anim = n.orch.clock.Subscribe(PhaseAnimate, n.step)
	}
}

// step advances the node by dt seconds. Registered on the animate phase
// only while the node is Armed or Running.
func (n *AnimationNode) step(dt float64) {
	if n.destroyed {
		return
	}
	if n.element.IsDisposed() {
		n.orch.UnmountNode(n)
		return
	}
	if n.state == StateArmed {
		n.delayLeft -= dt
		if n.delayLeft > 0 {
			return
		}
		dt = -n.delayLeft
		n.delayLeft = 0
		n.setState(StateRunning)
	}
	if n.state != StateRunning {
		n.anim.Remove()
		n.anim = ClockHandle{}
		return
	}

	switch n.mode {
	case driveScrub:
		for i := range n.props {
			n.props[i].current = n.props[i].goal
		}
		n.settle()
	case driveTween:
		n.elapsed += dt
		p, done := n.tween.Set(float32(n.elapsed))
		if done {
			for i := range n.props {
				n.props[i].current = n.props[i].goal
			}
			n.settle()
			return
		}
		for i := range n.props {
			pr := &n.props[i]
			pr.current = lerpValue(pr.from, pr.goal, float64(p))
		}
	case driveApproach:
		n.elapsed += dt
		p, done := n.tween.Set(float32(n.elapsed))
		if !done {
			for i := range n.props {
				pr := &n.props[i]
				pr.current = lerpValue(pr.from, pr.goal, float64(p))
			}
			return
		}
		n.startLoop(true)
		n.stepLoop(n.elapsed - n.timing.Duration)
	case driveLoop:
		n.stepLoop(dt)
	case driveSpring:
		n.stepSpring(dt)
	}
}

// startLoop begins the endless start/target ping-pong. A loop entered at
// the target heads back toward the start first.
func (n *AnimationNode) startLoop(fromTarget bool) {
	begin, end := float32(0), float32(1)
	if fromTarget {
		begin, end = 1, 0
	}
	n.mode = driveLoop
	n.loop = gween.NewSequence(gween.New(begin, end, float32(n.timing.Duration), n.timing.easing()))
	n.loop.SetYoyo(true)
	n.loop.SetLoop(-1)
}

func (n *AnimationNode) stepLoop(dt float64) {
	p, _, _ := n.loop.Update(float32(dt))
	for i := range n.props {
		pr := &n.props[i]
		pr.current = lerpValue(pr.start, pr.target, float64(p))
	}
}

// stepSpring integrates every component and settles once all are at rest.
func (n *AnimationNode) stepSpring(dt float64) {
	cfg := n.timing.Spring
	rest := true
	for i := range n.props {
		pr := &n.props[i]
		for c := 0; c < pr.current.Dim(); c++ {
			s := StepSpring(SpringState{Position: pr.current.c[c], Velocity: pr.vel[c]},
				pr.goal.c[c], cfg.Stiffness, cfg.Damping, dt)
			if !isFinite(s.Position) || !isFinite(s.Velocity) {
				Logger().Warn("spring diverged, snapping to goal",
					"element", n.element.Name, "property", pr.name)
				n.snapToGoal()
				n.settle()
				return
			}
			pr.current.c[c] = s.Position
			pr.vel[c] = s.Velocity
			if !s.AtRest(pr.goal.c[c], cfg.RestThreshold) {
				rest = false
			}
		}
	}
	if rest {
		n.snapToGoal()
		n.settle()
	}
}

func (n *AnimationNode) snapToGoal() {
	for i := range n.props {
		n.props[i].current = n.props[i].goal
		n.props[i].vel = [maxComponents]float64{}
	}
}

// settle stops per-frame work. A node that finished returning to its start
// values is Idle again; anything else is Settled.
func (n *AnimationNode) settle() {
	n.anim.Remove()
	n.anim = ClockHandle{}
	if n.reversed {
		n.reversed = false
		n.setState(StateIdle)
		return
	}
	n.setState(StateSettled)
}

// Finish completes in-flight motion immediately: outputs jump to where the
// node is headed and the node settles (Idle when it was reversing). Loop
// nodes stop at their current goal. A node that is not moving is left alone.
func (n *AnimationNode) Finish() {
	if n.destroyed || (n.state != StateArmed && n.state != StateRunning) {
		return
	}
	n.delayLeft = 0
	n.snapToGoal()
	n.settle()
}

func (n *AnimationNode) atStart() bool {
	for i := range n.props {
		if n.props[i].current != n.props[i].start {
			return false
		}
	}
	return true
}

func (n *AnimationNode) setState(s NodeState) {
	if n.state == s {
		return
	}
	prev := n.state
	n.state = s
	n.orch.emitLifecycle(n, prev, s)
}

// destroy releases the node's trigger source and frame subscription. The
// last output stays readable and never changes again.
func (n *AnimationNode) destroy() {
	if n.destroyed {
		return
	}
	n.destroyed = true
	if n.source != nil {
		n.source.Dispose()
	}
	n.anim.Remove()
	n.anim = ClockHandle{}
	if n.group != nil {
		n.group.detach(n)
		n.group = nil
	}
}

// pointerGoal maps a normalized pointer offset onto a property. At the
// element center the goal is the start value; offset*strength of 1 reaches
// the target, and negative offsets mirror past the start.
func pointerGoal(p *propState, off Vec2, strength float64) Value {
	if p.start.IsScalar() {
		a := off.X
		if p.axis == AxisY {
			a = off.Y
		}
		return lerpValue(p.start, p.target, a*strength)
	}
	out := p.start
	for c := 0; c < p.start.Dim() && c < 2; c++ {
		a := off.X
		if c == 1 {
			a = off.Y
		}
		out.c[c] = p.start.c[c] + (p.target.c[c]-p.start.c[c])*a*strength
	}
	return out
}
