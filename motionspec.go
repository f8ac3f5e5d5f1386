package motion

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// TimingKind selects how a node interpolates between values.
type TimingKind uint8

const (
	TimingEased  TimingKind = iota // fixed-duration tween through an easing curve
	TimingSpring                   // damped spring, settles on its own
	TimingLoop                     // endless start/target ping-pong
)

// Timing is the timing model shared by every property of a MotionSpec.
// Build one with Eased, SpringTiming, or Loop.
type Timing struct {
	Kind TimingKind

	// Eased and Loop
	Duration float64
	Easing   ease.TweenFunc

	// Delay postpones the start of the animation after the trigger fires.
	// Eased nodes treat it as part of their timeline; spring nodes gate
	// their start behind a timer of the same length.
	Delay float64

	// Spring
	Spring SpringConfig
}

// Eased returns a tween timing. A nil easing is linear.
func Eased(duration float64, easing ease.TweenFunc, delay float64) Timing {
	return Timing{Kind: TimingEased, Duration: duration, Easing: easing, Delay: delay}
}

// SpringTiming returns a spring timing with the given constants.
func SpringTiming(cfg SpringConfig) Timing {
	return Timing{Kind: TimingSpring, Spring: cfg}
}

// Loop returns a timing that swings from start to target and back forever,
// taking duration seconds per swing.
func Loop(duration float64, easing ease.TweenFunc, delay float64) Timing {
	return Timing{Kind: TimingLoop, Duration: duration, Easing: easing, Delay: delay}
}

func (t Timing) validate() error {
	if !isFinite(t.Delay) || t.Delay < 0 {
		return specError("timing.delay", "must be a non-negative finite number, got %v", t.Delay)
	}
	switch t.Kind {
	case TimingEased:
		if !isFinite(t.Duration) || t.Duration < 0 {
			return specError("timing.duration", "must be a non-negative finite number, got %v", t.Duration)
		}
	case TimingLoop:
		if !isFinite(t.Duration) || t.Duration <= 0 {
			return specError("timing.duration", "loop duration must be positive, got %v", t.Duration)
		}
	case TimingSpring:
		return t.Spring.validate()
	default:
		return specError("timing.kind", "unknown timing kind %d", t.Kind)
	}
	return nil
}

func (t Timing) easing() ease.TweenFunc {
	if t.Easing == nil {
		return ease.Linear
	}
	return t.Easing
}

// Property is one animated value: where it starts and where it is headed.
type Property struct {
	Start  Value
	Target Value
	// Axis picks the pointer axis for scalar properties under a pointer
	// trigger. Vector properties map X and Y components to the X and Y axes.
	Axis Axis
}

// Animate is shorthand for a scalar property.
func Animate(start, target float64) Property {
	return Property{Start: Scalar(start), Target: Scalar(target)}
}

// MotionSpec describes what animates: named properties plus one timing model.
type MotionSpec struct {
	Properties map[string]Property
	Timing     Timing
}

// Validate reports the first structural problem in the spec, in property
// name order. It returns a *SpecValidationError.
func (m MotionSpec) Validate() error {
	if len(m.Properties) == 0 {
		return specError("", "no properties to animate")
	}
	for _, name := range m.names() {
		p := m.Properties[name]
		if name == "" {
			return specError(name, "property name is empty")
		}
		switch {
		case p.Start.IsZero():
			return specError(name, "missing start value")
		case p.Target.IsZero():
			return specError(name, "missing target value")
		case p.Start.IsScalar() != p.Target.IsScalar():
			return specError(name, "start %s and target %s mix scalar and vector", p.Start, p.Target)
		case !p.Start.compatible(p.Target):
			return specError(name, "start has %d components, target has %d", p.Start.Dim(), p.Target.Dim())
		case !p.Start.finite() || !p.Target.finite():
			return specError(name, "non-finite bound (start %s, target %s)", p.Start, p.Target)
		case p.Axis > AxisY:
			return specError(name, "unknown axis %d", p.Axis)
		}
	}
	return m.Timing.validate()
}

// names returns property names in sorted order.
func (m MotionSpec) names() []string {
	names := make([]string, 0, len(m.Properties))
	for name := range m.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TriggerType identifies the condition that drives a node.
type TriggerType uint8

const (
	TriggerMount    TriggerType = iota // fires once on the first tick
	TriggerViewport                    // enter/exit on visibility threshold crossings
	TriggerScroll                      // continuous scroll progress
	TriggerPointer                     // continuous pointer offset from the element center
	TriggerHover                       // enter/exit as the pointer moves over and off the element
	TriggerPress                       // enter/exit as the pointer is pressed and released on the element
)

func (t TriggerType) String() string {
	switch t {
	case TriggerMount:
		return "mount"
	case TriggerViewport:
		return "viewport"
	case TriggerScroll:
		return "scroll"
	case TriggerPointer:
		return "pointer"
	case TriggerHover:
		return "hover"
	case TriggerPress:
		return "press"
	default:
		return "unknown"
	}
}

// ScrollSpan selects how a scroll trigger derives its range.
type ScrollSpan uint8

const (
	SpanRange   ScrollSpan = iota // explicit RangeStart..RangeEnd
	SpanElement                   // element top at viewport bottom .. element bottom at viewport top
	SpanPage                      // 0 .. maximum scroll of the viewport bounds
)

// Trigger is an immutable description of when a node animates.
type Trigger struct {
	Type TriggerType

	// Viewport
	Threshold float64
	Once      bool

	// Scroll
	Span       ScrollSpan
	RangeStart float64
	RangeEnd   float64

	// Pointer
	Strength float64
}

// OnMount fires once, on the tick after registration.
func OnMount() Trigger { return Trigger{Type: TriggerMount} }

// InView fires when the visible fraction of the element crosses threshold.
// A zero threshold means "any pixel visible".
func InView(threshold float64, once bool) Trigger {
	return Trigger{Type: TriggerViewport, Threshold: threshold, Once: once}
}

// ScrollRange reports progress across an explicit scroll range.
func ScrollRange(start, end float64) Trigger {
	return Trigger{Type: TriggerScroll, Span: SpanRange, RangeStart: start, RangeEnd: end}
}

// ScrollThrough reports progress while the element travels through the
// viewport, from first pixel visible at the bottom to last pixel leaving the top.
func ScrollThrough() Trigger { return Trigger{Type: TriggerScroll, Span: SpanElement} }

// PageScroll reports progress across the whole scrollable page. A page that
// does not scroll (no bounds, or content no taller than the viewport) reports 0.
func PageScroll() Trigger { return Trigger{Type: TriggerScroll, Span: SpanPage} }

// PointerFollow reports the pointer offset from the element center scaled
// by strength.
func PointerFollow(strength float64) Trigger {
	return Trigger{Type: TriggerPointer, Strength: strength}
}

// Hover enters while the pointer is over the element and exits when it
// leaves.
func Hover() Trigger { return Trigger{Type: TriggerHover} }

// Press enters while the pointer is held down over the element and exits on
// release or when the pointer leaves it.
func Press() Trigger { return Trigger{Type: TriggerPress} }

// continuous reports whether the trigger holds a permanent frame subscription.
func (t Trigger) continuous() bool {
	return t.Type == TriggerScroll || t.Type == TriggerPointer
}

func (t Trigger) validate() error {
	switch t.Type {
	case TriggerMount, TriggerHover, TriggerPress:
	case TriggerViewport:
		if !isFinite(t.Threshold) || t.Threshold < 0 || t.Threshold > 1 {
			return specError("trigger.threshold", "must be in [0, 1], got %v", t.Threshold)
		}
	case TriggerScroll:
		if t.Span > SpanPage {
			return specError("trigger.span", "unknown scroll span %d", t.Span)
		}
		if t.Span == SpanRange {
			if !isFinite(t.RangeStart) || !isFinite(t.RangeEnd) {
				return specError("trigger.range", "non-finite range %v..%v", t.RangeStart, t.RangeEnd)
			}
			if t.RangeStart == t.RangeEnd {
				return specError("trigger.range", "empty range at %v", t.RangeStart)
			}
		}
	case TriggerPointer:
		if !isFinite(t.Strength) || t.Strength == 0 {
			return specError("trigger.strength", "must be a non-zero finite number, got %v", t.Strength)
		}
	default:
		return specError("trigger.type", "unknown trigger type %d", t.Type)
	}
	return nil
}
