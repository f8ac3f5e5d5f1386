package motion

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func validSpec() MotionSpec {
	return MotionSpec{
		Properties: map[string]Property{
			"opacity": Animate(0, 1),
			"offset":  {Start: Vec(0, 20), Target: Vec(0, 0)},
		},
		Timing: Eased(0.4, nil, 0),
	}
}

func TestMotionSpecValidateOK(t *testing.T) {
	if err := validSpec().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spring := validSpec()
	spring.Timing = SpringTiming(DefaultSpring)
	if err := spring.Validate(); err != nil {
		t.Fatalf("spring: unexpected error: %v", err)
	}
}

func TestMotionSpecValidateErrors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*MotionSpec)
		property string
	}{
		{"no properties", func(m *MotionSpec) { m.Properties = nil }, ""},
		{"scalar start vector target", func(m *MotionSpec) {
			m.Properties["opacity"] = Property{Start: Scalar(0), Target: Vec(1, 1)}
		}, "opacity"},
		{"dimension mismatch", func(m *MotionSpec) {
			m.Properties["offset"] = Property{Start: Vec(0, 0), Target: Vector(1, 1, 1)}
		}, "offset"},
		{"missing start", func(m *MotionSpec) {
			m.Properties["opacity"] = Property{Target: Scalar(1)}
		}, "opacity"},
		{"missing target", func(m *MotionSpec) {
			m.Properties["opacity"] = Property{Start: Scalar(1)}
		}, "opacity"},
		{"NaN target", func(m *MotionSpec) {
			m.Properties["opacity"] = Animate(0, math.NaN())
		}, "opacity"},
		{"empty name", func(m *MotionSpec) { m.Properties[""] = Animate(0, 1) }, ""},
		{"bad axis", func(m *MotionSpec) {
			m.Properties["opacity"] = Property{Start: Scalar(0), Target: Scalar(1), Axis: 7}
		}, "opacity"},
		{"negative duration", func(m *MotionSpec) { m.Timing = Eased(-1, nil, 0) }, "timing.duration"},
		{"negative delay", func(m *MotionSpec) { m.Timing = Eased(1, nil, -0.5) }, "timing.delay"},
		{"zero loop duration", func(m *MotionSpec) { m.Timing = Loop(0, nil, 0) }, "timing.duration"},
		{"bad spring", func(m *MotionSpec) { m.Timing = SpringTiming(SpringConfig{}) }, "timing.stiffness"},
		{"unknown timing", func(m *MotionSpec) { m.Timing.Kind = 9 }, "timing.kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validSpec()
			tt.mutate(&m)
			err := m.Validate()
			var sve *SpecValidationError
			if !errors.As(err, &sve) {
				t.Fatalf("Validate() = %v, want *SpecValidationError", err)
			}
			if sve.Property != tt.property {
				t.Errorf("Property = %q, want %q", sve.Property, tt.property)
			}
		})
	}
}

func TestMotionSpecValidateMixMessage(t *testing.T) {
	m := MotionSpec{
		Properties: map[string]Property{"scale": {Start: Scalar(1), Target: Vec(1, 2)}},
		Timing:     Eased(0.3, nil, 0),
	}
	err := m.Validate()
	if err == nil || !strings.Contains(err.Error(), "mix scalar and vector") {
		t.Errorf("err = %v, want scalar/vector mix", err)
	}
}

func TestTimingEasingDefaultsToLinear(t *testing.T) {
	tm := Eased(1, nil, 0)
	if got := tm.easing()(0.5, 0, 1, 1); got != 0.5 {
		t.Errorf("nil easing at 0.5 = %v, want linear 0.5", got)
	}
}

func TestTriggerValidate(t *testing.T) {
	tests := []struct {
		name string
		t    Trigger
		ok   bool
	}{
		{"mount", OnMount(), true},
		{"viewport", InView(0.5, true), true},
		{"viewport zero", InView(0, false), true},
		{"viewport > 1", InView(1.5, false), false},
		{"viewport negative", InView(-0.1, false), false},
		{"scroll range", ScrollRange(0, 400), true},
		{"scroll reversed range", ScrollRange(400, 0), true},
		{"scroll empty range", ScrollRange(100, 100), false},
		{"scroll NaN", ScrollRange(math.NaN(), 1), false},
		{"scroll through", ScrollThrough(), true},
		{"page scroll", PageScroll(), true},
		{"pointer", PointerFollow(0.3), true},
		{"pointer zero", PointerFollow(0), false},
		{"pointer inf", PointerFollow(math.Inf(1)), false},
		{"hover", Hover(), true},
		{"press", Press(), true},
		{"unknown", Trigger{Type: 42}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.t.validate()
			if (err == nil) != tt.ok {
				t.Errorf("validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestTriggerContinuous(t *testing.T) {
	if OnMount().continuous() || InView(0, false).continuous() || Hover().continuous() || Press().continuous() {
		t.Error("discrete triggers reported continuous")
	}
	if !ScrollThrough().continuous() || !PointerFollow(1).continuous() {
		t.Error("continuous triggers reported discrete")
	}
}

func TestTriggerTypeString(t *testing.T) {
	if TriggerViewport.String() != "viewport" || TriggerType(99).String() != "unknown" ||
		TriggerHover.String() != "hover" || TriggerPress.String() != "press" {
		t.Error("unexpected TriggerType names")
	}
}
