package motion

import (
	"math"
	"testing"
)

func TestStepSpringZeroDt(t *testing.T) {
	s := SpringState{Position: 3, Velocity: 2}
	if got := StepSpring(s, 10, 170, 26, 0); got != s {
		t.Errorf("dt=0 changed state: %+v", got)
	}
	if got := StepSpring(s, 10, 170, 26, -1); got != s {
		t.Errorf("negative dt changed state: %+v", got)
	}
}

func TestStepSpringSemiImplicitEuler(t *testing.T) {
	dt := 1.0 / 60
	got := StepSpring(SpringState{}, 1, 100, 10, dt)
	wantV := 100 * dt
	wantP := wantV * dt
	if !approxEqual(got.Velocity, wantV, epsilon) || !approxEqual(got.Position, wantP, epsilon) {
		t.Errorf("step = %+v, want {%v %v}", got, wantP, wantV)
	}
}

func TestStepSpringClampsDt(t *testing.T) {
	s := SpringState{}
	big := StepSpring(s, 1, 170, 26, 5)
	clamped := StepSpring(s, 1, 170, 26, MaxSpringStep)
	if big != clamped {
		t.Errorf("dt=5 gave %+v, want clamped %+v", big, clamped)
	}
	if math.IsNaN(big.Position) || math.Abs(big.Position) > 1 {
		t.Errorf("large dt destabilized the spring: %+v", big)
	}
}

func TestSpringSettlesWithinBound(t *testing.T) {
	cfg := DefaultSpring
	s := SpringState{}
	frames := 0
	for ; frames < 120; frames++ {
		s = StepSpring(s, 100, cfg.Stiffness, cfg.Damping, 1.0/60)
		if s.AtRest(100, cfg.RestThreshold) {
			break
		}
	}
	if frames >= 120 {
		t.Fatalf("spring did not settle within 120 frames: %+v", s)
	}
}

func TestSpringAtRest(t *testing.T) {
	if !(SpringState{Position: 0.995, Velocity: 0.001}).AtRest(1, 0.01) {
		t.Error("expected at rest")
	}
	if (SpringState{Position: 1, Velocity: 0.5}).AtRest(1, 0.01) {
		t.Error("moving spring reported at rest")
	}
}

func TestSpringConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  SpringConfig
		ok   bool
	}{
		{"default", DefaultSpring, true},
		{"zero damping", SpringConfig{Stiffness: 100, RestThreshold: 0.01}, true},
		{"zero stiffness", SpringConfig{Damping: 10, RestThreshold: 0.01}, false},
		{"negative damping", SpringConfig{Stiffness: 100, Damping: -1, RestThreshold: 0.01}, false},
		{"NaN stiffness", SpringConfig{Stiffness: math.NaN(), Damping: 1, RestThreshold: 0.01}, false},
		{"zero threshold", SpringConfig{Stiffness: 100, Damping: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if (err == nil) != tt.ok {
				t.Errorf("validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func BenchmarkStepSpring(b *testing.B) {
	s := SpringState{}
	for i := 0; i < b.N; i++ {
		s = StepSpring(s, 100, 170, 26, 1.0/60)
	}
}
