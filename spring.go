package motion

import "math"

// MaxSpringStep is the largest time step a spring integrates in one call.
// Larger deltas (for example after a backgrounded tab resumes) are clamped.
const MaxSpringStep = 1.0 / 30.0

// SpringConfig holds the physical constants of a damped harmonic spring with
// unit mass.
type SpringConfig struct {
	Stiffness     float64 `yaml:"stiffness"`
	Damping       float64 `yaml:"damping"`
	RestThreshold float64 `yaml:"restThreshold"`
}

// DefaultSpring matches the common "snappy but not bouncy" preset.
var DefaultSpring = SpringConfig{Stiffness: 170, Damping: 26, RestThreshold: 0.01}

// SpringState is the position and velocity of one spring-driven component.
type SpringState struct {
	Position float64
	Velocity float64
}

// StepSpring advances s toward target by dt seconds using semi-implicit
// Euler integration of
//
//	acceleration = stiffness*(target-position) - damping*velocity
//
// dt is clamped to [0, MaxSpringStep].
func StepSpring(s SpringState, target, stiffness, damping, dt float64) SpringState {
	if dt <= 0 {
		return s
	}
	if dt > MaxSpringStep {
		dt = MaxSpringStep
	}
	accel := stiffness*(target-s.Position) - damping*s.Velocity
	s.Velocity += accel * dt
	s.Position += s.Velocity * dt
	return s
}

// AtRest reports whether s is within threshold of target in both
// displacement and velocity.
func (s SpringState) AtRest(target, threshold float64) bool {
	return math.Abs(target-s.Position) < threshold && math.Abs(s.Velocity) < threshold
}

// validate checks the constants for use in a Timing.
func (c SpringConfig) validate() error {
	switch {
	case !isFinite(c.Stiffness) || c.Stiffness <= 0:
		return specError("timing.stiffness", "must be a positive finite number, got %v", c.Stiffness)
	case !isFinite(c.Damping) || c.Damping < 0:
		return specError("timing.damping", "must be a non-negative finite number, got %v", c.Damping)
	case !isFinite(c.RestThreshold) || c.RestThreshold <= 0:
		return specError("timing.restThreshold", "must be a positive finite number, got %v", c.RestThreshold)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
