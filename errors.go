package motion

import "fmt"

// SpecValidationError reports a malformed MotionSpec or Trigger. It is
// returned synchronously from the mount calls, before any trigger is armed.
type SpecValidationError struct {
	// Property names the offending property, or a pseudo-field such as
	// "timing.duration" or "trigger.range".
	Property string
	Reason   string
}

func (e *SpecValidationError) Error() string {
	return fmt.Sprintf("motion: invalid spec %q: %s", e.Property, e.Reason)
}

// InvalidTargetError reports an attempt to animate an element that is nil or
// has already been disposed.
type InvalidTargetError struct {
	Element string
	ID      uint32
}

func (e *InvalidTargetError) Error() string {
	if e.ID == 0 {
		return "motion: invalid target: nil element"
	}
	return fmt.Sprintf("motion: invalid target: element %q (ID %d) is disposed", e.Element, e.ID)
}

func specError(property, format string, args ...any) error {
	return &SpecValidationError{Property: property, Reason: fmt.Sprintf(format, args...)}
}
