package motion

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultTokensResolve(t *testing.T) {
	tok := DefaultTokens()
	names := tok.Variants()
	if len(names) == 0 {
		t.Fatal("no variants")
	}
	for _, name := range names {
		spec, err := tok.Variant(name)
		if err != nil {
			t.Errorf("Variant(%q): %v", name, err)
			continue
		}
		if len(spec.Properties) == 0 {
			t.Errorf("Variant(%q) has no properties", name)
		}
	}
}

func TestDefaultTokensValues(t *testing.T) {
	tok := DefaultTokens()

	if d, ok := tok.Duration("fast"); !ok || !approxEqual(d, 0.24, 1e-12) {
		t.Errorf("fast = %v, %v, want 0.24", d, ok)
	}
	if d, ok := tok.Duration("float"); !ok || !approxEqual(d, 1.5, 1e-12) {
		t.Errorf("float = %v, %v, want 1.5", d, ok)
	}
	if _, ok := tok.Duration("glacial"); ok {
		t.Error("unknown duration reported ok")
	}

	s, ok := tok.Spring("default")
	if !ok || s != DefaultSpring {
		t.Errorf("default spring = %+v, want %+v", s, DefaultSpring)
	}

	primary, ok := tok.Easing("primary")
	if !ok {
		t.Fatal("primary easing missing")
	}
	if got := easeProgress(primary, 1); !approxEqual(got, 1, 1e-5) {
		t.Errorf("primary(1) = %v", got)
	}
	if _, ok := tok.Easing("outQuad"); !ok {
		t.Error("built-in easing names should resolve through tokens")
	}
}

func TestVariantFadeIn(t *testing.T) {
	spec, err := DefaultTokens().Variant("fadeIn")
	if err != nil {
		t.Fatal(err)
	}
	if spec.Timing.Kind != TimingEased || !approxEqual(spec.Timing.Duration, 0.4, 1e-12) {
		t.Errorf("timing = %+v", spec.Timing)
	}
	op := spec.Properties["opacity"]
	if op.Start.Float() != 0 || op.Target.Float() != 1 {
		t.Errorf("opacity = %v -> %v", op.Start, op.Target)
	}
	y := spec.Properties["y"]
	if y.Start.Float() != 20 || y.Target.Float() != 0 {
		t.Errorf("y = %v -> %v", y.Start, y.Target)
	}
}

func TestVariantKinds(t *testing.T) {
	tok := DefaultTokens()

	float, err := tok.Variant("float")
	if err != nil {
		t.Fatal(err)
	}
	if float.Timing.Kind != TimingLoop {
		t.Errorf("float kind = %v, want loop", float.Timing.Kind)
	}

	tilt, err := tok.Variant("tilt")
	if err != nil {
		t.Fatal(err)
	}
	if tilt.Timing.Kind != TimingSpring || tilt.Timing.Spring.Stiffness != 150 {
		t.Errorf("tilt timing = %+v", tilt.Timing)
	}
	rot := tilt.Properties["rotate"]
	if rot.Target.Vec2() != (Vec2{15, -15}) {
		t.Errorf("rotate target = %v", rot.Target)
	}
}

func TestTokensEased(t *testing.T) {
	tok := DefaultTokens()
	timing, err := tok.Eased("slow", "secondary", 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(timing.Duration, 0.6, 1e-12) || timing.Delay != 0.1 || timing.Easing == nil {
		t.Errorf("timing = %+v", timing)
	}

	var sve *SpecValidationError
	if _, err := tok.Eased("nope", "primary", 0); !errors.As(err, &sve) {
		t.Errorf("err = %v, want SpecValidationError", err)
	}
	if _, err := tok.Eased("slow", "nope", 0); !errors.As(err, &sve) {
		t.Errorf("err = %v, want SpecValidationError", err)
	}
	if _, err := tok.Variant("nope"); !errors.As(err, &sve) {
		t.Errorf("err = %v, want SpecValidationError", err)
	}
}

func TestLoadTokensDurations(t *testing.T) {
	tok, err := LoadTokens([]byte(`
durations:
  a: 250ms
  b: 0.5
  c: 2
  d: 1m
`))
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]float64{"a": 0.25, "b": 0.5, "c": 2, "d": 60} {
		if got, _ := tok.Duration(name); !approxEqual(got, want, 1e-12) {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
}

func TestLoadTokensSpringDefaultsRestThreshold(t *testing.T) {
	tok, err := LoadTokens([]byte("springs:\n  soft: {stiffness: 80, damping: 10}\n"))
	if err != nil {
		t.Fatal(err)
	}
	s, _ := tok.Spring("soft")
	if s.RestThreshold != DefaultSpring.RestThreshold {
		t.Errorf("RestThreshold = %v, want %v", s.RestThreshold, DefaultSpring.RestThreshold)
	}
}

func TestLoadTokensErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "easings: [", "parse tokens"},
		{"unknown easing name", "easings:\n  a: wobble\n", "unknown easing"},
		{"short bezier", "easings:\n  a: [0, 1, 0]\n", "needs 4 numbers"},
		{"bezier x out of range", "easings:\n  a: [1.5, 0, 0.5, 1]\n", "must lie in [0, 1]"},
		{"bad duration", "durations:\n  a: soon\n", "invalid duration"},
		{"negative duration", "durations:\n  a: -1\n", "negative"},
		{"bad spring", "springs:\n  a: {stiffness: 0, damping: 1}\n", "stiffness"},
		{"unknown duration ref", "variants:\n  v:\n    animate: {x: 1}\n    initial: {x: 0}\n    duration: missing\n", "unknown duration token"},
		{"unknown spring ref", "variants:\n  v:\n    animate: {x: 1}\n    initial: {x: 0}\n    spring: missing\n", "unknown spring token"},
		{"missing start", "durations:\n  d: 1\nvariants:\n  v:\n    animate: {x: 1}\n    duration: d\n", "missing start value"},
		{"long vector", "durations:\n  d: 1\nvariants:\n  v:\n    initial: {x: [1, 2, 3, 4, 5]}\n    animate: {x: [1, 2, 3, 4, 5]}\n    duration: d\n", "2 to 4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTokens([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestVariantMountsAndSettles(t *testing.T) {
	spec, err := DefaultTokens().Variant("scaleIn")
	if err != nil {
		t.Fatal(err)
	}
	o := NewOrchestrator(nil, nil)
	n := mustMount(t, o, NewElement("card", 0, 0, 10, 10), OnMount(), spec)
	for i := 0; i < 60; i++ {
		o.Update(frame)
	}
	if v, _ := n.Value("scale"); n.State() != StateSettled || v.Float() != 1 {
		t.Errorf("state %v scale %v", n.State(), v.Float())
	}
}
