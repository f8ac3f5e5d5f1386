package motion

import (
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

//go:embed tokens.yaml
var defaultTokensYAML []byte

// Tokens is a resolved set of design tokens: named easing curves,
// durations, spring presets, and animation variants.
type Tokens struct {
	easings   map[string]ease.TweenFunc
	durations map[string]float64
	springs   map[string]SpringConfig
	variants  map[string]variantDef
}

type tokenFile struct {
	Easings   map[string]easingDef    `yaml:"easings"`
	Durations map[string]seconds      `yaml:"durations"`
	Springs   map[string]SpringConfig `yaml:"springs"`
	Variants  map[string]variantDef   `yaml:"variants"`
}

type variantDef struct {
	Initial  map[string]valueDef `yaml:"initial"`
	Animate  map[string]valueDef `yaml:"animate"`
	Duration string              `yaml:"duration"`
	Ease     string              `yaml:"ease"`
	Spring   string              `yaml:"spring"`
	Delay    seconds             `yaml:"delay"`
	Loop     bool                `yaml:"loop"`
}

// easingDef is either a four-number cubic bezier or the name of a built-in
// easing.
type easingDef struct {
	fn ease.TweenFunc
}

func (e *easingDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		fn, ok := EasingByName(node.Value)
		if !ok {
			return fmt.Errorf("line %d: unknown easing %q", node.Line, node.Value)
		}
		e.fn = fn
		return nil
	case yaml.SequenceNode:
		var pts []float64
		if err := node.Decode(&pts); err != nil {
			return err
		}
		if len(pts) != 4 {
			return fmt.Errorf("line %d: cubic bezier needs 4 numbers, got %d", node.Line, len(pts))
		}
		b := CubicBezier{pts[0], pts[1], pts[2], pts[3]}
		if !b.Valid() {
			return fmt.Errorf("line %d: cubic bezier x values must lie in [0, 1]", node.Line)
		}
		e.fn = b.TweenFunc()
		return nil
	}
	return fmt.Errorf("line %d: easing must be a name or [x1, y1, x2, y2]", node.Line)
}

// seconds decodes "240ms"-style durations or bare numbers of seconds.
type seconds float64

func (s *seconds) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	if f, err := strconv.ParseFloat(node.Value, 64); err == nil {
		*s = seconds(f)
		return nil
	}
	d, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = seconds(d.Seconds())
	return nil
}

// valueDef is a scalar or a list of 2 to 4 numbers.
type valueDef struct {
	v Value
}

func (v *valueDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		v.v = Scalar(f)
		return nil
	case yaml.SequenceNode:
		var c []float64
		if err := node.Decode(&c); err != nil {
			return err
		}
		if len(c) < 2 || len(c) > 4 {
			return fmt.Errorf("line %d: vector needs 2 to 4 components, got %d", node.Line, len(c))
		}
		v.v = Vector(c...)
		return nil
	}
	return fmt.Errorf("line %d: value must be a number or a list", node.Line)
}

// LoadTokens parses a YAML token file.
func LoadTokens(data []byte) (*Tokens, error) {
	var f tokenFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tokens: %w", err)
	}
	t := &Tokens{
		easings:   make(map[string]ease.TweenFunc, len(f.Easings)),
		durations: make(map[string]float64, len(f.Durations)),
		springs:   make(map[string]SpringConfig, len(f.Springs)),
		variants:  f.Variants,
	}
	for name, e := range f.Easings {
		t.easings[name] = e.fn
	}
	for name, d := range f.Durations {
		if d < 0 {
			return nil, fmt.Errorf("parse tokens: duration %q is negative", name)
		}
		t.durations[name] = float64(d)
	}
	for name, s := range f.Springs {
		if s.RestThreshold == 0 {
			s.RestThreshold = DefaultSpring.RestThreshold
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("parse tokens: spring %q: %w", name, err)
		}
		t.springs[name] = s
	}
	if t.variants == nil {
		t.variants = map[string]variantDef{}
	}
	// Resolve every variant once so broken references fail at load time.
	for name := range t.variants {
		if _, err := t.Variant(name); err != nil {
			return nil, fmt.Errorf("parse tokens: %w", err)
		}
	}
	return t, nil
}

// DefaultTokens returns the built-in token set.
func DefaultTokens() *Tokens {
	t, err := LoadTokens(defaultTokensYAML)
	if err != nil {
		panic("motion: embedded tokens: " + err.Error())
	}
	return t
}

// Easing returns the named easing curve. Built-in easing names resolve too.
func (t *Tokens) Easing(name string) (ease.TweenFunc, bool) {
	if fn, ok := t.easings[name]; ok {
		return fn, true
	}
	return EasingByName(name)
}

// Duration returns the named duration in seconds.
func (t *Tokens) Duration(name string) (float64, bool) {
	d, ok := t.durations[name]
	return d, ok
}

// Spring returns the named spring preset.
func (t *Tokens) Spring(name string) (SpringConfig, bool) {
	s, ok := t.springs[name]
	return s, ok
}

// Eased builds an eased timing from a named duration and a named easing.
func (t *Tokens) Eased(duration, easing string, delay float64) (Timing, error) {
	d, ok := t.Duration(duration)
	if !ok {
		return Timing{}, specError("timing.duration", "unknown duration token %q", duration)
	}
	fn, ok := t.Easing(easing)
	if !ok {
		return Timing{}, specError("timing.easing", "unknown easing token %q", easing)
	}
	return Eased(d, fn, delay), nil
}

// Variant resolves a named variant into a MotionSpec. Each property
// animates from its initial to its animate value; a property missing on
// either side is reported as a *SpecValidationError by Validate.
func (t *Tokens) Variant(name string) (MotionSpec, error) {
	v, ok := t.variants[name]
	if !ok {
		return MotionSpec{}, specError("variant", "unknown variant %q", name)
	}

	var timing Timing
	switch {
	case v.Spring != "":
		cfg, ok := t.Spring(v.Spring)
		if !ok {
			return MotionSpec{}, specError(name+".spring", "unknown spring token %q", v.Spring)
		}
		timing = SpringTiming(cfg)
		timing.Delay = float64(v.Delay)
	default:
		d, ok := t.Duration(v.Duration)
		if !ok {
			return MotionSpec{}, specError(name+".duration", "unknown duration token %q", v.Duration)
		}
		fn := ease.Linear
		if v.Ease != "" {
			if fn, ok = t.Easing(v.Ease); !ok {
				return MotionSpec{}, specError(name+".ease", "unknown easing token %q", v.Ease)
			}
		}
		if v.Loop {
			timing = Loop(d, fn, float64(v.Delay))
		} else {
			timing = Eased(d, fn, float64(v.Delay))
		}
	}

	props := make(map[string]Property, len(v.Animate))
	for prop, target := range v.Animate {
		props[prop] = Property{Start: v.Initial[prop].v, Target: target.v}
	}
	for prop, start := range v.Initial {
		if _, ok := props[prop]; !ok {
			props[prop] = Property{Start: start.v}
		}
	}
	spec := MotionSpec{Properties: props, Timing: timing}
	if err := spec.Validate(); err != nil {
		return MotionSpec{}, err
	}
	return spec, nil
}

// Variants returns the names of all variants, unsorted.
func (t *Tokens) Variants() []string {
	names := make([]string, 0, len(t.variants))
	for name := range t.variants {
		names = append(names, name)
	}
	return names
}
