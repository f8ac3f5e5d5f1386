package motion

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a motion script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// motionScript is the top-level JSON structure for a motion script.
type motionScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected scroll, pointer, and resize events and
// screenshot requests across frames so animations can be exercised without a
// real host. Attach to an Orchestrator via SetScript.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"scroll": true, "sweep": true, "pointer": true,
	"leave": true, "press": true, "release": true,
	"resize": true, "wait": true, "screenshot": true,
}

// LoadScript parses a JSON motion script and returns a ScriptRunner ready
// to be attached to an Orchestrator via SetScript.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script motionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse motion script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse motion script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse motion script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScript attaches a ScriptRunner. The runner's step method is called from
// Orchestrator.Update before injected input is processed each frame.
func (o *Orchestrator) SetScript(runner *ScriptRunner) {
	o.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(o *Orchestrator) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(o.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "scroll":
		o.InjectScroll(st.X, st.Y)
	case "sweep":
		o.InjectScrollSweep(st.FromY, st.ToY, st.Frames)
	case "pointer":
		o.InjectPointer(st.X, st.Y)
	case "leave":
		o.InjectPointerLeave()
	case "press":
		o.InjectPointerPress(true)
	case "release":
		o.InjectPointerPress(false)
	case "screenshot":
		if o.capture == nil {
			Logger().Warn("screenshot step skipped, no capture handler", "label", st.Label)
			break
		}
		o.capture(st.Label)
	case "resize":
		o.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(o.injectQueue) == 0 {
		r.done = true
	}
}
