package cursorfx

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a playback script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Label  string  `json:"label,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a recorded sequence of pointer actions and motion
// preference changes, one step per frame.
//
// Actions: "move" (x, y), "path" (x, y to toX, toY over frames), "click"
// (x, y), "press", "release", "wait" (frames), "screenshot" (label),
// "reduce-motion", "restore-motion".
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON playback script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "move", "path", "click", "press", "release", "wait", "screenshot", "reduce-motion", "restore-motion":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether every step has been executed and its input consumed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the script by one frame. Call it before s.Update.
func (r *ScriptRunner) Step(s *Session, in *EbitenInput) {
	if r.done {
		return
	}
	// Let queued input drain before advancing. A session that is not running
	// does not poll, so consume one event per frame here instead.
	if in.Pending() > 0 {
		if s.State() != StateRunning {
			in.processInjectedInput()
		}
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
	case "move":
		in.InjectMove(st.X, st.Y)
	case "path":
		in.InjectPath(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "click":
		in.InjectClick(st.X, st.Y)
	case "press":
		in.InjectPress(st.X, st.Y)
	case "release":
		in.InjectRelease(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		s.Screenshot(st.Label)
	case "reduce-motion":
		s.SetReducedMotion(true)
	case "restore-motion":
		s.SetReducedMotion(false)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
