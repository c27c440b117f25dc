package animator

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ScriptStep is a single command in a playback script.
type ScriptStep struct {
	Action string  `yaml:"action"`
	Clip   string  `yaml:"clip,omitempty"`
	Weight float64 `yaml:"weight,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Index  int     `yaml:"index,omitempty"`
}

type scriptDoc struct {
	Steps []ScriptStep `yaml:"steps"`
}

// Script sequences session commands across frames for repeatable playback:
// headless simulations, regression runs and demos. Call Step once per frame
// before the session updates.
//
//	steps:
//	  - {action: start}
//	  - {action: wait, frames: 30}
//	  - {action: mix, clip: run}
//	  - {action: weight, clip: run, weight: 0.5}
//	  - {action: wait, frames: 30}
//	  - {action: mix, clip: jump}
//
// Actions: start, mix, weight (re-weight with the given weight), stop,
// resume, select (by index), play (preview toggle) and wait.
type Script struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML playback script.
func LoadScript(data []byte) (*Script, error) {
	var doc scriptDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("animator: parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("animator: parse script: no steps")
	}
	for i, st := range doc.Steps {
		switch st.Action {
		case "start", "mix", "weight", "stop", "resume", "select", "play", "wait":
		default:
			return nil, fmt.Errorf("animator: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// NewScript wraps already-built steps.
func NewScript(steps ...ScriptStep) *Script {
	return &Script{steps: steps, done: len(steps) == 0}
}

// Done reports whether every step has run.
func (r *Script) Done() bool {
	return r.done
}

// Step runs the commands due on this frame against s. Consecutive commands
// run on the same frame until a wait is reached.
func (r *Script) Step(s *Session) {
	if r.done {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}

	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++

		switch st.Action {
		case "start":
			s.Start()
		case "mix":
			s.Mix(st.Clip)
		case "weight":
			s.MixWith(st.Clip, MixOptions{Transition: s.cfg.Transition, Weight: st.Weight, Warp: s.cfg.Warp})
		case "stop":
			s.Stop()
		case "resume":
			s.Resume()
		case "select":
			s.SetSelection(st.Index)
		case "play":
			s.Play()
		case "wait":
			if st.Frames > 0 {
				r.waitCount = st.Frames - 1 // this frame counts as one
				r.finish()
				return
			}
		}
	}
	r.finish()
}

func (r *Script) finish() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
