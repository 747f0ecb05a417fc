package fireworks

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ScriptStep is a single action in a Script.
type ScriptStep struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Value  float64 `yaml:"value,omitempty"`
}

type scriptFile struct {
	Steps []ScriptStep `yaml:"steps"`
}

var scriptActions = map[string]bool{
	"burst":       true,
	"wait":        true,
	"start":       true,
	"pause":       true,
	"stop":        true,
	"framerate":   true,
	"launch_rate": true,
}

// Script sequences engine commands across frames, for reproducible
// headless runs. Step is called once per frame before Redraw.
type Script struct {
	steps  []ScriptStep
	cursor int
	wait   int
	done   bool
}

// LoadScript parses a YAML (or JSON) script of the form
//
//	steps:
//	  - {action: wait, frames: 30}
//	  - {action: burst, x: 200, y: 150}
//	  - {action: launch_rate, value: 5}
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Done reports whether every step has run.
func (s *Script) Done() bool { return s.done }

// Step runs the next due action against e.
func (s *Script) Step(e *Engine) {
	if s.done {
		return
	}
	if s.wait > 0 {
		s.wait--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "burst":
		e.Burst(Vector{st.X, st.Y})
	case "wait":
		if st.Frames > 0 {
			s.wait = st.Frames - 1 // this frame counts as one
		}
	case "start":
		e.Start()
	case "pause":
		e.Pause()
	case "stop":
		e.Stop()
	case "framerate":
		e.SetFramerate(st.Value)
	case "launch_rate":
		e.SetLaunchRate(st.Value)
	}

	if s.cursor >= len(s.steps) && s.wait == 0 {
		s.done = true
	}
}
