package sensors

import "github.com/relabs-tech/line_picker/internal/control"

// LineStep is one scripted line-sensor reading, held for Repeat cycles.
type LineStep struct {
	Left, Right bool
	Repeat      int
}

// ScriptedLine replays a fixed sequence of line readings. After the script
// runs out it keeps returning the last step. Useful for the simulator and
// for bench runs without a chassis.
type ScriptedLine struct {
	Steps []LineStep

	idx  int
	used int
}

// ReadLine returns the current scripted reading and advances the script.
func (s *ScriptedLine) ReadLine() (left, right bool, err error) {
	if len(s.Steps) == 0 {
		return false, false, nil
	}
	step := s.Steps[s.idx]
	s.used++
	if s.used >= step.Repeat && s.idx < len(s.Steps)-1 {
		s.idx++
		s.used = 0
	}
	return step.Left, step.Right, nil
}

// VisionStep is one scripted camera frame, held for Repeat cycles.
// A nil Blocks slice means nothing detected.
type VisionStep struct {
	Blocks []control.Block
	Repeat int
}

// ScriptedVision replays fixed camera frames, holding the last one forever.
type ScriptedVision struct {
	Steps []VisionStep

	idx  int
	used int
}

// ReadTargets returns the current scripted frame and advances the script.
func (s *ScriptedVision) ReadTargets() ([]control.Block, error) {
	if len(s.Steps) == 0 {
		return nil, nil
	}
	step := s.Steps[s.idx]
	s.used++
	if s.used >= step.Repeat && s.idx < len(s.Steps)-1 {
		s.idx++
		s.used = 0
	}
	return step.Blocks, nil
}
