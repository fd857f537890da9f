package control

import "fmt"

// ProgramMode selects which behavior owns the control cycle.
// Transitions only move forward: FollowLine → TrackTarget → PickUp → Idle.
type ProgramMode int

const (
	ProgramIdle ProgramMode = iota
	ProgramFollowLine
	ProgramTrackTarget
	ProgramPickUp
)

func (m ProgramMode) String() string {
	switch m {
	case ProgramIdle:
		return "IDLE"
	case ProgramFollowLine:
		return "FOLLOW_LINE"
	case ProgramTrackTarget:
		return "TRACK_TARGET"
	case ProgramPickUp:
		return "PICK_UP"
	default:
		return fmt.Sprintf("ProgramMode(%d)", int(m))
	}
}

// MoveMode is the immediate drive intent for the current cycle, independent
// of the program mode.
type MoveMode int

const (
	MoveStopped MoveMode = iota
	MoveTurnLeft
	MoveTurnRight
	MoveForward
)

func (m MoveMode) String() string {
	switch m {
	case MoveStopped:
		return "STOPPED"
	case MoveTurnLeft:
		return "TURN_LEFT"
	case MoveTurnRight:
		return "TURN_RIGHT"
	case MoveForward:
		return "FORWARD"
	default:
		return fmt.Sprintf("MoveMode(%d)", int(m))
	}
}

// Block is a single detected object from the vision module, in image
// coordinates. The tracker only ever consumes X and Width.
type Block struct {
	Signature uint16
	X         float64
	Y         float64
	Width     float64
	Height    float64
}

// Vehicle is the shared movement state mutated by whichever behavior is
// active. There is exactly one logical thread of control, so no locking;
// keeping it in one struct (instead of free variables) makes each behavior
// testable in isolation.
type Vehicle struct {
	Move       MoveMode
	TurnRate   float64 // signed steering bias, [-MaxTurn, MaxTurn]
	DriveSpeed float64 // throttle multiplier, [0, 1]

	// Line follower
	FinishMS float64 // accumulated both-sensors time

	// Target tracker PID
	Tracking  bool // false until the first block after entering TrackTarget
	LastError float64
	Integral  float64
	LastWidth float64 // most recent apparent width, for the status panel
}

// resetTracking clears the PID accumulators so a fresh TrackTarget phase
// starts without history (and without a derivative kick on its first block).
func (v *Vehicle) resetTracking() {
	v.Tracking = false
	v.LastError = 0
	v.Integral = 0
	v.LastWidth = 0
}
