package control

import (
	"fmt"
	"log"
)

// LineReader reads the two binary line sensors.
type LineReader interface {
	ReadLine() (left, right bool, err error)
}

// TargetReader returns the blocks the vision module currently sees.
// An empty slice means nothing is detected.
type TargetReader interface {
	ReadTargets() ([]Block, error)
}

// Driver accepts signed wheel commands in [-MaxWheel, MaxWheel].
type Driver interface {
	SetWheelSpeeds(left, right int) error
}

// Gripper moves the gripper servo to an angle in degrees. Blocking.
type Gripper interface {
	MoveTo(angle int) error
}

// Sounder plays feedback tunes. Fire and forget; the machine never waits on
// or consumes a result.
type Sounder interface {
	Victory()
}

// Machine is the top-level program state machine. It owns the shared
// vehicle state, dispatches exactly one behavior per cycle, and writes the
// mixed wheel commands to the driver.
type Machine struct {
	p        Params
	line     LineReader
	targets  TargetReader
	wheels   Driver
	grip     Gripper
	snd      Sounder
	follower Follower
	tracker  Tracker

	mode      ProgramMode
	v         Vehicle
	lastLeft  int
	lastRight int
}

// NewMachine wires a state machine starting in FollowLine.
func NewMachine(p Params, line LineReader, targets TargetReader, wheels Driver, grip Gripper, snd Sounder) *Machine {
	return &Machine{
		p:        p,
		line:     line,
		targets:  targets,
		wheels:   wheels,
		grip:     grip,
		snd:      snd,
		follower: NewFollower(p),
		tracker:  NewTracker(p),
		mode:     ProgramFollowLine,
	}
}

// Mode returns the current program mode.
func (m *Machine) Mode() ProgramMode { return m.mode }

// Vehicle returns a copy of the shared movement state.
func (m *Machine) Vehicle() Vehicle { return m.v }

// Wheels returns the wheel commands written on the last cycle.
func (m *Machine) Wheels() (left, right int) { return m.lastLeft, m.lastRight }

// Cycle runs one control cycle: dispatch the active behavior, ramp the turn
// rate if following the line, mix, and command the wheels. dtMS is the time
// since the previous cycle in milliseconds; values below 1 are floored to 1
// to keep the time-dependent math away from degenerate steps.
func (m *Machine) Cycle(dtMS float64) error {
	if dtMS < 1 {
		dtMS = 1
	}

	switch m.mode {
	case ProgramFollowLine:
		left, right, err := m.line.ReadLine()
		if err != nil {
			return fmt.Errorf("line sensors: %w", err)
		}
		if m.follower.Update(&m.v, left, right, dtMS) {
			log.Printf("control: end of line confirmed after %.0f ms, tracking target", m.p.FinishThresholdMS)
			m.v.resetTracking()
			m.mode = ProgramTrackTarget
		} else if m.v.Move == MoveTurnLeft || m.v.Move == MoveTurnRight {
			m.v.TurnRate = GrowTurn(m.p, m.v.TurnRate, dtMS)
		}

	case ProgramTrackTarget:
		blocks, err := m.targets.ReadTargets()
		if err != nil {
			return fmt.Errorf("vision: %w", err)
		}
		if m.tracker.Update(&m.v, blocks) {
			log.Printf("control: target reached (width %.0f), picking up", m.v.LastWidth)
			m.mode = ProgramPickUp
		}

	case ProgramPickUp:
		// One-shot, blocking by design: the run is over after this.
		if err := runPickup(m.p, m.wheels, m.grip, m.snd); err != nil {
			log.Printf("control: pickup sequence: %v", err)
		}
		m.mode = ProgramIdle
		m.v.Move = MoveStopped
		m.v.TurnRate = 0
		m.v.DriveSpeed = 0
		log.Printf("control: parked")

	default:
		// Idle, or an unrecognized mode: halt and stay halted.
		m.v.Move = MoveStopped
	}

	m.lastLeft, m.lastRight = Mix(m.p, m.v.Move, m.v.TurnRate, m.v.DriveSpeed)
	if err := m.wheels.SetWheelSpeeds(m.lastLeft, m.lastRight); err != nil {
		return fmt.Errorf("wheel command: %w", err)
	}
	return nil
}
