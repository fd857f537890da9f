package control

import (
	"errors"
	"testing"
)

// scriptLine replays line readings, holding the last one.
type scriptLine struct {
	reads [][2]bool
	i     int
}

func (s *scriptLine) ReadLine() (bool, bool, error) {
	if len(s.reads) == 0 {
		return false, false, nil
	}
	r := s.reads[s.i]
	if s.i < len(s.reads)-1 {
		s.i++
	}
	return r[0], r[1], nil
}

// scriptVision replays camera frames, holding the last one.
type scriptVision struct {
	frames [][]Block
	i      int
}

func (s *scriptVision) ReadTargets() ([]Block, error) {
	if len(s.frames) == 0 {
		return nil, nil
	}
	f := s.frames[s.i]
	if s.i < len(s.frames)-1 {
		s.i++
	}
	return f, nil
}

// recDriver records every wheel command.
type recDriver struct {
	calls [][2]int
}

func (d *recDriver) SetWheelSpeeds(left, right int) error {
	d.calls = append(d.calls, [2]int{left, right})
	return nil
}

func (d *recDriver) last() [2]int {
	if len(d.calls) == 0 {
		return [2]int{}
	}
	return d.calls[len(d.calls)-1]
}

// recGripper records commanded angles.
type recGripper struct {
	angles []int
}

func (g *recGripper) MoveTo(angle int) error {
	g.angles = append(g.angles, angle)
	return nil
}

// recSounder counts tunes.
type recSounder struct {
	victories int
}

func (s *recSounder) Victory() { s.victories++ }

// failLine always errors.
type failLine struct{}

func (failLine) ReadLine() (bool, bool, error) {
	return false, false, errors.New("sensor unplugged")
}

func testParams() Params {
	p := DefaultParams()
	p.PickupCreepMS = 1 // keep the blocking pickup fast under test
	return p
}

func TestMachineFullRun(t *testing.T) {
	p := testParams()

	line := &scriptLine{reads: [][2]bool{
		{false, false}, // bootstrap
		{true, false},  // drift
		{false, false},
		{true, true}, // end marker from here on
	}}
	vision := &scriptVision{frames: [][]Block{
		nil, // one searching cycle
		{{Signature: 1, X: 200, Width: 30}},
		{{Signature: 1, X: 170, Width: 45}},
		{{Signature: 1, X: p.CenterX, Width: p.TargetWidth}},
	}}
	wheels := &recDriver{}
	grip := &recGripper{}
	snd := &recSounder{}

	m := NewMachine(p, line, vision, wheels, grip, snd)
	if m.Mode() != ProgramFollowLine {
		t.Fatalf("initial mode = %v, want FOLLOW_LINE", m.Mode())
	}

	// Drive cycles until the machine parks (bounded; the end marker holds
	// and the last vision frame is at grasping width).
	const dt = 16
	for i := 0; i < 200 && m.Mode() != ProgramIdle; i++ {
		if err := m.Cycle(dt); err != nil {
			t.Fatalf("cycle %d: %v", i, err)
		}
	}

	if m.Mode() != ProgramIdle {
		t.Fatal("machine never parked")
	}
	if want := []int{p.GripOpenAngle, p.GripGraspAngle}; len(grip.angles) != 2 ||
		grip.angles[0] != want[0] || grip.angles[1] != want[1] {
		t.Errorf("gripper angles = %v, want %v", grip.angles, want)
	}
	if snd.victories != 1 {
		t.Errorf("victories = %d, want 1", snd.victories)
	}
	if last := wheels.last(); last != [2]int{0, 0} {
		t.Errorf("final wheel command = %v, want (0, 0)", last)
	}

	// Parked means parked: further cycles keep the wheels halted.
	for i := 0; i < 5; i++ {
		if err := m.Cycle(dt); err != nil {
			t.Fatalf("idle cycle: %v", err)
		}
		if m.Mode() != ProgramIdle {
			t.Fatalf("mode left Idle: %v", m.Mode())
		}
		if last := wheels.last(); last != [2]int{0, 0} {
			t.Fatalf("idle wheel command = %v, want (0, 0)", last)
		}
	}
	if snd.victories != 1 {
		t.Errorf("pickup ran more than once: victories = %d", snd.victories)
	}
}

func TestMachineRampsWhileTurning(t *testing.T) {
	p := testParams()
	line := &scriptLine{reads: [][2]bool{
		{false, false}, // bootstrap
		{true, false},  // turn left from here on
	}}
	m := NewMachine(p, line, &scriptVision{}, &recDriver{}, &recGripper{}, &recSounder{})

	if err := m.Cycle(16); err != nil { // bootstrap
		t.Fatal(err)
	}
	if err := m.Cycle(16); err != nil { // enters the turn, seeds then ramps
		t.Fatal(err)
	}
	first := m.Vehicle().TurnRate
	if first <= p.InitialTurnRate {
		t.Fatalf("TurnRate = %v after turn entry, want ramped above seed %v", first, p.InitialTurnRate)
	}

	if err := m.Cycle(16); err != nil {
		t.Fatal(err)
	}
	second := m.Vehicle().TurnRate
	if second <= first {
		t.Errorf("TurnRate did not keep ramping: %v then %v", first, second)
	}
	if second > p.MaxTurn {
		t.Errorf("TurnRate = %v exceeds clamp %v", second, p.MaxTurn)
	}
}

func TestMachineFlooredDt(t *testing.T) {
	p := testParams()
	line := &scriptLine{reads: [][2]bool{
		{false, false},
		{true, true}, // end marker from here on
	}}
	m := NewMachine(p, line, &scriptVision{}, &recDriver{}, &recGripper{}, &recSounder{})

	if err := m.Cycle(0); err != nil { // bootstrap
		t.Fatal(err)
	}
	// dt=0 is floored to 1 ms, so the finish timer still accumulates.
	if err := m.Cycle(0); err != nil {
		t.Fatal(err)
	}
	if got := m.Vehicle().FinishMS; got != 1 {
		t.Errorf("FinishMS = %v after one floored cycle, want 1", got)
	}
}

func TestMachineSensorErrorSurfaces(t *testing.T) {
	p := testParams()
	m := NewMachine(p, failLine{}, &scriptVision{}, &recDriver{}, &recGripper{}, &recSounder{})
	if err := m.Cycle(16); err == nil {
		t.Fatal("line sensor error did not surface")
	}
	if m.Mode() != ProgramFollowLine {
		t.Errorf("mode changed on sensor error: %v", m.Mode())
	}
}
