package app

import (
	"fmt"
	"log"

	"github.com/relabs-tech/line_picker/internal/control"
	"github.com/relabs-tech/line_picker/internal/sensors"
)

// simDriver prints wheel commands instead of driving hardware.
type simDriver struct{}

func (simDriver) SetWheelSpeeds(left, right int) error { return nil }

// simGripper records gripper moves.
type simGripper struct{}

func (simGripper) MoveTo(angle int) error {
	log.Printf("sim: gripper to %d°", angle)
	return nil
}

// simSounder logs where a tune would play.
type simSounder struct{}

func (simSounder) Victory() { log.Printf("sim: victory tune") }

// simDT is the scripted cycle time in milliseconds (~60 Hz).
const simDT = 16.0

// maxSimCycles caps a run that never converges.
const maxSimCycles = 4000

// RunSim walks the control core through a scripted course on mock sensors:
// wobble along a line, hit the end marker, search for a block, close on it,
// and pick it up. One line per cycle; exits when the machine parks.
func RunSim() error {
	line := &sensors.ScriptedLine{Steps: []sensors.LineStep{
		{Repeat: 1},                             // bootstrap cycle
		{Repeat: 20},                            // straightaway
		{Left: true, Repeat: 8},                 // drifting right of the line
		{Repeat: 5},                             // corrected
		{Right: true, Repeat: 10},               // drifting left
		{Repeat: 6},                             // corrected
		{Left: true, Right: true, Repeat: 6},    // tape joint, too short to finish
		{Left: true, Repeat: 4},                 // back on course
		{Left: true, Right: true, Repeat: 1000}, // end marker
	}}

	vision := &sensors.ScriptedVision{Steps: simVisionSteps()}

	machine := control.NewMachine(control.DefaultParams(), line, vision, simDriver{}, simGripper{}, simSounder{})
	log.Printf("sim: starting in %s", machine.Mode())

	for cycle := 1; cycle <= maxSimCycles; cycle++ {
		if err := machine.Cycle(simDT); err != nil {
			return fmt.Errorf("sim cycle %d: %w", cycle, err)
		}

		v := machine.Vehicle()
		l, r := machine.Wheels()
		log.Printf("sim %4d: %s/%s turn=%+.3f speed=%.2f wheels=(%4d,%4d)",
			cycle, machine.Mode(), v.Move, v.TurnRate, v.DriveSpeed, l, r)

		if machine.Mode() == control.ProgramIdle {
			log.Printf("sim: parked after %d cycles", cycle)
			return nil
		}
	}
	return fmt.Errorf("sim: machine never parked within %d cycles", maxSimCycles)
}

// simVisionSteps scripts a block that enters frame right of center and
// grows as the robot closes in.
func simVisionSteps() []sensors.VisionStep {
	steps := []sensors.VisionStep{
		{Repeat: 30}, // nothing in view: search spin
	}
	// Block drifts toward center while its apparent width grows to the
	// grasping size.
	for w := 20; w <= 60; w += 2 {
		x := 200 - float64(w) // approaches CenterX (160) as it gets close
		steps = append(steps, sensors.VisionStep{
			Blocks: []control.Block{{Signature: 1, X: x, Y: 100, Width: float64(w), Height: float64(w / 2)}},
			Repeat: 6,
		})
	}
	return steps
}
