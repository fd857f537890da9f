package control

import (
	"fmt"
	"time"
)

// runPickup executes the one-shot grasp: stop, open the gripper, creep the
// last few centimeters so the block sits between the jaws, close on it, and
// celebrate. Every step blocks; this only ever runs in the terminal phase,
// after which the machine parks in Idle and never drives again.
func runPickup(p Params, wheels Driver, grip Gripper, snd Sounder) error {
	if err := wheels.SetWheelSpeeds(0, 0); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	if err := grip.MoveTo(p.GripOpenAngle); err != nil {
		return fmt.Errorf("open gripper: %w", err)
	}

	creep := int(p.PickupCreepSpeed * float64(p.MaxWheel))
	if err := wheels.SetWheelSpeeds(creep, creep); err != nil {
		return fmt.Errorf("creep: %w", err)
	}
	time.Sleep(time.Duration(p.PickupCreepMS) * time.Millisecond)
	if err := wheels.SetWheelSpeeds(0, 0); err != nil {
		return fmt.Errorf("stop after creep: %w", err)
	}

	if err := grip.MoveTo(p.GripGraspAngle); err != nil {
		return fmt.Errorf("close gripper: %w", err)
	}

	snd.Victory()
	return nil
}
