// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package drive

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

const (
	servoFreq     = 50 * physic.Hertz
	servoStep     = 15 * time.Millisecond // per-degree dwell while ramping
	gripperMin    = 0
	gripperMax    = 80
	servoPeriodMS = 20.0
)

// Gripper is the claw servo. MoveTo blocks while the servo ramps, one
// degree at a time, so the jaws close gently instead of snapping.
type Gripper struct {
	pin   gpio.PinIO
	angle int
}

// NewGripper initializes the servo pin and parks the gripper at angle 0.
func NewGripper(pinName string) (*Gripper, error) {
	pin, err := outputPin(pinName)
	if err != nil {
		return nil, fmt.Errorf("gripper: %w", err)
	}
	g := &Gripper{pin: pin}
	if err := g.write(0); err != nil {
		return nil, fmt.Errorf("gripper: park at 0: %w", err)
	}
	return g, nil
}

// MoveTo ramps the servo to the given angle in degrees, clamped to
// [0, 80]. Blocks until the ramp completes.
func (g *Gripper) MoveTo(angle int) error {
	if angle < gripperMin {
		angle = gripperMin
	} else if angle > gripperMax {
		angle = gripperMax
	}

	step := 1
	if angle < g.angle {
		step = -1
	}
	for g.angle != angle {
		g.angle += step
		if err := g.write(g.angle); err != nil {
			return fmt.Errorf("gripper at %d°: %w", g.angle, err)
		}
		time.Sleep(servoStep)
	}
	return nil
}

// write sets the servo pulse for one degree position. Standard hobby servo
// timing: 1.0 ms pulse at 0°, gaining 1 ms per 180°, on a 20 ms period.
func (g *Gripper) write(angle int) error {
	pulseMS := 1.0 + float64(angle)/180.0
	duty := gpio.Duty(float64(gpio.DutyMax) * pulseMS / servoPeriodMS)
	return g.pin.PWM(duty, servoFreq)
}
