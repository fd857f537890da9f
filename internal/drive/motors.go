// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package drive

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// motorPWMFreq is the H-bridge switching frequency.
const motorPWMFreq = physic.KiloHertz

// Motors drives the two wheels through a dual H-bridge: one PWM pin for
// magnitude and one direction pin per side.
type Motors struct {
	leftPWM  gpio.PinIO
	leftDir  gpio.PinIO
	rightPWM gpio.PinIO
	rightDir gpio.PinIO
	maxWheel int
}

// NewMotors initializes the four motor pins by name. maxWheel is the full
// command magnitude (a command of ±maxWheel is 100% duty).
func NewMotors(leftPWMPin, leftDirPin, rightPWMPin, rightDirPin string, maxWheel int) (*Motors, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("motors: periph host init: %w", err)
	}

	m := &Motors{maxWheel: maxWheel}
	var err error
	if m.leftPWM, err = outputPin(leftPWMPin); err != nil {
		return nil, fmt.Errorf("left motor PWM: %w", err)
	}
	if m.leftDir, err = outputPin(leftDirPin); err != nil {
		return nil, fmt.Errorf("left motor direction: %w", err)
	}
	if m.rightPWM, err = outputPin(rightPWMPin); err != nil {
		return nil, fmt.Errorf("right motor PWM: %w", err)
	}
	if m.rightDir, err = outputPin(rightDirPin); err != nil {
		return nil, fmt.Errorf("right motor direction: %w", err)
	}
	return m, nil
}

func outputPin(name string) (gpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("pin %q not found", name)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("pin %q as output: %w", name, err)
	}
	return pin, nil
}

// SetWheelSpeeds commands both wheels. Speeds outside [-maxWheel, maxWheel]
// are clamped.
func (m *Motors) SetWheelSpeeds(left, right int) error {
	if err := m.setWheel(m.leftPWM, m.leftDir, left); err != nil {
		return fmt.Errorf("left wheel: %w", err)
	}
	if err := m.setWheel(m.rightPWM, m.rightDir, right); err != nil {
		return fmt.Errorf("right wheel: %w", err)
	}
	return nil
}

// Stop halts both wheels.
func (m *Motors) Stop() error {
	return m.SetWheelSpeeds(0, 0)
}

func (m *Motors) setWheel(pwm, dir gpio.PinIO, speed int) error {
	if speed > m.maxWheel {
		speed = m.maxWheel
	} else if speed < -m.maxWheel {
		speed = -m.maxWheel
	}

	level := gpio.High // forward
	if speed < 0 {
		level = gpio.Low
		speed = -speed
	}
	if err := dir.Out(level); err != nil {
		return fmt.Errorf("direction: %w", err)
	}

	duty := gpio.Duty(int64(speed) * int64(gpio.DutyMax) / int64(m.maxWheel))
	if err := pwm.PWM(duty, motorPWMFreq); err != nil {
		return fmt.Errorf("pwm: %w", err)
	}
	return nil
}
