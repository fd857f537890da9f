// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// LinePair reads the two digital IR line sensors mounted under the chassis.
// A high level means the sensor sees the line.
type LinePair struct {
	left  gpio.PinIO
	right gpio.PinIO
}

// NewLinePair initializes the two line-sensor inputs by pin name.
func NewLinePair(leftPin, rightPin string) (*LinePair, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("line sensors: periph host init: %w", err)
	}

	left, err := lineInput(leftPin)
	if err != nil {
		return nil, fmt.Errorf("left line sensor: %w", err)
	}
	right, err := lineInput(rightPin)
	if err != nil {
		return nil, fmt.Errorf("right line sensor: %w", err)
	}

	return &LinePair{left: left, right: right}, nil
}

func lineInput(name string) (gpio.PinIO, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("pin %q not found", name)
	}
	if err := pin.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("pin %q as input: %w", name, err)
	}
	return pin, nil
}

// ReadLine samples both sensors. Non-blocking.
func (s *LinePair) ReadLine() (left, right bool, err error) {
	return s.left.Read() == gpio.High, s.right.Read() == gpio.High, nil
}
