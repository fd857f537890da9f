// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package drive

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Note is one step of a tune: a frequency and how long to hold it.
// Hz 0 is a rest.
type Note struct {
	Hz    int
	DurMS int
}

// StartupChirp is played once when the robot powers up.
var StartupChirp = []Note{
	{Hz: 880, DurMS: 100},
	{Hz: 1175, DurMS: 100},
	{Hz: 1760, DurMS: 150},
}

// VictoryTune is played after a successful pickup.
var VictoryTune = []Note{
	{Hz: 660, DurMS: 120},
	{Hz: 660, DurMS: 120},
	{Hz: 0, DurMS: 60},
	{Hz: 660, DurMS: 120},
	{Hz: 0, DurMS: 60},
	{Hz: 523, DurMS: 120},
	{Hz: 660, DurMS: 120},
	{Hz: 784, DurMS: 240},
}

// Buzzer drives a piezo on a PWM pin. Playback is fire and forget: Play
// returns immediately and the tune runs in its own goroutine, since nothing
// in the control loop ever waits on audio.
type Buzzer struct {
	pin gpio.PinIO
}

// NewBuzzer initializes the buzzer pin.
func NewBuzzer(pinName string) (*Buzzer, error) {
	pin, err := outputPin(pinName)
	if err != nil {
		return nil, fmt.Errorf("buzzer: %w", err)
	}
	return &Buzzer{pin: pin}, nil
}

// Play starts the sequence and returns immediately.
func (b *Buzzer) Play(seq []Note) {
	go b.play(seq)
}

// Startup plays the power-up chirp.
func (b *Buzzer) Startup() { b.Play(StartupChirp) }

// Victory plays the pickup-complete tune.
func (b *Buzzer) Victory() { b.Play(VictoryTune) }

func (b *Buzzer) play(seq []Note) {
	for _, n := range seq {
		if n.Hz <= 0 {
			if err := b.pin.Out(gpio.Low); err != nil {
				log.Printf("buzzer: rest: %v", err)
			}
		} else {
			freq := physic.Frequency(n.Hz) * physic.Hertz
			if err := b.pin.PWM(gpio.DutyHalf, freq); err != nil {
				log.Printf("buzzer: tone %d Hz: %v", n.Hz, err)
			}
		}
		time.Sleep(time.Duration(n.DurMS) * time.Millisecond)
	}
	if err := b.pin.Out(gpio.Low); err != nil {
		log.Printf("buzzer: silence: %v", err)
	}
}
