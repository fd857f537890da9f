// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"log"

	"github.com/relabs-tech/line_picker/internal/app"
)

func main() {
	log.Println("starting line_picker (scripted simulation, no hardware)")

	if err := app.RunSim(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
