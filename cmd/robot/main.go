// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/line_picker/internal/app"
	"github.com/relabs-tech/line_picker/internal/config"
)

func main() {
	configPath := flag.String("config", "./picker_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting line_picker (follow line → track block → pick up)")

	// Load configuration
	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunRobot(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
