package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds the hardware map and loop timing. Control tunables (gains,
// thresholds) are deliberately not here: they live as named parameters in
// the control package and are not runtime-reconfigurable.
type Config struct {
	// Line sensors
	LineLeftPin  string
	LineRightPin string

	// Motors (dual H-bridge: PWM + direction per side)
	MotorLeftPWMPin  string
	MotorLeftDirPin  string
	MotorRightPWMPin string
	MotorRightDirPin string

	// Gripper servo and buzzer
	GripperPin string
	BuzzerPin  string

	// Vision module (block camera over UART)
	VisionSerialPort string
	VisionBaudRate   uint

	// Status display (optional)
	DisplayEnabled        bool
	DisplayUpdateInterval int // milliseconds

	// Timing
	LoopInterval int // control cycle period, milliseconds
	LogInterval  int // cycles between status log lines
}

// Package-level unexported variables for the singleton pattern: InitGlobal
// sets the config exactly once, Get reads it under a read lock.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// Line sensors
	case "LINE_LEFT_PIN":
		c.LineLeftPin = value
	case "LINE_RIGHT_PIN":
		c.LineRightPin = value

	// Motors
	case "MOTOR_LEFT_PWM_PIN":
		c.MotorLeftPWMPin = value
	case "MOTOR_LEFT_DIR_PIN":
		c.MotorLeftDirPin = value
	case "MOTOR_RIGHT_PWM_PIN":
		c.MotorRightPWMPin = value
	case "MOTOR_RIGHT_DIR_PIN":
		c.MotorRightDirPin = value

	// Gripper and buzzer
	case "GRIPPER_PIN":
		c.GripperPin = value
	case "BUZZER_PIN":
		c.BuzzerPin = value

	// Vision
	case "VISION_SERIAL_PORT":
		c.VisionSerialPort = value
	case "VISION_BAUD_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid VISION_BAUD_RATE %q: %w", value, err)
		}
		if rate <= 0 {
			return fmt.Errorf("VISION_BAUD_RATE must be positive, got %d", rate)
		}
		c.VisionBaudRate = uint(rate)

	// Display
	case "DISPLAY_ENABLED":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_ENABLED %q: %w", value, err)
		}
		c.DisplayEnabled = enabled
	case "DISPLAY_UPDATE_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL %q: %w", value, err)
		}
		c.DisplayUpdateInterval = interval

	// Timing
	case "LOOP_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid LOOP_INTERVAL %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("LOOP_INTERVAL must be positive, got %d", interval)
		}
		c.LoopInterval = interval
	case "LOG_INTERVAL":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid LOG_INTERVAL %q: %w", value, err)
		}
		c.LogInterval = interval

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.LineLeftPin == "" {
		return fmt.Errorf("LINE_LEFT_PIN is required")
	}
	if c.LineRightPin == "" {
		return fmt.Errorf("LINE_RIGHT_PIN is required")
	}
	if c.MotorLeftPWMPin == "" {
		return fmt.Errorf("MOTOR_LEFT_PWM_PIN is required")
	}
	if c.MotorLeftDirPin == "" {
		return fmt.Errorf("MOTOR_LEFT_DIR_PIN is required")
	}
	if c.MotorRightPWMPin == "" {
		return fmt.Errorf("MOTOR_RIGHT_PWM_PIN is required")
	}
	if c.MotorRightDirPin == "" {
		return fmt.Errorf("MOTOR_RIGHT_DIR_PIN is required")
	}
	if c.GripperPin == "" {
		return fmt.Errorf("GRIPPER_PIN is required")
	}
	if c.VisionSerialPort == "" {
		return fmt.Errorf("VISION_SERIAL_PORT is required")
	}
	if c.VisionBaudRate == 0 {
		return fmt.Errorf("VISION_BAUD_RATE is required")
	}
	if c.LoopInterval == 0 {
		return fmt.Errorf("LOOP_INTERVAL is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses sync.Once
// so this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be called
// first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
