package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `# line_picker hardware map
LINE_LEFT_PIN=GPIO17
LINE_RIGHT_PIN=GPIO27

MOTOR_LEFT_PWM_PIN=GPIO12
MOTOR_LEFT_DIR_PIN=GPIO5
MOTOR_RIGHT_PWM_PIN=GPIO13
MOTOR_RIGHT_DIR_PIN=GPIO6

GRIPPER_PIN=GPIO18
BUZZER_PIN=GPIO23

VISION_SERIAL_PORT=/dev/ttyAMA0
VISION_BAUD_RATE=19200

DISPLAY_ENABLED=true
DISPLAY_UPDATE_INTERVAL=250

LOOP_INTERVAL=16
LOG_INTERVAL=60
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "picker_config.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LineLeftPin != "GPIO17" || cfg.LineRightPin != "GPIO27" {
		t.Errorf("line pins = %q, %q", cfg.LineLeftPin, cfg.LineRightPin)
	}
	if cfg.VisionSerialPort != "/dev/ttyAMA0" || cfg.VisionBaudRate != 19200 {
		t.Errorf("vision = %q @ %d", cfg.VisionSerialPort, cfg.VisionBaudRate)
	}
	if !cfg.DisplayEnabled {
		t.Error("DisplayEnabled = false, want true")
	}
	if cfg.LoopInterval != 16 || cfg.LogInterval != 60 {
		t.Errorf("timing = %d, %d", cfg.LoopInterval, cfg.LogInterval)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Load(writeConfig(t, validConfig+"WIFI_SSID=nope\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("err = %v, want unknown config key", err)
	}
}

func TestLoadMissingRequiredKey(t *testing.T) {
	trimmed := strings.Replace(validConfig, "GRIPPER_PIN=GPIO18\n", "", 1)
	_, err := Load(writeConfig(t, trimmed))
	if err == nil || !strings.Contains(err.Error(), "GRIPPER_PIN") {
		t.Errorf("err = %v, want GRIPPER_PIN required", err)
	}
}

func TestLoadRejectsMalformedLine(t *testing.T) {
	_, err := Load(writeConfig(t, "LINE_LEFT_PIN GPIO17\n"))
	if err == nil {
		t.Error("malformed line accepted")
	}
}

func TestLoadRejectsBadBaudRate(t *testing.T) {
	broken := strings.Replace(validConfig, "VISION_BAUD_RATE=19200", "VISION_BAUD_RATE=-1", 1)
	_, err := Load(writeConfig(t, broken))
	if err == nil || !strings.Contains(err.Error(), "VISION_BAUD_RATE") {
		t.Errorf("err = %v, want VISION_BAUD_RATE error", err)
	}
}
