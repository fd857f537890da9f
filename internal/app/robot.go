package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relabs-tech/line_picker/internal/config"
	"github.com/relabs-tech/line_picker/internal/control"
	"github.com/relabs-tech/line_picker/internal/display"
	"github.com/relabs-tech/line_picker/internal/drive"
	"github.com/relabs-tech/line_picker/internal/sensors"
)

// silentSounder stands in when no buzzer is wired or it failed to init.
type silentSounder struct{}

func (silentSounder) Victory() {}

// RunRobot brings up the hardware and runs the control loop until the
// process is interrupted. The loop itself never exits on its own: after a
// pickup the machine parks in Idle and keeps halting the wheels each cycle.
func RunRobot() error {
	cfg := config.Get()

	// --- sensors ---
	line, err := sensors.NewLinePair(cfg.LineLeftPin, cfg.LineRightPin)
	if err != nil {
		return fmt.Errorf("line sensors: %w", err)
	}

	cam, err := sensors.NewBlockCam(cfg.VisionSerialPort, cfg.VisionBaudRate)
	if err != nil {
		return fmt.Errorf("vision: %w", err)
	}
	defer cam.Close()

	// --- actuators ---
	params := control.DefaultParams()

	motors, err := drive.NewMotors(
		cfg.MotorLeftPWMPin, cfg.MotorLeftDirPin,
		cfg.MotorRightPWMPin, cfg.MotorRightDirPin,
		params.MaxWheel,
	)
	if err != nil {
		return fmt.Errorf("motors: %w", err)
	}
	defer motors.Stop()

	gripper, err := drive.NewGripper(cfg.GripperPin)
	if err != nil {
		return fmt.Errorf("gripper: %w", err)
	}

	// The buzzer is feedback only; run silent if it is absent or broken.
	var snd control.Sounder = silentSounder{}
	if cfg.BuzzerPin != "" {
		buzzer, err := drive.NewBuzzer(cfg.BuzzerPin)
		if err != nil {
			log.Printf("buzzer unavailable, running silent: %v", err)
		} else {
			buzzer.Startup()
			snd = buzzer
		}
	}

	// The status panel is optional and never fatal.
	var panel *display.Panel
	if cfg.DisplayEnabled {
		panel, err = display.NewPanel()
		if err != nil {
			log.Printf("status display unavailable: %v", err)
			panel = nil
		} else {
			defer panel.Close()
			if err := panel.Splash(); err != nil {
				log.Printf("display splash: %v", err)
			}
		}
	}

	machine := control.NewMachine(params, line, cam, motors, gripper, snd)
	log.Printf("robot ready: loop every %d ms, starting in %s", cfg.LoopInterval, machine.Mode())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(cfg.LoopInterval) * time.Millisecond)
	defer ticker.Stop()

	displayEvery := 1
	if panel != nil && cfg.DisplayUpdateInterval > cfg.LoopInterval {
		displayEvery = cfg.DisplayUpdateInterval / cfg.LoopInterval
	}

	var lastTick time.Time
	var cycles uint64

	for {
		select {
		case sig := <-sigs:
			log.Printf("received %v, stopping wheels", sig)
			return motors.Stop()

		case now := <-ticker.C:
			// Δt in ms, floored to 1 so a stalled clock never zeroes the
			// time-dependent math.
			dtMS := 1.0
			if !lastTick.IsZero() {
				dtMS = float64(now.Sub(lastTick).Milliseconds())
				if dtMS < 1 {
					dtMS = 1
				}
			}
			lastTick = now

			if err := machine.Cycle(dtMS); err != nil {
				// Sensor hiccups are not fatal: skip the cycle, keep the
				// last wheel command, and try again next tick.
				log.Printf("cycle: %v", err)
				continue
			}
			cycles++

			if panel != nil && cycles%uint64(displayEvery) == 0 {
				v := machine.Vehicle()
				l, r := machine.Wheels()
				if err := panel.Show(display.Status{
					Program:     machine.Mode().String(),
					Move:        v.Move.String(),
					LeftWheel:   l,
					RightWheel:  r,
					TargetWidth: v.LastWidth,
				}); err != nil {
					log.Printf("display: %v", err)
				}
			}

			if cfg.LogInterval > 0 && cycles%uint64(cfg.LogInterval) == 0 {
				v := machine.Vehicle()
				l, r := machine.Wheels()
				log.Printf("tick: %s/%s turn=%.3f speed=%.2f wheels=(%d,%d)",
					machine.Mode(), v.Move, v.TurnRate, v.DriveSpeed, l, r)
			}
		}
	}
}
