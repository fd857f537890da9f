package control

import "math"

// Mix converts the current move mode, turn rate, and drive speed into left
// and right wheel commands in [-MaxWheel, MaxWheel]. Pure and stateless.
//
// A positive turn rate speeds up the right wheel and slows (or reverses)
// the left one; the wheel factors are clamped to [-1, 1] before scaling, so
// a saturating turn rate pins one wheel rather than overflowing the range.
func Mix(p Params, mode MoveMode, turnRate, driveSpeed float64) (left, right int) {
	switch mode {
	case MoveForward:
		s := int(math.Round(driveSpeed * float64(p.MaxWheel)))
		return s, s
	case MoveTurnLeft, MoveTurnRight:
		scale := driveSpeed * float64(p.MaxWheel)
		lf := clamp(1-turnRate, -1, 1)
		rf := clamp(1+turnRate, -1, 1)
		return int(math.Round(lf * scale)), int(math.Round(rf * scale))
	default:
		// Stopped or anything unrecognized halts the wheels.
		return 0, 0
	}
}

// GrowTurn ramps the turn rate multiplicatively with elapsed time and clamps
// it to ±MaxTurn. The binary line sensors report direction but not how far
// off-center the robot is, so the longer a turn lasts the harder it steers.
func GrowTurn(p Params, turnRate, dtMS float64) float64 {
	return clamp(turnRate*(1+p.TurnGrowth*dtMS), -p.MaxTurn, p.MaxTurn)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
