package control

// Follower steers the robot along the line using the two binary line
// sensors. All of its state lives in the Vehicle.
type Follower struct {
	p Params
}

// NewFollower returns a line follower with the given tuning.
func NewFollower(p Params) Follower {
	return Follower{p: p}
}

// Update classifies one sensor reading and mutates the vehicle's move mode
// and turn rate. It returns true once the end-of-line condition (both
// sensors triggered for FinishThresholdMS without interruption) is
// confirmed, at which point the vehicle is stopped.
func (f Follower) Update(v *Vehicle, left, right bool, dtMS float64) bool {
	// First cycle out of Stopped just gets the robot moving.
	if v.Move == MoveStopped {
		v.Move = MoveForward
		v.DriveSpeed = f.p.FollowSpeed
		v.FinishMS = 0
		return false
	}

	switch {
	case left && right:
		// Candidate end-of-line marker. Debounced: transient double hits
		// (crossings, tape joints) must not end the run.
		v.FinishMS += dtMS
		if v.FinishMS >= f.p.FinishThresholdMS {
			v.Move = MoveStopped
			v.TurnRate = 0
			v.DriveSpeed = 0
			return true
		}
	case left:
		v.FinishMS = 0
		if v.Move != MoveTurnLeft {
			// New turn direction: seed a gentle turn, the ramp takes it
			// from here. Positive rates steer left (right wheel faster).
			v.Move = MoveTurnLeft
			v.TurnRate = f.p.InitialTurnRate
		}
	case right:
		v.FinishMS = 0
		if v.Move != MoveTurnRight {
			v.Move = MoveTurnRight
			v.TurnRate = -f.p.InitialTurnRate
		}
	default:
		// Neither sensor sees the line. Hold the last decision and bet on
		// the line reappearing; there is no explicit lost-line recovery.
		v.FinishMS = 0
	}
	return false
}
