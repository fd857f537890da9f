package control

// pidRate is the sampling rate the PID terms assume, in Hz. The discrete
// integral and derivative are computed against this fixed rate rather than
// the measured cycle time; the gains were tuned against it and converting
// them to true Δt terms would change the tuning.
const pidRate = 60.0

// Tracker turns vision detections into steering and throttle. It runs a PID
// controller on the normalized horizontal offset of the first detected
// block; when nothing is detected it spins in place to search.
type Tracker struct {
	p Params
}

// NewTracker returns a target tracker with the given tuning.
func NewTracker(p Params) Tracker {
	return Tracker{p: p}
}

// Update consumes one cycle's detections and mutates the vehicle's move
// mode, turn rate, and drive speed. It returns true once the block appears
// wide enough to grasp, at which point the vehicle is stopped.
func (t Tracker) Update(v *Vehicle, blocks []Block) bool {
	if len(blocks) == 0 {
		// Nothing in view: spin clockwise until a block crosses the frame.
		v.Move = MoveTurnRight
		v.TurnRate = -t.p.MaxTurn
		v.DriveSpeed = t.p.SearchSpeed
		return false
	}

	// Only the first block matters; the camera reports largest-first and
	// picking one keeps the controller single-target.
	b := blocks[0]
	v.LastWidth = b.Width

	if b.Width >= t.p.TargetWidth {
		v.Move = MoveStopped
		v.TurnRate = 0
		v.DriveSpeed = 0
		return true
	}

	// Normalized horizontal offset: positive when the block is left of
	// center. Dividing by the apparent width keeps the error scale roughly
	// distance-independent.
	err := (t.p.CenterX - b.X) / b.Width
	if !v.Tracking {
		v.LastError = err
		v.Tracking = true
	}

	v.Integral += err / pidRate
	deriv := (err - v.LastError) * pidRate
	v.TurnRate = t.p.Kp*err + t.p.Ki*v.Integral + t.p.Kd*deriv
	v.LastError = err

	// No clamp on the PID output: the gains keep it small in practice and
	// the mixer bounds the wheel factors regardless.

	// Throttle eases from full speed far away down to the floor as the
	// block fills the frame.
	far := clamp((t.p.TargetWidth-b.Width)/t.p.TargetWidth, 0, 1)
	v.DriveSpeed = t.p.ApproachFloor + (1-t.p.ApproachFloor)*far

	if v.TurnRate > 0 {
		v.Move = MoveTurnRight
	} else {
		v.Move = MoveTurnLeft
	}
	return false
}
