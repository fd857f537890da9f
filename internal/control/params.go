package control

// Params bundles every control tunable. These are deliberately compiled-in:
// the robot has no runtime configuration surface for the control laws, only
// named parameters adjustable here without touching the algorithms.
type Params struct {
	// Steering
	MaxTurn         float64 // clamp on turn rate magnitude
	InitialTurnRate float64 // seed magnitude when a new turn begins
	TurnGrowth      float64 // multiplicative ramp per millisecond while turning

	// Line following
	FollowSpeed       float64 // throttle while on the line
	FinishThresholdMS float64 // sustained both-sensors time confirming end of line

	// Target tracking (Pixy image coordinates)
	CenterX     float64 // horizontal image center, pixels
	TargetWidth float64 // apparent width at grasping distance, pixels
	Kp          float64
	Ki          float64
	Kd          float64
	SearchSpeed float64 // throttle while spinning to find a block

	ApproachFloor float64 // minimum throttle while closing on a block

	// Drive
	MaxWheel int // wheel command range is [-MaxWheel, MaxWheel]

	// Pickup
	GripOpenAngle    int     // gripper fully open, degrees
	GripGraspAngle   int     // gripper closed around a block, degrees
	PickupCreepSpeed float64 // throttle for the final nudge under the block
	PickupCreepMS    int     // duration of the final nudge, milliseconds
}

// DefaultParams returns the tuning the robot ships with.
func DefaultParams() Params {
	return Params{
		MaxTurn:         0.8,
		InitialTurnRate: 0.3,
		TurnGrowth:      0.0015,

		FollowSpeed:       1.0,
		FinishThresholdMS: 300,

		CenterX:     160,
		TargetWidth: 60,
		Kp:          0.35,
		Ki:          0.02,
		Kd:          0.01,
		SearchSpeed: 0.6,

		ApproachFloor: 0.5,

		MaxWheel: 255,

		GripOpenAngle:    80,
		GripGraspAngle:   25,
		PickupCreepSpeed: 0.4,
		PickupCreepMS:    400,
	}
}
