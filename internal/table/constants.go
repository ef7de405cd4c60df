package table

// Table geometry and physics tuning. All distances are in table units
// (the felt is 6 wide and 9 deep, centred on the origin). These are fixed
// design parameters of the game, not configuration.
const (
	BallRadius = 0.21

	// Inner faces of the cushions. The playable area is
	// [-TableHalfWidth, TableHalfWidth] x [-TableHalfDepth, TableHalfDepth].
	TableHalfWidth = 3.0
	TableHalfDepth = 4.44
	WallThickness  = 0.12
	WallHeight     = 0.3

	FeltWidth = 6.0
	FeltDepth = 9.0

	TimeScale       = 3.3    // position advance per unit velocity per second
	StopEpsilon     = 0.01   // per-axis speed at or below which a ball is stopped
	DecayRate       = 0.9982 // per-frame friction factor
	DecayTimeFactor = 400.0  // scales (1-DecayRate) into the time-proportional decay
	MinVelocity     = 2.0    // creep floor for the boost and the wall rescale
	FloorBoost      = 1.1    // multiplier applied to axes under MinVelocity
	MaxSpeed        = 5.0
	LaunchPower     = 3.0

	// MaxFrameTime is the longest elapsed time one Step simulates. At
	// MaxSpeed a ball then moves less than a corner's catch width per step.
	MaxFrameTime = 1.0 / 30

	CueStartZ    = 4.2
	TargetStartZ = 3.78

	RackSize = 36
)

// rackLayout is the fixed starting position (x, z) of every rack ball: a
// frame, two eyes, a nose and a smile.
var rackLayout = [RackSize][2]float64{
	// frame
	{-1.47, -4}, {-1.05, -4}, {-0.63, -4}, {-0.21, -4}, {0.21, -4}, {0.63, -4}, {1.05, -4}, {1.47, -4},
	{-1.89, -3.58}, {1.89, -3.58},
	{-2.31, -3.16}, {-2.31, -2.74}, {-2.31, -2.32}, {-2.31, -1.9}, {-2.31, -1.48}, {-2.31, -1.06},
	{2.31, -3.16}, {2.31, -2.74}, {2.31, -2.32}, {2.31, -1.9}, {2.31, -1.48}, {2.31, -1.06},
	// eyes
	{-1.05, -2.74}, {-1.05, -2.32}, {1.05, -2.74}, {1.05, -2.32},
	// nose
	{0, -1.48}, {0, -1.06},
	// mouth
	{-1.47, -0.64}, {-1.05, -0.22}, {-0.63, 0.2}, {-0.21, 0.2}, {0.21, 0.2}, {0.63, 0.2}, {1.05, -0.22}, {1.47, -0.64},
}

// RackLayout returns a copy of the starting rack positions.
func RackLayout() []Vec2 {
	out := make([]Vec2, RackSize)
	for i, p := range rackLayout {
		out[i] = Vec2{X: p[0], Z: p[1]}
	}
	return out
}
