package table

import (
	"fmt"
	"math"
)

// BallKind distinguishes the three roles a ball can play.
type BallKind int

const (
	KindRack BallKind = iota
	KindCue
	KindTarget
)

func (k BallKind) String() string {
	switch k {
	case KindRack:
		return "rack"
	case KindCue:
		return "cue"
	case KindTarget:
		return "target"
	default:
		return "unknown"
	}
}

// Ball is a sphere resting on the felt. It only moves in the x/z plane;
// its height is always its radius.
type Ball struct {
	ID       int
	Kind     BallKind
	Center   Vec2
	Velocity Vec2

	radius   float64
	resource Resource
}

// NewBall creates a stopped ball of the standard radius at (x, z).
func NewBall(id int, kind BallKind, x, z float64) *Ball {
	return &Ball{
		ID:     id,
		Kind:   kind,
		Center: Vec2{X: x, Z: z},
		radius: BallRadius,
	}
}

func (b *Ball) Radius() float64 { return b.radius }

// Height is the y coordinate of the ball's center.
func (b *Ball) Height() float64 { return b.radius }

// Position returns the full 3D center.
func (b *Ball) Position() (x, y, z float64) {
	return b.Center.X, b.Height(), b.Center.Z
}

func (b *Ball) Speed() float64 { return b.Velocity.Length() }

// Stopped reports whether both velocity components are zero.
func (b *Ball) Stopped() bool { return b.Velocity.IsZero() }

// Label is the short name used in event logs: "T", "C", or "R07".
func (b *Ball) Label() string {
	switch b.Kind {
	case KindCue:
		return "C"
	case KindTarget:
		return "T"
	default:
		return fmt.Sprintf("R%02d", b.ID)
	}
}

// Resource returns the frontend resource attached at setup, if any.
func (b *Ball) Resource() Resource { return b.resource }

func (b *Ball) release() {
	if b.resource != nil {
		b.resource.Release()
		b.resource = nil
	}
	b.Velocity = Vec2{}
}

// Integrate advances the ball by one frame of elapsed seconds and applies
// friction.
//
// The velocity floor and ceiling are gameplay stabilisers rather than
// physics: components below MinVelocity are boosted by FloorBoost (signed
// comparison, so negative components always qualify), and the final speed
// never exceeds MaxSpeed.
func (b *Ball) Integrate(elapsed float64) {
	if math.Abs(b.Velocity.X) > StopEpsilon || math.Abs(b.Velocity.Z) > StopEpsilon {
		b.Center = b.Center.Plus(b.Velocity.Times(TimeScale * elapsed))
	} else {
		b.Velocity = Vec2{}
	}

	b.Velocity = b.Velocity.Times(DecayRate)

	rate := 1 - (1-DecayRate)*elapsed*DecayTimeFactor
	if rate < 0 {
		rate = 0
	}
	decayed := b.Velocity.Times(rate)

	vx, vz := decayed.X, decayed.Z
	switch {
	case vx >= MinVelocity && vz >= MinVelocity:
	case vx < MinVelocity && vz >= MinVelocity:
		vx *= FloorBoost
	case vx >= MinVelocity && vz < MinVelocity:
		vz *= FloorBoost
	default:
		vx *= FloorBoost
		vz *= FloorBoost
	}
	b.Velocity = Vec2{X: vx, Z: vz}

	if s := decayed.Length(); s > MaxSpeed {
		b.Velocity = decayed.Times(MaxSpeed / s)
	}
	// The boost can still push a capped-out ball over the ceiling.
	if s := b.Velocity.Length(); s > MaxSpeed {
		b.Velocity = b.Velocity.Times(MaxSpeed / s)
	}
}

// Intersects reports whether the two spheres touch or overlap. Touching
// counts.
func (b *Ball) Intersects(o *Ball) bool {
	dx := b.Center.X - o.Center.X
	dy := b.Height() - o.Height()
	dz := b.Center.Z - o.Center.Z
	sum := b.radius + o.radius
	return dx*dx+dy*dy+dz*dz <= sum*sum
}

// Deflect bounces striker off b: the striker's velocity is reflected about
// the unit normal pointing from b's center to the striker's. b itself is
// left untouched. It returns false when the balls do not touch or their
// centers coincide.
func (b *Ball) Deflect(striker *Ball) bool {
	if !b.Intersects(striker) {
		return false
	}
	n := striker.Center.Minus(b.Center)
	if n.IsZero() {
		return false
	}
	striker.Velocity = striker.Velocity.Reflect(n.Normalize())
	return true
}
