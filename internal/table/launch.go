package table

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotRacked is returned by Launch once the target is already in play.
	ErrNotRacked = errors.New("target ball is not racked")
	// ErrDegenerateAim is returned when cue and target share a center.
	ErrDegenerateAim = errors.New("cue and target share a center")
)

// aimAngle returns the planar angle of d measured from +x toward -z (the
// direction of the rack, "up" on screen), resolved into the right quadrant
// from the principal acos value.
func aimAngle(d Vec2) float64 {
	dist := d.Length()
	theta := math.Acos(math.Abs(d.X) / dist)
	up := -d.Z
	switch {
	case d.X >= 0 && up >= 0: // first quadrant
	case d.X < 0 && up >= 0: // second
		theta = math.Pi - theta
	case d.X < 0 && up < 0: // third
		theta = math.Pi + theta
	default: // fourth
		theta = -theta
	}
	return theta
}

// LaunchVelocity turns the cue-to-target offset into the target's launch
// velocity. The farther the target sits from the cue, the harder the shot.
func LaunchVelocity(cue, target Vec2) (Vec2, error) {
	d := target.Minus(cue)
	dist := d.Length()
	if dist == 0 {
		return Vec2{}, ErrDegenerateAim
	}
	theta := aimAngle(d)
	return Vec2{
		X: dist * math.Cos(theta) * LaunchPower,
		Z: -dist * math.Sin(theta) * LaunchPower,
	}, nil
}

// Launch releases the target ball from the rack position.
func (t *Table) Launch() error {
	if t.phase != PhaseRack {
		return fmt.Errorf("launch in %s phase: %w", t.phase, ErrNotRacked)
	}
	v, err := LaunchVelocity(t.Cue.Center, t.Target.Center)
	if err != nil {
		t.Events.Add(t.frame, t.Target.Label(), CatDegenerate, "aim", "cue and target coincide", 0)
		t.logger.Printf("[TABLE] frame %d: launch skipped, %v", t.frame, err)
		return err
	}
	t.Target.Velocity = v
	t.shots++
	t.Events.Add(t.frame, t.Target.Label(), CatLaunch, "shot",
		fmt.Sprintf("#%d v=(%.2f,%.2f)", t.shots, v.X, v.Z), v.Length())
	t.setPhase(PhaseFlight)
	return nil
}

// LaunchWith releases the target ball with an explicit velocity instead of
// deriving it from the aim. Scripted shots and tests use it.
func (t *Table) LaunchWith(v Vec2) error {
	if t.phase != PhaseRack {
		return fmt.Errorf("launch in %s phase: %w", t.phase, ErrNotRacked)
	}
	t.Target.Velocity = v
	t.shots++
	t.Events.Add(t.frame, t.Target.Label(), CatLaunch, "scripted",
		fmt.Sprintf("#%d v=(%.2f,%.2f)", t.shots, v.X, v.Z), v.Length())
	t.setPhase(PhaseFlight)
	return nil
}
