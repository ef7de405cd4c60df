package table

import (
	"errors"
	"io"
	"log"
	"math"
	"testing"
)

var quiet = WithLogger(log.New(io.Discard, "", 0))

// countingFactory hands out tracked resources and fails the call after
// failAfter successful ones (never, if failAfter < 0).
type countingFactory struct {
	failAfter int
	created   int
	released  int
}

var errNoSprite = errors.New("no sprite")

type countedResource struct{ f *countingFactory }

func (r countedResource) Release() { r.f.released++ }

func (f *countingFactory) next() (Resource, error) {
	if f.failAfter >= 0 && f.created >= f.failAfter {
		return nil, errNoSprite
	}
	f.created++
	return countedResource{f}, nil
}

func (f *countingFactory) NewBallResource(BallKind, float64) (Resource, error) { return f.next() }

func (f *countingFactory) NewBoundaryResource(string, float64, float64) (Resource, error) {
	return f.next()
}

func mustSetup(t *testing.T, opts ...Option) *Table {
	t.Helper()
	tb, err := Setup(NopFactory{}, append([]Option{quiet}, opts...)...)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	return tb
}

func TestSetup_StartingPositions(t *testing.T) {
	tb := mustSetup(t)
	if tb.Phase() != PhaseRack {
		t.Fatalf("expected rack phase, got %s", tb.Phase())
	}
	if len(tb.Rack) != RackSize {
		t.Fatalf("expected %d rack balls, got %d", RackSize, len(tb.Rack))
	}
	if len(tb.Walls) != 4 {
		t.Fatalf("expected 4 walls, got %d", len(tb.Walls))
	}
	if tb.Cue.Center != (Vec2{Z: CueStartZ}) {
		t.Errorf("cue at %v", tb.Cue.Center)
	}
	if tb.Target.Center != (Vec2{Z: TargetStartZ}) {
		t.Errorf("target at %v", tb.Target.Center)
	}
	for i, b := range tb.Rack {
		if !b.Stopped() {
			t.Errorf("rack ball %d is moving", i)
		}
	}
}

func TestSetup_FailureReleasesEverything(t *testing.T) {
	// Fail on the cue ball: 4 walls and the whole rack were already built.
	f := &countingFactory{failAfter: 4 + RackSize}
	tb, err := Setup(f, quiet)
	if err == nil {
		t.Fatal("expected setup error")
	}
	if tb != nil {
		t.Fatal("failed setup should not return a table")
	}
	if !errors.Is(err, errNoSprite) {
		t.Fatalf("error should wrap the factory error, got %v", err)
	}
	if f.created != 4+RackSize || f.released != f.created {
		t.Fatalf("created=%d released=%d, want all released", f.created, f.released)
	}
}

func TestTeardown_ReleasesEveryResource(t *testing.T) {
	f := &countingFactory{failAfter: -1}
	tb, err := Setup(f, quiet)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	tb.Teardown()
	if f.created != 4+RackSize+2 || f.released != f.created {
		t.Fatalf("created=%d released=%d", f.created, f.released)
	}
}

func TestLaunch_StraightShotHeadsForRack(t *testing.T) {
	tb := mustSetup(t)
	if err := tb.Launch(); err != nil {
		t.Fatalf("launch: %v", err)
	}
	v := tb.Target.Velocity
	if math.Abs(v.X) > 1e-9 {
		t.Errorf("straight shot should have no x velocity, got %g", v.X)
	}
	if v.Z >= 0 {
		t.Errorf("shot should head toward the rack (-z), got %g", v.Z)
	}
	if tb.Phase() != PhaseFlight || tb.Shots() != 1 {
		t.Errorf("phase=%s shots=%d", tb.Phase(), tb.Shots())
	}
	if err := tb.Launch(); !errors.Is(err, ErrNotRacked) {
		t.Fatalf("second launch should fail with ErrNotRacked, got %v", err)
	}
}

func TestLaunchVelocity_AllQuadrants(t *testing.T) {
	cue := Vec2{X: 0.5, Z: 1}
	for _, d := range []Vec2{{X: 0.3, Z: -0.3}, {X: -0.3, Z: -0.3}, {X: -0.3, Z: 0.3}, {X: 0.3, Z: 0.3}, {X: 0.42}} {
		v, err := LaunchVelocity(cue, cue.Plus(d))
		if err != nil {
			t.Fatalf("offset %v: %v", d, err)
		}
		want := d.Times(LaunchPower)
		if math.Abs(v.X-want.X) > 1e-9 || math.Abs(v.Z-want.Z) > 1e-9 {
			t.Errorf("offset %v: got %v, want %v", d, v, want)
		}
	}
	if _, err := LaunchVelocity(cue, cue); !errors.Is(err, ErrDegenerateAim) {
		t.Fatalf("coincident aim should fail, got %v", err)
	}
}

func TestDragCue_ClampsToFelt(t *testing.T) {
	tb := mustSetup(t)
	tb.DragCue(10)
	if want := TableHalfWidth - BallRadius; math.Abs(tb.Cue.Center.X-want) > 1e-12 {
		t.Fatalf("expected x=%.2f, got %.4f", want, tb.Cue.Center.X)
	}
	tb.DragCue(-100)
	if want := -TableHalfWidth + BallRadius; math.Abs(tb.Cue.Center.X-want) > 1e-12 {
		t.Fatalf("expected x=%.2f, got %.4f", want, tb.Cue.Center.X)
	}
}

func TestStep_RackedTargetFollowsCue(t *testing.T) {
	tb := mustSetup(t)
	tb.DragCue(1.0)
	if out, err := tb.Step(DefaultFrameTime); out != Continue || err != nil {
		t.Fatalf("step: %s %v", out, err)
	}
	if tb.Target.Center.X != tb.Cue.Center.X {
		t.Fatalf("target x=%.3f should follow cue x=%.3f", tb.Target.Center.X, tb.Cue.Center.X)
	}
	if !tb.Target.Stopped() {
		t.Fatalf("racked target should not move, got %v", tb.Target.Velocity)
	}
}

func TestStep_PocketRestartsTable(t *testing.T) {
	h, err := NewHarness(WithShotVelocity(Vec2{Z: 3}))
	if err != nil {
		t.Fatalf("harness: %v", err)
	}
	h.Table.Cue.Center.X = -2.5 // clear the path to the pocket edge
	if err := h.Shoot(); err != nil {
		t.Fatalf("shoot: %v", err)
	}

	if h.RunUntil(func(tb *Table) bool { return tb.Phase() == PhaseRestarting }, 120) < 0 {
		t.Fatalf("target never reached the pocket edge\n%s", h.Events.Format())
	}
	if h.RunUntil(func(tb *Table) bool { return tb.Restarts() == 1 }, 1) < 0 {
		t.Fatalf("table was not rebuilt on the next frame\n%s", h.Events.Format())
	}

	tb := h.Table
	if tb.Phase() != PhaseRack {
		t.Fatalf("expected rack phase after restart, got %s", tb.Phase())
	}
	layout := RackLayout()
	if len(tb.Rack) != len(layout) {
		t.Fatalf("expected %d rack balls, got %d", len(layout), len(tb.Rack))
	}
	for i, b := range tb.Rack {
		if b.Center != layout[i] || !b.Stopped() {
			t.Errorf("rack ball %d at %v moving=%v", i, b.Center, !b.Stopped())
		}
	}
	if tb.Cue.Center != (Vec2{Z: CueStartZ}) || !tb.Cue.Stopped() {
		t.Errorf("cue not reset: %v %v", tb.Cue.Center, tb.Cue.Velocity)
	}
	if tb.Target.Center != (Vec2{Z: TargetStartZ}) || !tb.Target.Stopped() {
		t.Errorf("target not reset: %v %v", tb.Target.Center, tb.Target.Velocity)
	}
	if !h.Events.HasEntry(CatWall, "pocket", "bottom") {
		t.Errorf("expected a pocket event\n%s", h.Events.Format())
	}
}

func TestStep_RestartFailureStops(t *testing.T) {
	f := &countingFactory{failAfter: 4 + RackSize + 2}
	tb, err := Setup(f, quiet)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	tb.Cue.Center.X = -2.5
	if err := tb.LaunchWith(Vec2{Z: 3}); err != nil {
		t.Fatalf("launch: %v", err)
	}
	for i := 0; i < 120; i++ {
		out, err := tb.Step(DefaultFrameTime)
		if err != nil {
			if out != Stop {
				t.Fatalf("failed restart should stop, got %s", out)
			}
			if !errors.Is(err, errNoSprite) {
				t.Fatalf("error should wrap the factory error, got %v", err)
			}
			return
		}
	}
	t.Fatal("restart never failed")
}

func TestStep_ClearingLastBallStops(t *testing.T) {
	tb := mustSetup(t, WithRack([]Vec2{{X: 0, Z: 2}}))
	if err := tb.Launch(); err != nil {
		t.Fatalf("launch: %v", err)
	}

	var cleared bool
	for i := 0; i < 300; i++ {
		out, err := tb.Step(DefaultFrameTime)
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		if tb.Phase() == PhaseCleared {
			if out != Continue {
				t.Fatalf("the clearing frame itself should continue, got %s", out)
			}
			cleared = true
			break
		}
	}
	if !cleared {
		t.Fatalf("rack never cleared\n%s", tb.Events.Format())
	}

	frame := tb.Frame()
	pos := tb.Target.Center
	for i := 0; i < 3; i++ {
		if out, _ := tb.Step(DefaultFrameTime); out != Stop {
			t.Fatalf("cleared table should stop, got %s", out)
		}
	}
	if tb.Frame() != frame || tb.Target.Center != pos {
		t.Fatalf("cleared table moved: frame %d→%d, target %v→%v", frame, tb.Frame(), pos, tb.Target.Center)
	}
	if err := tb.Launch(); !errors.Is(err, ErrNotRacked) {
		t.Fatalf("launch after clear should fail, got %v", err)
	}
}

func TestStep_OneKnockoutPerFrame(t *testing.T) {
	// Two balls placed symmetrically about a straight shot are touched in
	// the same frame.
	h, err := NewHarness(
		WithHarnessRack([]Vec2{{X: -0.2, Z: 2}, {X: 0.2, Z: 2}}),
		WithShotVelocity(Vec2{Z: -3}),
	)
	if err != nil {
		t.Fatalf("harness: %v", err)
	}
	if err := h.Shoot(); err != nil {
		t.Fatalf("shoot: %v", err)
	}
	if h.RunUntil(func(tb *Table) bool { return tb.KnockedOut() > 0 }, 300) < 0 {
		t.Fatalf("no knockout\n%s", h.Events.Format())
	}
	if len(h.Table.Rack) != 1 || h.Table.Rack[0].ID != 1 {
		t.Fatalf("only the first ball in rack order should go, rack=%v", h.Table.Rack)
	}
	if n := h.Events.CountCategory(CatRack, "knockout"); n != 1 {
		t.Fatalf("expected 1 knockout event, got %d", n)
	}
}

func TestStep_CoincidentRackBallIsRemovedWithoutResponse(t *testing.T) {
	tb := mustSetup(t, WithRack([]Vec2{{X: 0, Z: TargetStartZ}}))
	if _, err := tb.Step(DefaultFrameTime); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(tb.Rack) != 0 {
		t.Fatalf("coincident ball should still be removed")
	}
	if !tb.Events.HasEntry(CatDegenerate, "coincident", "T") {
		t.Fatalf("expected a degenerate event\n%s", tb.Events.Format())
	}
	if tb.Phase() != PhaseCleared {
		t.Fatalf("expected cleared, got %s", tb.Phase())
	}
}

func TestStep_LongFramesKeepTargetOnTable(t *testing.T) {
	h, err := NewHarness(
		WithFrameTime(0.1),
		WithHarnessRack([]Vec2{{X: 2.5, Z: -4}}),
		WithCueOffset(-2.5),
		WithShotVelocity(Vec2{X: 5, Z: -0.3}),
	)
	if err != nil {
		t.Fatalf("harness: %v", err)
	}
	if err := h.Shoot(); err != nil {
		t.Fatalf("shoot: %v", err)
	}

	const limit = TableHalfWidth + WallThickness
	for i := 0; i < 600; i++ {
		if h.Step() == Stop || h.Table.Phase() == PhaseRack {
			break
		}
		p := h.Table.Target.Center
		if p.X < -limit || p.X > limit || p.Z < -(TableHalfDepth+WallThickness) {
			t.Fatalf("frame %d: target left the table at %v in phase %s\n%s",
				h.Table.Frame(), p, h.Table.Phase(), h.Events.Format())
		}
	}
	if h.Err != nil {
		t.Fatalf("step: %v", h.Err)
	}
}

func TestStep_ClampsElapsed(t *testing.T) {
	tb := mustSetup(t)
	if err := tb.LaunchWith(Vec2{Z: -3}); err != nil {
		t.Fatalf("launch: %v", err)
	}
	start := tb.Target.Center
	if _, err := tb.Step(1.0); err != nil {
		t.Fatalf("step: %v", err)
	}
	moved := tb.Target.Center.Minus(start).Length()
	if want := 3 * TimeScale * MaxFrameTime; math.Abs(moved-want) > 1e-9 {
		t.Fatalf("a one-second frame should move %.4f, moved %.4f", want, moved)
	}
}
