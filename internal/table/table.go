package table

import (
	"fmt"
	"log"
)

// Table is the whole simulation state: rack, cue and target balls, the four
// cushions and the current phase. The frame driver owns it and calls Step
// once per frame; input handlers call Launch and DragCue between steps on
// the same goroutine.
type Table struct {
	Rack   []*Ball
	Cue    *Ball
	Target *Ball
	Walls  []*Boundary // priority order: right, left, top, bottom (pocket)
	Events *EventLog

	phase    Phase
	frame    int
	shots    int
	restarts int
	knocked  int

	factory ResourceFactory
	layout  []Vec2
	logger  *log.Logger
}

// Option customises Setup.
type Option func(*Table)

// WithLogger routes the table's diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(t *Table) { t.logger = l }
}

// WithEventLog records events into el instead of a fresh unbounded log.
func WithEventLog(el *EventLog) Option {
	return func(t *Table) { t.Events = el }
}

// WithRack replaces the standard rack layout. Used by scenario tests.
func WithRack(positions []Vec2) Option {
	return func(t *Table) {
		t.layout = append([]Vec2(nil), positions...)
	}
}

// Setup builds every entity at its starting position and asks factory for
// their resources. If any resource cannot be created, everything built so
// far is released and the error is returned.
func Setup(factory ResourceFactory, opts ...Option) (*Table, error) {
	if factory == nil {
		factory = NopFactory{}
	}
	t := &Table{
		factory: factory,
		layout:  RackLayout(),
		logger:  log.Default(),
	}
	for _, o := range opts {
		o(t)
	}
	if t.Events == nil {
		t.Events = NewEventLog(0, false)
	}
	if err := t.build(); err != nil {
		return nil, err
	}
	t.phase = PhaseRack
	return t, nil
}

// build creates all entities at their starting positions.
func (t *Table) build() error {
	walls := standardWalls()
	for _, w := range walls {
		res, err := t.factory.NewBoundaryResource(w.Name, w.Width, w.Depth)
		if err != nil {
			releaseAll(walls, nil, nil)
			return fmt.Errorf("create %s wall: %w", w.Name, err)
		}
		w.resource = res
	}

	rack := make([]*Ball, 0, len(t.layout))
	for i, p := range t.layout {
		b := NewBall(i, KindRack, p.X, p.Z)
		res, err := t.factory.NewBallResource(KindRack, b.Radius())
		if err != nil {
			releaseAll(walls, rack, nil)
			return fmt.Errorf("create rack ball %d: %w", i, err)
		}
		b.resource = res
		rack = append(rack, b)
	}

	cue := NewBall(-1, KindCue, 0, CueStartZ)
	res, err := t.factory.NewBallResource(KindCue, cue.Radius())
	if err != nil {
		releaseAll(walls, rack, nil)
		return fmt.Errorf("create cue ball: %w", err)
	}
	cue.resource = res

	target := NewBall(-2, KindTarget, cue.Center.X, TargetStartZ)
	res, err = t.factory.NewBallResource(KindTarget, target.Radius())
	if err != nil {
		releaseAll(walls, rack, []*Ball{cue})
		return fmt.Errorf("create target ball: %w", err)
	}
	target.resource = res

	t.Walls = walls
	t.Rack = rack
	t.Cue = cue
	t.Target = target
	return nil
}

// standardWalls lays out the four cushions around the felt, in the order
// their faces take priority when a ball touches two at once.
func standardWalls() []*Boundary {
	const half = WallThickness / 2
	long := 2 * (TableHalfDepth + WallThickness/2)
	wide := 2 * (TableHalfWidth + WallThickness)
	return []*Boundary{
		NewBoundary("right", -(TableHalfWidth + half), 0, WallThickness, long, Vec2{X: 1}, false),
		NewBoundary("left", TableHalfWidth+half, 0, WallThickness, long, Vec2{X: -1}, false),
		NewBoundary("top", 0, -(TableHalfDepth + half), wide, WallThickness, Vec2{Z: 1}, false),
		NewBoundary("bottom", 0, TableHalfDepth+half, wide, WallThickness, Vec2{Z: -1}, true),
	}
}

func releaseAll(walls []*Boundary, rack []*Ball, balls []*Ball) {
	for _, w := range walls {
		w.release()
	}
	for _, b := range rack {
		b.release()
	}
	for _, b := range balls {
		b.release()
	}
}

// Teardown releases every entity resource. The table must not be stepped
// afterwards.
func (t *Table) Teardown() {
	var balls []*Ball
	if t.Cue != nil {
		balls = append(balls, t.Cue)
	}
	if t.Target != nil {
		balls = append(balls, t.Target)
	}
	releaseAll(t.Walls, t.Rack, balls)
	t.Rack = nil
}

func (t *Table) Phase() Phase  { return t.phase }
func (t *Table) Frame() int    { return t.frame }
func (t *Table) Shots() int    { return t.shots }
func (t *Table) Restarts() int { return t.restarts }

// KnockedOut is the number of rack balls removed since the last rebuild.
func (t *Table) KnockedOut() int { return t.knocked }

func (t *Table) setPhase(p Phase) {
	if p == t.phase {
		return
	}
	t.Events.Add(t.frame, "--", CatPhase, "change", t.phase.String()+" → "+p.String(), 0)
	t.phase = p
}

// Step advances the table by one frame of elapsed seconds. Frames longer
// than MaxFrameTime are simulated as MaxFrameTime.
func (t *Table) Step(elapsed float64) (Outcome, error) {
	if elapsed > MaxFrameTime {
		elapsed = MaxFrameTime
	}
	switch t.phase {
	case PhaseRestarting:
		return t.restart()
	case PhaseCleared:
		return Stop, nil
	}
	t.frame++

	t.Cue.Integrate(elapsed)
	t.Target.Integrate(elapsed)

	if t.phase == PhaseRack {
		t.Target.Center.X = t.Cue.Center.X
	}

	t.resolveWalls()
	if t.phase != PhaseRestarting {
		t.resolveRack()
		t.resolveCue()
	}

	t.Events.AddVerbose(t.frame, t.Target.Label(), CatMove, "position",
		fmt.Sprintf("(%.3f,%.3f)", t.Target.Center.X, t.Target.Center.Z), t.Target.Speed())

	if len(t.Rack) == 0 {
		t.setPhase(PhaseCleared)
		t.logger.Printf("[TABLE] rack cleared at frame %d after %d shot(s)", t.frame, t.shots)
	}
	return Continue, nil
}

func (t *Table) resolveWalls() {
	for _, w := range t.Walls {
		if !w.Intersects(t.Target) {
			continue
		}
		c := w.Resolve(t.Target)
		switch c.Kind {
		case ContactBounce:
			t.Events.Add(t.frame, t.Target.Label(), CatWall, "bounce", w.Name, c.Speed)
		case ContactPocket:
			t.Events.Add(t.frame, t.Target.Label(), CatWall, "pocket", w.Name, c.Speed)
			t.setPhase(PhaseRestarting)
			return
		}
	}
}

// resolveRack removes at most one rack ball per frame: the first one, in
// rack order, that the target touches.
func (t *Table) resolveRack() {
	hit := -1
	for i, b := range t.Rack {
		if b.Intersects(t.Target) {
			hit = i
			break
		}
	}
	if hit < 0 {
		return
	}

	struck := t.Rack[hit]
	if !struck.Deflect(t.Target) {
		t.degenerate(struck)
	}
	struck.release()
	t.Rack = append(t.Rack[:hit], t.Rack[hit+1:]...)
	t.knocked++
	t.Events.Add(t.frame, struck.Label(), CatRack, "knockout",
		fmt.Sprintf("%d left", len(t.Rack)), float64(len(t.Rack)))
}

func (t *Table) resolveCue() {
	if !t.Cue.Intersects(t.Target) {
		return
	}
	if !t.Cue.Deflect(t.Target) {
		t.degenerate(t.Cue)
		return
	}
	// Pre-launch the target rests against the cue; there is nothing to report.
	if !t.Target.Stopped() {
		t.Events.Add(t.frame, t.Target.Label(), CatCue, "deflect", "", t.Target.Speed())
	}
}

func (t *Table) degenerate(b *Ball) {
	t.Events.Add(t.frame, b.Label(), CatDegenerate, "coincident", t.Target.Label(), 0)
	t.logger.Printf("[TABLE] frame %d: %s and %s share a center, response skipped",
		t.frame, b.Label(), t.Target.Label())
}

func (t *Table) restart() (Outcome, error) {
	t.Teardown()
	if err := t.build(); err != nil {
		t.logger.Printf("[TABLE] restart failed: %v", err)
		return Stop, fmt.Errorf("restart: %w", err)
	}
	t.restarts++
	t.knocked = 0
	t.setPhase(PhaseRack)
	t.Events.Add(t.frame, "--", CatPhase, "restart", fmt.Sprintf("restart #%d", t.restarts), float64(t.restarts))
	t.logger.Printf("[TABLE] table rebuilt (restart #%d)", t.restarts)
	return Continue, nil
}

// DragCue slides the cue ball along x by deltaX, keeping it fully on the
// felt.
func (t *Table) DragCue(deltaX float64) {
	lo := -TableHalfWidth + t.Cue.Radius()
	hi := TableHalfWidth - t.Cue.Radius()
	x := t.Cue.Center.X + deltaX
	if x < lo {
		x = lo
	} else if x > hi {
		x = hi
	}
	t.Cue.Center.X = x
}
