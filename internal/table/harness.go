package table

import (
	"io"
	"log"
)

// DefaultFrameTime is one frame at 60 frames per second.
const DefaultFrameTime = 1.0 / 60

// Harness drives a table without a window. It mirrors what a frontend does
// each frame, with a fixed frame time so runs are repeatable.
type Harness struct {
	Table     *Table
	Events    *EventLog
	FrameTime float64
	Err       error // first error returned by Step, if any

	rack      []Vec2
	cueOffset float64
	velocity  *Vec2
	logger    *log.Logger
}

// harnessOptionKind controls the pass in which an option is applied.
type harnessOptionKind int

const (
	harnessOptSetup harnessOptionKind = iota // frame time, rack, logging: applied before Setup
	harnessOptTable                          // cue placement, shot override: applied after Setup
)

// HarnessOption is a builder function applied to a Harness during construction.
type HarnessOption struct {
	kind harnessOptionKind
	fn   func(*Harness)
}

// WithFrameTime sets the elapsed seconds passed to every Step.
func WithFrameTime(dt float64) HarnessOption {
	return HarnessOption{harnessOptSetup, func(h *Harness) { h.FrameTime = dt }}
}

// WithVerbose enables per-frame movement events.
func WithVerbose(v bool) HarnessOption {
	return HarnessOption{harnessOptSetup, func(h *Harness) { h.Events = NewEventLog(0, v) }}
}

// WithHarnessRack replaces the standard rack layout.
func WithHarnessRack(positions []Vec2) HarnessOption {
	return HarnessOption{harnessOptSetup, func(h *Harness) { h.rack = positions }}
}

// WithHarnessLogger routes table diagnostics; the default discards them.
func WithHarnessLogger(l *log.Logger) HarnessOption {
	return HarnessOption{harnessOptSetup, func(h *Harness) { h.logger = l }}
}

// WithCueOffset drags the cue ball (and the racked target with it) along x.
func WithCueOffset(dx float64) HarnessOption {
	return HarnessOption{harnessOptTable, func(h *Harness) {
		h.cueOffset = dx
		h.Table.DragCue(dx)
		h.Table.Target.Center.X = h.Table.Cue.Center.X
	}}
}

// WithShotVelocity makes Shoot use v instead of aiming from the cue.
func WithShotVelocity(v Vec2) HarnessOption {
	return HarnessOption{harnessOptTable, func(h *Harness) { h.velocity = &v }}
}

// NewHarness builds a headless table from the given options in two passes:
// setup options first, then options that act on the built table.
func NewHarness(opts ...HarnessOption) (*Harness, error) {
	h := &Harness{
		Events:    NewEventLog(0, false),
		FrameTime: DefaultFrameTime,
		logger:    log.New(io.Discard, "", 0),
	}
	for _, o := range opts {
		if o.kind == harnessOptSetup {
			o.fn(h)
		}
	}

	tableOpts := []Option{WithEventLog(h.Events), WithLogger(h.logger)}
	if h.rack != nil {
		tableOpts = append(tableOpts, WithRack(h.rack))
	}
	t, err := Setup(NopFactory{}, tableOpts...)
	if err != nil {
		return nil, err
	}
	h.Table = t

	for _, o := range opts {
		if o.kind == harnessOptTable {
			o.fn(h)
		}
	}
	return h, nil
}

// Shoot launches the target, either aimed from the cue or with the
// velocity given by WithShotVelocity.
func (h *Harness) Shoot() error {
	if h.velocity != nil {
		return h.Table.LaunchWith(*h.velocity)
	}
	return h.Table.Launch()
}

// Step advances one frame and remembers the first error.
func (h *Harness) Step() Outcome {
	out, err := h.Table.Step(h.FrameTime)
	if err != nil && h.Err == nil {
		h.Err = err
	}
	return out
}

// RunFrames advances up to n frames, stopping early when the table asks
// to stop. It returns the number of frames stepped.
func (h *Harness) RunFrames(n int) int {
	for i := 0; i < n; i++ {
		if h.Step() == Stop {
			return i + 1
		}
	}
	return n
}

// RunUntil advances the table up to maxFrames, stopping early if predicate
// returns true. Returns the table frame at which the predicate was
// satisfied, or -1.
func (h *Harness) RunUntil(predicate func(*Table) bool, maxFrames int) int {
	for i := 0; i < maxFrames; i++ {
		if h.Step() == Stop {
			break
		}
		if predicate(h.Table) {
			return h.Table.Frame()
		}
	}
	return -1
}

// CueOffset returns the drag applied by WithCueOffset.
func (h *Harness) CueOffset() float64 { return h.cueOffset }
