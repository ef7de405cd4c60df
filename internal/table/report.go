package table

import (
	"fmt"
	"strings"
)

// Summary counts the notable events in a slice of the log.
type Summary struct {
	Shots      int
	Bounces    int
	Knockouts  int
	CueHits    int
	Pockets    int
	Degenerate int
	MaxSpeed   float64
}

// Summarize tallies events.
func Summarize(events []Event) Summary {
	var s Summary
	for _, e := range events {
		switch e.Category {
		case CatLaunch:
			s.Shots++
		case CatWall:
			if e.Key == "pocket" {
				s.Pockets++
			} else {
				s.Bounces++
			}
		case CatRack:
			s.Knockouts++
		case CatCue:
			s.CueHits++
		case CatDegenerate:
			s.Degenerate++
		}
		if e.Category != CatPhase && e.Category != CatRack && e.NumVal > s.MaxSpeed {
			s.MaxSpeed = e.NumVal
		}
	}
	return s
}

// Report renders a plain-text snapshot of the table: phase, counters, ball
// states and the events of the last lastFrames frames. It is what the
// frontends copy to the clipboard.
func Report(t *Table, lastFrames int) string {
	if t == nil {
		return ""
	}
	if lastFrames <= 0 {
		lastFrames = 120
	}
	to := t.Frame()
	from := to - lastFrames + 1
	if from < 0 {
		from = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Virtual Billiard report ---\n")
	fmt.Fprintf(&b, "phase=%s frame=%d frame_range=[%d..%d]\n", t.Phase(), to, from, to)
	fmt.Fprintf(&b, "shots=%d restarts=%d knocked=%d rack_left=%d\n\n",
		t.Shots(), t.Restarts(), t.KnockedOut(), len(t.Rack))

	writeBall := func(b2 *Ball) {
		if b2 == nil {
			return
		}
		fmt.Fprintf(&b, "%-4s pos=(%+.3f,%+.3f) vel=(%+.3f,%+.3f) speed=%.3f\n",
			b2.Label(), b2.Center.X, b2.Center.Z, b2.Velocity.X, b2.Velocity.Z, b2.Speed())
	}
	b.WriteString("== balls ==\n")
	writeBall(t.Cue)
	writeBall(t.Target)
	b.WriteByte('\n')

	events := t.Events.FilterFrameRange(from, to)
	s := Summarize(events)
	b.WriteString("== window ==\n")
	fmt.Fprintf(&b, "shots=%d bounces=%d knockouts=%d cue_hits=%d pockets=%d degenerate=%d max_speed=%.2f\n\n",
		s.Shots, s.Bounces, s.Knockouts, s.CueHits, s.Pockets, s.Degenerate, s.MaxSpeed)

	b.WriteString("== events ==\n")
	if len(events) == 0 {
		b.WriteString("(no events in window)\n")
	}
	for _, e := range events {
		if e.Category == CatMove {
			continue
		}
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
