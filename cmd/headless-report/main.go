package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Virtual-Billiard/internal/config"
	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

type runStats struct {
	runIndex  int
	cueOffset float64

	framesRun        int
	firstKnockFrame  int
	firstPocketFrame int
	firstBounceFrame int
	clearedFrame     int
	shots            int
	restarts         int
	knocked          int
	rackLeft         int
	degenerate       int
	summary          table.Summary
	knockedLabels    map[string]struct{}
	err              error
}

func main() {
	var runs int
	var frames int
	var shots int
	var span float64
	var cfgPath string
	var dump bool

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&frames, "frames", 3600, "frames per run")
	flag.IntVar(&shots, "shots", 3, "maximum shots per run; the target is relaunched whenever it is racked again")
	flag.Float64Var(&span, "offset-span", 2.0, "cue offsets are spread evenly over [-span, +span]")
	flag.StringVar(&cfgPath, "config", "", "config file (default billiard.toml)")
	flag.BoolVar(&dump, "dump", false, "print the full event log of every run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}
	if shots <= 0 {
		fmt.Println("error: -shots must be > 0")
		return
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	fmt.Printf("=== Headless Billiard Report ===\n")
	fmt.Printf("runs=%d frames=%d shots=%d offset_span=%.2f frame_time=%.4f\n\n", runs, frames, shots, span, cfg.FrameTime)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		off := cueOffset(i, runs, span)
		stats, events := runShots(i+1, off, frames, shots, cfg)
		all = append(all, stats)
		printRun(stats)
		if dump {
			fmt.Print(events.Format())
			fmt.Println()
		}
	}

	printAggregate(all)
	for _, rs := range all {
		if rs.err != nil {
			os.Exit(1)
		}
	}
}

// cueOffset spreads runs evenly across [-span, span]; a single run shoots
// straight.
func cueOffset(i, runs int, span float64) float64 {
	if runs <= 1 {
		return 0
	}
	return -span + 2*span*float64(i)/float64(runs-1)
}

func runShots(runIndex int, offset float64, frames, maxShots int, cfg *config.Config) (runStats, *table.EventLog) {
	rs := runStats{
		runIndex:         runIndex,
		cueOffset:        offset,
		firstKnockFrame:  -1,
		firstPocketFrame: -1,
		firstBounceFrame: -1,
		clearedFrame:     -1,
		knockedLabels:    map[string]struct{}{},
	}

	h, err := table.NewHarness(
		table.WithFrameTime(cfg.FrameTime),
		table.WithVerbose(cfg.Verbose),
		table.WithCueOffset(offset),
	)
	if err != nil {
		rs.err = err
		return rs, table.NewEventLog(0, false)
	}

	tb := h.Table
	for rs.framesRun < frames {
		if tb.Phase() == table.PhaseRack {
			if tb.Shots() >= maxShots {
				break
			}
			if tb.Shots() > 0 {
				// The rebuild put the cue back in the middle.
				tb.DragCue(offset)
				tb.Target.Center.X = tb.Cue.Center.X
			}
			if err := h.Shoot(); err != nil {
				rs.err = err
				break
			}
		}
		rs.framesRun++
		out := h.Step()
		if h.Err != nil {
			rs.err = h.Err
			break
		}
		if out == table.Stop {
			break
		}
		if tb.Phase() == table.PhaseCleared && rs.clearedFrame < 0 {
			rs.clearedFrame = tb.Frame()
		}
	}

	entries := h.Events.Entries()
	rs.firstKnockFrame = firstFrame(entries, table.CatRack, "knockout")
	rs.firstPocketFrame = firstFrame(entries, table.CatWall, "pocket")
	rs.firstBounceFrame = firstFrame(entries, table.CatWall, "bounce")
	for _, e := range entries {
		if e.Category == table.CatRack {
			rs.knockedLabels[e.Ball] = struct{}{}
		}
	}
	rs.summary = table.Summarize(entries)
	rs.shots = tb.Shots()
	rs.restarts = tb.Restarts()
	rs.knocked = rs.summary.Knockouts
	rs.rackLeft = len(tb.Rack)
	rs.degenerate = rs.summary.Degenerate
	return rs, h.Events
}

func firstFrame(entries []table.Event, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Frame
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (cue_offset=%+.2f) ---\n", rs.runIndex, rs.cueOffset)
	fmt.Printf("frame_markers: first_bounce=%d first_knockout=%d first_pocket=%d cleared=%d frames_run=%d\n",
		rs.firstBounceFrame, rs.firstKnockFrame, rs.firstPocketFrame, rs.clearedFrame, rs.framesRun)
	fmt.Printf("totals: shots=%d restarts=%d knocked=%d rack_left=%d bounces=%d cue_hits=%d degenerate=%d max_speed=%.2f\n",
		rs.shots, rs.restarts, rs.knocked, rs.rackLeft, rs.summary.Bounces, rs.summary.CueHits, rs.degenerate, rs.summary.MaxSpeed)
	fmt.Printf("knocked_labels: %s\n", joinSet(rs.knockedLabels))
	if rs.err != nil {
		fmt.Printf("error: %v\n", rs.err)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	fmt.Printf("=== Aggregate ===\n")
	var knocked, bounces, restarts, cleared int
	var knockFrames []int
	labels := map[string]struct{}{}
	for _, rs := range all {
		knocked += rs.knocked
		bounces += rs.summary.Bounces
		restarts += rs.restarts
		if rs.clearedFrame >= 0 {
			cleared++
		}
		if rs.firstKnockFrame >= 0 {
			knockFrames = append(knockFrames, rs.firstKnockFrame)
		}
		for l := range rs.knockedLabels {
			labels[l] = struct{}{}
		}
	}
	fmt.Printf("runs=%d cleared=%d\n", len(all), cleared)
	fmt.Printf("avg_per_run: knocked=%.1f bounces=%.1f restarts=%.1f\n",
		avg(knocked, len(all)), avg(bounces, len(all)), avg(restarts, len(all)))
	fmt.Printf("first_knockout_avg_frame=%s\n", avgFrameString(knockFrames))
	fmt.Printf("unique_knocked=%d [%s]\n", len(labels), joinSet(labels))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgFrameString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinSet(s map[string]struct{}) string {
	if len(s) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(s))
	for k := range s {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
