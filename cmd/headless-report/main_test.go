package main

import (
	"math"
	"testing"

	"github.com/Garsondee/Virtual-Billiard/internal/config"
	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

func TestCueOffset_SpreadsEvenly(t *testing.T) {
	want := []float64{-2, -1, 0, 1, 2}
	for i, w := range want {
		if got := cueOffset(i, len(want), 2); math.Abs(got-w) > 1e-12 {
			t.Fatalf("run %d: offset %.3f, want %.3f", i, got, w)
		}
	}
	if got := cueOffset(0, 1, 2); got != 0 {
		t.Fatalf("a single run should shoot straight, got %.3f", got)
	}
}

func TestRunShots_StraightShotKnocksOutRack(t *testing.T) {
	rs, events := runShots(1, 0, 600, 1, config.Defaults())
	if rs.err != nil {
		t.Fatalf("run failed: %v", rs.err)
	}
	if rs.shots != 1 {
		t.Fatalf("expected 1 shot, got %d", rs.shots)
	}
	if rs.firstKnockFrame < 0 || rs.knocked == 0 {
		t.Fatalf("a straight shot should reach the rack\n%s", events.Format())
	}
	if rs.knocked+rs.rackLeft != table.RackSize && rs.restarts == 0 {
		t.Fatalf("knocked=%d rack_left=%d do not add up", rs.knocked, rs.rackLeft)
	}
	if rs.summary.MaxSpeed > table.MaxSpeed+1e-9 {
		t.Fatalf("max speed %.3f over cap", rs.summary.MaxSpeed)
	}
}

func TestRunShots_RespectsShotLimit(t *testing.T) {
	rs, _ := runShots(1, 1.0, 20000, 2, config.Defaults())
	if rs.err != nil {
		t.Fatalf("run failed: %v", rs.err)
	}
	if rs.shots > 2 {
		t.Fatalf("expected at most 2 shots, got %d", rs.shots)
	}
}

func TestFirstFrame(t *testing.T) {
	entries := []table.Event{
		{Frame: 3, Category: table.CatWall, Key: "bounce"},
		{Frame: 9, Category: table.CatRack, Key: "knockout"},
		{Frame: 12, Category: table.CatRack, Key: "knockout"},
	}
	if got := firstFrame(entries, table.CatRack, "knockout"); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if got := firstFrame(entries, table.CatWall, "pocket"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

func TestJoinSet(t *testing.T) {
	if got := joinSet(nil); got != "none" {
		t.Fatalf("empty set: %q", got)
	}
	got := joinSet(map[string]struct{}{"R10": {}, "R02": {}})
	if got != "R02,R10" {
		t.Fatalf("expected sorted labels, got %q", got)
	}
}
