package game

import (
	"io"
	"log"
	"strings"
	"testing"

	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

func quietTable() table.Option {
	return table.WithLogger(log.New(io.Discard, "", 0))
}

func TestEventPanel_RingBufferOrder(t *testing.T) {
	p := NewEventPanel(3)
	for i := 1; i <= 5; i++ {
		p.Add(table.Event{Frame: i, Ball: "T", Category: table.CatWall, Key: "bounce"})
	}
	got := p.Recent()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for i, want := range []int{3, 4, 5} {
		if got[i].Frame != want {
			t.Fatalf("entry %d: frame %d, want %d", i, got[i].Frame, want)
		}
	}
}

func TestEventPanel_PartiallyFilled(t *testing.T) {
	p := NewEventPanel(8)
	p.Add(table.Event{Frame: 7, Ball: "R03", Category: table.CatRack, Key: "knockout", Value: "35 left"})
	got := p.Recent()
	if len(got) != 1 || got[0].Frame != 7 {
		t.Fatalf("unexpected entries: %v", got)
	}
	if line := panelLine(got[0]); !strings.Contains(line, "R03 knockout 35 left") {
		t.Fatalf("unexpected line %q", line)
	}
}
