package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

const (
	panelWidth      = 320
	panelLineHeight = 14
)

// EventPanel is a ring buffer of recent table events rendered on-screen.
type EventPanel struct {
	entries []table.Event
	head    int
	count   int
}

// NewEventPanel creates a panel holding at most size events.
func NewEventPanel(size int) *EventPanel {
	if size <= 0 {
		size = 1
	}
	return &EventPanel{entries: make([]table.Event, size)}
}

// Add appends an event, overwriting the oldest once full.
func (p *EventPanel) Add(e table.Event) {
	p.entries[p.head] = e
	p.head = (p.head + 1) % len(p.entries)
	if p.count < len(p.entries) {
		p.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (p *EventPanel) Recent() []table.Event {
	n := len(p.entries)
	result := make([]table.Event, p.count)
	for i := 0; i < p.count; i++ {
		result[i] = p.entries[(p.head-p.count+i+n)%n]
	}
	return result
}

// categoryColor is the marker colour of an event line.
func categoryColor(cat string) color.RGBA {
	switch cat {
	case table.CatWall:
		return color.RGBA{R: 90, G: 160, B: 220, A: 255}
	case table.CatRack:
		return color.RGBA{R: 230, G: 200, B: 60, A: 255}
	case table.CatLaunch:
		return color.RGBA{R: 220, G: 70, B: 70, A: 255}
	case table.CatDegenerate:
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
}

// Draw renders the panel along the right edge of the screen.
func (p *EventPanel) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, panelWidth, float32(panelH), color.RGBA{R: 12, G: 18, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1, color.RGBA{R: 50, G: 80, B: 60, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, panelWidth, 16, color.RGBA{R: 20, G: 34, B: 24, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := p.Recent()
	maxVisible := (panelH - 24) / panelLineHeight
	if maxVisible < 0 {
		maxVisible = 0
	}
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		// Newest entry at the bottom gets a highlight row.
		if i == len(entries)-1 {
			vector.FillRect(screen, float32(panelX+2), float32(y), panelWidth-4, panelLineHeight, color.RGBA{R: 30, G: 46, B: 34, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, categoryColor(e.Category), false)
		ebitenutil.DebugPrintAt(screen, panelLine(e), panelX+12, y)
		y += panelLineHeight
	}
}

func panelLine(e table.Event) string {
	if e.Value == "" {
		return fmt.Sprintf("%5d %-3s %s", e.Frame, e.Ball, e.Key)
	}
	return fmt.Sprintf("%5d %-3s %s %s", e.Frame, e.Ball, e.Key, e.Value)
}
