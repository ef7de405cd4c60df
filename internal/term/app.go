// Package term is a terminal frontend for the billiard table built on tcell.
package term

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Virtual-Billiard/internal/config"
	"github.com/Garsondee/Virtual-Billiard/internal/sound"
	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	dragStep      = 0.1                   // cue travel per arrow key press
	statusRows    = 2
)

var (
	feltStyle    = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	cushionStyle = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	pocketStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	rackStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	cueStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	targetStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	statusStyle  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Canvas is the part of tcell.Screen the app draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
	Clear()
	Show()
}

// App runs the table in a terminal. Input and frames are handled on one
// goroutine; the tcell event poller only feeds a channel.
type App struct {
	canvas Canvas
	table  *table.Table
	events *table.EventLog
	sound  *sound.Manager
	logger *log.Logger

	grid    grid
	width   int
	height  int
	mark    int
	stopped bool
	status  string
	last    string // most recent event line
}

// New sets up a table drawn on canvas. snd may be nil.
func New(canvas Canvas, cfg *config.Config, snd *sound.Manager, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.Default()
	}
	events := table.NewEventLog(cfg.EventCap, cfg.Verbose)
	t, err := table.Setup(table.NopFactory{}, table.WithEventLog(events), table.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("set up table: %w", err)
	}
	a := &App{canvas: canvas, table: t, events: events, sound: snd, logger: logger}
	a.resize()
	return a, nil
}

// Table exposes the simulated table.
func (a *App) Table() *table.Table { return a.table }

func (a *App) resize() {
	a.width, a.height = a.canvas.Size()
	a.grid = newGrid(a.width, a.height-statusRows)
}

// HandleKey applies one key press. It returns false when the user quits.
func (a *App) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		a.table.DragCue(dragStep)
	case tcell.KeyRight:
		a.table.DragCue(-dragStep)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case ' ':
			a.launch()
		}
	}
	return true
}

func (a *App) launch() {
	err := a.table.Launch()
	switch {
	case err == nil:
		a.status = ""
	case errors.Is(err, table.ErrNotRacked):
		a.status = "ball already in play"
	default:
		a.status = err.Error()
	}
}

// Tick advances the table by elapsed seconds and forwards new events to
// the sound manager. It returns false once the table has stopped.
func (a *App) Tick(elapsed float64) (bool, error) {
	if a.stopped {
		return false, nil
	}
	out, err := a.table.Step(elapsed)
	if err != nil {
		return false, err
	}
	for _, e := range a.events.Since(a.mark) {
		if e.Category != table.CatMove {
			a.last = e.String()
		}
		if a.sound != nil {
			a.sound.Handle(e)
		}
	}
	a.mark = a.events.Total()
	if out == table.Stop {
		a.stopped = true
		a.logger.Printf("[TERM] table cleared after %d shot(s)", a.table.Shots())
	}
	return !a.stopped, nil
}

// Draw renders the table and the status lines.
func (a *App) Draw() {
	a.canvas.Clear()
	g := a.grid

	a.fill(table.Vec2{X: -table.FeltWidth / 2, Z: -table.FeltDepth / 2},
		table.Vec2{X: table.FeltWidth / 2, Z: table.FeltDepth / 2}, '·', feltStyle)
	for _, w := range a.table.Walls {
		minX, minZ, maxX, maxZ := w.Bounds()
		if w.Pocket {
			a.fill(table.Vec2{X: minX, Z: minZ}, table.Vec2{X: maxX, Z: maxZ}, '-', pocketStyle)
			continue
		}
		a.fill(table.Vec2{X: minX, Z: minZ}, table.Vec2{X: maxX, Z: maxZ}, '█', cushionStyle)
	}
	for _, b := range a.table.Rack {
		a.put(b.Center, 'o', rackStyle)
	}
	a.put(a.table.Cue.Center, 'O', cueStyle)
	a.put(a.table.Target.Center, '●', targetStyle)

	line := fmt.Sprintf("%s  frame %d  shots %d  rack %d/%d  restarts %d  [space] launch [←/→] move [q] quit",
		a.table.Phase(), a.table.Frame(), a.table.Shots(), len(a.table.Rack), table.RackSize, a.table.Restarts())
	if a.table.Phase() == table.PhaseCleared {
		line = fmt.Sprintf("RACK CLEARED in %d shot(s)  [q] quit", a.table.Shots())
	}
	a.text(0, g.rows, line)
	second := a.last
	if a.status != "" {
		second = a.status
	}
	a.text(0, g.rows+1, second)
	a.canvas.Show()
}

// fill covers every cell whose table rectangle overlaps [lo, hi].
func (a *App) fill(lo, hi table.Vec2, r rune, style tcell.Style) {
	c0, r0 := a.grid.cellOf(table.Vec2{X: hi.X, Z: lo.Z})
	c1, r1 := a.grid.cellOf(table.Vec2{X: lo.X, Z: hi.Z})
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if a.grid.inside(col, row) {
				a.canvas.SetContent(col, row, r, nil, style)
			}
		}
	}
}

func (a *App) put(p table.Vec2, r rune, style tcell.Style) {
	col, row := a.grid.cellOf(p)
	if a.grid.inside(col, row) {
		a.canvas.SetContent(col, row, r, nil, style)
	}
}

func (a *App) text(x, y int, s string) {
	if y < 0 || y >= a.height {
		return
	}
	for _, r := range s {
		if x >= a.width {
			return
		}
		a.canvas.SetContent(x, y, r, nil, statusStyle)
		x++
	}
}

// eventSource is the part of tcell.Screen the poller reads from.
type eventSource interface {
	PollEvent() tcell.Event
}

// pollEvents forwards events from src to out until the screen is finalized
// or done is closed. out is closed only when the source runs dry.
func pollEvents(src eventSource, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := src.PollEvent()
		if ev == nil { // screen finalized
			close(out)
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// Run drives the app on screen until the user quits. Events are read on a
// separate goroutine and handled between frames.
func (a *App) Run(screen tcell.Screen) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, eventChan, done)

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.HandleKey(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				a.resize()
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if _, err := a.Tick(dt); err != nil {
				return err
			}
			a.Draw()
		}
	}
}

// Close releases the table.
func (a *App) Close() {
	a.table.Teardown()
}
