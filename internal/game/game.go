package game

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Virtual-Billiard/internal/config"
	"github.com/Garsondee/Virtual-Billiard/internal/sound"
	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

// Game is the ebiten frontend: it owns the table, steps it once per Update
// with the real elapsed time, and draws it top-down next to an event panel.
type Game struct {
	table   *table.Table
	events  *table.EventLog
	panel   *EventPanel
	sound   *sound.Manager
	sprites *spriteFactory
	view    view
	logger  *log.Logger

	width      int
	height     int
	fieldWidth int // playfield width (event panel takes the rest)

	last      time.Time
	mark      int // event log total already forwarded to panel and sound
	wireframe bool
	showHUD   bool
	dragging  bool
	dragX     int
	stopped   bool
	status    string
}

// New builds the window frontend. snd may be nil for a silent game.
func New(cfg *config.Config, snd *sound.Manager, logger *log.Logger) (*Game, error) {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		events:     table.NewEventLog(cfg.EventCap, cfg.Verbose),
		panel:      NewEventPanel(cfg.EventLines),
		sound:      snd,
		logger:     logger,
		width:      cfg.WindowWidth,
		height:     cfg.WindowHeight,
		fieldWidth: cfg.WindowWidth - panelWidth,
		showHUD:    true,
		last:       time.Now(),
	}
	if g.fieldWidth < 2*borderWidth+1 {
		return nil, fmt.Errorf("window width %d leaves no room for the table", cfg.WindowWidth)
	}
	g.view = newView(g.fieldWidth, g.height)
	g.sprites = &spriteFactory{view: g.view}

	t, err := table.Setup(g.sprites, table.WithEventLog(g.events), table.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("set up table: %w", err)
	}
	g.table = t
	return g, nil
}

func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now
	if dt > table.MaxFrameTime {
		// Window drags and debugger pauses; the simulation falls behind
		// the wall clock instead of jumping.
		dt = table.MaxFrameTime
	}

	if err := g.handleInput(); err != nil {
		return err
	}
	if g.stopped {
		return nil
	}

	out, err := g.table.Step(dt)
	if err != nil {
		return err
	}
	g.forwardEvents()
	if out == table.Stop {
		g.stopped = true
		g.logger.Printf("[GAME] table cleared after %d shot(s), %d restart(s)", g.table.Shots(), g.table.Restarts())
	}
	return nil
}

// handleInput applies key and mouse input between steps.
func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if err := g.table.Launch(); err != nil {
			switch {
			case errors.Is(err, table.ErrNotRacked):
				g.status = "ball already in play"
			default:
				g.status = err.Error()
			}
		} else {
			g.status = ""
		}
	}

	mx, _ := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		g.dragging = true
		g.dragX = mx
	case g.dragging && ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		if dx := mx - g.dragX; dx != 0 {
			g.table.DragCue(float64(dx) * dragPerPixel)
			g.dragX = mx
		}
	default:
		g.dragging = false
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.wireframe = !g.wireframe
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := g.copyReport(); err != nil {
			g.logger.Printf("[GAME] copy report: %v", err)
			g.status = "clipboard unavailable"
		} else {
			g.status = "report copied"
		}
	}
	return nil
}

// forwardEvents hands the events recorded since the last frame to the
// panel and the sound manager.
func (g *Game) forwardEvents() {
	for _, e := range g.events.Since(g.mark) {
		if e.Category != table.CatMove {
			g.panel.Add(e)
		}
		if g.sound != nil {
			g.sound.Handle(e)
		}
	}
	g.mark = g.events.Total()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 10, B: 8, A: 255})

	fx, fy := g.view.toScreen(table.Vec2{X: table.FeltWidth / 2, Z: -table.FeltDepth / 2})
	fw := float32(table.FeltWidth * g.view.scale)
	fd := float32(table.FeltDepth * g.view.scale)
	if g.wireframe {
		vector.StrokeRect(screen, fx, fy, fw, fd, 1, feltColor, false)
	} else {
		vector.FillRect(screen, fx, fy, fw, fd, feltColor, false)
	}

	for _, w := range g.table.Walls {
		g.drawWall(screen, w)
	}
	for _, b := range g.table.Rack {
		g.drawBall(screen, b)
	}
	g.drawBall(screen, g.table.Cue)
	g.drawBall(screen, g.table.Target)

	if g.table.Phase() == table.PhaseCleared {
		g.drawBanner(screen, fmt.Sprintf("RACK CLEARED in %d shot(s)  -  Esc to quit", g.table.Shots()))
	}

	g.panel.Draw(screen, g.fieldWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawWall(screen *ebiten.Image, w *table.Boundary) {
	x, y, rw, rh := g.view.rectOf(w)
	switch {
	case w.Pocket:
		// The pocket edge is open: mark it, do not draw a cushion.
		vector.StrokeLine(screen, x, y+rh/2, x+rw, y+rh/2, 2, pocketColor, false)
	case g.wireframe:
		vector.StrokeRect(screen, x, y, rw, rh, 1, cushionColor, false)
	default:
		if img := imageOf(w.Resource()); img != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			screen.DrawImage(img, op)
		} else {
			vector.FillRect(screen, x, y, rw, rh, cushionColor, false)
		}
	}
}

func (g *Game) drawBall(screen *ebiten.Image, b *table.Ball) {
	cx, cy := g.view.toScreen(b.Center)
	r := float32(b.Radius() * g.view.scale)
	if g.wireframe {
		vector.StrokeCircle(screen, cx, cy, r, 1, ballColor(b.Kind), true)
		return
	}
	img := imageOf(b.Resource())
	if img == nil {
		vector.FillCircle(screen, cx, cy, r, ballColor(b.Kind), true)
		return
	}
	half := float64(img.Bounds().Dx()) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(cx)-half, float64(cy)-half)
	screen.DrawImage(img, op)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// Close releases the table's sprites.
func (g *Game) Close() {
	g.table.Teardown()
	if g.sprites.live != 0 {
		g.logger.Printf("[GAME] %d sprite(s) still allocated after teardown", g.sprites.live)
	}
}
