package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

const hudLineHeight = 15

func (g *Game) hudLines() []string {
	t := g.table
	lines := []string{
		fmt.Sprintf("phase: %s  frame: %d", t.Phase(), t.Frame()),
		fmt.Sprintf("shots: %d  restarts: %d", t.Shots(), t.Restarts()),
		fmt.Sprintf("rack: %d/%d  knocked: %d", len(t.Rack), table.RackSize, t.KnockedOut()),
		fmt.Sprintf("speed: %.2f", t.Target.Speed()),
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}
	lines = append(lines,
		"[Space] launch  [RMB drag] move cue",
		"[Enter] wireframe  [H] HUD",
		"[C] copy report  [Esc] quit",
	)
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines()
	const padX, padY = 6, 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	face := basicfont.Face7x13
	boxW := float32(maxLen*face.Advance + 2*padX)
	boxH := float32(len(lines)*hudLineHeight + 2*padY)
	bx, by := float32(4), float32(g.height)-boxH-4

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, l := range lines {
		text.Draw(screen, l, face, int(bx)+padX, int(by)+padY+(i+1)*hudLineHeight-3, color.RGBA{R: 220, G: 220, B: 220, A: 255})
	}
}

// drawBanner writes msg centered across the playfield.
func (g *Game) drawBanner(screen *ebiten.Image, msg string) {
	face := basicfont.Face7x13
	w := len(msg) * face.Advance
	x := (g.fieldWidth - w) / 2
	y := g.height / 2
	vector.FillRect(screen, float32(x-10), float32(y-18), float32(w+20), 26, color.RGBA{A: 200}, false)
	text.Draw(screen, msg, face, x, y, color.RGBA{R: 255, G: 255, B: 200, A: 255})
}
