package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

var (
	feltColor    = color.RGBA{R: 18, G: 92, B: 46, A: 255}
	cushionColor = color.RGBA{R: 96, G: 58, B: 30, A: 255}
	pocketColor  = color.RGBA{R: 10, G: 10, B: 10, A: 255}
	cueColor     = color.RGBA{R: 240, G: 240, B: 232, A: 255}
	targetColor  = color.RGBA{R: 210, G: 40, B: 40, A: 255}
	rackColor    = color.RGBA{R: 230, G: 190, B: 40, A: 255}
)

func ballColor(k table.BallKind) color.RGBA {
	switch k {
	case table.KindCue:
		return cueColor
	case table.KindTarget:
		return targetColor
	default:
		return rackColor
	}
}

// sprite is a pre-rendered image owned by one table entity.
type sprite struct {
	img *ebiten.Image
}

func (s *sprite) Release() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}

// spriteFactory renders one sprite per ball and per cushion at the view's
// scale. It tracks the sprites it handed out so the game can report leaks.
type spriteFactory struct {
	view view
	live int
}

func (f *spriteFactory) NewBallResource(kind table.BallKind, radius float64) (table.Resource, error) {
	r := radius * f.view.scale
	if r <= 0 || math.IsNaN(r) {
		return nil, fmt.Errorf("ball sprite radius %.2f", r)
	}
	size := int(math.Ceil(2*r)) + 2
	img := ebiten.NewImage(size, size)
	c := float32(size) / 2
	vector.FillCircle(img, c, c, float32(r), ballColor(kind), true)
	// Dark rim.
	vector.StrokeCircle(img, c, c, float32(r)-0.5, 1, color.RGBA{A: 90}, true)
	f.live++
	return &countedSprite{sprite: sprite{img: img}, f: f}, nil
}

func (f *spriteFactory) NewBoundaryResource(name string, width, depth float64) (table.Resource, error) {
	w := int(math.Ceil(width * f.view.scale))
	h := int(math.Ceil(depth * f.view.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%s cushion sprite %dx%d", name, w, h)
	}
	img := ebiten.NewImage(w, h)
	img.Fill(cushionColor)
	f.live++
	return &countedSprite{sprite: sprite{img: img}, f: f}, nil
}

type countedSprite struct {
	sprite
	f *spriteFactory
}

func (s *countedSprite) Release() {
	if s.img == nil {
		return
	}
	s.sprite.Release()
	s.f.live--
}

// imageOf returns the sprite image behind a resource, or nil.
func imageOf(r table.Resource) *ebiten.Image {
	if s, ok := r.(*countedSprite); ok {
		return s.img
	}
	return nil
}
