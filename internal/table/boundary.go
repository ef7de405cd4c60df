package table

import "math"

// ContactKind is the result of resolving a ball against a boundary.
type ContactKind int

const (
	ContactNone ContactKind = iota
	ContactBounce
	ContactPocket
)

func (c ContactKind) String() string {
	switch c {
	case ContactBounce:
		return "bounce"
	case ContactPocket:
		return "pocket"
	default:
		return "none"
	}
}

// Contact describes one ball/boundary resolution.
type Contact struct {
	Kind    ContactKind
	Overlap float64 // penetration depth along the normal before correction
	Speed   float64 // ball speed after the response
}

// Boundary is an axis-aligned cushion block. Normal is the unit vector
// pointing from the cushion into the playing area; the face the balls hit
// is derived from Center, the extents and Normal.
type Boundary struct {
	Name   string
	Center Vec2
	Width  float64 // extent along x
	Depth  float64 // extent along z
	Normal Vec2
	Pocket bool

	resource Resource
}

// NewBoundary creates a cushion block. normal must be a unit axis vector.
func NewBoundary(name string, x, z, width, depth float64, normal Vec2, pocket bool) *Boundary {
	return &Boundary{
		Name:   name,
		Center: Vec2{X: x, Z: z},
		Width:  width,
		Depth:  depth,
		Normal: normal,
		Pocket: pocket,
	}
}

// Bounds returns the rectangle's min/max corners.
func (w *Boundary) Bounds() (minX, minZ, maxX, maxZ float64) {
	return w.Center.X - w.Width/2, w.Center.Z - w.Depth/2,
		w.Center.X + w.Width/2, w.Center.Z + w.Depth/2
}

// Face returns a point on the inner face of the cushion.
func (w *Boundary) Face() Vec2 {
	half := math.Abs(w.Normal.X)*w.Width/2 + math.Abs(w.Normal.Z)*w.Depth/2
	return w.Center.Plus(w.Normal.Times(half))
}

// Resource returns the frontend resource attached at setup, if any.
func (w *Boundary) Resource() Resource { return w.resource }

func (w *Boundary) release() {
	if w.resource != nil {
		w.resource.Release()
		w.resource = nil
	}
}

// Intersects reports whether the ball reaches the cushion's face: it lies
// within the cushion's extent along the face and less than one radius in
// front of the face plane. A ball that has already crossed the face still
// intersects, however far a long step carried it.
func (w *Boundary) Intersects(b *Ball) bool {
	minX, minZ, maxX, maxZ := w.Bounds()
	r := b.Radius()
	if w.Normal.X != 0 {
		if b.Center.Z+r <= minZ || b.Center.Z-r >= maxZ {
			return false
		}
	} else if b.Center.X+r <= minX || b.Center.X-r >= maxX {
		return false
	}
	return w.penetration(b) > 0
}

// penetration is how far the ball reaches past the face along -Normal.
func (w *Boundary) penetration(b *Ball) float64 {
	return b.Radius() - b.Center.Minus(w.Face()).Dot(w.Normal)
}

// Resolve applies the cushion response to a ball that has penetrated the
// face. A pocket boundary reports the exit and leaves the ball alone.
func (w *Boundary) Resolve(b *Ball) Contact {
	overlap := w.penetration(b)
	if overlap <= 0 {
		return Contact{Kind: ContactNone}
	}
	if w.Pocket {
		return Contact{Kind: ContactPocket, Overlap: overlap, Speed: b.Speed()}
	}

	v := b.Velocity
	if sum := math.Abs(v.X) + math.Abs(v.Z); sum > 0 {
		b.Center = b.Center.Minus(v.Times(overlap / sum))
	}
	// A center still past the face goes back against it.
	if d := b.Center.Minus(w.Face()).Dot(w.Normal); d < 0 {
		b.Center = b.Center.Plus(w.Normal.Times(b.Radius() - d))
	}

	r := v.Reflect(w.Normal)
	if r.Length() < MinVelocity {
		if r.X != 0 {
			r.X *= MinVelocity / math.Abs(r.X)
		}
		if r.Z != 0 {
			r.Z *= MinVelocity / math.Abs(r.Z)
		}
	}
	b.Velocity = r
	return Contact{Kind: ContactBounce, Overlap: overlap, Speed: r.Length()}
}
