package table

import "math"

// Vec2 is a vector in the horizontal table plane. Z grows toward the
// player (the pocket edge), X to the left of the rack as seen from above.
type Vec2 struct {
	X float64
	Z float64
}

func (v Vec2) Plus(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Z: v.Z + o.Z}
}

func (v Vec2) Minus(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Z: v.Z - o.Z}
}

func (v Vec2) Times(s float64) Vec2 {
	return Vec2{X: v.X * s, Z: v.Z * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Z*o.Z
}

func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Z*v.Z
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns the unit vector in v's direction, or the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Z: v.Z / l}
}

// Reflect mirrors v about the unit normal n: v - 2(v·n)n.
func (v Vec2) Reflect(n Vec2) Vec2 {
	return v.Minus(n.Times(2 * v.Dot(n)))
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Z == 0
}
