package game

import "github.com/Garsondee/Virtual-Billiard/internal/table"

// borderWidth is the pixel gap between the window edge and the cushions.
const borderWidth = 24

// dragPerPixel converts horizontal mouse travel into cue-ball travel.
const dragPerPixel = -0.01

// view maps table coordinates onto the playfield, looking down from above
// with the rack at the top and the pocket edge at the bottom. The table's
// +x runs to the left of the screen.
type view struct {
	scale   float64 // pixels per table unit
	originX float64 // screen position of the table center
	originY float64
}

// newView fits the table, cushions included, inside a w×h playfield.
func newView(w, h int) view {
	outerW := 2 * (table.TableHalfWidth + table.WallThickness)
	outerD := 2 * (table.TableHalfDepth + table.WallThickness)
	sx := float64(w-2*borderWidth) / outerW
	sy := float64(h-2*borderWidth) / outerD
	s := sx
	if sy < s {
		s = sy
	}
	return view{scale: s, originX: float64(w) / 2, originY: float64(h) / 2}
}

// toScreen returns the pixel position of a table point.
func (v view) toScreen(p table.Vec2) (float32, float32) {
	return float32(v.originX - p.X*v.scale), float32(v.originY + p.Z*v.scale)
}

// rectOf returns the top-left corner and size of a boundary on screen.
func (v view) rectOf(w *table.Boundary) (x, y, width, height float32) {
	minX, minZ, maxX, maxZ := w.Bounds()
	// x is mirrored, so the table's maxX is the left edge on screen.
	x, y = v.toScreen(table.Vec2{X: maxX, Z: minZ})
	return x, y, float32((maxX - minX) * v.scale), float32((maxZ - minZ) * v.scale)
}
