package term

import (
	"math"

	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

// cellAspect is how many columns cover the same distance as one row;
// terminal cells are about twice as tall as they are wide.
const cellAspect = 2

// grid maps table coordinates onto terminal cells, rack at the top.
type grid struct {
	rowsPerUnit float64
	cols, rows  int // cells available for the table
}

// newGrid fits the table and its cushions into a cols×rows area.
func newGrid(cols, rows int) grid {
	outerW := 2 * (table.TableHalfWidth + table.WallThickness)
	outerD := 2 * (table.TableHalfDepth + table.WallThickness)
	byRows := float64(rows-1) / outerD
	byCols := float64(cols-1) / (outerW * cellAspect)
	return grid{rowsPerUnit: math.Max(0, math.Min(byRows, byCols)), cols: cols, rows: rows}
}

// cellOf returns the cell holding a table point. The table's +x is to
// the left on screen.
func (g grid) cellOf(p table.Vec2) (col, row int) {
	cx := float64(g.cols-1) / 2
	cy := float64(g.rows-1) / 2
	col = int(math.Round(cx - p.X*g.rowsPerUnit*cellAspect))
	row = int(math.Round(cy + p.Z*g.rowsPerUnit))
	return col, row
}

// inside reports whether a cell is within the table area.
func (g grid) inside(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}
