package game

import (
	"github.com/atotto/clipboard"

	"github.com/Garsondee/Virtual-Billiard/internal/table"
)

// reportFrames is how much recent history the copied report covers.
const reportFrames = 600

// copyReport puts the table report on the system clipboard. On systems
// without a clipboard tool it fails and the caller logs it.
func (g *Game) copyReport() error {
	return clipboard.WriteAll(table.Report(g.table, reportFrames))
}
