package parser

import (
	"github.com/Asipu290/eparse/pkg/eparse/models"
)

// ExtractOptions holds parameters for table extraction.
type ExtractOptions struct {
	// Tolerance controls how far bounds resolution probes past empty cells.
	Tolerance Tolerance
	// Strip trims trailing rows and columns that are entirely empty.
	Strip bool
}

// DefaultExtractOptions returns strict extraction parameters.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{}
}

// ExtractTable materializes the table anchored at (row, col).
// Tolerance decides how far the bounds reach; Strip decides what is kept.
func ExtractTable(g models.Grid, row, col int, opts ExtractOptions) (*models.Table, error) {
	b, err := ResolveBounds(g, row, col, opts.Tolerance)
	if err != nil {
		return nil, err
	}
	if opts.Strip {
		b = stripBounds(g, b)
	}
	return TableFromBounds(g, b), nil
}

// TableFromBounds copies the cells of g inside b into a new Table.
// Cells outside the grid read as empty.
func TableFromBounds(g models.Grid, b models.Bounds) *models.Table {
	cells := make([][]any, b.Rows())
	for r := range cells {
		row := make([]any, b.Cols())
		for c := range row {
			v := g.Value(b.RowStart+r, b.ColStart+c)
			if !models.IsEmpty(v) {
				row[c] = v
			}
		}
		cells[r] = row
	}
	return &models.Table{Bounds: b, Cells: cells}
}

// stripBounds trims trailing all-empty rows, then trailing all-empty columns.
// The anchor row and column are never removed.
func stripBounds(g models.Grid, b models.Bounds) models.Bounds {
	for b.RowEnd > b.RowStart && countNonEmptyCells(g, b.RowEnd, b.RowEnd, b.ColStart, b.ColEnd) == 0 {
		b.RowEnd--
	}
	for b.ColEnd > b.ColStart && countNonEmptyCells(g, b.RowStart, b.RowEnd, b.ColEnd, b.ColEnd) == 0 {
		b.ColEnd--
	}
	return b
}

// findDataBounds finds the bounding box of non-empty cells.
// ok is false when the grid has no data.
func findDataBounds(g models.Grid) (b models.Bounds, ok bool) {
	b = models.Bounds{RowStart: -1, RowEnd: -1, ColStart: -1, ColEnd: -1}

	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if models.IsEmpty(g.Value(r, c)) {
				continue
			}
			if b.RowStart < 0 || r < b.RowStart {
				b.RowStart = r
			}
			if r > b.RowEnd {
				b.RowEnd = r
			}
			if b.ColStart < 0 || c < b.ColStart {
				b.ColStart = c
			}
			if c > b.ColEnd {
				b.ColEnd = c
			}
		}
	}

	return b, b.RowStart >= 0
}

// countNonEmptyCells counts non-empty cells within the inclusive rectangle.
func countNonEmptyCells(g models.Grid, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for r := minRow; r <= maxRow && r < g.Rows(); r++ {
		for c := minCol; c <= maxCol && c < g.Cols(); c++ {
			if !models.IsEmpty(g.Value(r, c)) {
				count++
			}
		}
	}
	return count
}
