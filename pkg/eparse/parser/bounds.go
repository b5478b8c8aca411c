package parser

import (
	"github.com/Asipu290/eparse/pkg/eparse/models"
)

// Tolerance is the number of consecutive empty cells a probe may cross
// before it stops. The zero value stops at the first empty cell.
type Tolerance struct {
	// Rows applies to the downward probe along the anchor column.
	Rows int `json:"rows" yaml:"rows"`
	// Cols applies to the rightward probe along the anchor row.
	Cols int `json:"cols" yaml:"cols"`
}

// ResolveBounds computes the rectangle of the table anchored at (row, col).
// The column extent comes from probing right along the anchor row and the row
// extent from probing down the anchor column. Tolerated gaps are part of the
// result, so a non-zero tolerance may leave trailing empty rows or columns.
func ResolveBounds(g models.Grid, row, col int, tol Tolerance) (models.Bounds, error) {
	if err := checkAnchor(g, row, col); err != nil {
		return models.Bounds{}, err
	}
	return models.Bounds{
		RowStart: row,
		RowEnd:   probe(g, row, col, 1, 0, tol.Rows),
		ColStart: col,
		ColEnd:   probe(g, row, col, 0, 1, tol.Cols),
	}, nil
}

func checkAnchor(g models.Grid, row, col int) error {
	if row < 0 || col < 0 || row >= g.Rows() || col >= g.Cols() {
		return &AnchorError{Row: row, Col: col, Err: ErrOutOfRange}
	}
	if models.IsEmpty(g.Value(row, col)) {
		return &AnchorError{Row: row, Col: col, Err: ErrInvalidAnchor}
	}
	return nil
}

// probe walks from (row, col) in direction (dr, dc) and returns the last index
// reached along that axis.
func probe(g models.Grid, row, col, dr, dc, tol int) int {
	if tol < 0 {
		tol = 0
	}
	end := row*dr + col*dc
	gap := 0
	for r, c := row+dr, col+dc; r < g.Rows() && c < g.Cols(); r, c = r+dr, c+dc {
		if models.IsEmpty(g.Value(r, c)) {
			gap++
			if gap > tol {
				break
			}
		} else {
			gap = 0
		}
		end = r*dr + c*dc
	}
	return end
}
