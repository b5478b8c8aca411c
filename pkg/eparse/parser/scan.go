package parser

import (
	"github.com/Asipu290/eparse/pkg/eparse/models"
)

// FindTables walks g in row-major order and returns table anchors in
// discovery order.
//
// A corner is a non-empty cell whose upper and left neighbours are empty.
// In loose mode every corner spanning more than one cell is returned,
// subtables nested in another table's body included. In strict mode a corner
// needs at least two rows and two columns, and corners below the header row
// of a table accepted earlier in the pass are suppressed.
func FindTables(g models.Grid, loose bool) []models.Candidate {
	var (
		found    []models.Candidate
		accepted []models.Bounds
	)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if !isCorner(g, r, c) {
				continue
			}
			b, err := ResolveBounds(g, r, c, Tolerance{})
			if err != nil {
				continue
			}
			if loose {
				if b.Rows() > 1 || b.Cols() > 1 {
					found = append(found, models.NewCandidate(g, r, c))
				}
				continue
			}
			if b.Rows() < 2 || b.Cols() < 2 || inBody(accepted, r, c) {
				continue
			}
			accepted = append(accepted, b)
			found = append(found, models.NewCandidate(g, r, c))
		}
	}
	return found
}

// DiscoverTables returns every candidate in loose mode, and only top-level
// tables otherwise.
func DiscoverTables(g models.Grid, loose bool) []models.Candidate {
	if loose {
		return FindTables(g, true)
	}
	return FilterNested(FindTables(g, false), g)
}

func isCorner(g models.Grid, r, c int) bool {
	return !models.IsEmptyAt(g, r, c) && models.IsEmptyAt(g, r-1, c) && models.IsEmptyAt(g, r, c-1)
}

// inBody reports whether (r, c) lies below the header row of any bounds.
func inBody(bounds []models.Bounds, r, c int) bool {
	for _, b := range bounds {
		if b.Contains(r, c) && r > b.RowStart {
			return true
		}
	}
	return false
}
