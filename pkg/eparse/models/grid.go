// Package models defines data structures for spreadsheet table discovery.
package models

import (
	"math"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is a read-only 2D view of cells addressed by zero-based row and column.
// Value returns nil for empty cells and for positions outside the grid.
type Grid interface {
	Rows() int
	Cols() int
	Value(row, col int) any
}

// IsEmpty reports whether v is a missing value: nil, a blank string or NaN.
func IsEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// IsEmptyAt reports whether the cell at (row, col) of g is empty.
// Positions outside the grid are empty.
func IsEmptyAt(g Grid, row, col int) bool {
	if row < 0 || col < 0 || row >= g.Rows() || col >= g.Cols() {
		return true
	}
	return IsEmpty(g.Value(row, col))
}

// CellRef returns the A1-style address of a zero-based (row, col) position.
func CellRef(row, col int) string {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return ""
	}
	return ref
}

// masked hides every cell outside a set of areas.
type masked struct {
	Grid
	areas []Bounds
}

// Masked returns a view of g in which cells outside all of the given areas
// read as empty. Coordinates are unchanged. With no areas g is returned as is.
func Masked(g Grid, areas []Bounds) Grid {
	if len(areas) == 0 {
		return g
	}
	return &masked{Grid: g, areas: areas}
}

func (m *masked) Value(row, col int) any {
	for _, a := range m.areas {
		if a.Contains(row, col) {
			return m.Grid.Value(row, col)
		}
	}
	return nil
}
