package models

import "fmt"

// Bounds is an inclusive rectangle of zero-based grid coordinates.
type Bounds struct {
	RowStart int `json:"row_start"`
	RowEnd   int `json:"row_end"`
	ColStart int `json:"col_start"`
	ColEnd   int `json:"col_end"`
}

// Contains reports whether (row, col) lies inside b.
func (b Bounds) Contains(row, col int) bool {
	return b.RowStart <= row && row <= b.RowEnd && b.ColStart <= col && col <= b.ColEnd
}

// Rows returns the number of rows spanned by b.
func (b Bounds) Rows() int { return b.RowEnd - b.RowStart + 1 }

// Cols returns the number of columns spanned by b.
func (b Bounds) Cols() int { return b.ColEnd - b.ColStart + 1 }

// Ref returns b as an A1-style range such as "C3:D11".
func (b Bounds) Ref() string {
	return fmt.Sprintf("%s:%s", CellRef(b.RowStart, b.ColStart), CellRef(b.RowEnd, b.ColEnd))
}

// Candidate is a cell believed to be the top-left header of a table.
type Candidate struct {
	// Row is the zero-based anchor row.
	Row int `json:"row"`
	// Col is the zero-based anchor column.
	Col int `json:"col"`
	// Ref is the A1-style address of the anchor.
	Ref string `json:"ref"`
	// Header is the anchor cell value.
	Header any `json:"header"`
}

// NewCandidate builds a Candidate for the anchor at (row, col) of g.
func NewCandidate(g Grid, row, col int) Candidate {
	return Candidate{
		Row:    row,
		Col:    col,
		Ref:    CellRef(row, col),
		Header: g.Value(row, col),
	}
}

// String renders the candidate the way it is shown in digests and logs.
func (c Candidate) String() string {
	return fmt.Sprintf("%s %v", c.Ref, c.Header)
}
