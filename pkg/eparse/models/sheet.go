package models

// Sheet is an in-memory grid backed by ragged rows of cell values.
type Sheet struct {
	// Name is the sheet (or HTML table) name.
	Name string `json:"name"`
	// Cells holds row-major cell values; rows may have different lengths.
	Cells [][]any `json:"cells"`

	cols int
}

// NewSheet creates a Sheet from row-major cell values.
func NewSheet(name string, cells [][]any) *Sheet {
	s := &Sheet{Name: name, Cells: cells}
	for _, row := range cells {
		if len(row) > s.cols {
			s.cols = len(row)
		}
	}
	return s
}

// Rows returns the number of rows.
func (s *Sheet) Rows() int { return len(s.Cells) }

// Cols returns the length of the longest row.
func (s *Sheet) Cols() int {
	if s.cols > 0 {
		return s.cols
	}
	n := 0
	for _, row := range s.Cells {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// Value returns the cell at (row, col), or nil when it is missing.
func (s *Sheet) Value(row, col int) any {
	if row < 0 || row >= len(s.Cells) || col < 0 {
		return nil
	}
	r := s.Cells[row]
	if col >= len(r) {
		return nil
	}
	return r[col]
}

// SheetData represents structured data for a single sheet.
type SheetData struct {
	// Rows contains raw non-empty rows (verbose mode only).
	Rows []CellRow `json:"rows,omitempty"`
	// TableCandidates contains the discovered table anchors.
	TableCandidates []Candidate `json:"table_candidates,omitempty"`
	// Tables contains the extracted tables, one per candidate.
	Tables []TableData `json:"tables,omitempty"`
	// PrintAreas contains user-defined print areas.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}
