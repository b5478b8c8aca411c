package models

// Table is a rectangular slice of a grid whose first row holds column
// headers and whose first column holds row headers.
type Table struct {
	// Bounds is the region of the source grid the table was copied from.
	Bounds Bounds `json:"bounds"`
	// Cells holds rows × cols values; empty cells are nil.
	Cells [][]any `json:"cells"`
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return len(t.Cells) }

// Cols returns the number of columns.
func (t *Table) Cols() int {
	if len(t.Cells) == 0 {
		return 0
	}
	return len(t.Cells[0])
}

// Shape returns (rows, cols).
func (t *Table) Shape() (int, int) { return t.Rows(), t.Cols() }

// At returns the value at table position (row, col), or nil when out of range.
func (t *Table) At(row, col int) any {
	if row < 0 || row >= t.Rows() || col < 0 || col >= t.Cols() {
		return nil
	}
	return t.Cells[row][col]
}

// ColumnHeader returns the header of column col, taken from the first row.
func (t *Table) ColumnHeader(col int) any { return t.At(0, col) }

// RowHeader returns the header of row row, taken from the first column.
func (t *Table) RowHeader(row int) any { return t.At(row, 0) }

// Ref returns the A1-style address of table position (row, col) in the source grid.
func (t *Table) Ref(row, col int) string {
	return CellRef(t.Bounds.RowStart+row, t.Bounds.ColStart+col)
}

// TableData pairs an extracted table with the candidate it was anchored at.
type TableData struct {
	Candidate Candidate `json:"candidate"`
	Table     *Table    `json:"table"`
	Records   []Record  `json:"records,omitempty"`
}
