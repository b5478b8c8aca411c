// Package fixture builds sample grids and workbooks for tests.
package fixture

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/xuri/excelize/v2"
)

type builder struct {
	cells [][]any
}

func newBuilder(rows, cols int) *builder {
	cells := make([][]any, rows)
	for i := range cells {
		cells[i] = make([]any, cols)
	}
	return &builder{cells: cells}
}

func (b *builder) set(row, col int, v any) {
	b.cells[row][col] = v
}

func (b *builder) sheet(name string) *models.Sheet {
	return models.NewSheet(name, b.cells)
}

// UnitGrid returns a 116×13 sheet holding two top-level tables.
//
// The first is anchored at C3 ("ID"): its header row has gaps at E, G and I,
// so strict bounds are 9×2 while a tolerance of two widens it to 9×8.
// The second is anchored at A101 and spans A101:D115; its body contains a
// repayment schedule anchored at C103 spanning C103:J113 whose header row has
// "Date" in E103.
//
// Four strips off to the right (L105, L109:M109, L111, L114) are too small
// for strict mode, so loose discovery finds ten candidates where strict
// discovery finds two.
func UnitGrid() *models.Sheet {
	b := newBuilder(116, 13)

	b.set(2, 2, "ID")
	b.set(2, 3, "Name")
	b.set(2, 5, "Q1")
	b.set(2, 7, "Q2")
	b.set(2, 9, "Total")
	for i := 1; i <= 8; i++ {
		r := 2 + i
		q1, q2 := 10.5*float64(i), 20.25*float64(i)
		b.set(r, 2, int64(i))
		b.set(r, 3, fmt.Sprintf("Item %d", i))
		b.set(r, 5, q1)
		b.set(r, 7, q2)
		b.set(r, 9, q1+q2)
	}

	b.set(100, 0, "Loan Facility")
	b.set(100, 1, "Lender")
	b.set(100, 2, "Amount")
	b.set(100, 3, "Currency")
	b.set(101, 0, "Facility A")
	b.set(101, 1, "Bank One")
	b.set(101, 3, "USD")
	b.set(102, 0, "Facility B")
	for c, h := range []string{"Schedule of Principal Repayments:", "No.", "Date", "Principal", "Interest", "Payment", "Balance", "Status"} {
		b.set(102, 2+c, h)
	}
	for k := 1; k <= 10; k++ {
		r := 102 + k
		interest := 12.5 * float64(11-k)
		b.set(r, 0, fmt.Sprintf("Facility B.%d", k))
		b.set(r, 2, fmt.Sprintf("Tranche %d", k))
		b.set(r, 3, int64(k))
		b.set(r, 4, fmt.Sprintf("%02d/01/2023", k))
		b.set(r, 5, 1000.5)
		b.set(r, 6, interest)
		b.set(r, 7, 1000.5+interest)
		b.set(r, 8, 1000.5*float64(10-k))
		if k <= 4 {
			b.set(r, 9, "Paid")
		} else {
			b.set(r, 9, "Due")
		}
	}
	b.set(113, 0, "Total")
	b.set(113, 1, "Bank One")
	b.set(114, 0, "Notes")
	b.set(114, 1, "Fixed rate")

	b.set(104, 11, "Fee")
	b.set(105, 11, 25.0)
	b.set(108, 11, "Rate")
	b.set(108, 12, 0.05)
	b.set(110, 11, "Term")
	b.set(111, 11, int64(12))
	b.set(113, 11, "Memo")
	b.set(114, 11, "Fixed")

	return b.sheet("Sheet1")
}

// NestedGrid returns a 22×10 sheet with one table anchored at D5 spanning
// D5:I21 and a sub-table anchored at H13 spanning H13:I16 inside its body.
func NestedGrid() *models.Sheet {
	b := newBuilder(22, 10)

	for c, h := range []string{"ID", "Name", "Dept", "Role", "Start", "End"} {
		b.set(4, 3+c, h)
	}
	for k := 1; k <= 16; k++ {
		r := 4 + k
		b.set(r, 3, int64(k))
		b.set(r, 4, fmt.Sprintf("Person %d", k))
		b.set(r, 5, "Ops")
		if r < 12 || r > 15 {
			b.set(r, 6, "Analyst")
		}
		if r <= 10 || r >= 17 {
			b.set(r, 7, fmt.Sprintf("2023-01-%02d", k))
			b.set(r, 8, fmt.Sprintf("2024-01-%02d", k))
		}
	}
	b.set(12, 7, "SubID")
	b.set(12, 8, "SubVal")
	for k := 1; k <= 3; k++ {
		b.set(12+k, 7, int64(100+k))
		b.set(12+k, 8, 0.5*float64(k))
	}

	return b.sheet("Sheet1")
}

// WriteXLSX saves the given sheets as a workbook in t.TempDir and returns its path.
func WriteXLSX(t testing.TB, sheets ...*models.Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			t.Fatalf("create sheet %q: %v", s.Name, err)
		}
		for r := 0; r < s.Rows(); r++ {
			for c := 0; c < s.Cols(); c++ {
				v := s.Value(r, c)
				if models.IsEmpty(v) {
					continue
				}
				if err := f.SetCellValue(s.Name, models.CellRef(r, c), v); err != nil {
					t.Fatalf("set %s: %v", models.CellRef(r, c), err)
				}
			}
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
