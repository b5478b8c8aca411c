package parser

import (
	"errors"
	"testing"

	"github.com/Asipu290/eparse/internal/fixture"
	"github.com/Asipu290/eparse/pkg/eparse/models"
)

func TestResolveBounds(t *testing.T) {
	g := fixture.UnitGrid()

	tests := []struct {
		name     string
		row, col int
		tol      Tolerance
		expected models.Bounds
	}{
		{"strict header gap", 2, 2, Tolerance{}, models.Bounds{RowStart: 2, RowEnd: 10, ColStart: 2, ColEnd: 3}},
		{"tolerant includes trailing gaps", 2, 2, Tolerance{Rows: 2, Cols: 2}, models.Bounds{RowStart: 2, RowEnd: 12, ColStart: 2, ColEnd: 11}},
		{"row tolerance only", 2, 2, Tolerance{Rows: 2}, models.Bounds{RowStart: 2, RowEnd: 12, ColStart: 2, ColEnd: 3}},
		{"outer table", 100, 0, Tolerance{}, models.Bounds{RowStart: 100, RowEnd: 114, ColStart: 0, ColEnd: 3}},
		{"inner table", 102, 2, Tolerance{}, models.Bounds{RowStart: 102, RowEnd: 112, ColStart: 2, ColEnd: 9}},
		{"single column", 2, 5, Tolerance{}, models.Bounds{RowStart: 2, RowEnd: 10, ColStart: 5, ColEnd: 5}},
		{"negative tolerance is strict", 2, 2, Tolerance{Rows: -3, Cols: -1}, models.Bounds{RowStart: 2, RowEnd: 10, ColStart: 2, ColEnd: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ResolveBounds(g, tt.row, tt.col, tt.tol)
			if err != nil {
				t.Fatalf("ResolveBounds(%d, %d) failed: %v", tt.row, tt.col, err)
			}
			if b != tt.expected {
				t.Errorf("ResolveBounds(%d, %d) = %+v, expected %+v", tt.row, tt.col, b, tt.expected)
			}
		})
	}
}

func TestResolveBoundsNested(t *testing.T) {
	g := fixture.NestedGrid()

	b, err := ResolveBounds(g, 4, 3, Tolerance{})
	if err != nil {
		t.Fatalf("ResolveBounds failed: %v", err)
	}
	if b.RowEnd <= b.RowStart || b.ColEnd <= b.ColStart {
		t.Errorf("expected a multi-cell region, got %+v", b)
	}
	expected := models.Bounds{RowStart: 4, RowEnd: 20, ColStart: 3, ColEnd: 8}
	if b != expected {
		t.Errorf("ResolveBounds = %+v, expected %+v", b, expected)
	}
}

func TestResolveBoundsSingleCell(t *testing.T) {
	g := models.NewSheet("lone", [][]any{
		{nil, nil, nil},
		{nil, "x", nil},
		{nil, nil, nil},
	})

	b, err := ResolveBounds(g, 1, 1, Tolerance{})
	if err != nil {
		t.Fatalf("ResolveBounds failed: %v", err)
	}
	expected := models.Bounds{RowStart: 1, RowEnd: 1, ColStart: 1, ColEnd: 1}
	if b != expected {
		t.Errorf("ResolveBounds = %+v, expected %+v", b, expected)
	}
}

func TestResolveBoundsErrors(t *testing.T) {
	g := fixture.UnitGrid()

	t.Run("empty anchor", func(t *testing.T) {
		_, err := ResolveBounds(g, 0, 0, Tolerance{})
		if !errors.Is(err, ErrInvalidAnchor) {
			t.Errorf("expected ErrInvalidAnchor, got %v", err)
		}
		if errors.Is(err, ErrOutOfRange) {
			t.Errorf("empty anchor should not be out of range: %v", err)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		for _, pos := range [][2]int{{500, 0}, {0, 40}, {-1, 2}, {2, -1}} {
			_, err := ResolveBounds(g, pos[0], pos[1], Tolerance{})
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("ResolveBounds(%d, %d): expected ErrOutOfRange, got %v", pos[0], pos[1], err)
			}
			if !errors.Is(err, ErrInvalidAnchor) {
				t.Errorf("ResolveBounds(%d, %d): out of range should also be an invalid anchor", pos[0], pos[1])
			}
			var ae *AnchorError
			if !errors.As(err, &ae) || ae.Row != pos[0] || ae.Col != pos[1] {
				t.Errorf("expected AnchorError at %v, got %v", pos, err)
			}
		}
	})
}

func TestResolveBoundsNaN(t *testing.T) {
	g := models.NewSheet("nan", [][]any{
		{"a", "b", nan()},
		{1.0, nan(), nil},
		{nan(), nil, nil},
	})

	b, err := ResolveBounds(g, 0, 0, Tolerance{})
	if err != nil {
		t.Fatalf("ResolveBounds failed: %v", err)
	}
	expected := models.Bounds{RowStart: 0, RowEnd: 1, ColStart: 0, ColEnd: 1}
	if b != expected {
		t.Errorf("ResolveBounds = %+v, expected %+v", b, expected)
	}
}
