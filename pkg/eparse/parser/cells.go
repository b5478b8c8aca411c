package parser

import (
	"strconv"
	"strings"

	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/xuri/excelize/v2"
)

// LoadGrid reads a sheet into an in-memory grid.
// Numeric cells become int64 or float64; empty cells become nil.
func LoadGrid(f *excelize.File, sheetName string) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	cells := make([][]any, len(rows))
	for rowIdx, row := range rows {
		values := make([]any, len(row))
		for colIdx, cellValue := range row {
			if strings.TrimSpace(cellValue) == "" {
				continue
			}
			values[colIdx] = parseValue(cellValue)
		}
		cells[rowIdx] = values
	}

	return models.NewSheet(sheetName, cells), nil
}

// ExtractCells lists the non-empty rows of a grid keyed by 1-based column.
func ExtractCells(g models.Grid) []models.CellRow {
	var result []models.CellRow
	for rowIdx := 0; rowIdx < g.Rows(); rowIdx++ {
		cellMap := make(map[string]any)
		for colIdx := 0; colIdx < g.Cols(); colIdx++ {
			v := g.Value(rowIdx, colIdx)
			if models.IsEmpty(v) {
				continue
			}
			cellMap[strconv.Itoa(colIdx+1)] = v
		}
		if len(cellMap) > 0 {
			result = append(result, models.CellRow{R: rowIdx + 1, C: cellMap})
		}
	}
	return result
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
