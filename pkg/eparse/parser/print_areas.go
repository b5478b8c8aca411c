package parser

import (
	"fmt"
	"strings"

	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/xuri/excelize/v2"
)

// ExtractPrintAreas extracts print areas from a workbook.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(f *excelize.File) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" && dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10, comma separated.
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var (
		sheetName string
		areas     []models.PrintArea
	)

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		rangeStr := part
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			if sheetName == "" {
				sheetName = strings.Trim(part[:idx], "'")
			}
			rangeStr = part[idx+1:]
		}

		if b, err := ParseRange(rangeStr); err == nil {
			areas = append(areas, models.PrintArea{
				R1: b.RowStart + 1,
				C1: b.ColStart + 1,
				R2: b.RowEnd + 1,
				C2: b.ColEnd + 1,
			})
		}
	}

	return sheetName, areas
}

// ParseCellRef converts an A1-style reference such as "C103" or "$C$103"
// to zero-based (row, col).
func ParseCellRef(ref string) (row, col int, err error) {
	c, r, err := excelize.CellNameToCoordinates(strings.ReplaceAll(strings.TrimSpace(ref), "$", ""))
	if err != nil {
		return 0, 0, err
	}
	return r - 1, c - 1, nil
}

// ParseRange converts a range such as "$A$1:$D$10" to zero-based bounds.
// A single cell reference yields a one-cell range.
func ParseRange(rangeStr string) (models.Bounds, error) {
	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return models.Bounds{}, fmt.Errorf("invalid range %q", rangeStr)
	}

	r1, c1, err := ParseCellRef(parts[0])
	if err != nil {
		return models.Bounds{}, fmt.Errorf("invalid range %q: %w", rangeStr, err)
	}
	r2, c2 := r1, c1
	if len(parts) == 2 {
		if r2, c2, err = ParseCellRef(parts[1]); err != nil {
			return models.Bounds{}, fmt.Errorf("invalid range %q: %w", rangeStr, err)
		}
	}

	return models.Bounds{
		RowStart: min(r1, r2),
		RowEnd:   max(r1, r2),
		ColStart: min(c1, c2),
		ColEnd:   max(c1, c2),
	}, nil
}
