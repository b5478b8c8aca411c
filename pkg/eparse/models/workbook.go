package models

// WorkbookData represents workbook-level container with per-sheet data.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetNames lists the processed sheets in workbook order.
	SheetNames []string `json:"sheet_names"`
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData `json:"sheets"`
}

// TableCount returns the number of extracted tables across all sheets.
func (wb *WorkbookData) TableCount() int {
	n := 0
	for _, s := range wb.Sheets {
		n += len(s.Tables)
	}
	return n
}
