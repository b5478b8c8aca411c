package models

// CellRow represents a single non-empty row of a sheet.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (1-based, as string) to cell value.
	C map[string]any `json:"c"`
}
