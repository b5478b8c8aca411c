// Package output renders extraction results as JSON, Markdown or text digests.
package output

import (
	"encoding/json"

	"github.com/Asipu290/eparse/pkg/eparse/models"
)

// ToJSON serializes workbook data.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes a single sheet.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(sheet, pretty)
}

// RecordsToJSON serializes records as a JSON array, preserving their order.
func RecordsToJSON(records []models.Record, pretty bool) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	return marshal(records, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
