package parser

import (
	"maps"

	"github.com/Asipu290/eparse/pkg/eparse/models"
)

// SerializeTable flattens t into one record per cell in row-major order.
// Every record carries its own copy of meta, keys kept verbatim. When a
// record is flattened with Fields, the record's own fields win over meta
// keys of the same name. The result always has t.Rows()*t.Cols() records.
func SerializeTable(t *models.Table, meta models.Metadata) []models.Record {
	rows, cols := t.Shape()
	records := make([]models.Record, 0, rows*cols)

	for r := 0; r < rows; r++ {
		rowHeader := t.RowHeader(r)
		for c := 0; c < cols; c++ {
			v := t.At(r, c)
			records = append(records, models.Record{
				RowIndex:  r,
				ColIndex:  c,
				Value:     v,
				Type:      DetectType(v),
				RowHeader: rowHeader,
				ColHeader: t.ColumnHeader(c),
				Ref:       t.Ref(r, c),
				Meta:      maps.Clone(meta),
			})
		}
	}
	return records
}
