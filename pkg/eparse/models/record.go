package models

import (
	"encoding/json"
)

// Metadata holds caller-supplied key/value pairs merged into every record.
type Metadata map[string]any

// Record is one flattened cell of a Table.
type Record struct {
	// RowIndex is the zero-based row within the table.
	RowIndex int
	// ColIndex is the zero-based column within the table.
	ColIndex int
	// Value is the raw cell value (nil when empty).
	Value any
	// Type is the detected primitive type of Value.
	Type string
	// RowHeader is the value of the row's first column.
	RowHeader any
	// ColHeader is the value of the column's first row.
	ColHeader any
	// Ref is the A1-style address of the cell in the source grid.
	Ref string
	// Meta holds caller-supplied metadata.
	Meta Metadata
}

// Fields returns the record as a flat map; metadata keys never override
// the record's own fields.
func (r Record) Fields() map[string]any {
	m := make(map[string]any, len(r.Meta)+7)
	for k, v := range r.Meta {
		m[k] = v
	}
	m["row"] = r.RowIndex
	m["column"] = r.ColIndex
	m["value"] = r.Value
	m["type"] = r.Type
	m["r_header"] = r.RowHeader
	m["c_header"] = r.ColHeader
	m["excel_RC"] = r.Ref
	return m
}

// MarshalJSON encodes the record as a single flat object.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}
