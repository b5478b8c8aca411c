package models

// PrintArea represents cell coordinate bounds for a print area.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Bounds converts the area to zero-based grid bounds.
func (a PrintArea) Bounds() Bounds {
	return Bounds{RowStart: a.R1 - 1, RowEnd: a.R2 - 1, ColStart: a.C1 - 1, ColEnd: a.C2 - 1}
}

// AreaBounds converts a list of print areas to grid bounds.
func AreaBounds(areas []PrintArea) []Bounds {
	if len(areas) == 0 {
		return nil
	}
	out := make([]Bounds, len(areas))
	for i, a := range areas {
		out[i] = a.Bounds()
	}
	return out
}
