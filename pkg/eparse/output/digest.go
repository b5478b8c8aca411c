package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Asipu290/eparse/pkg/eparse/models"
)

// TableDigest summarizes serialized table records as plain text: shape,
// column headers with their detected types, and one line per body row.
func TableDigest(records []models.Record, name string) string {
	rows, cols := 0, 0
	for _, r := range records {
		rows = max(rows, r.RowIndex+1)
		cols = max(cols, r.ColIndex+1)
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "Table %q has %d column(s) and %d row(s).\n", name, cols, rows)
	} else {
		fmt.Fprintf(&b, "Table has %d column(s) and %d row(s).\n", cols, rows)
	}
	if len(records) == 0 {
		return b.String()
	}

	headers := make([]string, cols)
	types := make([]map[string]int, cols)
	for i := range types {
		types[i] = make(map[string]int)
	}
	body := make([][]models.Record, rows)
	for _, r := range records {
		if r.RowIndex == 0 {
			headers[r.ColIndex] = FormatValue(r.Value)
			continue
		}
		body[r.RowIndex] = append(body[r.RowIndex], r)
		if !models.IsEmpty(r.Value) {
			types[r.ColIndex][r.Type]++
		}
	}

	b.WriteString("Columns:\n")
	for c, h := range headers {
		if h == "" {
			h = fmt.Sprintf("column %d", c+1)
		}
		fmt.Fprintf(&b, "  - %s (%s)\n", h, dominant(types[c]))
	}

	b.WriteString("Rows:\n")
	for _, row := range body[1:] {
		var label string
		var values []string
		for _, r := range row {
			v := FormatValue(r.Value)
			if r.ColIndex == 0 {
				label = v
				continue
			}
			if v != "" {
				values = append(values, v)
			}
		}
		if label == "" && len(values) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s:  %s\n", label, strings.Join(values, ", "))
	}

	return b.String()
}

// dominant returns the most frequent type, "empty" when there is none.
// Ties resolve alphabetically.
func dominant(counts map[string]int) string {
	if len(counts) == 0 {
		return "empty"
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	best := names[0]
	for _, name := range names[1:] {
		if counts[name] > counts[best] {
			best = name
		}
	}
	return best
}
