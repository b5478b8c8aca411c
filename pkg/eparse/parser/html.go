package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/PuerkitoBio/goquery"
)

// HTMLToGrids parses every <table> element in html into a grid named
// "table_<n>" (1-based, document order). Cells spanning several columns are
// followed by empty cells so that columns stay aligned; spans above 1000
// are clamped.
func HTMLToGrids(html string) ([]*models.Sheet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var grids []*models.Sheet
	doc.Find("table").Each(func(i int, tbl *goquery.Selection) {
		var cells [][]any
		tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			if !tr.Closest("table").IsSelection(tbl) {
				return
			}
			var row []any
			tr.ChildrenFiltered("td, th").Each(func(_ int, td *goquery.Selection) {
				text := strings.TrimSpace(td.Text())
				var v any
				if text != "" {
					v = parseValue(text)
				}
				row = append(row, v)
				for span := colspan(td); span > 1; span-- {
					row = append(row, nil)
				}
			})
			cells = append(cells, row)
		})
		grids = append(grids, models.NewSheet(fmt.Sprintf("table_%d", i+1), cells))
	})

	return grids, nil
}

// HTMLToTables converts every non-empty HTML table to a Table covering its
// populated area.
func HTMLToTables(html string) ([]*models.Table, error) {
	grids, err := HTMLToGrids(html)
	if err != nil {
		return nil, err
	}

	var tables []*models.Table
	for _, g := range grids {
		if b, ok := findDataBounds(g); ok {
			tables = append(tables, TableFromBounds(g, b))
		}
	}
	return tables, nil
}

// HTMLToRecords serializes every HTML table, in document order.
func HTMLToRecords(html string, meta models.Metadata) ([]models.Record, error) {
	tables, err := HTMLToTables(html)
	if err != nil {
		return nil, err
	}

	var records []models.Record
	for _, t := range tables {
		records = append(records, SerializeTable(t, meta)...)
	}
	return records, nil
}

// maxColspan is the largest colspan browsers honour.
const maxColspan = 1000

// colspan returns the column span of td, clamped to [1, maxColspan].
func colspan(td *goquery.Selection) int {
	s, ok := td.Attr("colspan")
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, maxColspan)
}
