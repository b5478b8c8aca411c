package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/nao1215/markdown"
)

// WriteTableMarkdown writes t as a Markdown table under an optional heading.
// The first table row becomes the Markdown header.
func WriteTableMarkdown(w io.Writer, title string, t *models.Table) error {
	md := markdown.NewMarkdown(w)
	if title != "" {
		md.H3(title)
		md.PlainText("")
	}
	writeTable(md, t)
	return md.Build()
}

// WriteWorkbookMarkdown writes every extracted table of wb, sheet by sheet.
func WriteWorkbookMarkdown(w io.Writer, wb *models.WorkbookData) error {
	md := markdown.NewMarkdown(w)
	md.H1(wb.BookName)
	md.PlainText("")

	for _, name := range wb.SheetNames {
		sheet := wb.Sheets[name]
		md.H2(name)
		md.PlainText("")
		if len(sheet.Tables) == 0 {
			md.PlainText(fmt.Sprintf("%d candidate(s), no tables extracted.", len(sheet.TableCandidates)))
			md.PlainText("")
			continue
		}
		for _, td := range sheet.Tables {
			md.H3(fmt.Sprintf("%s (%s)", td.Candidate.Ref, td.Table.Bounds.Ref()))
			md.PlainText("")
			writeTable(md, td.Table)
		}
	}

	return md.Build()
}

func writeTable(md *markdown.Markdown, t *models.Table) {
	rows, cols := t.Shape()
	if rows == 0 || cols == 0 {
		return
	}

	header := make([]string, cols)
	for c := range header {
		header[c] = escapeCell(FormatValue(t.ColumnHeader(c)))
	}
	body := make([][]string, 0, rows-1)
	for r := 1; r < rows; r++ {
		row := make([]string, cols)
		for c := range row {
			row[c] = escapeCell(FormatValue(t.At(r, c)))
		}
		body = append(body, row)
	}

	md.Table(markdown.TableSet{Header: header, Rows: body})
	md.PlainText("")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
