package output_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Asipu290/eparse/internal/fixture"
	"github.com/Asipu290/eparse/pkg/eparse"
	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/Asipu290/eparse/pkg/eparse/output"
	"github.com/Asipu290/eparse/pkg/eparse/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleRecords(t *testing.T) []models.Record {
	t.Helper()
	tbl, err := parser.ExtractTable(fixture.UnitGrid(), 102, 2, parser.DefaultExtractOptions())
	require.NoError(t, err)
	return parser.SerializeTable(tbl, models.Metadata{"name": "schedule"})
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", output.FormatValue(nil))
	assert.Equal(t, "", output.FormatValue("  "))
	assert.Equal(t, "1000.5", output.FormatValue(1000.5))
	assert.Equal(t, "3", output.FormatValue(3.0))
	assert.Equal(t, "42", output.FormatValue(int64(42)))
	assert.Equal(t, "true", output.FormatValue(true))
	assert.Equal(t, "2023-01-02", output.FormatValue(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestRecordsToJSON(t *testing.T) {
	t.Parallel()

	t.Run("keeps record order and flat fields", func(t *testing.T) {
		t.Parallel()

		data, err := output.RecordsToJSON(scheduleRecords(t), false)
		require.NoError(t, err)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got, 88)
		assert.Equal(t, "C103", got[0]["excel_RC"])
		assert.Equal(t, "Date", got[18]["c_header"])
		assert.Equal(t, "date", got[18]["type"])
		assert.Equal(t, "schedule", got[18]["name"])
	})

	t.Run("encodes nil as an empty array", func(t *testing.T) {
		t.Parallel()

		data, err := output.RecordsToJSON(nil, false)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("indents when pretty", func(t *testing.T) {
		t.Parallel()

		data, err := output.RecordsToJSON(scheduleRecords(t)[:1], true)
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  {")
	})
}

func TestToJSON(t *testing.T) {
	t.Parallel()

	data := eparse.ExtractGrid(fixture.NestedGrid(), eparse.DefaultOptions())
	wb := &models.WorkbookData{
		BookName:   "nested.xlsx",
		SheetNames: []string{"Sheet1"},
		Sheets:     map[string]models.SheetData{"Sheet1": data},
	}

	raw, err := output.ToJSON(wb, false)
	require.NoError(t, err)

	var got struct {
		BookName string `json:"book_name"`
		Sheets   map[string]struct {
			TableCandidates []models.Candidate `json:"table_candidates"`
			Tables          []struct {
				Table struct {
					Bounds models.Bounds `json:"bounds"`
				} `json:"table"`
			} `json:"tables"`
		} `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "nested.xlsx", got.BookName)
	sheet := got.Sheets["Sheet1"]
	require.Len(t, sheet.TableCandidates, 1)
	assert.Equal(t, "D5", sheet.TableCandidates[0].Ref)
	require.Len(t, sheet.Tables, 1)
	assert.Equal(t, models.Bounds{RowStart: 4, RowEnd: 20, ColStart: 3, ColEnd: 8}, sheet.Tables[0].Table.Bounds)

	sheetRaw, err := output.SheetToJSON(&data, true)
	require.NoError(t, err)
	assert.Contains(t, string(sheetRaw), `"ref": "D5"`)
}

func TestWriteTableMarkdown(t *testing.T) {
	t.Parallel()

	tbl := &models.Table{Cells: [][]any{
		{"Name", "Qty"},
		{"apple", 3},
		{"multi\nline", nil},
	}}

	var buf bytes.Buffer
	require.NoError(t, output.WriteTableMarkdown(&buf, "Fruit", tbl))

	out := buf.String()
	assert.Contains(t, out, "### Fruit")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Qty")
	assert.Contains(t, out, "apple")
	assert.Contains(t, out, "multi line")
}

func TestWriteWorkbookMarkdown(t *testing.T) {
	t.Parallel()

	light := eparse.Options{Mode: eparse.ModeLight}
	wb := &models.WorkbookData{
		BookName:   "book.xlsx",
		SheetNames: []string{"Nested", "Empty"},
		Sheets: map[string]models.SheetData{
			"Nested": eparse.ExtractGrid(fixture.NestedGrid(), eparse.DefaultOptions()),
			"Empty":  eparse.ExtractGrid(fixture.UnitGrid(), light),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, output.WriteWorkbookMarkdown(&buf, wb))

	out := buf.String()
	assert.Contains(t, out, "# book.xlsx")
	assert.Contains(t, out, "## Nested")
	assert.Contains(t, out, "### D5 (D5:I21)")
	assert.Contains(t, out, "Person 16")
	assert.Contains(t, out, "2 candidate(s), no tables extracted.")
	assert.Less(t, strings.Index(out, "## Nested"), strings.Index(out, "## Empty"))
}

func TestTableDigest(t *testing.T) {
	t.Parallel()

	t.Run("summarizes columns and rows", func(t *testing.T) {
		t.Parallel()

		out := output.TableDigest(scheduleRecords(t), "schedule")

		assert.True(t, strings.HasPrefix(out, `Table "schedule" has 8 column(s) and 11 row(s).`))
		assert.Contains(t, out, "  - Date (date)\n")
		assert.Contains(t, out, "  - No. (int)\n")
		assert.Contains(t, out, "  - Principal (float)\n")
		assert.Contains(t, out, "  - Status (str)\n")
		assert.Contains(t, out, "  Tranche 1:  1, 01/01/2023, 1000.5, 125, 1125.5, 9004.5, Paid\n")
	})

	t.Run("handles no records", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Table has 0 column(s) and 0 row(s).\n", output.TableDigest(nil, ""))
	})

	t.Run("labels missing headers", func(t *testing.T) {
		t.Parallel()

		tbl := &models.Table{Cells: [][]any{{"k", nil}, {"x", 1.5}}}
		out := output.TableDigest(parser.SerializeTable(tbl, nil), "")
		assert.Contains(t, out, "  - column 2 (float)\n")
		assert.Contains(t, out, "  x:  1.5\n")
	})
}
