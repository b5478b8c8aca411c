package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Asipu290/eparse/internal/config"
	"github.com/Asipu290/eparse/internal/fixture"
	"github.com/Asipu290/eparse/pkg/eparse/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestRunExtractsWorkbook(t *testing.T) {
	dir := isolate(t)
	input := fixture.WriteXLSX(t, fixture.UnitGrid())
	out := filepath.Join(dir, "out.json")
	db := filepath.Join(dir, "tables.db")

	require.NoError(t, runCLI(t, input, "-o", out, "--db", db))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var wb struct {
		Sheets map[string]struct {
			TableCandidates []struct {
				Ref string `json:"ref"`
			} `json:"table_candidates"`
		} `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal(data, &wb))
	cands := wb.Sheets["Sheet1"].TableCandidates
	require.Len(t, cands, 2)
	assert.Equal(t, "C3", cands[0].Ref)
	assert.Equal(t, "A101", cands[1].Ref)

	store, err := storage.Open(db)
	require.NoError(t, err)
	defer store.Close()

	tables, err := store.Tables(context.Background(), "fixture.xlsx")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "C3", tables[0].Anchor)
	assert.Equal(t, 9, tables[0].Rows)
	assert.Equal(t, 2, tables[0].Cols)
}

func TestRunLooseFlag(t *testing.T) {
	dir := isolate(t)
	input := fixture.WriteXLSX(t, fixture.NestedGrid())
	out := filepath.Join(dir, "out.json")

	require.NoError(t, runCLI(t, input, "--loose", "--mode", "light", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"H13"`)
}

func TestRunAnchorDigest(t *testing.T) {
	dir := isolate(t)
	input := fixture.WriteXLSX(t, fixture.UnitGrid())
	out := filepath.Join(dir, "schedule.txt")

	require.NoError(t, runCLI(t, input, "--anchor", "C103", "--format", "digest", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `Table "Schedule of Principal Repayments:" has 8 column(s) and 11 row(s).`)
	assert.Contains(t, string(data), "  - Date (date)")
}

func TestRunAnchorErrors(t *testing.T) {
	isolate(t)
	input := fixture.WriteXLSX(t, fixture.UnitGrid())

	assert.Error(t, runCLI(t, input, "--anchor", "A1"), "empty anchor cell")
	assert.Error(t, runCLI(t, input, "--anchor", "not-a-cell"))
}

func TestRunUsesConfigFile(t *testing.T) {
	dir := isolate(t)
	input := fixture.WriteXLSX(t, fixture.UnitGrid())
	out := filepath.Join(dir, "out.md")

	cfg := "format: markdown\ndiscovery:\n  na_tolerance_r: 2\n  na_tolerance_c: 2\n  na_strip: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".eparse.yaml"), []byte(cfg), 0o600))

	require.NoError(t, runCLI(t, input, "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "### C3 (C3:J11)")
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	isolate(t)
	input := fixture.WriteXLSX(t, fixture.UnitGrid())

	assert.Error(t, runCLI(t, input, "--mode", "loud"))
	assert.Error(t, runCLI(t, input, "--format", "xml"))
	assert.Error(t, runCLI(t, filepath.Join(t.TempDir(), "missing.xlsx")))
}

func TestRunRejectsLightModeStorage(t *testing.T) {
	dir := isolate(t)
	input := fixture.WriteXLSX(t, fixture.UnitGrid())
	db := filepath.Join(dir, "tables.db")

	err := runCLI(t, input, "--mode", "light", "--db", db)
	require.ErrorIs(t, err, config.ErrStorageRequiresTables)
	assert.NoFileExists(t, db)
}
