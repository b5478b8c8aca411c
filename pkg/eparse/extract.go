package eparse

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"

	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/Asipu290/eparse/pkg/eparse/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Extract discovers and extracts the tables of an Excel file.
func Extract(path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return extractWorkbook(f, filepath.Base(path), opts)
}

// ExtractReader is like Extract but reads the workbook from r.
// name is reported as the book name.
func ExtractReader(r io.Reader, name string, opts Options) (*models.WorkbookData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	return extractWorkbook(f, name, opts)
}

// LoadSheets reads the named sheets of an Excel file into grids, in the
// order requested. With no names every sheet is read in workbook order.
func LoadSheets(path string, names []string) ([]*models.Sheet, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheetList, err := selectSheets(f.GetSheetList(), names)
	if err != nil {
		return nil, err
	}

	grids := make([]*models.Sheet, 0, len(sheetList))
	for _, sheetName := range sheetList {
		grid, err := parser.LoadGrid(f, sheetName)
		if err != nil {
			return nil, NewExtractionError(sheetName, "cells", err)
		}
		grids = append(grids, grid)
	}
	return grids, nil
}

// ExtractGrid discovers and extracts the tables of an already loaded grid.
func ExtractGrid(g models.Grid, opts Options) models.SheetData {
	return extractGrid(g, opts.Metadata, opts, opts.logger())
}

func extractWorkbook(f *excelize.File, bookName string, opts Options) (*models.WorkbookData, error) {
	log := opts.logger().With(zap.String("book", bookName))

	sheetList, err := selectSheets(f.GetSheetList(), opts.Sheets)
	if err != nil {
		return nil, err
	}

	var printAreas map[string][]models.PrintArea
	if opts.ShouldIncludePrintAreas() || opts.RestrictToPrintAreas {
		printAreas = parser.ExtractPrintAreas(f)
	}

	// Workbook access stays sequential; the grids are processed concurrently.
	grids := make([]*models.Sheet, len(sheetList))
	for i, sheetName := range sheetList {
		grid, err := parser.LoadGrid(f, sheetName)
		if err != nil {
			log.Warn("sheet skipped", zap.Error(NewExtractionError(sheetName, "cells", err)))
			grid = models.NewSheet(sheetName, nil)
		}
		grids[i] = grid
	}

	results := make([]models.SheetData, len(sheetList))
	var g errgroup.Group
	g.SetLimit(opts.concurrency())
	for i, grid := range grids {
		g.Go(func() error {
			meta := maps.Clone(opts.Metadata)
			if meta == nil {
				meta = models.Metadata{}
			}
			meta["f_name"] = bookName
			meta["sheet"] = grid.Name

			areas := printAreas[grid.Name]
			var view models.Grid = grid
			if opts.RestrictToPrintAreas {
				view = models.Masked(grid, models.AreaBounds(areas))
			}

			data := extractGrid(view, meta, opts, log.With(zap.String("sheet", grid.Name)))
			if opts.ShouldIncludePrintAreas() {
				data.PrintAreas = areas
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sheets := make(map[string]models.SheetData, len(sheetList))
	for i, sheetName := range sheetList {
		sheets[sheetName] = results[i]
	}

	return &models.WorkbookData{
		BookName:   bookName,
		SheetNames: sheetList,
		Sheets:     sheets,
	}, nil
}

func extractGrid(g models.Grid, meta models.Metadata, opts Options, log *zap.Logger) models.SheetData {
	var data models.SheetData

	data.TableCandidates = parser.DiscoverTables(g, !opts.ShouldExcludeNested())
	if opts.Mode == ModeVerbose {
		data.Rows = parser.ExtractCells(g)
	}

	if opts.ShouldExtractTables() {
		for _, c := range data.TableCandidates {
			t, err := parser.ExtractTable(g, c.Row, c.Col, opts.ExtractOptions())
			if err != nil {
				log.Warn("table skipped", zap.String("anchor", c.Ref), zap.Error(err))
				continue
			}
			td := models.TableData{Candidate: c, Table: t}
			if opts.ShouldIncludeRecords() {
				tableMeta := maps.Clone(meta)
				if tableMeta == nil {
					tableMeta = models.Metadata{}
				}
				tableMeta["name"] = fmt.Sprint(c.Header)
				td.Records = parser.SerializeTable(t, tableMeta)
			}
			data.Tables = append(data.Tables, td)
		}
	}

	log.Debug("tables discovered",
		zap.Int("candidates", len(data.TableCandidates)),
		zap.Int("tables", len(data.Tables)),
	)
	return data
}

func selectSheets(all, wanted []string) ([]string, error) {
	if len(wanted) == 0 {
		return all, nil
	}
	known := make(map[string]bool, len(all))
	for _, name := range all {
		known[name] = true
	}
	for _, name := range wanted {
		if !known[name] {
			return nil, excelize.ErrSheetNotExist{SheetName: name}
		}
	}
	return wanted, nil
}
