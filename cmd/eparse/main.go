// Package main provides the CLI entry point for eparse.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Asipu290/eparse/internal/config"
	"github.com/Asipu290/eparse/internal/logging"
	"github.com/Asipu290/eparse/pkg/eparse"
	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/Asipu290/eparse/pkg/eparse/output"
	"github.com/Asipu290/eparse/pkg/eparse/parser"
	"github.com/Asipu290/eparse/pkg/eparse/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputPath     string
	pretty         bool
	mode           string
	format         string
	sheetsDir      string
	sheets         []string
	loose          bool
	naToleranceR   int
	naToleranceC   int
	naStrip        bool
	printAreasOnly bool
	anchor         string
	htmlInput      bool
	dbPath         string
	configPath     string
	concurrency    int
	debug          bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eparse [input.xlsx]",
		Short: "Find and extract tables embedded in spreadsheets",
		Long: `eparse scans every sheet of a workbook for ad-hoc tables, resolves their
extent, drops nested sub-tables and outputs the tables as JSON, Markdown or
plain-text digests.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&mode, "mode", "standard", "Extraction mode: light, standard, verbose")
	flags.StringVar(&format, "format", "json", "Output format: json, markdown, digest")
	flags.StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	flags.StringSliceVar(&sheets, "sheet", nil, "Only process the named sheet (repeatable)")
	flags.BoolVar(&loose, "loose", false, "Keep nested sub-tables")
	flags.IntVar(&naToleranceR, "na-tolerance-r", 0, "Empty cells tolerated when probing rows")
	flags.IntVar(&naToleranceC, "na-tolerance-c", 0, "Empty cells tolerated when probing columns")
	flags.BoolVar(&naStrip, "na-strip", false, "Trim trailing empty rows and columns")
	flags.BoolVar(&printAreasOnly, "print-areas-only", false, "Restrict discovery to print areas where defined")
	flags.StringVar(&anchor, "anchor", "", "Extract the single table anchored at this cell (e.g. C103)")
	flags.BoolVar(&htmlInput, "html", false, "Read tables from an HTML file instead of xlsx")
	flags.StringVar(&dbPath, "db", "", "Persist serialized tables to this SQLite database")
	flags.StringVar(&configPath, "config", "", "Config file (default: ./"+config.DefaultConfigFile+", "+filepath.Join(config.XDGConfigDir(), config.XDGConfigFile)+" or ~/"+config.DefaultConfigFile+")")
	flags.IntVar(&concurrency, "concurrency", 0, "Sheets processed in parallel (default: GOMAXPROCS)")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	extractMode, ok := eparse.ParseMode(cfg.Mode)
	if !ok {
		return fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", cfg.Mode)
	}

	excludeNested := cfg.Discovery.ExcludeNestedOrDefault()
	opts := eparse.Options{
		Mode:          extractMode,
		ExcludeNested: &excludeNested,
		Tolerance: parser.Tolerance{
			Rows: cfg.Discovery.NaToleranceR,
			Cols: cfg.Discovery.NaToleranceC,
		},
		Strip:                cfg.Discovery.NaStrip,
		Sheets:               sheets,
		RestrictToPrintAreas: cfg.Discovery.PrintAreas,
		Concurrency:          cfg.Concurrency,
		Logger:               logger,
	}

	logger.Debug("extracting",
		zap.String("input", inputPath),
		zap.String("mode", cfg.Mode),
		zap.Bool("exclude_nested", excludeNested),
	)

	if anchor != "" {
		return runAnchor(inputPath, cfg, opts)
	}

	var wb *models.WorkbookData
	if htmlInput {
		wb, err = extractHTML(inputPath, opts)
	} else {
		wb, err = eparse.Extract(inputPath, opts)
	}
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	data, err := render(wb, cfg)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Println(string(data))
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir, cfg.Pretty); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}

	if cfg.Storage.DatabasePath != "" {
		if err := persist(cmd.Context(), cfg.Storage.DatabasePath, wb); err != nil {
			return fmt.Errorf("failed to persist tables: %w", err)
		}
		logger.Info("tables persisted",
			zap.String("database", cfg.Storage.DatabasePath),
			zap.Int("tables", wb.TableCount()),
		)
	}

	return nil
}

// loadConfig reads the config file, then applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := config.Find(configPath); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("format") {
		cfg.Format = format
	}
	if flags.Changed("pretty") {
		cfg.Pretty = pretty
	}
	if flags.Changed("loose") {
		excludeNested := !loose
		cfg.Discovery.ExcludeNested = &excludeNested
	}
	if flags.Changed("na-tolerance-r") {
		cfg.Discovery.NaToleranceR = naToleranceR
	}
	if flags.Changed("na-tolerance-c") {
		cfg.Discovery.NaToleranceC = naToleranceC
	}
	if flags.Changed("na-strip") {
		cfg.Discovery.NaStrip = naStrip
	}
	if flags.Changed("print-areas-only") {
		cfg.Discovery.PrintAreas = printAreasOnly
	}
	if flags.Changed("db") {
		cfg.Storage.DatabasePath = dbPath
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func extractHTML(path string, opts eparse.Options) (*models.WorkbookData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	grids, err := parser.HTMLToGrids(string(content))
	if err != nil {
		return nil, err
	}

	wb := &models.WorkbookData{
		BookName: filepath.Base(path),
		Sheets:   make(map[string]models.SheetData, len(grids)),
	}
	for _, g := range grids {
		gridOpts := opts
		gridOpts.Metadata = models.Metadata{"f_name": wb.BookName, "sheet": g.Name}
		wb.SheetNames = append(wb.SheetNames, g.Name)
		wb.Sheets[g.Name] = eparse.ExtractGrid(g, gridOpts)
	}
	return wb, nil
}

// runAnchor extracts and prints the one table anchored at the --anchor cell
// of the first selected sheet.
func runAnchor(inputPath string, cfg *config.Config, opts eparse.Options) error {
	row, col, err := parser.ParseCellRef(anchor)
	if err != nil {
		return fmt.Errorf("invalid anchor %q: %w", anchor, err)
	}

	grids, err := loadGrids(inputPath, opts.Sheets)
	if err != nil {
		return err
	}
	if len(grids) == 0 {
		return fmt.Errorf("no sheets in %s", inputPath)
	}
	g := grids[0]

	t, err := parser.ExtractTable(g, row, col, opts.ExtractOptions())
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	meta := models.Metadata{
		"f_name": filepath.Base(inputPath),
		"sheet":  g.Name,
		"name":   fmt.Sprint(g.Value(row, col)),
	}
	records := parser.SerializeTable(t, meta)

	var data []byte
	switch cfg.Format {
	case "markdown":
		var buf bytes.Buffer
		if err := output.WriteTableMarkdown(&buf, fmt.Sprintf("%s!%s", g.Name, t.Bounds.Ref()), t); err != nil {
			return err
		}
		data = buf.Bytes()
	case "digest":
		data = []byte(output.TableDigest(records, fmt.Sprint(meta["name"])))
	default:
		if data, err = output.RecordsToJSON(records, cfg.Pretty); err != nil {
			return err
		}
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, data, 0644)
	}
	fmt.Println(string(data))
	return nil
}

func loadGrids(inputPath string, sheetNames []string) ([]*models.Sheet, error) {
	if htmlInput {
		content, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, err
		}
		return parser.HTMLToGrids(string(content))
	}
	return eparse.LoadSheets(inputPath, sheetNames)
}

func render(wb *models.WorkbookData, cfg *config.Config) ([]byte, error) {
	switch cfg.Format {
	case "markdown":
		var buf bytes.Buffer
		if err := output.WriteWorkbookMarkdown(&buf, wb); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "digest":
		var b strings.Builder
		for _, name := range wb.SheetNames {
			for _, td := range wb.Sheets[name].Tables {
				b.WriteString(output.TableDigest(tableRecords(td, nil), fmt.Sprintf("%s!%s", name, td.Candidate.Ref)))
				b.WriteString("\n")
			}
		}
		return []byte(b.String()), nil
	default:
		return output.ToJSON(wb, cfg.Pretty)
	}
}

func writeSheetFiles(wb *models.WorkbookData, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

func persist(ctx context.Context, path string, wb *models.WorkbookData) error {
	store, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, name := range wb.SheetNames {
		for _, td := range wb.Sheets[name].Tables {
			rows, cols := td.Table.Shape()
			meta := models.Metadata{
				"f_name": wb.BookName,
				"sheet":  name,
				"name":   fmt.Sprint(td.Candidate.Header),
			}
			_, err := store.SaveTable(ctx, storage.TableMeta{
				Source: wb.BookName,
				Sheet:  name,
				Name:   fmt.Sprint(td.Candidate.Header),
				Anchor: td.Candidate.Ref,
				Rows:   rows,
				Cols:   cols,
			}, tableRecords(td, meta))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// tableRecords returns the records of td, serializing the table when the
// extraction mode did not.
func tableRecords(td models.TableData, meta models.Metadata) []models.Record {
	if td.Records != nil {
		return td.Records
	}
	return parser.SerializeTable(td.Table, meta)
}
