// Package eparse discovers and extracts ad-hoc tables embedded in spreadsheets.
package eparse

import (
	"runtime"

	"github.com/Asipu290/eparse/pkg/eparse/models"
	"github.com/Asipu290/eparse/pkg/eparse/parser"
	"go.uber.org/zap"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLight discovers table candidates only.
	ModeLight Mode = "light"
	// ModeStandard discovers candidates and extracts each table.
	ModeStandard Mode = "standard"
	// ModeVerbose additionally serializes tables to records and keeps raw rows.
	ModeVerbose Mode = "verbose"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, true
	}
	return "", false
}

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (light, standard, verbose).
	Mode Mode
	// ExcludeNested drops tables whose anchor lies inside another table.
	// If nil, defaults to true.
	ExcludeNested *bool
	// Tolerance is the number of consecutive empty cells extraction may cross.
	Tolerance parser.Tolerance
	// Strip trims trailing empty rows and columns from extracted tables.
	Strip bool
	// Sheets restricts processing to the named sheets; empty means all.
	Sheets []string
	// IncludePrintAreas specifies whether to report print areas.
	// If nil, defaults to false for light mode, true otherwise.
	IncludePrintAreas *bool
	// RestrictToPrintAreas limits discovery to print areas on sheets that define them.
	RestrictToPrintAreas bool
	// Concurrency caps the number of sheets processed at once; 0 means GOMAXPROCS.
	Concurrency int
	// Metadata is merged into every serialized record.
	Metadata models.Metadata
	// Logger receives progress and warnings; nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

// ShouldExcludeNested returns whether nested tables are filtered out.
func (o Options) ShouldExcludeNested() bool {
	if o.ExcludeNested != nil {
		return *o.ExcludeNested
	}
	return true
}

// ShouldIncludePrintAreas returns whether to include print areas.
func (o Options) ShouldIncludePrintAreas() bool {
	if o.IncludePrintAreas != nil {
		return *o.IncludePrintAreas
	}
	return o.Mode != ModeLight
}

// ShouldExtractTables returns whether candidates are materialized as tables.
func (o Options) ShouldExtractTables() bool {
	return o.Mode != ModeLight
}

// ShouldIncludeRecords returns whether tables are serialized to records.
func (o Options) ShouldIncludeRecords() bool {
	return o.Mode == ModeVerbose
}

// ExtractOptions returns the table extraction parameters.
func (o Options) ExtractOptions() parser.ExtractOptions {
	return parser.ExtractOptions{Tolerance: o.Tolerance, Strip: o.Strip}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}
