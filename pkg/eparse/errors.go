package eparse

import (
	"errors"
	"fmt"

	"github.com/Asipu290/eparse/pkg/eparse/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInvalidAnchor is re-exported from parser: the anchor cell is empty or
// outside the grid.
var ErrInvalidAnchor = parser.ErrInvalidAnchor

// ErrOutOfRange is re-exported from parser: the anchor lies beyond the grid.
var ErrOutOfRange = parser.ErrOutOfRange

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "cells", "tables", "print_areas"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
