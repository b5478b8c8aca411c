package parser

import (
	"errors"
	"fmt"
)

// ErrInvalidAnchor indicates an anchor that cannot start a table: the cell is
// empty or lies outside the grid.
var ErrInvalidAnchor = errors.New("invalid anchor")

// ErrOutOfRange indicates a row or column beyond the grid dimensions.
var ErrOutOfRange = errors.New("anchor out of range")

// AnchorError describes a rejected anchor position.
type AnchorError struct {
	Row int
	Col int
	Err error
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("%v at row %d, col %d", e.Err, e.Row, e.Col)
}

func (e *AnchorError) Unwrap() error {
	return e.Err
}

// Is makes every AnchorError match ErrInvalidAnchor, including out-of-range ones.
func (e *AnchorError) Is(target error) bool {
	return target == ErrInvalidAnchor
}
