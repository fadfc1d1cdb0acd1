package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when zero rows survive normalization. Callers
// must surface it rather than silently producing an empty output file.
var ErrEmptyInput = errors.New("no valid rows after normalization")

// MalformedRowError describes a single input row that could not be parsed.
// It is recoverable: the normalizer skips the row, counts it, and continues.
type MalformedRowError struct {
	Line  int    // 1-based line number in the source file
	Field string // offending field, e.g. "timestamp" or "cloud_cover"
	Err   error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row at line %d: field %q: %v", e.Line, e.Field, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
