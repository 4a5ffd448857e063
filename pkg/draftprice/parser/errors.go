package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumns indicates a sub-table lacks the price or record column.
var ErrMissingColumns = errors.New("required columns missing")

// SchemaError represents a sub-table without the required columns.
type SchemaError struct {
	SubTable string
	Missing  []string // "price", "record"
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("sub-table %q: %v: %s", e.SubTable, ErrMissingColumns, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrMissingColumns
}

// FormatError represents a price or record cell that did not parse.
type FormatError struct {
	Field string // "price", "record"
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
