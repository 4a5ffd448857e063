package draftprice

import (
	"errors"
	"fmt"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/parser"
)

// ErrEmptyResult indicates no source produced any price data.
var ErrEmptyResult = errors.New("no price data aggregated")

// ErrNoSchema indicates none of a source's sub-tables had a recognizable schema.
var ErrNoSchema = errors.New("no recognizable schema in any sub-table")

// ErrMissingColumns indicates a sub-table lacks the price or record column.
var ErrMissingColumns = parser.ErrMissingColumns

// SchemaError represents a sub-table without the required columns.
type SchemaError = parser.SchemaError

// FormatError represents a price or record cell that did not parse.
type FormatError = parser.FormatError

// FetchError represents a source that could not be retrieved or used.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source %q: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(source string, err error) *FetchError {
	return &FetchError{
		Source: source,
		Err:    err,
	}
}
