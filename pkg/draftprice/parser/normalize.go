package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
)

// RowStatus is the outcome of normalizing one data row.
type RowStatus int

const (
	// RowOK means Row holds a usable price and record.
	RowOK RowStatus = iota
	// RowEmpty means the price or record cell was blank; not an error.
	RowEmpty
	// RowInvalid means a cell did not parse; Err says why.
	RowInvalid
)

// RowResult is the per-row outcome of Normalize.
type RowResult struct {
	// Index is the 1-based data row (header excluded).
	Index  int
	Status RowStatus
	Row    models.NormalizedRow
	Err    error
}

// Normalize converts every data row of t into a RowResult using the resolved columns.
func Normalize(t *models.Table, cols Columns) []RowResult {
	results := make([]RowResult, 0, len(t.Rows))
	for i := range t.Rows {
		res := RowResult{Index: i + 1}

		priceCell := strings.TrimSpace(t.Cell(i, cols.Price))
		record := strings.TrimSpace(t.Cell(i, cols.Record))
		if IsMissing(priceCell) || IsMissing(record) {
			res.Status = RowEmpty
			results = append(results, res)
			continue
		}

		price, err := ParsePrice(priceCell)
		if err != nil {
			res.Status = RowInvalid
			res.Err = err
			results = append(results, res)
			continue
		}

		res.Row = models.NormalizedRow{Price: price, Record: record}
		results = append(results, res)
	}
	return results
}

// ParsePrice parses a price cell, tolerating thousands separators,
// and truncates fractional values toward zero.
func ParsePrice(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0, &FormatError{Field: "price", Value: s, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FormatError{Field: "price", Value: s}
	}
	if v >= float64(math.MaxInt) || v < float64(math.MinInt) {
		return 0, &FormatError{Field: "price", Value: s, Err: strconv.ErrRange}
	}
	return int(v), nil
}

// missingValues are cell texts spreadsheet exports use for absent values.
var missingValues = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"#N/A": {},
}

// IsMissing reports whether a trimmed cell denotes a missing value.
func IsMissing(s string) bool {
	_, ok := missingValues[s]
	return ok
}
