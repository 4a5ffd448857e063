package parser

import (
	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
)

// Schema describes where price and record data may live in a source.
type Schema struct {
	// SubTables lists sub-table names tried in priority order.
	SubTables []string
	// PriceColumns lists accepted price headers, first match wins.
	PriceColumns []string
	// RecordColumns lists accepted record headers, first match wins.
	RecordColumns []string
	// PlaceholderColumn is a generated header that stands in for a lost price header.
	PlaceholderColumn string
}

// DefaultSchema returns the schema used by the draft spreadsheets.
func DefaultSchema() Schema {
	return Schema{
		SubTables:         []string{"Overall MVP", "Overall"},
		PriceColumns:      []string{"Price ", "Cost ", "Cost:"},
		RecordColumns:     []string{"Record ", "Record:"},
		PlaceholderColumn: "Unnamed: 2",
	}
}

// Columns holds the resolved positions of the price and record columns.
type Columns struct {
	Price      int
	PriceName  string
	Record     int
	RecordName string
}

// Resolve locates the price and record columns of t.
// The placeholder column ranks just below the first price alias: an explicit
// "Price " header wins, but the placeholder beats every later alias.
func (s Schema) Resolve(t *models.Table) (Columns, error) {
	cols := Columns{Price: -1, Record: -1}

	cols.Price, cols.PriceName = firstColumn(t, s.priceCandidates())
	cols.Record, cols.RecordName = firstColumn(t, s.RecordColumns)

	var missing []string
	if cols.Price < 0 {
		missing = append(missing, "price")
	}
	if cols.Record < 0 {
		missing = append(missing, "record")
	}
	if len(missing) > 0 {
		return cols, &SchemaError{SubTable: t.Name, Missing: missing}
	}
	return cols, nil
}

// priceCandidates returns the price aliases with the placeholder inserted after the first.
func (s Schema) priceCandidates() []string {
	if s.PlaceholderColumn == "" {
		return s.PriceColumns
	}
	if len(s.PriceColumns) == 0 {
		return []string{s.PlaceholderColumn}
	}
	candidates := make([]string, 0, len(s.PriceColumns)+1)
	candidates = append(candidates, s.PriceColumns[0], s.PlaceholderColumn)
	return append(candidates, s.PriceColumns[1:]...)
}

func firstColumn(t *models.Table, aliases []string) (int, string) {
	for _, alias := range aliases {
		if idx := t.ColumnIndex(alias); idx >= 0 {
			return idx, alias
		}
	}
	return -1, ""
}
