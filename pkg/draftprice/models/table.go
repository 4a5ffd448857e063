// Package models defines data structures for draft price aggregation.
package models

// Table represents one named sub-table of a source as header plus text rows.
type Table struct {
	// Name is the sub-table (sheet) name the rows were read from.
	Name string `json:"name"`
	// Columns holds the header names in positional order.
	Columns []string `json:"columns"`
	// Rows holds data rows; a blank cell is a missing value.
	Rows [][]string `json:"rows,omitempty"`
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row r, column c, or "" when the row is short.
func (t *Table) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}
