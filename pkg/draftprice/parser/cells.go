// Package parser provides spreadsheet reading and row normalization utilities.
package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads a sheet into a Table.
// The first non-empty row inside the data bounds is the header. When clip is
// non-nil only cells inside it are considered.
func ReadSheet(f *excelize.File, sheetName string, clip *models.CellRange) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if clip != nil {
		rows = clipRows(rows, *clip)
	}
	return NewTable(sheetName, rows), nil
}

// NewTable builds a Table from raw rows, trimming leading blank rows and
// trailing blank rows and columns. Leading blank columns are kept so
// placeholder names stay positional.
func NewTable(name string, rows [][]string) *models.Table {
	table := &models.Table{Name: name}

	minRow, maxRow, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return table
	}

	table.Columns = HeaderNames(sliceRow(rows[minRow], 0, maxCol))
	for rowIdx := minRow + 1; rowIdx <= maxRow; rowIdx++ {
		table.Rows = append(table.Rows, sliceRow(rows[rowIdx], 0, maxCol))
	}
	return table
}

// HeaderNames names blank header cells "Unnamed: <index>".
// Other names are kept verbatim, including surrounding spaces.
func HeaderNames(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			names[i] = fmt.Sprintf("Unnamed: %d", i)
			continue
		}
		names[i] = h
	}
	return names
}

// sliceRow returns row[minCol:maxCol+1], padded with blanks.
func sliceRow(row []string, minCol, maxCol int) []string {
	out := make([]string, maxCol-minCol+1)
	for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
		out[colIdx-minCol] = row[colIdx]
	}
	return out
}

// clipRows blanks every cell outside r.
func clipRows(rows [][]string, r models.CellRange) [][]string {
	out := make([][]string, len(rows))
	for rowIdx, row := range rows {
		clipped := make([]string, len(row))
		for colIdx, cell := range row {
			if r.Contains(rowIdx+1, colIdx+1) {
				clipped[colIdx] = cell
			}
		}
		out[rowIdx] = clipped
	}
	return out
}
