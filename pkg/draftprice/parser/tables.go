package parser

import "strings"

// findDataBounds finds the first and last non-empty rows and the last
// non-empty column. All bounds are -1 when every cell is blank.
func findDataBounds(rows [][]string) (minRow, maxRow, maxCol int) {
	minRow, maxRow, maxCol = -1, -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}
