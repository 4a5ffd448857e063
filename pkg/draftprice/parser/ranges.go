package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses a range like A1:F200, $A$1:$F$200 or 'Sheet'!A1:F200.
// The sheet prefix, when present, is ignored.
func ParseRange(ref string) (*models.CellRange, error) {
	rangeStr := strings.TrimSpace(ref)
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		rangeStr = rangeStr[idx+1:]
	}
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	if endRow < startRow || endCol < startCol {
		return nil, fmt.Errorf("invalid range %q: end before start", ref)
	}

	return &models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}, nil
}
