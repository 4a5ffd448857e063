package sources

import (
	"context"
	"log/slog"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"github.com/ukaji3/draftprice-go/pkg/draftprice/parser"
	"github.com/xuri/excelize/v2"
)

// WorkbookFetcher reads sub-tables from local xlsx files.
// The source id is the file path and the sub-table is a sheet name.
type WorkbookFetcher struct {
	clip *models.CellRange
	log  *slog.Logger
}

// NewWorkbookFetcher creates a fetcher. A non-nil clip limits reading to that range.
func NewWorkbookFetcher(clip *models.CellRange, logger *slog.Logger) *WorkbookFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &WorkbookFetcher{clip: clip, log: logger}
}

// Fetch reads one sheet of the workbook at path. An empty subTable reads the active sheet.
func (w *WorkbookFetcher) Fetch(ctx context.Context, path, subTable string) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if subTable == "" {
		subTable = f.GetSheetName(f.GetActiveSheetIndex())
	}
	w.log.Debug("Reading sheet", slog.String("source", path), slog.String("sub_table", subTable))
	return parser.ReadSheet(f, subTable, w.clip)
}
