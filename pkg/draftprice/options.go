// Package draftprice aggregates draft price win/loss records from several
// spreadsheet sources and buckets the win rates into fixed price ranges.
package draftprice

import (
	"context"
	"log/slog"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"github.com/ukaji3/draftprice-go/pkg/draftprice/parser"
)

// Fetcher retrieves one sub-table of a source.
// An empty subTable asks for the source's default table.
type Fetcher interface {
	Fetch(ctx context.Context, sourceID, subTable string) (*models.Table, error)
}

// Options configures aggregation behavior.
type Options struct {
	// Schema lists the sub-tables to probe and the accepted column names.
	Schema parser.Schema
	// Logger receives diagnostics. If nil, diagnostics are only returned.
	Logger *slog.Logger
}

// DefaultOptions returns default aggregation options.
func DefaultOptions() Options {
	return Options{
		Schema: parser.DefaultSchema(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
