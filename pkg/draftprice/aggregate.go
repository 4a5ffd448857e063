package draftprice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"github.com/ukaji3/draftprice-go/pkg/draftprice/parser"
)

// SourceData is the aggregate of a single source.
type SourceData struct {
	ID string
	// SubTable is the sub-table whose schema matched.
	SubTable string
	Stats    PriceStatsMap
	// Rows counts rows that contributed to Stats.
	Rows int
	// Blank counts rows skipped for a missing price or record.
	Blank int
	// Diagnostics holds skipped sub-tables and rows.
	Diagnostics []models.Diagnostic
}

func (d *SourceData) invalidRows() int {
	n := 0
	for _, diag := range d.Diagnostics {
		if diag.Kind == models.KindFormat {
			n++
		}
	}
	return n
}

// SourceSummary reports what happened to one source during a run.
type SourceSummary struct {
	ID       string
	SubTable string
	Rows     int
	Blank    int
	Invalid  int
	Prices   int
	// Err is non-nil when the source was skipped.
	Err error
}

// Result is the outcome of aggregating all sources.
type Result struct {
	// Combined holds merged stats across every successful source.
	Combined PriceStatsMap
	// Percentages holds the combined win rate per price with at least one game.
	Percentages map[int]float64
	// Buckets holds the six fixed ranges in order.
	Buckets []models.Bucket
	// Points holds one observation per (source, price) before merging.
	Points      []models.PricePoint
	Sources     []SourceSummary
	Diagnostics []models.Diagnostic
}

// Empty reports whether no source produced a usable win rate.
func (r *Result) Empty() bool {
	return len(r.Percentages) == 0
}

// Failed returns the sources that were skipped.
func (r *Result) Failed() []SourceSummary {
	var failed []SourceSummary
	for _, s := range r.Sources {
		if s.Err != nil {
			failed = append(failed, s)
		}
	}
	return failed
}

// Aggregator loads sources one at a time and folds them into a single result.
type Aggregator struct {
	fetcher Fetcher
	opts    Options
	log     *slog.Logger
}

// New creates an Aggregator reading through f.
func New(f Fetcher, opts Options) *Aggregator {
	return &Aggregator{
		fetcher: f,
		opts:    opts,
		log:     opts.logger(),
	}
}

// Aggregate processes ids in order with f and returns the combined result.
// Failing sources are skipped and reported in the result.
func Aggregate(ctx context.Context, f Fetcher, ids []string, opts Options) *Result {
	return New(f, opts).Run(ctx, ids)
}

// Run processes ids in order. A source that cannot be fetched or matches no
// schema is logged, recorded and skipped.
func (a *Aggregator) Run(ctx context.Context, ids []string) *Result {
	combined := make(PriceStatsMap)
	res := &Result{Combined: combined}

	for _, id := range ids {
		data, err := a.LoadSource(ctx, id)
		if err != nil {
			a.log.Error("Skipping source", slog.String("source", id), slog.String("error", err.Error()))
			res.Sources = append(res.Sources, SourceSummary{ID: id, Err: err})
			if data != nil {
				res.Diagnostics = append(res.Diagnostics, data.Diagnostics...)
			}
			res.Diagnostics = append(res.Diagnostics, models.Diagnostic{
				Source: id,
				Kind:   models.KindFetch,
				Err:    err,
			})
			continue
		}

		for _, price := range data.Stats.Prices() {
			if pct, ok := data.Stats[price].Percentage(); ok {
				res.Points = append(res.Points, models.PricePoint{Source: id, Price: price, Percentage: pct})
			}
		}
		combined.Merge(data.Stats)

		res.Sources = append(res.Sources, SourceSummary{
			ID:       id,
			SubTable: data.SubTable,
			Rows:     data.Rows,
			Blank:    data.Blank,
			Invalid:  data.invalidRows(),
			Prices:   len(data.Stats),
		})
		res.Diagnostics = append(res.Diagnostics, data.Diagnostics...)

		a.log.Info("Loaded source",
			slog.String("source", id),
			slog.String("sub_table", data.SubTable),
			slog.Int("rows", data.Rows),
			slog.Int("prices", len(data.Stats)),
			slog.Int("invalid_rows", data.invalidRows()))
	}

	res.Percentages = combined.Percentages()
	res.Buckets = BucketPercentages(res.Percentages)
	return res
}

// LoadSource fetches the first sub-table of id whose schema matches, then
// parses and accumulates its rows. Bad rows become diagnostics.
// On error the returned SourceData only carries the sub-tables that were rejected.
func (a *Aggregator) LoadSource(ctx context.Context, id string) (*SourceData, error) {
	table, cols, skipped, err := a.probe(ctx, id)
	if err != nil {
		return &SourceData{ID: id, Diagnostics: skipped}, NewFetchError(id, err)
	}

	data := &SourceData{
		ID:          id,
		SubTable:    table.Name,
		Stats:       make(PriceStatsMap),
		Diagnostics: skipped,
	}

	for _, r := range parser.Normalize(table, cols) {
		switch r.Status {
		case parser.RowEmpty:
			data.Blank++
			continue
		case parser.RowInvalid:
			data.Diagnostics = append(data.Diagnostics, a.rowDiagnostic(id, table.Name, r.Index, r.Err))
			continue
		}

		wins, losses, err := parser.ParseRecord(r.Row.Record)
		if err != nil {
			data.Diagnostics = append(data.Diagnostics, a.rowDiagnostic(id, table.Name, r.Index, err))
			continue
		}
		data.Stats.Add(r.Row.Price, wins, wins+losses)
		data.Rows++
	}

	for _, price := range data.Stats.Prices() {
		if pct, ok := data.Stats[price].Percentage(); ok {
			a.log.Debug("Source price", slog.String("source", id), slog.Int("price", price), slog.Float64("percentage", pct))
		}
	}
	return data, nil
}

// probe tries the schema's sub-tables in order until one has the required columns.
// Sub-tables that were read but did not match are returned as schema diagnostics.
func (a *Aggregator) probe(ctx context.Context, id string) (*models.Table, parser.Columns, []models.Diagnostic, error) {
	candidates := a.opts.Schema.SubTables
	if len(candidates) == 0 {
		candidates = []string{""}
	}

	var (
		lastErr error
		skipped []models.Diagnostic
	)
	for _, name := range candidates {
		table, err := a.fetcher.Fetch(ctx, id, name)
		if err != nil {
			a.log.Warn("Cannot access sub-table",
				slog.String("source", id),
				slog.String("sub_table", name),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}
		if table.Name == "" {
			table.Name = name
		}

		cols, err := a.opts.Schema.Resolve(table)
		if err != nil {
			a.log.Warn("Sub-table schema not recognized",
				slog.String("source", id),
				slog.String("sub_table", name),
				slog.String("error", err.Error()))
			skipped = append(skipped, models.Diagnostic{
				Source:   id,
				SubTable: name,
				Kind:     models.KindSchema,
				Err:      err,
			})
			lastErr = err
			continue
		}
		return table, cols, skipped, nil
	}
	return nil, parser.Columns{}, skipped, fmt.Errorf("%w (tried %d): %w", ErrNoSchema, len(candidates), lastErr)
}

func (a *Aggregator) rowDiagnostic(id, subTable string, row int, err error) models.Diagnostic {
	a.log.Warn("Skipping row",
		slog.String("source", id),
		slog.String("sub_table", subTable),
		slog.Int("row", row),
		slog.String("kind", string(models.KindFormat)),
		slog.String("error", err.Error()))
	return models.Diagnostic{
		Source:   id,
		SubTable: subTable,
		Row:      row,
		Kind:     models.KindFormat,
		Err:      err,
	}
}
