// Package sources provides the data sources draft price tables are read from.
package sources

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"github.com/ukaji3/draftprice-go/pkg/draftprice/parser"
	"golang.org/x/time/rate"
)

// DefaultURLTemplate is the Google Sheets CSV export endpoint.
// {id} and {sheet} are replaced with the escaped spreadsheet id and sheet name.
const DefaultURLTemplate = "https://docs.google.com/spreadsheets/d/{id}/gviz/tq?tqx=out:csv&sheet={sheet}"

// GvizConfig configures a GvizFetcher.
type GvizConfig struct {
	URLTemplate string
	Timeout     time.Duration
	// RequestsPerSecond paces requests; zero or less disables pacing.
	RequestsPerSecond float64
	Burst             int
	UserAgent         string
}

// DefaultGvizConfig returns the default fetch settings.
func DefaultGvizConfig() GvizConfig {
	return GvizConfig{
		URLTemplate:       DefaultURLTemplate,
		Timeout:           30 * time.Second,
		RequestsPerSecond: 2,
		Burst:             1,
		UserAgent:         "draftprice-go/1.0",
	}
}

// GvizFetcher reads sub-tables of public Google spreadsheets as CSV.
type GvizFetcher struct {
	cfg     GvizConfig
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewGvizFetcher creates a fetcher. A nil client gets one with cfg.Timeout.
func NewGvizFetcher(cfg GvizConfig, client *http.Client, logger *slog.Logger) *GvizFetcher {
	if cfg.URLTemplate == "" {
		cfg.URLTemplate = DefaultURLTemplate
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &GvizFetcher{
		cfg:     cfg,
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		log:     logger,
	}
}

// URL returns the export URL for a sheet of a spreadsheet.
// The sheet name lands in the query string and is escaped as a query value.
func (g *GvizFetcher) URL(sheetID, subTable string) string {
	return strings.NewReplacer(
		"{id}", url.PathEscape(sheetID),
		"{sheet}", url.QueryEscape(subTable),
	).Replace(g.cfg.URLTemplate)
}

// Fetch downloads one sheet and parses it as a header plus rows.
func (g *GvizFetcher) Fetch(ctx context.Context, sheetID, subTable string) (*models.Table, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := g.URL(sheetID, subTable)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if g.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", g.cfg.UserAgent)
	}

	g.log.Debug("Fetching sub-table", slog.String("source", sheetID), slog.String("sub_table", subTable), slog.String("url", u))
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", subTable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("get %s: %s (%s)", subTable, resp.Status, strings.TrimSpace(string(b)))
	}
	// Private or deleted spreadsheets answer with a sign-in page.
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "text/html") {
		return nil, fmt.Errorf("get %s: expected CSV, got %s", subTable, ct)
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return parser.NewTable(subTable, records), nil
}
