// Package main provides the CLI entry point for draftprice.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/draftprice-go/internal/config"
	"github.com/ukaji3/draftprice-go/internal/logging"
	"github.com/ukaji3/draftprice-go/pkg/draftprice"
	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"github.com/ukaji3/draftprice-go/pkg/draftprice/parser"
	"github.com/ukaji3/draftprice-go/pkg/draftprice/report"
	"github.com/ukaji3/draftprice-go/pkg/draftprice/sources"
)

var (
	configPath string
	kind       string
	reportPath string
	title      string
	logLevel   string
	subTables  []string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "draftprice [links.txt]",
		Short: "Average draft win percentage by price range",
		Long: `draftprice reads win/loss records from a list of spreadsheets, merges them
per price and prints the mean win percentage of six fixed price ranges.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().StringVar(&kind, "kind", "", "Source kind: gviz or xlsx (default from config)")
	rootCmd.Flags().StringVarP(&reportPath, "report", "o", "", "Write an xlsx report with bar and scatter charts")
	rootCmd.Flags().StringVar(&title, "title", "Average Win Percentage by Price", "Report and output title")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringArrayVar(&subTables, "sub-table", nil, "Sub-table to probe, repeatable (overrides config)")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if kind != "" {
		cfg.Fetch.Kind = kind
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if len(subTables) > 0 {
		cfg.Schema.SubTables = subTables
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(cfg.Logging, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	links, err := sources.ReadLinks(args[0])
	if err != nil {
		return fmt.Errorf("read links: %w", err)
	}

	fetcher, ids, err := newFetcher(cfg, links, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("Starting aggregation", slog.Int("sources", len(ids)), slog.String("kind", cfg.Fetch.Kind))
	result := draftprice.Aggregate(ctx, fetcher, ids, draftprice.Options{
		Schema: cfg.ParserSchema(),
		Logger: logger,
	})

	failed := result.Failed()
	logger.Info("Aggregation finished",
		slog.Int("sources", len(ids)),
		slog.Int("failed", len(failed)),
		slog.Int("prices", len(result.Percentages)),
		slog.Int("diagnostics", len(result.Diagnostics)))

	if result.Empty() {
		logger.Warn("No source produced any price data; bucket means would all be 0")
		return fmt.Errorf("%w from %d sources (%d failed)", draftprice.ErrEmptyResult, len(ids), len(failed))
	}

	out := cmd.OutOrStdout()
	if err := report.PrintBuckets(out, title, result.Buckets); err != nil {
		return err
	}
	printTrend(out, result, logger)

	if reportPath != "" {
		if err := report.WriteWorkbook(reportPath, title, result.Buckets, result.Points); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", slog.String("path", reportPath))
	}
	return nil
}

func newFetcher(cfg *config.Config, links []string, logger *slog.Logger) (draftprice.Fetcher, []string, error) {
	switch strings.ToLower(cfg.Fetch.Kind) {
	case config.KindXLSX:
		var clip *models.CellRange
		if cfg.Schema.Range != "" {
			r, err := parser.ParseRange(cfg.Schema.Range)
			if err != nil {
				return nil, nil, err
			}
			clip = r
		}
		return sources.NewWorkbookFetcher(clip, logger), links, nil
	default:
		ids := make([]string, 0, len(links))
		for _, link := range links {
			ids = append(ids, sources.ExtractID(link))
		}
		return sources.NewGvizFetcher(cfg.GvizConfig(), nil, logger), ids, nil
	}
}

func printTrend(w io.Writer, result *draftprice.Result, logger *slog.Logger) {
	trend, err := report.FitTrend(result.Points)
	if errors.Is(err, report.ErrTooFewPoints) {
		logger.Debug("Not enough points for a trend line", slog.Int("points", len(result.Points)))
		return
	}
	if err != nil {
		logger.Warn("Trend fit failed", slog.String("error", err.Error()))
		return
	}
	_ = report.PrintTrend(w, trend)
}
