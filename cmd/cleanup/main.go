// Command cleanup runs only the normalization stage: it reads a raw hourly
// weather CSV export and writes the cleaned table with the derived solar
// columns, without composing any notes.
//
// Usage:
//
//	go run ./cmd/cleanup -input data.csv -output data_clean.csv -v
//	go run ./cmd/cleanup -input data.csv -skip-lines 5 -tolerance 15
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Bwong44/FogSonification/internal/adapter/csvio"
	"github.com/Bwong44/FogSonification/internal/config"
	"github.com/Bwong44/FogSonification/internal/observability"
	"github.com/Bwong44/FogSonification/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.CommandLine
	cfg := config.Register(fs)
	flag.Parse()
	cfg.Finish()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	start := time.Now()

	src, err := readSource(cfg, logger)
	if err != nil {
		return err
	}

	normalizer := pipeline.NewNormalizer(cfg.SolarConfig(), logger, metrics)
	table, report, err := normalizer.Normalize(src.Rows, src.ExtraHeader)
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.CleanedPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.CleanedPath, err)
	}
	if err := csvio.WriteCleanedTable(f, table, cfg.SineRange); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	metrics.RunDuration.Observe(time.Since(start).Seconds())
	if cfg.MetricsPushURL != "" {
		if err := metrics.Push(cfg.MetricsPushURL); err != nil {
			logger.Warn("metrics push failed", "url", cfg.MetricsPushURL, "error", err)
		}
	}

	printSummary(cfg, report)
	return nil
}

func readSource(cfg *config.Config, logger *slog.Logger) (*csvio.Source, error) {
	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return csvio.Read(f, cfg.SkipLines, logger)
}

func printSummary(cfg *config.Config, report *pipeline.Report) {
	fmt.Println("Cleanup complete!")
	fmt.Printf("Output file: %s\n", cfg.CleanedPath)

	if !cfg.Verbose {
		return
	}

	total := report.DayRows + report.NightRows
	fmt.Println("\nSummary:")
	fmt.Printf("  Rows read:      %d\n", report.RowsRead)
	fmt.Printf("  Rows processed: %d\n", report.RowsProcessed)
	fmt.Printf("  Rows malformed: %d\n", report.RowsMalformed)
	if total > 0 {
		fmt.Printf("  Day cycle:      %d (%.1f%%)\n", report.DayRows, 100*float64(report.DayRows)/float64(total))
		fmt.Printf("  Night cycle:    %d (%.1f%%)\n", report.NightRows, 100*float64(report.NightRows)/float64(total))
	}
	fmt.Printf("  Sunrise events: %d\n", report.SunriseEvents)
	fmt.Printf("  Sunset events:  %d\n", report.SunsetEvents)
}
