// Command sonify converts an hourly weather CSV export into a cleaned table,
// a three-track MIDI note sequence, and a PNG visualization, in one run.
//
// Usage:
//
//	go run ./cmd/sonify -input data.csv -auto-duration -v
//	go run ./cmd/sonify -input data.csv -bpm 80 -duration 240 -use-solar
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Bwong44/FogSonification/internal/adapter/csvio"
	"github.com/Bwong44/FogSonification/internal/adapter/midifile"
	"github.com/Bwong44/FogSonification/internal/adapter/viz"
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
	cfg.RegisterComposition(fs)
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

	timeline := pipeline.NewTimeline(table.Len(), float64(cfg.DurationSeconds), cfg.AutoDuration)
	composer := pipeline.NewComposer(timeline, cfg.BPM, logger, metrics)
	comp := composer.Compose(table)
	report.Duration = comp.Duration
	report.Density = comp.Density
	report.NotesComposed = comp.NoteCount()

	if err := writeFile(cfg.CleanedPath, func(f *os.File) error {
		return csvio.WriteCleanedTable(f, table, cfg.SineRange)
	}); err != nil {
		return err
	}
	if err := writeFile(cfg.MIDIPath, func(f *os.File) error {
		return midifile.Write(f, comp)
	}); err != nil {
		return err
	}
	if err := writeFile(cfg.VizPath, func(f *os.File) error {
		return viz.Render(f, table, comp, cfg.SineRange)
	}); err != nil {
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

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(cfg *config.Config, report *pipeline.Report) {
	fmt.Println("Sonification complete!")
	fmt.Printf("Cleaned table: %s\n", cfg.CleanedPath)
	fmt.Printf("MIDI file:     %s\n", cfg.MIDIPath)
	fmt.Printf("Visualization: %s\n", cfg.VizPath)

	if !cfg.Verbose {
		return
	}

	fmt.Println("\nSummary:")
	fmt.Printf("  Rows read:      %d\n", report.RowsRead)
	fmt.Printf("  Rows processed: %d\n", report.RowsProcessed)
	fmt.Printf("  Rows malformed: %d\n", report.RowsMalformed)
	fmt.Printf("  Day/night:      %d/%d\n", report.DayRows, report.NightRows)
	fmt.Printf("  Sunrise events: %d\n", report.SunriseEvents)
	fmt.Printf("  Sunset events:  %d\n", report.SunsetEvents)
	fmt.Printf("  Notes composed: %d\n", report.NotesComposed)
	fmt.Printf("  Duration:       %.1f s at %d BPM\n", report.Duration, cfg.BPM)
	fmt.Printf("  Density:        %.2f rows/s\n", report.Density)
}
