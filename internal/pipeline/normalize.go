package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Bwong44/FogSonification/internal/domain"
	"github.com/Bwong44/FogSonification/internal/observability"
)

// Report accumulates the per-run counts the CLI prints in its verbose
// summary. The normalizer and composer fill it in; nothing here formats or
// prints.
type Report struct {
	RowsRead      int
	RowsMalformed int
	RowsProcessed int
	SunriseEvents int
	SunsetEvents  int
	DayRows       int
	NightRows     int
	ProcessedAt   time.Time

	// Filled in by the compose stage.
	Duration      float64 // seconds
	Density       float64 // rows per second
	NotesComposed int
}

// Normalizer cleans raw rows into a CleanedTable, deriving a solar sample
// for each surviving row.
type Normalizer struct {
	cfg     domain.SolarConfig
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewNormalizer creates a Normalizer with the given solar options and
// observability.
func NewNormalizer(cfg domain.SolarConfig, logger *slog.Logger, metrics *observability.Metrics) *Normalizer {
	return &Normalizer{cfg: cfg, logger: logger, metrics: metrics}
}

// Normalize validates each raw row, attaches its solar sample, and returns
// the cleaned table in input order. Malformed rows are skipped and counted,
// never fatal. A row whose timestamp repeats the previous row's is rejected
// the same way (the table admits no duplicate timestamps). Zero surviving
// rows is reported as ErrEmptyInput.
func (n *Normalizer) Normalize(raws []domain.RawRow, extraHeader []string) (domain.CleanedTable, *Report, error) {
	report := &Report{ProcessedAt: domain.Now()}
	entries := make([]domain.Entry, 0, len(raws))

	var prev time.Time
	for _, raw := range raws {
		report.RowsRead++
		n.metrics.RowsRead.Inc()

		row, err := domain.ParseRawRow(raw)
		if err == nil && len(entries) > 0 && row.Timestamp.Equal(prev) {
			err = &domain.MalformedRowError{
				Line:  raw.Line,
				Field: "timestamp",
				Err:   fmt.Errorf("duplicate timestamp %s", row.Timestamp.Format(time.RFC3339)),
			}
		}
		if err != nil {
			var malformed *domain.MalformedRowError
			if !errors.As(err, &malformed) {
				return domain.CleanedTable{}, report, err
			}
			n.logger.Warn("skipping malformed row",
				"line", malformed.Line, "field", malformed.Field, "error", malformed.Err)
			report.RowsMalformed++
			n.metrics.RowsMalformed.Inc()
			continue
		}

		sample := domain.DeriveSolarSample(row.Timestamp, row.Sunrise, row.Sunset, n.cfg)
		n.count(report, sample)

		entries = append(entries, domain.Entry{Row: row, Solar: sample})
		prev = row.Timestamp
	}

	report.RowsProcessed = len(entries)
	if len(entries) == 0 {
		return domain.CleanedTable{}, report, domain.ErrEmptyInput
	}

	n.logger.Info("normalization complete",
		"rows", report.RowsProcessed,
		"malformed", report.RowsMalformed,
		"sunrise_events", report.SunriseEvents,
		"sunset_events", report.SunsetEvents,
	)

	return domain.CleanedTable{
		Entries:     entries,
		ExtraHeader: extraHeader,
		ProcessedAt: report.ProcessedAt,
	}, report, nil
}

func (n *Normalizer) count(report *Report, sample domain.SolarSample) {
	if sample.Sunrise {
		report.SunriseEvents++
		n.metrics.SolarEvents.WithLabelValues("sunrise").Inc()
	}
	if sample.Sunset {
		report.SunsetEvents++
		n.metrics.SolarEvents.WithLabelValues("sunset").Inc()
	}
	if sample.Daytime {
		report.DayRows++
	} else {
		report.NightRows++
	}
}
