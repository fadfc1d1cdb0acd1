package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the Prometheus counters and histograms for one sonification
// run. The registry is owned by the struct so every run (and every test)
// gets a fresh set, and so the whole batch can be pushed at once.
type Metrics struct {
	registry *prometheus.Registry

	RowsRead      prometheus.Counter
	RowsMalformed prometheus.Counter
	SolarEvents   *prometheus.CounterVec // label: type={sunrise,sunset}
	NotesEmitted  *prometheus.CounterVec // label: channel={cloud,solar,events}
	RunDuration   prometheus.Histogram
}

// NewMetrics creates and registers all run metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fog_sonify",
			Name:      "rows_read_total",
			Help:      "Total data rows read from the hourly section.",
		}),
		RowsMalformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fog_sonify",
			Name:      "rows_malformed_total",
			Help:      "Rows rejected during normalization.",
		}),
		SolarEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fog_sonify",
			Name:      "solar_events_total",
			Help:      "Sunrise/sunset events detected, by type.",
		}, []string{"type"}),
		NotesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fog_sonify",
			Name:      "notes_emitted_total",
			Help:      "Note events composed, by channel.",
		}, []string{"channel"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fog_sonify",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a complete conversion run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	m.registry.MustRegister(
		m.RowsRead,
		m.RowsMalformed,
		m.SolarEvents,
		m.NotesEmitted,
		m.RunDuration,
	)

	return m
}

// Push sends the run's metrics to a Prometheus Pushgateway. Batch runs have
// no scrape surface, so this is the one exposure path; callers skip it when
// no URL is configured.
func (m *Metrics) Push(url string) error {
	return push.New(url, "fog_sonification").Gatherer(m.registry).Push()
}
