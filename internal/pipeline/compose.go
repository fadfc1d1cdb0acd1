package pipeline

import (
	"log/slog"

	"github.com/Bwong44/FogSonification/internal/domain"
	"github.com/Bwong44/FogSonification/internal/observability"
)

// Per-channel note lengths as fractions of the inter-row spacing. Event
// notes ring past the spacing on purpose.
const (
	cloudArticulation  = 0.8
	solarArticulation  = 0.7
	eventsArticulation = 1.2
)

// Quantizer inputs for the sparse events channel: fixed high for sunrise,
// fixed low for sunset. On the 13-pitch tables these land on the third
// degree from the top and the fourth from the bottom.
const (
	sunriseValue = 0.85
	sunsetValue  = 0.25
)

// Composer turns a cleaned table into the three-channel note sequence. It is
// the sole producer of NoteEvents; the table is read-only input.
type Composer struct {
	timeline Timeline
	cloud    *Quantizer
	solar    *Quantizer
	events   *Quantizer
	bpm      int
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewComposer creates a Composer over a computed timeline.
func NewComposer(timeline Timeline, bpm int, logger *slog.Logger, metrics *observability.Metrics) *Composer {
	return &Composer{
		timeline: timeline,
		cloud:    NewQuantizer(domain.MajorPentatonic),
		solar:    NewQuantizer(domain.MinorPentatonic),
		events:   NewQuantizer(domain.HarmonicMinor),
		bpm:      bpm,
		logger:   logger,
		metrics:  metrics,
	}
}

// Compose walks the table once per row, emitting one note per row on the
// cloud and solar channels and an event note only on flagged rows. Within
// each channel the output is ordered by start time because the timeline is
// monotonic in the row index. An empty table yields an empty composition.
func (c *Composer) Compose(table domain.CleanedTable) domain.Composition {
	comp := domain.Composition{
		Duration: c.timeline.Duration,
		Density:  c.timeline.Density,
		BPM:      c.bpm,
	}
	if table.Len() == 0 {
		return comp
	}

	comp.Channels[domain.ChannelCloud-1] = make([]domain.NoteEvent, 0, table.Len())
	comp.Channels[domain.ChannelSolar-1] = make([]domain.NoteEvent, 0, table.Len())

	for i, entry := range table.Entries {
		start := c.timeline.StartTime(i)

		c.add(&comp, c.cloudNote(entry.Row, start))
		c.add(&comp, c.solarNote(entry.Solar, start))
		if note, ok := c.eventNote(entry.Solar, start); ok {
			c.add(&comp, note)
		}
	}

	c.logger.Info("composition complete",
		"notes", comp.NoteCount(),
		"duration_seconds", comp.Duration,
		"density_rows_per_second", comp.Density,
	)

	return comp
}

func (c *Composer) add(comp *domain.Composition, note domain.NoteEvent) {
	comp.Channels[note.Channel-1] = append(comp.Channels[note.Channel-1], note)
	c.metrics.NotesEmitted.WithLabelValues(channelLabel(note.Channel)).Inc()
}

// cloudNote inverts coverage so clearer skies map to higher pitches. A
// missing coverage value plays as a clear sky.
func (c *Composer) cloudNote(row domain.Row, start float64) domain.NoteEvent {
	value := 1 - row.CloudCover/100
	return domain.NoteEvent{
		Channel:  domain.ChannelCloud,
		Pitch:    c.cloud.Quantize(value),
		Start:    start,
		Duration: c.timeline.NoteDuration(cloudArticulation),
		Velocity: 50 + int(value*50),
	}
}

func (c *Composer) solarNote(sample domain.SolarSample, start float64) domain.NoteEvent {
	value := (sample.Phase + 1) / 2
	return domain.NoteEvent{
		Channel:  domain.ChannelSolar,
		Pitch:    c.solar.Quantize(value),
		Start:    start,
		Duration: c.timeline.NoteDuration(solarArticulation),
		Velocity: 40 + int(value*40),
	}
}

// eventNote emits only on flagged rows; silence, not a rest, is the correct
// output otherwise. Sunrise wins when both flags are set in one row.
func (c *Composer) eventNote(sample domain.SolarSample, start float64) (domain.NoteEvent, bool) {
	value, velocity := 0.0, 0
	switch {
	case sample.Sunrise:
		value, velocity = sunriseValue, 100
	case sample.Sunset:
		value, velocity = sunsetValue, 80
	default:
		return domain.NoteEvent{}, false
	}

	return domain.NoteEvent{
		Channel:  domain.ChannelEvents,
		Pitch:    c.events.Quantize(value),
		Start:    start,
		Duration: c.timeline.NoteDuration(eventsArticulation),
		Velocity: velocity,
	}, true
}

func channelLabel(ch domain.Channel) string {
	switch ch {
	case domain.ChannelCloud:
		return "cloud"
	case domain.ChannelSolar:
		return "solar"
	default:
		return "events"
	}
}
