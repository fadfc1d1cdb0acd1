package pipeline_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bwong44/FogSonification/internal/domain"
	"github.com/Bwong44/FogSonification/internal/observability"
	"github.com/Bwong44/FogSonification/internal/pipeline"
)

// buildTable normalizes a small fixture so compose tests run against real
// solar samples rather than hand-built ones.
func buildTable(t *testing.T, raws []domain.RawRow) domain.CleanedTable {
	t.Helper()
	n := pipeline.NewNormalizer(testSolarConfig(), testLogger(), observability.NewMetrics())
	table, _, err := n.Normalize(raws, nil)
	require.NoError(t, err)
	return table
}

func hourlyRows(start time.Time, n int, cloud string) []domain.RawRow {
	raws := make([]domain.RawRow, n)
	for i := range raws {
		raws[i] = domain.RawRow{
			Line:       i + 4,
			Timestamp:  start.Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04"),
			CloudCover: cloud,
		}
	}
	return raws
}

func newComposer(rowCount int, auto bool) *pipeline.Composer {
	tl := pipeline.NewTimeline(rowCount, 300, auto)
	return pipeline.NewComposer(tl, 120, testLogger(), observability.NewMetrics())
}

func TestCompose_ChannelShapes(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	table := buildTable(t, hourlyRows(start, 24, "50"))

	comp := newComposer(table.Len(), false).Compose(table)

	// Dense channels emit one note per row; the events channel is sparse.
	assert.Len(t, comp.Channels[domain.ChannelCloud-1], 24)
	assert.Len(t, comp.Channels[domain.ChannelSolar-1], 24)
	assert.Len(t, comp.Channels[domain.ChannelEvents-1], 2, "one sunrise and one sunset in a day")

	for _, ch := range comp.Channels {
		for i := 1; i < len(ch); i++ {
			assert.LessOrEqual(t, ch[i-1].Start, ch[i].Start, "channel output is time-ordered")
		}
	}
	for _, ch := range comp.Channels {
		for _, note := range ch {
			assert.Positive(t, note.Duration)
			assert.LessOrEqual(t, note.Start, comp.Duration)
		}
	}
}

func TestCompose_CloudExtremes(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("clear sky quantizes to the highest degree", func(t *testing.T) {
		table := buildTable(t, hourlyRows(start, 3, "0"))
		comp := newComposer(3, false).Compose(table)

		for _, note := range comp.Channels[domain.ChannelCloud-1] {
			assert.Equal(t, 88, note.Pitch)
			assert.Equal(t, 100, note.Velocity)
		}
	})

	t.Run("overcast quantizes to the lowest degree", func(t *testing.T) {
		table := buildTable(t, hourlyRows(start, 3, "100"))
		comp := newComposer(3, false).Compose(table)

		for _, note := range comp.Channels[domain.ChannelCloud-1] {
			assert.Equal(t, 60, note.Pitch)
			assert.Equal(t, 50, note.Velocity)
		}
	})

	t.Run("missing coverage plays as clear sky", func(t *testing.T) {
		table := buildTable(t, hourlyRows(start, 3, ""))
		comp := newComposer(3, false).Compose(table)
		assert.Equal(t, 88, comp.Channels[domain.ChannelCloud-1][0].Pitch)
	})
}

func TestCompose_EventNotes(t *testing.T) {
	table := buildTable(t, []domain.RawRow{
		{Line: 4, Timestamp: "2024-01-15T06:00", CloudCover: "10"}, // sunrise
		{Line: 5, Timestamp: "2024-01-15T12:00", CloudCover: "10"},
		{Line: 6, Timestamp: "2024-01-15T20:00", CloudCover: "10"}, // sunset
	})

	comp := newComposer(3, false).Compose(table)
	events := comp.Channels[domain.ChannelEvents-1]
	require.Len(t, events, 2)

	assert.Equal(t, 56, events[0].Pitch, "sunrise rings high in the scale")
	assert.Equal(t, 100, events[0].Velocity)
	assert.Equal(t, 42, events[1].Pitch, "sunset sits low in the scale")
	assert.Equal(t, 80, events[1].Velocity)
}

func TestCompose_AllPitchesStayInScale(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	raws := make([]domain.RawRow, 0, 96)
	for i := 0; i < 96; i++ {
		cloud := []string{"0", "33", "67", "100"}[i%4]
		raws = append(raws, domain.RawRow{
			Line:       i + 4,
			Timestamp:  start.Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04"),
			CloudCover: cloud,
		})
	}
	table := buildTable(t, raws)
	comp := newComposer(table.Len(), true).Compose(table)

	scales := map[domain.Channel]domain.Scale{
		domain.ChannelCloud:  domain.MajorPentatonic,
		domain.ChannelSolar:  domain.MinorPentatonic,
		domain.ChannelEvents: domain.HarmonicMinor,
	}
	for ch, scale := range scales {
		degrees := map[int]bool{}
		for _, d := range scale.Degrees {
			degrees[d] = true
		}
		for _, note := range comp.Channels[ch-1] {
			offset := ((note.Pitch-scale.Tonic)%12 + 12) % 12
			assert.True(t, degrees[offset], "channel %d pitch %d escapes its scale", ch, note.Pitch)
		}
	}
}

func TestCompose_Deterministic(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	table := buildTable(t, hourlyRows(start, 48, "37"))

	a := newComposer(48, true).Compose(table)
	b := newComposer(48, true).Compose(table)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same input must produce identical output (-a +b):\n%s", diff)
	}
}

func TestCompose_EmptyTable(t *testing.T) {
	comp := newComposer(0, false).Compose(domain.CleanedTable{})
	assert.Zero(t, comp.NoteCount())
}
