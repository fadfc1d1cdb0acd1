package viz

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bwong44/FogSonification/internal/domain"
)

func TestRender_WritesPNG(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	table := domain.CleanedTable{}
	for h := 0; h < 24; h++ {
		table.Entries = append(table.Entries, domain.Entry{
			Row: domain.Row{
				Timestamp:  start.Add(time.Duration(h) * time.Hour),
				CloudCover: float64(h * 4),
			},
			Solar: domain.SolarSample{
				Phase:   float64(h)/12 - 1,
				Daytime: h >= 6 && h < 20,
				Sunrise: h == 6,
				Sunset:  h == 20,
			},
		})
	}

	var buf bytes.Buffer
	err := Render(&buf, table, domain.Composition{Duration: 300}, 6)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "output is not a PNG")
}

func TestRender_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, domain.CleanedTable{}, domain.Composition{}, 6)
	assert.ErrorContains(t, err, "empty table")
	assert.Zero(t, buf.Len())
}
