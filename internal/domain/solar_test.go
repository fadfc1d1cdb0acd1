package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedConfig() SolarConfig {
	return SolarConfig{
		DayStart:  6,
		DayEnd:    20,
		Tolerance: 30 * time.Minute,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 15, hour, minute, 0, 0, time.UTC)
}

func TestDeriveSolarSample_PhaseBounds(t *testing.T) {
	cfg := fixedConfig()

	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 17, 30, 59} {
			s := DeriveSolarSample(at(hour, minute), time.Time{}, time.Time{}, cfg)
			assert.GreaterOrEqual(t, s.Phase, -1.0, "hour %d:%02d", hour, minute)
			assert.LessOrEqual(t, s.Phase, 1.0, "hour %d:%02d", hour, minute)
		}
	}

	// Half-cycle boundaries sit at zero.
	assert.InDelta(t, 0, DeriveSolarSample(at(6, 0), time.Time{}, time.Time{}, cfg).Phase, 1e-9)
	assert.InDelta(t, 0, DeriveSolarSample(at(20, 0), time.Time{}, time.Time{}, cfg).Phase, 1e-9)
}

func TestDeriveSolarSample_MiddayPeak(t *testing.T) {
	cfg := fixedConfig()

	early := DeriveSolarSample(at(5, 0), time.Time{}, time.Time{}, cfg)
	noon := DeriveSolarSample(at(12, 0), time.Time{}, time.Time{}, cfg)
	late := DeriveSolarSample(at(19, 0), time.Time{}, time.Time{}, cfg)

	assert.Greater(t, noon.Phase, 0.9)
	assert.Greater(t, noon.Phase, late.Phase)
	assert.Greater(t, noon.Phase, early.Phase)

	// 19:00 is near the end of the window, 5:00 is in the night half.
	assert.InDelta(t, 0, late.Phase, 0.3)
	assert.Negative(t, early.Phase)
}

func TestDeriveSolarSample_EventTolerance(t *testing.T) {
	cfg := fixedConfig()

	t.Run("exactly at tolerance boundary", func(t *testing.T) {
		s := DeriveSolarSample(at(5, 30), time.Time{}, time.Time{}, cfg)
		assert.True(t, s.Sunrise)
	})

	t.Run("one minute past tolerance", func(t *testing.T) {
		s := DeriveSolarSample(at(5, 29), time.Time{}, time.Time{}, cfg)
		assert.False(t, s.Sunrise)
	})

	t.Run("symmetric after the event", func(t *testing.T) {
		assert.True(t, DeriveSolarSample(at(6, 30), time.Time{}, time.Time{}, cfg).Sunrise)
		assert.False(t, DeriveSolarSample(at(6, 31), time.Time{}, time.Time{}, cfg).Sunrise)
	})

	t.Run("sunset window mirrors sunrise", func(t *testing.T) {
		assert.True(t, DeriveSolarSample(at(19, 30), time.Time{}, time.Time{}, cfg).Sunset)
		assert.False(t, DeriveSolarSample(at(19, 29), time.Time{}, time.Time{}, cfg).Sunset)
		assert.True(t, DeriveSolarSample(at(20, 30), time.Time{}, time.Time{}, cfg).Sunset)
	})

	t.Run("sub-hour rows in the same window both flag", func(t *testing.T) {
		a := DeriveSolarSample(at(5, 45), time.Time{}, time.Time{}, cfg)
		b := DeriveSolarSample(at(6, 15), time.Time{}, time.Time{}, cfg)
		assert.True(t, a.Sunrise)
		assert.True(t, b.Sunrise)
	})
}

func TestDeriveSolarSample_EmbeddedWindow(t *testing.T) {
	cfg := fixedConfig()
	cfg.UseSolar = true

	sunrise := at(7, 12)
	sunset := at(17, 48)

	s := DeriveSolarSample(at(7, 0), sunrise, sunset, cfg)
	assert.True(t, s.Sunrise, "07:00 is within 30m of a 07:12 sunrise")

	noonish := DeriveSolarSample(at(12, 30), sunrise, sunset, cfg)
	assert.Greater(t, noonish.Phase, 0.99, "12:30 is the midpoint of 07:12-17:48")

	t.Run("missing embedded fields fall back to configured hours", func(t *testing.T) {
		s := DeriveSolarSample(at(5, 30), time.Time{}, time.Time{}, cfg)
		assert.True(t, s.Sunrise)
	})
}

func TestDeriveSolarSample_EmbeddedTimesIgnoredWhenDisabled(t *testing.T) {
	cfg := fixedConfig() // UseSolar off

	sunrise := at(7, 12)
	sunset := at(17, 48)

	// With the flag off the fallback sunrise is 06:00, an hour away from
	// 07:00, so the embedded 07:12 must not flag it.
	s := DeriveSolarSample(at(7, 0), sunrise, sunset, cfg)
	assert.False(t, s.Sunrise)

	// The configured boundaries still flag normally.
	assert.True(t, DeriveSolarSample(at(6, 0), sunrise, sunset, cfg).Sunrise)
	assert.True(t, DeriveSolarSample(at(20, 0), sunrise, sunset, cfg).Sunset)
	assert.False(t, DeriveSolarSample(at(17, 48), sunrise, sunset, cfg).Sunset)

	// Phase follows the configured window, not the embedded one.
	mid := DeriveSolarSample(at(13, 0), sunrise, sunset, cfg)
	assert.InDelta(t, 1, mid.Phase, 1e-9, "13:00 is the midpoint of 06:00-20:00")
}

func TestDeriveSolarSample_Daytime(t *testing.T) {
	cfg := fixedConfig()

	assert.True(t, DeriveSolarSample(at(6, 0), time.Time{}, time.Time{}, cfg).Daytime)
	assert.True(t, DeriveSolarSample(at(19, 59), time.Time{}, time.Time{}, cfg).Daytime)
	assert.False(t, DeriveSolarSample(at(20, 0), time.Time{}, time.Time{}, cfg).Daytime)
	assert.False(t, DeriveSolarSample(at(3, 0), time.Time{}, time.Time{}, cfg).Daytime)
}

func TestSolarNoonOffset(t *testing.T) {
	// Equation of time alone stays within about +-17 minutes.
	for doy := 1; doy <= 366; doy++ {
		offset := SolarNoonOffset(doy, timezoneMeridian)
		require.LessOrEqual(t, math.Abs(offset), 18.0, "day %d", doy)
	}

	// Santa Cruz sits 2.02 degrees west of the PST meridian: +8.08 minutes.
	delta := SolarNoonOffset(100, -122.02) - SolarNoonOffset(100, -120)
	assert.InDelta(t, -8.08, delta, 0.01)
}

func TestRealisticTimingShiftsWindow(t *testing.T) {
	base := fixedConfig()
	realistic := base
	realistic.RealisticTiming = true
	realistic.Longitude = -122.02

	// Early November has a strongly positive equation of time; combined with
	// the westward longitude offset the window shifts by several minutes, so
	// the phase at a fixed instant moves.
	ts := time.Date(2024, 11, 3, 12, 0, 0, 0, time.UTC)
	fixed := DeriveSolarSample(ts, time.Time{}, time.Time{}, base)
	shifted := DeriveSolarSample(ts, time.Time{}, time.Time{}, realistic)
	assert.NotEqual(t, fixed.Phase, shifted.Phase)
}
