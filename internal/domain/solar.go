package domain

import (
	"math"
	"time"
)

// timezoneMeridian is the reference meridian of the export's local timezone,
// used for the longitude correction of the solar-noon offset. PST: -120.
const timezoneMeridian = -120.0

// SolarConfig carries the options the solar model depends on.
type SolarConfig struct {
	DayStart        float64 // hour the configured day window opens, 0-24
	DayEnd          float64 // hour the configured day window closes, 0-24
	Tolerance       time.Duration
	UseSolar        bool    // prefer embedded per-row sunrise/sunset fields
	RealisticTiming bool    // apply seasonal solar-noon offset to the window
	Longitude       float64 // degrees, for the longitude correction
}

// SolarSample is the per-row output of the solar model. Never mutated after
// creation.
type SolarSample struct {
	Phase   float64 // unit day/night phase in [-1, 1], peaks at solar noon
	Daytime bool    // true when the hour falls inside the configured window
	Sunrise bool    // within tolerance of the day's sunrise
	Sunset  bool    // within tolerance of the day's sunset
}

// DayWindow is the effective daylight window for one row, in decimal hours.
type DayWindow struct {
	Start float64
	End   float64
}

// SolarNoonOffset returns the solar-noon offset from 12:00 in minutes for a
// given day of year: the equation of time (elliptical orbit plus axial tilt)
// plus 4 minutes per degree of longitude away from the timezone meridian.
func SolarNoonOffset(dayOfYear int, longitude float64) float64 {
	b := 2 * math.Pi * float64(dayOfYear-81) / 365
	eot := 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
	return eot + 4*(longitude-timezoneMeridian)
}

// EffectiveDayWindow resolves the daylight window for one row. Embedded
// sunrise/sunset timestamps win when present and enabled; otherwise the
// configured hours are used, shifted by the seasonal solar-noon offset when
// realistic timing is on. Missing embedded fields always degrade to the
// configured fallback, never error.
func EffectiveDayWindow(ts time.Time, sunrise, sunset time.Time, cfg SolarConfig) DayWindow {
	if cfg.UseSolar && !sunrise.IsZero() && !sunset.IsZero() {
		return DayWindow{Start: hourOfDay(sunrise), End: hourOfDay(sunset)}
	}
	w := DayWindow{Start: cfg.DayStart, End: cfg.DayEnd}
	if cfg.RealisticTiming {
		shift := SolarNoonOffset(ts.YearDay(), cfg.Longitude) / 60
		w.Start += shift
		w.End += shift
	}
	return w
}

// DeriveSolarSample computes the solar sample for one row. Timestamps are
// assumed valid; malformed rows never reach the model.
func DeriveSolarSample(ts time.Time, sunrise, sunset time.Time, cfg SolarConfig) SolarSample {
	// Embedded times only count when enabled; otherwise the window and the
	// events both come from the configured hours.
	if !cfg.UseSolar {
		sunrise, sunset = time.Time{}, time.Time{}
	}

	w := EffectiveDayWindow(ts, sunrise, sunset, cfg)
	h := hourOfDay(ts)

	return SolarSample{
		Phase:   dayNightPhase(h, w),
		Daytime: h >= cfg.DayStart && h < cfg.DayEnd,
		Sunrise: nearEvent(ts, sunrise, w.Start, cfg.Tolerance),
		Sunset:  nearEvent(ts, sunset, w.End, cfg.Tolerance),
	}
}

// dayNightPhase maps an hour of day onto [-1, 1]: a positive sine half-cycle
// across the daylight window, the mirrored negative half-cycle across the
// night, zero at both window boundaries.
func dayNightPhase(h float64, w DayWindow) float64 {
	dayLen := w.End - w.Start
	if dayLen <= 0 || dayLen >= 24 {
		return 0
	}

	phase := 0.0
	if h >= w.Start && h <= w.End {
		phase = math.Sin(math.Pi * (h - w.Start) / dayLen)
	} else {
		// Hours since the window closed, wrapping midnight.
		since := h - w.End
		if since < 0 {
			since += 24
		}
		phase = -math.Sin(math.Pi * since / (24 - dayLen))
	}

	return math.Max(-1, math.Min(1, phase))
}

// nearEvent reports whether ts falls within tolerance of the reference solar
// event. The embedded event timestamp is used when present; otherwise the
// effective window boundary on the row's own date stands in for it.
func nearEvent(ts, event time.Time, fallbackHour float64, tolerance time.Duration) bool {
	if event.IsZero() {
		event = atHour(ts, fallbackHour)
	}
	diff := ts.Sub(event)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// hourOfDay returns the decimal hour, e.g. 13:30 -> 13.5.
func hourOfDay(ts time.Time) float64 {
	return float64(ts.Hour()) + float64(ts.Minute())/60 + float64(ts.Second())/3600
}

// atHour returns the instant at the given decimal hour on ts's date.
func atHour(ts time.Time, hour float64) time.Time {
	midnight := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	return midnight.Add(time.Duration(hour * float64(time.Hour)))
}
