// Package config defines the run options shared by the cleanup and sonify
// commands: CLI flags for the conversion itself, environment variables for
// the operational knobs (logging, metrics push).
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Bwong44/FogSonification/internal/domain"
)

// Option bounds, enforced before any processing starts.
const (
	MinBPM      = 60
	MaxBPM      = 240
	MinDuration = 60
	MaxDuration = 600
)

// RangeError reports a configuration option outside its documented bounds.
// No partial output is produced when one is returned.
type RangeError struct {
	Option string
	Value  string
	Bounds string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("option -%s=%s out of range (%s)", e.Option, e.Value, e.Bounds)
}

// Config holds all settings for one conversion run.
type Config struct {
	InputPath   string
	CleanedPath string // cleaned-table CSV output; derived from input when empty
	MIDIPath    string // note-sequence output; derived when empty
	VizPath     string // visualization output; derived from MIDIPath when empty

	SkipLines        int
	DayStart         int
	DayEnd           int
	SineRange        float64
	ToleranceMinutes int
	UseSolar         bool
	RealisticTiming  bool
	Longitude        float64

	BPM             int
	DurationSeconds int
	AutoDuration    bool

	Verbose bool

	// Environment-driven operational settings.
	LogLevel       string
	LogFormat      string
	MetricsPushURL string

	noRealisticTiming *bool
	composition       bool // composition options registered (sonify only)
}

// Register binds the conversion flags onto the given flag set and returns
// the Config they populate. Call fs.Parse, then Validate.
func Register(fs *flag.FlagSet) *Config {
	cfg := &Config{}

	fs.StringVar(&cfg.InputPath, "input", "", "input CSV file (required)")
	fs.StringVar(&cfg.CleanedPath, "output", "", "cleaned CSV output (default: <input>_cleaned.csv)")
	fs.IntVar(&cfg.SkipLines, "skip-lines", 3, "leading metadata lines to skip")
	fs.IntVar(&cfg.DayStart, "day-start", 6, "hour the day cycle starts (0-23)")
	fs.IntVar(&cfg.DayEnd, "day-end", 20, "hour the day cycle ends (0-23)")
	fs.Float64Var(&cfg.SineRange, "sine-range", 6, "amplitude bound of the serialized solar sine")
	fs.IntVar(&cfg.ToleranceMinutes, "tolerance", 30, "minutes around sunrise/sunset to flag as an event")
	fs.BoolVar(&cfg.UseSolar, "use-solar", false, "use embedded per-day sunrise/sunset data when present")
	noRealistic := fs.Bool("no-realistic-timing", false, "disable seasonal solar-noon timing")
	fs.Float64Var(&cfg.Longitude, "longitude", -122.02, "site longitude for the solar-noon offset")
	fs.BoolVar(&cfg.Verbose, "v", false, "print a detailed run summary")

	cfg.LogLevel = envOrDefault("LOG_LEVEL", "info")
	cfg.LogFormat = envOrDefault("LOG_FORMAT", "json")
	cfg.MetricsPushURL = os.Getenv("METRICS_PUSH_URL")

	// Realistic timing defaults on; the flag only switches it off.
	cfg.RealisticTiming = true
	cfg.noRealisticTiming = noRealistic

	return cfg
}

// RegisterComposition adds the note-sequence options on top of Register.
// Only the sonify command calls it; the cleanup command stops at the
// cleaned table and takes no tempo or duration.
func (c *Config) RegisterComposition(fs *flag.FlagSet) {
	fs.IntVar(&c.BPM, "bpm", 120, "tempo in beats per minute (60-240)")
	fs.IntVar(&c.DurationSeconds, "duration", 300, "fixed output duration in seconds (60-600)")
	fs.BoolVar(&c.AutoDuration, "auto-duration", false, "derive duration from row count to hold note density constant")
	fs.StringVar(&c.MIDIPath, "midi-out", "", "MIDI output file (default: derived from input name)")
	fs.StringVar(&c.VizPath, "viz-out", "", "visualization PNG output (default: derived from MIDI name)")
	c.composition = true
}

// Finish resolves flag interactions after fs.Parse has run.
func (c *Config) Finish() {
	if c.noRealisticTiming != nil && *c.noRealisticTiming {
		c.RealisticTiming = false
	}
}

// Validate checks option bounds and fills derived output paths. It returns a
// RangeError for any out-of-bounds option.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("missing required flag: -input")
	}
	if c.SkipLines < 0 {
		return &RangeError{Option: "skip-lines", Value: fmt.Sprint(c.SkipLines), Bounds: ">= 0"}
	}
	if c.DayStart < 0 || c.DayStart > 23 {
		return &RangeError{Option: "day-start", Value: fmt.Sprint(c.DayStart), Bounds: "0-23"}
	}
	if c.DayEnd < 0 || c.DayEnd > 23 {
		return &RangeError{Option: "day-end", Value: fmt.Sprint(c.DayEnd), Bounds: "0-23"}
	}
	if c.DayStart >= c.DayEnd {
		return &RangeError{Option: "day-start", Value: fmt.Sprint(c.DayStart), Bounds: "must be less than -day-end"}
	}
	if c.SineRange < 1 {
		return &RangeError{Option: "sine-range", Value: fmt.Sprint(c.SineRange), Bounds: ">= 1"}
	}
	if c.ToleranceMinutes < 0 {
		return &RangeError{Option: "tolerance", Value: fmt.Sprint(c.ToleranceMinutes), Bounds: ">= 0"}
	}
	if c.composition {
		if c.BPM < MinBPM || c.BPM > MaxBPM {
			return &RangeError{Option: "bpm", Value: fmt.Sprint(c.BPM), Bounds: "60-240"}
		}
		if !c.AutoDuration && (c.DurationSeconds < MinDuration || c.DurationSeconds > MaxDuration) {
			return &RangeError{Option: "duration", Value: fmt.Sprint(c.DurationSeconds), Bounds: "60-600"}
		}
	}

	c.fillOutputPaths()
	return nil
}

// SolarConfig projects the solar-model options.
func (c *Config) SolarConfig() domain.SolarConfig {
	return domain.SolarConfig{
		DayStart:        float64(c.DayStart),
		DayEnd:          float64(c.DayEnd),
		Tolerance:       time.Duration(c.ToleranceMinutes) * time.Minute,
		UseSolar:        c.UseSolar,
		RealisticTiming: c.RealisticTiming,
		Longitude:       c.Longitude,
	}
}

// fillOutputPaths derives default output names from the input base name.
func (c *Config) fillOutputPaths() {
	base := strings.TrimSuffix(c.InputPath, filepath.Ext(c.InputPath))
	if c.CleanedPath == "" {
		c.CleanedPath = base + "_cleaned.csv"
	}
	if !c.composition {
		return
	}
	if c.MIDIPath == "" {
		if c.AutoDuration {
			c.MIDIPath = fmt.Sprintf("%s_3ch_%dbpm_auto.mid", base, c.BPM)
		} else {
			c.MIDIPath = fmt.Sprintf("%s_3ch_%dbpm_%ds.mid", base, c.BPM, c.DurationSeconds)
		}
	}
	if c.VizPath == "" {
		c.VizPath = strings.TrimSuffix(c.MIDIPath, ".mid") + "_visualization.png"
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
