package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing row timestamps. Open-Meteo
// exports use the minute-resolution ISO form without a zone.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// RawRow is one untyped line of the hourly section of the input file, as the
// CSV reader hands it over.
type RawRow struct {
	Line       int    // 1-based line number in the source file
	Timestamp  string // ISO 8601 date+hour
	CloudCover string // percentage, may be empty (missing)
	Sunrise    string // embedded per-day sunrise timestamp, may be empty
	Sunset     string // embedded per-day sunset timestamp, may be empty
	Extra      []string
}

// Row is one validated hourly observation. Immutable once parsed.
type Row struct {
	Timestamp    time.Time
	CloudCover   float64   // percent, clamped to [0, 100]
	CloudMissing bool      // source value was empty or an explicit missing marker
	Sunrise      time.Time // zero when the source carried no solar section
	Sunset       time.Time
	Extra        []string // original columns carried through verbatim
}

// Entry pairs a validated row with its derived solar sample.
type Entry struct {
	Row   Row
	Solar SolarSample
}

// CleanedTable is the ordered output of normalization, one entry per valid
// input row, in input (chronological) order. No two entries share a
// timestamp. Read-only input to the composer.
type CleanedTable struct {
	Entries     []Entry
	ExtraHeader []string  // names of the carried-through original columns
	ProcessedAt time.Time // stamped from the domain clock
}

// Len returns the number of entries.
func (t CleanedTable) Len() int { return len(t.Entries) }

// ParseRawRow validates a raw row into a Row. A MalformedRowError is returned
// when the timestamp is unparsable or the cloud value is non-numeric without
// being explicitly missing. Embedded sunrise/sunset fields are parsed
// leniently: a bad value degrades to the configured-hours fallback rather
// than failing the row.
func ParseRawRow(raw RawRow) (Row, error) {
	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return Row{}, &MalformedRowError{Line: raw.Line, Field: "timestamp", Err: err}
	}

	cloud, missing, err := parseCloudCover(raw.CloudCover)
	if err != nil {
		return Row{}, &MalformedRowError{Line: raw.Line, Field: "cloud_cover", Err: err}
	}

	return Row{
		Timestamp:    ts,
		CloudCover:   cloud,
		CloudMissing: missing,
		Sunrise:      parseTimestampOrZero(raw.Sunrise),
		Sunset:       parseTimestampOrZero(raw.Sunset),
		Extra:        raw.Extra,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseTimestampOrZero parses an optional timestamp, returning the zero time
// on failure.
func parseTimestampOrZero(s string) time.Time {
	ts, err := parseTimestamp(s)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// parseCloudCover parses a coverage percentage. Empty values and the common
// NA markers are treated as missing, not malformed. Out-of-range values are
// clamped, matching upstream exports that occasionally report 100.01.
func parseCloudCover(s string) (value float64, missing bool, err error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "n/a", "nan", "null":
		return 0, true, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("non-numeric cloud coverage %q", s)
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v, false, nil
}
