// Package csvio reads the multi-section weather CSV export and writes the
// cleaned table back out in a row-oriented text format.
package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Bwong44/FogSonification/internal/domain"
)

// Source is the raw material handed to the normalizer: the hourly rows plus
// the original column names carried through to the cleaned output.
type Source struct {
	Rows        []domain.RawRow
	ExtraHeader []string
}

// solarTimes holds one day's sunrise/sunset timestamps, unparsed.
type solarTimes struct {
	sunrise string
	sunset  string
}

// Read parses a weather export. The first skipLines lines are metadata and
// dropped verbatim. The hourly section follows, ending at a blank line, a
// stray second header, or the start of the daily solar section. When a solar
// section exists its sunrise/sunset timestamps are attached to each hourly
// row by date.
func Read(r io.Reader, skipLines int, logger *slog.Logger) (*Source, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if skipLines >= len(lines) {
		return nil, fmt.Errorf("input has %d lines, cannot skip %d", len(lines), skipLines)
	}

	solar, solarStart := extractSolarSection(lines, logger)

	end := hourlySectionEnd(lines, skipLines, solarStart)
	records, err := parseCSV(lines[skipLines:end])
	if err != nil {
		return nil, fmt.Errorf("parse hourly section: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("hourly section has no data rows")
	}

	header := records[0]
	timeCol, err := findColumn(header, "time column", "time", "date", "timestamp")
	if err != nil {
		return nil, err
	}
	cloudCol, err := findColumn(header, "cloud coverage column", "cloud")
	if err != nil {
		return nil, err
	}

	extraHeader := make([]string, 0, len(header)-1)
	for i, name := range header {
		if i != timeCol {
			extraHeader = append(extraHeader, name)
		}
	}

	rows := make([]domain.RawRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		raw := domain.RawRow{
			// +2: one for the header row, one for 1-based numbering.
			Line:  skipLines + i + 2,
			Extra: make([]string, 0, len(extraHeader)),
		}
		for j, field := range rec {
			if j == timeCol {
				raw.Timestamp = field
				continue
			}
			raw.Extra = append(raw.Extra, field)
		}
		if cloudIdx := extraIndex(cloudCol, timeCol); cloudIdx < len(raw.Extra) {
			raw.CloudCover = raw.Extra[cloudIdx]
		}
		if st, ok := solar[dateKey(raw.Timestamp)]; ok {
			raw.Sunrise = st.sunrise
			raw.Sunset = st.sunset
		}
		rows = append(rows, raw)
	}

	return &Source{Rows: rows, ExtraHeader: extraHeader}, nil
}

// extraIndex maps a full-record column index onto the Extra slice, which
// omits the time column.
func extraIndex(col, timeCol int) int {
	if col > timeCol {
		return col - 1
	}
	return col
}

// hourlySectionEnd finds where the hourly data stops: a blank line, the
// solar section, or a second header-looking line well past the start.
func hourlySectionEnd(lines []string, start, solarStart int) int {
	end := len(lines)
	if solarStart >= 0 && solarStart < end {
		end = solarStart
	}
	for i := start; i < end; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			return i
		}
		if i > start+10 && strings.Contains(strings.ToLower(trimmed), "time") && strings.Contains(trimmed, ",") {
			return i
		}
	}
	return end
}

// extractSolarSection locates and parses the daily sunrise/sunset section,
// keyed by date. Returns a nil map and -1 when the export has none.
func extractSolarSection(lines []string, logger *slog.Logger) (map[string]solarTimes, int) {
	start := -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "sunrise") && strings.Contains(lower, "sunset") {
			start = i
			break
		}
	}
	if start < 0 {
		logger.Debug("no solar section found, using configured day hours")
		return nil, -1
	}

	records, err := parseCSV(lines[start:])
	if err != nil || len(records) < 2 {
		logger.Warn("solar section unreadable, falling back to configured hours", "line", start+1, "error", err)
		return nil, start
	}

	header := records[0]
	dateCol, errD := findColumn(header, "solar date column", "time", "date")
	riseCol, errR := findColumn(header, "sunrise column", "sunrise")
	setCol, errS := findColumn(header, "sunset column", "sunset")
	if errD != nil || errR != nil || errS != nil {
		logger.Warn("solar section missing expected columns, falling back", "line", start+1)
		return nil, start
	}

	solar := make(map[string]solarTimes, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= dateCol || len(rec) <= riseCol || len(rec) <= setCol {
			continue
		}
		solar[dateKey(rec[dateCol])] = solarTimes{sunrise: rec[riseCol], sunset: rec[setCol]}
	}

	logger.Debug("solar section loaded", "days", len(solar), "line", start+1)
	return solar, start
}

// dateKey truncates a timestamp string to its date part for lookup.
func dateKey(ts string) string {
	ts = strings.TrimSpace(ts)
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}

func parseCSV(lines []string) ([][]string, error) {
	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.FieldsPerRecord = -1 // ragged rows surface as malformed downstream
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// findColumn returns the index of the first header cell containing any of
// the keywords, case-insensitive.
func findColumn(header []string, what string, keywords ...string) (int, error) {
	for i, name := range header {
		lower := strings.ToLower(name)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("could not find %s in header %v", what, header)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
