package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Bwong44/FogSonification/internal/domain"
)

// derivedHeader is the fixed leading column set of the cleaned table; the
// source's own columns follow it verbatim.
var derivedHeader = []string{"date", "time", "hour", "cycle", "solar_sine", "sunrise_event", "sunset_event"}

// WriteCleanedTable serializes the cleaned table. The solar phase is scaled
// by sineRange, so the serialized column spans [-sineRange, sineRange].
func WriteCleanedTable(w io.Writer, table domain.CleanedTable, sineRange float64) error {
	cw := csv.NewWriter(w)

	header := append(append([]string{}, derivedHeader...), table.ExtraHeader...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write cleaned header: %w", err)
	}

	record := make([]string, 0, len(header))
	for _, entry := range table.Entries {
		record = record[:0]
		record = append(record,
			entry.Row.Timestamp.Format("2006-01-02"),
			entry.Row.Timestamp.Format("15:04"),
			strconv.Itoa(entry.Row.Timestamp.Hour()),
			cycleLabel(entry.Solar.Daytime),
			strconv.FormatFloat(entry.Solar.Phase*sineRange, 'f', 2, 64),
			strconv.FormatBool(entry.Solar.Sunrise),
			strconv.FormatBool(entry.Solar.Sunset),
		)
		record = append(record, entry.Row.Extra...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write cleaned row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func cycleLabel(daytime bool) string {
	if daytime {
		return "day"
	}
	return "night"
}
