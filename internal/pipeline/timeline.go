// Package pipeline implements the sonification stages: normalization of raw
// rows into a cleaned table, timeline mapping, scale quantization, and
// composition of the three-channel note sequence.
package pipeline

import "math"

const (
	// TargetDensity is the auto-duration note density: 4 notes per second
	// spread across the 3 channels, i.e. 4/3 rows per second.
	TargetDensity = 4.0 / 3.0

	// MinNoteDuration bounds note lengths from below so very large inputs
	// squeezed into short fixed durations never produce zero-length notes.
	MinNoteDuration = 0.05
)

// Timeline maps row indices onto a fixed output duration. Start times are
// strictly increasing in the row index and the last row lands exactly on the
// total duration.
type Timeline struct {
	RowCount int
	Duration float64 // seconds
	Density  float64 // rows per second
	spacing  float64 // seconds between consecutive rows
}

// NewTimeline computes the timeline for a run. In auto mode the total
// duration is derived first, from the row count and TargetDensity, and the
// linear index mapping then uses that derived duration. A zero row count
// yields an empty timeline.
func NewTimeline(rowCount int, targetDuration float64, auto bool) Timeline {
	if rowCount <= 0 {
		return Timeline{}
	}

	d := targetDuration
	if auto {
		d = float64(rowCount) / TargetDensity
	}

	return Timeline{
		RowCount: rowCount,
		Duration: d,
		Density:  float64(rowCount) / d,
		spacing:  d / float64(rowCount),
	}
}

// StartTime returns the second offset of row i. A single-row run maps to 0.
func (t Timeline) StartTime(i int) float64 {
	if t.RowCount <= 1 {
		return 0
	}
	return float64(i) / float64(t.RowCount-1) * t.Duration
}

// NoteDuration returns the length of a note articulated as a fraction of the
// inter-row spacing, clamped to MinNoteDuration.
func (t Timeline) NoteDuration(articulation float64) float64 {
	return math.Max(MinNoteDuration, t.spacing*articulation)
}
