package pipeline

import (
	"math"

	"github.com/Bwong44/FogSonification/internal/domain"
)

// Quantizer maps normalized values in [0, 1] onto the pitches of one scale.
// The pitch table is expanded once at construction.
type Quantizer struct {
	pitches []int
}

// NewQuantizer builds a quantizer for the given scale.
func NewQuantizer(s domain.Scale) *Quantizer {
	return &Quantizer{pitches: s.Pitches()}
}

// Quantize scales the value across the pitch table and rounds to the nearest
// scale degree, half up toward the higher degree. Out-of-range input is
// clamped, so the result is always a member of the scale.
func (q *Quantizer) Quantize(value float64) int {
	if value < 0 || math.IsNaN(value) {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	idx := int(math.Floor(value*float64(len(q.pitches)-1) + 0.5))
	return q.pitches[idx]
}

// Lowest returns the bottom pitch of the scale.
func (q *Quantizer) Lowest() int { return q.pitches[0] }

// Highest returns the top pitch of the scale.
func (q *Quantizer) Highest() int { return q.pitches[len(q.pitches)-1] }
