package domain

// Channel identifies one of the three output voices.
type Channel uint8

const (
	ChannelCloud  Channel = 1 // inverted cloud coverage
	ChannelSolar  Channel = 2 // day/night phase
	ChannelEvents Channel = 3 // sunrise/sunset events, sparse
)

// NoteEvent is one note in the output sequence. Produced only by the
// composer; immutable.
type NoteEvent struct {
	Channel  Channel
	Pitch    int     // MIDI note number
	Start    float64 // seconds into the fixed output duration
	Duration float64 // seconds, always positive
	Velocity int     // MIDI velocity, 1-127
}

// Composition is the fully materialized output of one compose run: the three
// channels' note sequences, each internally ordered by start time, plus the
// timing metadata the sinks need.
type Composition struct {
	Channels [3][]NoteEvent // indexed by Channel-1
	Duration float64        // total output length in seconds
	Density  float64        // rows per second actually achieved
	BPM      int
}

// NoteCount returns the total number of notes across all channels.
func (c Composition) NoteCount() int {
	n := 0
	for _, ch := range c.Channels {
		n += len(ch)
	}
	return n
}

// Scale is an ordered list of scale-degree semitone offsets from a tonic,
// expanded octave by octave into a fixed pitch table. Quantized output is
// constrained to these pitches, so no chromatic leakage is possible.
type Scale struct {
	Name    string
	Tonic   int   // MIDI note of the lowest pitch
	Degrees []int // semitone offsets within one octave, ascending
	Count   int   // number of pitches expanded from the tonic upward
}

// Pitches expands the scale into its pitch table.
func (s Scale) Pitches() []int {
	p := make([]int, s.Count)
	for i := range p {
		p[i] = s.Tonic + 12*(i/len(s.Degrees)) + s.Degrees[i%len(s.Degrees)]
	}
	return p
}

// The three fixed channel scales, 13 pitches each. The harmonic-minor degree
// set is the hexatonic subset actually voiced on the events channel.
var (
	MajorPentatonic = Scale{Name: "C major pentatonic", Tonic: 60, Degrees: []int{0, 2, 4, 7, 9}, Count: 13}
	MinorPentatonic = Scale{Name: "C minor pentatonic", Tonic: 48, Degrees: []int{0, 3, 5, 7, 10}, Count: 13}
	HarmonicMinor   = Scale{Name: "C harmonic minor", Tonic: 36, Degrees: []int{0, 2, 3, 6, 8, 9}, Count: 13}
)
