// Package midifile serializes a composition to a Standard MIDI File, one
// track per channel.
package midifile

import (
	"fmt"
	"io"
	"sort"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/Bwong44/FogSonification/internal/domain"
)

const ticksPerQuarter = 960

// trackMeta fixes each channel's track name and General MIDI program.
type trackMeta struct {
	name    string
	program uint8
}

var trackMetas = [3]trackMeta{
	{name: "Cloud Coverage (Inverted)", program: 0}, // piano
	{name: "Solar Sine Wave", program: 8},           // celesta
	{name: "Sunrise/Sunset Events", program: 14},    // tubular bells
}

// tickEvent is a note boundary at an absolute tick position.
type tickEvent struct {
	tick uint32
	off  bool // note-off sorts before note-on at equal ticks
	key  uint8
	vel  uint8
}

// Write serializes the composition as a format-1 SMF with three tracks. The
// tempo meta event carries the configured BPM; note positions stay at the
// second offsets the timeline computed, converted to ticks at that tempo.
func Write(w io.Writer, comp domain.Composition) error {
	clock := smf.MetricTicks(ticksPerQuarter)
	s := smf.New()
	s.TimeFormat = clock

	for ch, meta := range trackMetas {
		var tr smf.Track
		tr.Add(0, smf.MetaTrackSequenceName(meta.name))
		tr.Add(0, smf.MetaTempo(float64(comp.BPM)))
		tr.Add(0, midi.ProgramChange(uint8(ch), meta.program))

		events := channelEvents(clock, comp.BPM, comp.Channels[ch])
		last := uint32(0)
		for _, ev := range events {
			delta := ev.tick - last
			last = ev.tick
			if ev.off {
				tr.Add(delta, midi.NoteOff(uint8(ch), ev.key))
			} else {
				tr.Add(delta, midi.NoteOn(uint8(ch), ev.key, ev.vel))
			}
		}
		tr.Close(0)

		if err := s.Add(tr); err != nil {
			return fmt.Errorf("add track %q: %w", meta.name, err)
		}
	}

	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write smf: %w", err)
	}
	return nil
}

// channelEvents flattens one channel's notes into sorted on/off boundaries.
func channelEvents(clock smf.MetricTicks, bpm int, notes []domain.NoteEvent) []tickEvent {
	events := make([]tickEvent, 0, 2*len(notes))
	for _, n := range notes {
		on := secondsToTicks(clock, bpm, n.Start)
		off := secondsToTicks(clock, bpm, n.Start+n.Duration)
		if off <= on {
			off = on + 1
		}
		events = append(events,
			tickEvent{tick: on, key: uint8(n.Pitch), vel: uint8(n.Velocity)},
			tickEvent{tick: off, off: true, key: uint8(n.Pitch)},
		)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})
	return events
}

func secondsToTicks(clock smf.MetricTicks, bpm int, seconds float64) uint32 {
	return clock.Ticks(float64(bpm), time.Duration(seconds*float64(time.Second)))
}
