// Package domain models hourly weather observations and their musical
// representation.
//
// # Data Source
//
// Input files are hourly weather exports in the Open-Meteo CSV style: a few
// leading metadata lines, then an hourly section whose first column is an
// ISO 8601 timestamp ("2024-01-15T13:00") followed by numeric observation
// columns, one of which is a low-cloud-coverage percentage. Some exports
// append a second, daily section carrying per-day sunrise and sunset
// timestamps; when present, those are attached to each hourly row by date.
//
// # Solar Model
//
// Every row gets a SolarSample: a continuous day/night phase plus discrete
// sunrise/sunset event flags.
//
// Phase is a unit value in [-1, 1]. Inside the effective daylight window it
// follows a positive sine half-cycle, zero at both window boundaries and
// peaking at the window midpoint (solar noon). Outside the window it follows
// the mirrored negative half-cycle across the night, wrapping midnight. The
// effective window for a row is resolved in priority order:
//
//  1. Embedded sunrise/sunset timestamps, when present and enabled.
//  2. The globally configured day-start/day-end hours, shifted by the
//     equation-of-time solar-noon offset when realistic timing is enabled.
//  3. The globally configured hours as-is.
//
// Event flags are set when the row's timestamp falls within a configured
// tolerance window of the day's sunrise or sunset. Detection is independent
// per row: two rows inside the same tolerance window are both flagged.
//
// # Musical Mapping
//
// Three channels, each with a fixed scale:
//
//	Channel 1  cloud coverage, inverted  C major pentatonic from C4
//	Channel 2  solar phase               C minor pentatonic from C3
//	Channel 3  sunrise/sunset events     C harmonic minor from C2
//
// Channels 1 and 2 emit one note per row; channel 3 emits only on event
// rows. Every emitted pitch is a member of its channel's scale.
package domain
