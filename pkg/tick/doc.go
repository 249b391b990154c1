// Package tick synthesizes the mechanical tick of a quartz movement.
//
// Each tick is a short burst of white noise pushed through a resonant
// band-pass filter and a percussive gain envelope. The noise is generated once
// per [Engine] and shared by every tick; the filter and envelope are built
// fresh for each [Voice] so overlapping ticks never share state.
//
// The [Engine] opens its audio [Context] lazily, on the first tick. If no
// audio device is available the engine goes quiet instead of failing: ticks
// become no-ops and the problem is reported once through pkg/errors.
package tick

import "time"

const (
	// DefaultSampleRate is used when a context does not specify one.
	DefaultSampleRate = 44100

	// CenterFrequency and Q shape the band-pass filter.
	CenterFrequency = 2000.0
	Q               = 5.0

	// Attack is the linear rise from silence to the peak gain.
	Attack = 2 * time.Millisecond
	// DecayEnd is when the exponential decay reaches Floor.
	DecayEnd = 50 * time.Millisecond
	// Floor is the gain the decay approaches. An exponential ramp cannot
	// reach zero.
	Floor = 0.001
	// Length is when playback stops.
	Length = 100 * time.Millisecond
)

// Sink plays ticks.
type Sink interface {
	// PlayTick starts one tick at the given peak gain and returns at once.
	PlayTick(peak float64)
}

// NopSink discards ticks.
type NopSink struct{}

// PlayTick does nothing.
func (NopSink) PlayTick(float64) {}
