// Package dial derives hand angles and tick decisions from clock readings.
//
// [Derive] is a pure function of a reading and the mode flags. [Deriver]
// adds the one piece of state the face needs across samples: the last
// observed second, used to fire exactly one tick per second transition.
package dial

import "github.com/go-drift/clockface/pkg/timesource"

const (
	degreesPerSecond     = 6.0  // second hand: 360 / 60
	degreesPerMinute     = 6.0  // minute hand: 360 / 60
	minuteCreepPerSecond = 0.1  // minute hand: 360 / 3600
	degreesPerHour       = 30.0 // hour hand: 360 / 12
	hourCreepPerMinute   = 0.5  // hour hand: 360 / 720
)

// Flags are the user-selected motion and sound modes.
type Flags struct {
	// Continuous selects the smooth sweep instead of the quartz step.
	Continuous bool
	// SoundEnabled plays a tick on each second transition.
	SoundEnabled bool
}

// Normalize returns f with SoundEnabled cleared when Continuous is set.
// A sweeping hand has no second transitions to tick on.
func (f Flags) Normalize() Flags {
	if f.Continuous {
		f.SoundEnabled = false
	}
	return f
}

// SoundToggleEnabled reports whether a sound control should accept input.
func (f Flags) SoundToggleEnabled() bool {
	return !f.Continuous
}

// ModeLabel names the movement shown on the dial.
func (f Flags) ModeLabel() string {
	if f.Continuous {
		return "AUTOMATIC"
	}
	return "QUARTZ"
}

// Angles are hand rotations in degrees, clockwise from twelve o'clock.
// Values are not reduced modulo 360.
type Angles struct {
	Hour   float64
	Minute float64
	Second float64
}

// Derive computes hand angles for r.
//
// The minute and hour hands creep with the seconds and minutes respectively
// in both modes; only the second hand differs between step and sweep.
func Derive(r timesource.Reading, f Flags) Angles {
	second := float64(r.Seconds) * degreesPerSecond
	if f.Continuous {
		second = (float64(r.Seconds) + float64(r.Milliseconds)/1000) * degreesPerSecond
	}
	return Angles{
		Hour:   float64(r.Hours%12)*degreesPerHour + float64(r.Minutes)*hourCreepPerMinute,
		Minute: float64(r.Minutes)*degreesPerMinute + float64(r.Seconds)*minuteCreepPerSecond,
		Second: second,
	}
}

// Deriver tracks the last observed second between samples.
// The zero value is ready to use. A Deriver is not safe for concurrent use.
type Deriver struct {
	lastSecond int
	primed     bool
}

// Observe derives angles for r and reports whether a tick should play.
//
// A tick fires when sound is enabled, the clock is stepping, and the second
// differs from the previous observation. The last second is updated on every
// call regardless of flags so that enabling sound, or leaving the sweep, does
// not fire a stale tick. The first observation never ticks.
func (d *Deriver) Observe(r timesource.Reading, f Flags) (Angles, bool) {
	f = f.Normalize()
	tick := d.primed && f.SoundEnabled && !f.Continuous && r.Seconds != d.lastSecond
	d.lastSecond = r.Seconds
	d.primed = true
	return Derive(r, f), tick
}

// Reset forgets the last observed second.
func (d *Deriver) Reset() {
	*d = Deriver{}
}
