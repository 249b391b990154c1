// Package timesource samples the host clock for the clock face.
//
// Two [Source] variants exist. [FrameSource] samples on every display frame
// and is used for the smooth sweep. [StepSource] samples once per second,
// phase-aligned to the wall-clock second boundary, and is used for the quartz
// step. Both hand out a [Subscription] whose Cancel stops every timer or frame
// callback the subscription armed.
package timesource

import (
	"strconv"
	"strings"
	"time"
)

// Reading is one sample of the host clock.
//
// A Reading is a value; each sample produces a new one.
type Reading struct {
	// Time is the raw instant, kept for the date label.
	Time time.Time

	Hours        int // 0-23
	Minutes      int // 0-59
	Seconds      int // 0-59
	Milliseconds int // 0-999
}

// NewReading splits t into clock components in t's location.
func NewReading(t time.Time) Reading {
	return Reading{
		Time:         t,
		Hours:        t.Hour(),
		Minutes:      t.Minute(),
		Seconds:      t.Second(),
		Milliseconds: t.Nanosecond() / int(time.Millisecond),
	}
}

// DateLabel returns the short month and day shown in the date window,
// for example "OCT 19".
func (r Reading) DateLabel() string {
	return strings.ToUpper(r.Time.Format("Jan")) + " " + strconv.Itoa(r.Time.Day())
}

// UntilNextSecond returns the time left before the next whole second.
func (r Reading) UntilNextSecond() time.Duration {
	return time.Second - time.Duration(r.Milliseconds)*time.Millisecond
}
