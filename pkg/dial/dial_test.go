package dial

import (
	"math"
	"testing"
	"time"

	"github.com/go-drift/clockface/pkg/timesource"
)

func reading(h, m, s, ms int) timesource.Reading {
	return timesource.NewReading(time.Date(2026, 10, 19, h, m, s, ms*int(time.Millisecond), time.UTC))
}

func TestDerive_StepSecondHand(t *testing.T) {
	for s := 0; s < 60; s++ {
		a := Derive(reading(0, 0, s, 999), Flags{})
		if a.Second != float64(s*6) {
			t.Errorf("seconds=%d: Second = %v, want %d", s, a.Second, s*6)
		}
		if a.Second != math.Trunc(a.Second) || int(a.Second)%6 != 0 {
			t.Errorf("seconds=%d: Second = %v is not an integer multiple of 6", s, a.Second)
		}
	}
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name  string
		r     timesource.Reading
		flags Flags
		want  Angles
	}{
		{
			name:  "sweep second hand",
			r:     reading(0, 0, 10, 500),
			flags: Flags{Continuous: true},
			want:  Angles{Hour: 0, Minute: 1, Second: 63},
		},
		{
			name: "minute creep",
			r:    reading(0, 15, 30, 0),
			want: Angles{Hour: 7.5, Minute: 93, Second: 180},
		},
		{
			name: "hour creep past noon",
			r:    reading(14, 30, 0, 0),
			want: Angles{Hour: 75, Minute: 180, Second: 0},
		},
		{
			name: "midnight",
			r:    reading(0, 0, 0, 0),
			want: Angles{},
		},
		{
			name:  "last instant of the day",
			r:     reading(23, 59, 59, 999),
			flags: Flags{Continuous: true},
			want:  Angles{Hour: 359.5, Minute: 359.9, Second: 359.994},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.r, tt.flags)
			if !near(got.Hour, tt.want.Hour) || !near(got.Minute, tt.want.Minute) || !near(got.Second, tt.want.Second) {
				t.Errorf("Derive = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFlags_Normalize(t *testing.T) {
	f := Flags{Continuous: true, SoundEnabled: true}.Normalize()
	if f.SoundEnabled {
		t.Error("sound must be disabled while continuous")
	}
	f = Flags{SoundEnabled: true}.Normalize()
	if !f.SoundEnabled {
		t.Error("sound must stay enabled in step mode")
	}
}

func TestFlags_Labels(t *testing.T) {
	if got := (Flags{Continuous: true}).ModeLabel(); got != "AUTOMATIC" {
		t.Errorf("ModeLabel() = %q", got)
	}
	if got := (Flags{}).ModeLabel(); got != "QUARTZ" {
		t.Errorf("ModeLabel() = %q", got)
	}
	if (Flags{Continuous: true}).SoundToggleEnabled() {
		t.Error("sound toggle should be disabled while continuous")
	}
}

func TestDeriver_TicksOncePerSecondChange(t *testing.T) {
	var d Deriver
	flags := Flags{SoundEnabled: true}
	ticks := 0

	// Several samples per second, spanning four seconds.
	for s := 0; s < 4; s++ {
		for _, ms := range []int{0, 250, 500, 750} {
			if _, tick := d.Observe(reading(10, 0, s, ms), flags); tick {
				ticks++
			}
		}
	}
	// The first observation only primes the deriver.
	if ticks != 3 {
		t.Errorf("expected 3 ticks, got %d", ticks)
	}
}

func TestDeriver_NoTicksWhenDisabled(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
	}{
		{"sound off", Flags{}},
		{"continuous", Flags{Continuous: true}},
		{"continuous with sound requested", Flags{Continuous: true, SoundEnabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Deriver
			for s := 0; s < 10; s++ {
				if _, tick := d.Observe(reading(10, 0, s, 0), tt.flags); tick {
					t.Fatalf("unexpected tick at second %d", s)
				}
			}
		})
	}
}

func TestDeriver_NoStaleTickAfterEnablingSound(t *testing.T) {
	var d Deriver
	d.Observe(reading(10, 0, 5, 0), Flags{})
	d.Observe(reading(10, 0, 6, 0), Flags{})

	// Sound switched on within the same second: no tick.
	if _, tick := d.Observe(reading(10, 0, 6, 400), Flags{SoundEnabled: true}); tick {
		t.Error("tick fired immediately after enabling sound")
	}
	if _, tick := d.Observe(reading(10, 0, 7, 0), Flags{SoundEnabled: true}); !tick {
		t.Error("expected a tick on the next second")
	}
}

func TestDeriver_NoStaleTickAfterLeavingSweep(t *testing.T) {
	var d Deriver
	d.Observe(reading(10, 0, 5, 0), Flags{Continuous: true})
	d.Observe(reading(10, 0, 8, 900), Flags{Continuous: true})

	if _, tick := d.Observe(reading(10, 0, 8, 950), Flags{SoundEnabled: true}); tick {
		t.Error("tick fired on the first step sample after the sweep")
	}
}

func TestDeriver_Reset(t *testing.T) {
	var d Deriver
	d.Observe(reading(10, 0, 1, 0), Flags{SoundEnabled: true})
	d.Reset()
	if _, tick := d.Observe(reading(10, 0, 2, 0), Flags{SoundEnabled: true}); tick {
		t.Error("first observation after Reset must not tick")
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
