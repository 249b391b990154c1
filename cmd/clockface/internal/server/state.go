package server

import (
	"fmt"
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/go-drift/clockface/pkg/clock"
	"github.com/go-drift/clockface/pkg/theme"
)

type anglesJSON struct {
	Hour   float64 `json:"hour"`
	Minute float64 `json:"minute"`
	Second float64 `json:"second"`
}

type stateResponse struct {
	Time               time.Time  `json:"time"`
	Angles             anglesJSON `json:"angles"`
	Continuous         bool       `json:"continuous"`
	SoundEnabled       bool       `json:"soundEnabled"`
	SoundToggleEnabled bool       `json:"soundToggleEnabled"`
	Theme              string     `json:"theme"`
	DateLabel          string     `json:"dateLabel"`
	ModeLabel          string     `json:"modeLabel"`
	Ticked             bool       `json:"ticked"`

	// TickURL changes with the theme, since the tick volume does.
	TickURL string `json:"tickUrl"`

	// LastTick is null until the clock has ticked.
	LastTick nullable.Nullable[time.Time] `json:"lastTick"`
}

func (s *Server) state(f clock.Frame) stateResponse {
	st := stateResponse{
		Time: f.Reading.Time,
		Angles: anglesJSON{
			Hour:   f.Angles.Hour,
			Minute: f.Angles.Minute,
			Second: f.Angles.Second,
		},
		Continuous:         f.Flags.Continuous,
		SoundEnabled:       f.Flags.SoundEnabled,
		SoundToggleEnabled: f.Flags.SoundToggleEnabled(),
		Theme:              f.Theme.String(),
		DateLabel:          f.DateLabel,
		ModeLabel:          f.ModeLabel,
		Ticked:             f.Ticked,
		TickURL:            tickURL(f.Theme),
		LastTick:           nullable.NewNullNullable[time.Time](),
	}
	s.mu.Lock()
	if !s.lastTick.IsZero() {
		st.LastTick = nullable.NewNullableWithValue(s.lastTick)
	}
	s.mu.Unlock()
	return st
}

// modePatch is a partial update of the clock controls. Omitted fields are
// left alone; explicit nulls are rejected.
type modePatch struct {
	Continuous   nullable.Nullable[bool]   `json:"continuous,omitempty"`
	SoundEnabled nullable.Nullable[bool]   `json:"soundEnabled,omitempty"`
	Theme        nullable.Nullable[string] `json:"theme,omitempty"`
}

func (p modePatch) validate() error {
	nulls := []struct {
		name string
		null bool
	}{
		{"continuous", p.Continuous.IsNull()},
		{"soundEnabled", p.SoundEnabled.IsNull()},
		{"theme", p.Theme.IsNull()},
	}
	for _, f := range nulls {
		if f.null {
			return fmt.Errorf("%s cannot be null", f.name)
		}
	}
	if p.Theme.IsSpecified() {
		name, _ := p.Theme.Get()
		if _, err := theme.ParseBrightness(name); err != nil {
			return err
		}
	}
	return nil
}

// apply updates the widget. Continuous goes first so that a request that
// turns on the sweep and the sound in one go leaves the sound off.
func (p modePatch) apply(w *clock.Widget) {
	if v, err := p.Continuous.Get(); err == nil {
		w.SetContinuous(v)
	}
	if v, err := p.SoundEnabled.Get(); err == nil {
		w.SetSoundEnabled(v)
	}
	if name, err := p.Theme.Get(); err == nil {
		if b, err := theme.ParseBrightness(name); err == nil {
			w.SetTheme(b)
		}
	}
}
