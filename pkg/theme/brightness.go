// Package theme defines the light and dark looks of the clock face.
package theme

import (
	"fmt"
	"strings"
)

// Brightness indicates if this is a light or dark theme.
type Brightness int

const (
	// BrightnessDark is a slate face with light hands. It is the default.
	BrightnessDark Brightness = iota
	// BrightnessLight is a white face with dark hands.
	BrightnessLight
)

// String returns "dark" or "light".
func (b Brightness) String() string {
	switch b {
	case BrightnessDark:
		return "dark"
	case BrightnessLight:
		return "light"
	default:
		return fmt.Sprintf("Brightness(%d)", int(b))
	}
}

// ParseBrightness parses "dark" or "light", ignoring case and surrounding space.
func ParseBrightness(s string) (Brightness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return BrightnessDark, nil
	case "light":
		return BrightnessLight, nil
	default:
		return BrightnessDark, fmt.Errorf("unknown theme %q (want dark or light)", s)
	}
}

// Toggle returns the opposite brightness.
func (b Brightness) Toggle() Brightness {
	if b == BrightnessLight {
		return BrightnessDark
	}
	return BrightnessLight
}

// TickPeak returns the peak gain of the tick sound. The dark face ticks a
// little louder.
func (b Brightness) TickPeak() float64 {
	if b == BrightnessLight {
		return 0.15
	}
	return 0.25
}

// MarshalText implements encoding.TextMarshaler.
func (b Brightness) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Brightness) UnmarshalText(text []byte) error {
	parsed, err := ParseBrightness(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
