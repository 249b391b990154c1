package theme

import "github.com/go-drift/clockface/pkg/graphics"

// Palette holds every color used to paint the face.
type Palette struct {
	// FaceCenter and FaceEdge are the radial gradient stops of the dial
	// (80% and 100% of the radius).
	FaceCenter graphics.Color
	FaceEdge   graphics.Color
	// RimFrom and RimTo are the diagonal gradient stops of the bezel.
	RimFrom   graphics.Color
	RimTo     graphics.Color
	InnerRing graphics.Color

	TickMajor graphics.Color
	TickMinor graphics.Color
	Numeral   graphics.Color
	ModeLabel graphics.Color

	HandHour       graphics.Color
	HandMinute     graphics.Color
	HandSecond     graphics.Color
	HandShadow     graphics.Color
	CenterCap      graphics.Color
	CenterCapInner graphics.Color

	DateBackground graphics.Color
	DateBorder     graphics.Color
	DateMonth      graphics.Color
	DateDay        graphics.Color
}

// DarkPalette returns the slate palette.
func DarkPalette() Palette {
	return Palette{
		FaceCenter: graphics.Hex(0x1e293b),
		FaceEdge:   graphics.Hex(0x0f172a),
		RimFrom:    graphics.Hex(0x1e293b),
		RimTo:      graphics.Hex(0x0f172a),
		InnerRing:  graphics.ColorWhite.WithAlpha(0.05),

		TickMajor: graphics.Hex(0xcbd5e1),
		TickMinor: graphics.Hex(0x475569),
		Numeral:   graphics.Hex(0xcbd5e1),
		ModeLabel: graphics.Hex(0x475569),

		HandHour:       graphics.Hex(0xe2e8f0),
		HandMinute:     graphics.Hex(0xe2e8f0),
		HandSecond:     graphics.Hex(0xf97316),
		HandShadow:     graphics.ColorBlack.WithAlpha(0.5),
		CenterCap:      graphics.Hex(0xe2e8f0),
		CenterCapInner: graphics.Hex(0x0f172a),

		DateBackground: graphics.Hex(0x0f172a),
		DateBorder:     graphics.Hex(0x334155),
		DateMonth:      graphics.Hex(0x64748b),
		DateDay:        graphics.Hex(0xe2e8f0),
	}
}

// LightPalette returns the white-and-gray palette.
func LightPalette() Palette {
	return Palette{
		FaceCenter: graphics.ColorWhite,
		FaceEdge:   graphics.Hex(0xe5e7eb),
		RimFrom:    graphics.ColorWhite,
		RimTo:      graphics.Hex(0xf3f4f6),
		InnerRing:  graphics.ColorBlack.WithAlpha(0.05),

		TickMajor: graphics.Hex(0x1f2937),
		TickMinor: graphics.Hex(0xd1d5db),
		Numeral:   graphics.Hex(0x1f2937),
		ModeLabel: graphics.Hex(0x9ca3af),

		HandHour:       graphics.Hex(0x111827),
		HandMinute:     graphics.Hex(0x374151),
		HandSecond:     graphics.Hex(0xdc2626),
		HandShadow:     graphics.ColorBlack.WithAlpha(0.15),
		CenterCap:      graphics.Hex(0x1f2937),
		CenterCapInner: graphics.ColorWhite,

		DateBackground: graphics.Hex(0xf9fafb),
		DateBorder:     graphics.Hex(0xd1d5db),
		DateMonth:      graphics.Hex(0x6b7280),
		DateDay:        graphics.Hex(0x111827),
	}
}

// Palette returns the palette for b.
func (b Brightness) Palette() Palette {
	if b == BrightnessLight {
		return LightPalette()
	}
	return DarkPalette()
}
