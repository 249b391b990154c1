package graphics

import (
	"image/color"
	"math"
	"testing"
)

func TestColor_CSS(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Hex(0x1e293b), "#1e293b"},
		{ColorWhite, "#ffffff"},
		{ColorWhite.WithAlpha(0.05), "rgba(255,255,255,0.05)"},
		{ColorTransparent, "rgba(0,0,0,0)"},
	}
	for _, tt := range tests {
		if got := tt.c.CSS(); got != tt.want {
			t.Errorf("%08x.CSS() = %q, want %q", uint32(tt.c), got, tt.want)
		}
	}
}

func TestColor_ImplementsImageColor(t *testing.T) {
	var c color.Color = Hex(0xf97316)
	r, g, b, a := c.RGBA()
	if a != 0xFFFF || r != 0xF9F9 || g != 0x7373 || b != 0x1616 {
		t.Errorf("RGBA() = %x %x %x %x", r, g, b, a)
	}

	// Premultiplied: half-transparent white has half-intensity channels.
	r, _, _, a = ColorWhite.WithAlpha(0.5).RGBA()
	if r != a {
		t.Errorf("premultiplied red %x should equal alpha %x", r, a)
	}
}

func TestColor_Lerp(t *testing.T) {
	got := ColorBlack.Lerp(ColorWhite, 0.5)
	if got != Hex(0x808080) {
		t.Errorf("Lerp = %08x", uint32(got))
	}
	if ColorBlack.Lerp(ColorWhite, 2) != ColorWhite {
		t.Error("Lerp should clamp t to 1")
	}
}

func TestOffset_RotateAround(t *testing.T) {
	center := Offset{X: 100, Y: 100}
	top := Offset{X: 100, Y: 55}

	// Clockwise on a y-down canvas: 12 o'clock moves to 3 o'clock.
	got := top.RotateAround(center, 90)
	if math.Abs(got.X-145) > 1e-9 || math.Abs(got.Y-100) > 1e-9 {
		t.Errorf("RotateAround(90) = %+v, want {145 100}", got)
	}

	got = top.RotateAround(center, 180)
	if math.Abs(got.X-100) > 1e-9 || math.Abs(got.Y-145) > 1e-9 {
		t.Errorf("RotateAround(180) = %+v, want {100 145}", got)
	}
}
