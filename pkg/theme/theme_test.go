package theme

import "testing"

func TestParseBrightness(t *testing.T) {
	tests := []struct {
		in      string
		want    Brightness
		wantErr bool
	}{
		{"dark", BrightnessDark, false},
		{" Light ", BrightnessLight, false},
		{"DARK", BrightnessDark, false},
		{"sepia", BrightnessDark, true},
		{"", BrightnessDark, true},
	}
	for _, tt := range tests {
		got, err := ParseBrightness(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBrightness(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBrightness(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBrightness_TickPeak(t *testing.T) {
	if got := BrightnessDark.TickPeak(); got != 0.25 {
		t.Errorf("dark TickPeak() = %v, want 0.25", got)
	}
	if got := BrightnessLight.TickPeak(); got != 0.15 {
		t.Errorf("light TickPeak() = %v, want 0.15", got)
	}
}

func TestBrightness_Toggle(t *testing.T) {
	if BrightnessDark.Toggle() != BrightnessLight || BrightnessLight.Toggle() != BrightnessDark {
		t.Error("Toggle should flip between dark and light")
	}
}

func TestBrightness_TextRoundTrip(t *testing.T) {
	var b Brightness
	if err := b.UnmarshalText([]byte("light")); err != nil {
		t.Fatal(err)
	}
	text, _ := b.MarshalText()
	if string(text) != "light" {
		t.Errorf("MarshalText() = %q", text)
	}
	if err := b.UnmarshalText([]byte("blue")); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestPalettesDiffer(t *testing.T) {
	dark, light := BrightnessDark.Palette(), BrightnessLight.Palette()
	if dark.HandSecond == light.HandSecond || dark.FaceCenter == light.FaceCenter {
		t.Error("dark and light palettes should differ")
	}
}
