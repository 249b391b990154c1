package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/clockface/pkg/theme"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestResolve_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r, err := cfg.Resolve(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := Resolved{
		Theme:        theme.BrightnessDark,
		Size:         DefaultSize,
		FrameRate:    60,
		AudioEnabled: true,
		SampleRate:   44100,
		Addr:         DefaultAddr,
	}
	if *r != want {
		t.Errorf("Resolve() = %+v, want %+v", *r, want)
	}
}

func TestResolve_File(t *testing.T) {
	dir := writeConfig(t, `
version: "1.2.0"
clock:
  theme: Light
  sound: true
  size: 256
frame:
  rate: 30
audio:
  enabled: false
  sample_rate: 48000
server:
  addr: "127.0.0.1:9000"
`)
	cfg, err := LoadOptional(dir)
	if err != nil {
		t.Fatal(err)
	}
	r, err := cfg.Resolve(nil)
	if err != nil {
		t.Fatal(err)
	}
	want := Resolved{
		Theme:        theme.BrightnessLight,
		Sound:        true,
		Size:         256,
		FrameRate:    30,
		AudioEnabled: false,
		SampleRate:   48000,
		Addr:         "127.0.0.1:9000",
	}
	if *r != want {
		t.Errorf("Resolve() = %+v, want %+v", *r, want)
	}
}

func TestResolve_SmoothSilencesSound(t *testing.T) {
	cfg := &Config{Clock: ClockConfig{Smooth: true, Sound: true}}
	r, err := cfg.Resolve(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Smooth || r.Sound {
		t.Errorf("smooth=%v sound=%v, want smooth and silent", r.Smooth, r.Sound)
	}
}

func TestResolve_EnvOverrides(t *testing.T) {
	env := map[string]string{EnvAddr: ":9999", EnvTheme: "light"}
	cfg := &Config{Clock: ClockConfig{Theme: "dark"}, Server: ServerConfig{Addr: ":1"}}
	r, err := cfg.Resolve(func(k string) string { return env[k] })
	if err != nil {
		t.Fatal(err)
	}
	if r.Addr != ":9999" {
		t.Errorf("Addr = %q", r.Addr)
	}
	if r.Theme != theme.BrightnessLight {
		t.Errorf("Theme = %v", r.Theme)
	}
}

func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"bad version", Config{Version: "one"}, "not a valid semantic version"},
		{"future version", Config{Version: "v2.0.0"}, "unsupported config version v2"},
		{"bad theme", Config{Clock: ClockConfig{Theme: "sepia"}}, "clock.theme"},
		{"tiny size", Config{Clock: ClockConfig{Size: 4}}, "clock.size"},
		{"huge size", Config{Clock: ClockConfig{Size: MaxSize + 1}}, "clock.size"},
		{"frame rate", Config{Frame: FrameConfig{Rate: 1000}}, "frame.rate"},
		{"sample rate", Config{Audio: AudioConfig{SampleRate: 100}}, "audio.sample_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Resolve(nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestResolve_VersionWithoutPrefix(t *testing.T) {
	if _, err := (&Config{Version: "1.0.0"}).Resolve(nil); err != nil {
		t.Errorf("Resolve() error = %v", err)
	}
}

func TestLoadOptional_ParseError(t *testing.T) {
	dir := writeConfig(t, "clock: [unterminated")
	if _, err := LoadOptional(dir); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("LoadOptional() error = %v", err)
	}
}

func TestResolve_Dir(t *testing.T) {
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvTheme, "")
	dir := writeConfig(t, "clock:\n  smooth: true\n")
	r, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Smooth {
		t.Error("Smooth = false")
	}
}
