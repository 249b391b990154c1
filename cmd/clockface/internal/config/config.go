// Package config loads the optional clockface.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/clockface/pkg/frame"
	"github.com/go-drift/clockface/pkg/theme"
	"github.com/go-drift/clockface/pkg/tick"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "clockface.yaml"

// Environment overrides, applied after the file and before command flags.
const (
	EnvAddr  = "CLOCKFACE_ADDR"
	EnvTheme = "CLOCKFACE_THEME"
)

// Defaults.
const (
	DefaultAddr = ":8080"
	DefaultSize = 400
	MaxSize     = 4096
)

// Config represents the optional clockface.yaml configuration.
type Config struct {
	Version string       `yaml:"version,omitempty"`
	Clock   ClockConfig  `yaml:"clock"`
	Frame   FrameConfig  `yaml:"frame"`
	Audio   AudioConfig  `yaml:"audio"`
	Server  ServerConfig `yaml:"server"`
}

// ClockConfig holds the initial face state.
type ClockConfig struct {
	Theme  string `yaml:"theme,omitempty"`
	Smooth bool   `yaml:"smooth,omitempty"`
	Sound  bool   `yaml:"sound,omitempty"`
	Size   int    `yaml:"size,omitempty"`
}

// FrameConfig holds the display frame loop settings.
type FrameConfig struct {
	Rate int `yaml:"rate,omitempty"`
}

// AudioConfig holds the host audio settings.
type AudioConfig struct {
	// Enabled is a pointer so that an absent key keeps the default (on).
	Enabled    *bool `yaml:"enabled,omitempty"`
	SampleRate int   `yaml:"sample_rate,omitempty"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Theme        theme.Brightness
	Smooth       bool
	Sound        bool
	Size         int
	FrameRate    int
	AudioEnabled bool
	SampleRate   int
	Addr         string
}

// LoadOptional reads clockface.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolve loads clockface.yaml (if present), applies environment overrides
// and fills in defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(os.Getenv)
}

// Resolve validates c and fills in defaults. getenv supplies environment
// overrides; nil disables them.
func (c *Config) Resolve(getenv func(string) string) (*Resolved, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	if err := validateVersion(c.Version); err != nil {
		return nil, err
	}

	themeName := strings.TrimSpace(c.Clock.Theme)
	if env := strings.TrimSpace(getenv(EnvTheme)); env != "" {
		themeName = env
	}
	brightness := theme.BrightnessDark
	if themeName != "" {
		b, err := theme.ParseBrightness(themeName)
		if err != nil {
			return nil, fmt.Errorf("clock.theme: %w", err)
		}
		brightness = b
	}

	size := c.Clock.Size
	if size == 0 {
		size = DefaultSize
	}
	if err := ValidateSize(size); err != nil {
		return nil, fmt.Errorf("clock.size: %w", err)
	}

	rate := c.Frame.Rate
	if rate == 0 {
		rate = frame.DefaultRate
	}
	if rate < 1 || rate > 240 {
		return nil, fmt.Errorf("frame.rate must be between 1 and 240 (got %d)", rate)
	}

	sampleRate := c.Audio.SampleRate
	if sampleRate == 0 {
		sampleRate = tick.DefaultSampleRate
	}
	if sampleRate < 8000 || sampleRate > 192000 {
		return nil, fmt.Errorf("audio.sample_rate must be between 8000 and 192000 (got %d)", sampleRate)
	}

	audio := true
	if c.Audio.Enabled != nil {
		audio = *c.Audio.Enabled
	}

	addr := strings.TrimSpace(c.Server.Addr)
	if env := strings.TrimSpace(getenv(EnvAddr)); env != "" {
		addr = env
	}
	if addr == "" {
		addr = DefaultAddr
	}

	r := &Resolved{
		Theme:        brightness,
		Smooth:       c.Clock.Smooth,
		Sound:        c.Clock.Sound,
		Size:         size,
		FrameRate:    rate,
		AudioEnabled: audio,
		SampleRate:   sampleRate,
		Addr:         addr,
	}
	r.Normalize()
	return r, nil
}

// Normalize applies the sweep/sound invariant: a sweeping clock is silent.
func (r *Resolved) Normalize() {
	if r.Smooth {
		r.Sound = false
	}
}

// ValidateSize reports whether size is a usable face size in pixels.
func ValidateSize(size int) error {
	if size < 16 || size > MaxSize {
		return fmt.Errorf("size must be between 16 and %d (got %d)", MaxSize, size)
	}
	return nil
}

func validateVersion(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q is not a valid semantic version", v)
	}
	if major := semver.Major(v); major != "v1" {
		return fmt.Errorf("unsupported config version %s (want v1.x)", major)
	}
	return nil
}
