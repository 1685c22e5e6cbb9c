package weft

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config carries the engine settings hosts commonly tune. Loaded files
// overlay DefaultConfig, so a config only needs the keys it changes.
type Config struct {
	Render   RenderConfig   `toml:"render"`
	Terminal TerminalConfig `toml:"terminal"`
}

// RenderConfig tunes the render loop.
type RenderConfig struct {
	// Color selects the output profile: "auto", "truecolor", "256" or
	// "16". Auto detects from the environment.
	Color string `toml:"color"`
	// ResizeDebounceMs is how long resize bursts settle before the
	// engine relayouts at the new size.
	ResizeDebounceMs int `toml:"resize_debounce_ms"`
	// MaxFPS caps how often frames flush. 0 means uncapped, rendering
	// only when requested.
	MaxFPS int `toml:"max_fps"`
}

// TerminalConfig tunes terminal takeover behavior.
type TerminalConfig struct {
	AltScreen  bool `toml:"alt_screen"`
	HideCursor bool `toml:"hide_cursor"`
}

// DefaultConfig returns the settings used when no file overrides them.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Color:            "auto",
			ResizeDebounceMs: 40,
			MaxFPS:           0,
		},
		Terminal: TerminalConfig{
			AltScreen:  true,
			HideCursor: true,
		},
	}
}

// LoadConfig reads a TOML file over the defaults. A missing file is not
// an error; the defaults come back unchanged.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes the config as TOML.
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// profile resolves the configured color mode.
func (c Config) profile() Profile {
	switch c.Render.Color {
	case "truecolor":
		return ProfileRGB
	case "256":
		return Profile256
	case "16":
		return Profile16
	default:
		return DetectProfile()
	}
}

// resizeDebounce returns the settle window as a duration.
func (c Config) resizeDebounce() time.Duration {
	ms := c.Render.ResizeDebounceMs
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// frameInterval returns the minimum time between flushes, zero when
// uncapped.
func (c Config) frameInterval() time.Duration {
	if c.Render.MaxFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.Render.MaxFPS)
}
