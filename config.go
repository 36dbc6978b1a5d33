package thicket

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the serializable engine settings.
//
//	tps = 60
//	viewport_scale = 2.0
//	max_updates_per_frame = 10
//	frame_skip = true
//	frames_to_skip = 3
//	log_level = "info"
type Config struct {
	// TPS is the ideal number of simulation steps per second.
	TPS int `toml:"tps"`
	// ViewportScale divides the window size into the world-unit viewport.
	ViewportScale float64 `toml:"viewport_scale"`
	// MaxUpdatesPerFrame bounds catch-up steps run in one frame.
	MaxUpdatesPerFrame int `toml:"max_updates_per_frame"`
	// FrameSkip drops leftover time above FramesToSkip steps instead of
	// carrying it to the next frame.
	FrameSkip bool `toml:"frame_skip"`
	// FramesToSkip is the leftover threshold, in steps, for FrameSkip.
	FramesToSkip int `toml:"frames_to_skip"`
	// LogLevel is a charmbracelet/log level name (debug, info, warn, error).
	LogLevel string `toml:"log_level"`

	// Window settings used by Run.
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	ShowFPS bool   `toml:"show_fps"`

	// AssetDir is where relative asset paths resolve; WatchAssets reloads
	// changed files while running.
	AssetDir    string `toml:"asset_dir"`
	WatchAssets bool   `toml:"watch_assets"`
}

// Default configuration values.
const (
	DefaultTPS                = 60
	DefaultMaxUpdatesPerFrame = 10
	DefaultFramesToSkip       = 3
)

// DefaultConfig returns the settings ParseConfig starts from. Init fills
// zero-valued fields from it, except FrameSkip.
func DefaultConfig() Config {
	return Config{
		TPS:                DefaultTPS,
		ViewportScale:      1,
		MaxUpdatesPerFrame: DefaultMaxUpdatesPerFrame,
		FrameSkip:          true,
		FramesToSkip:       DefaultFramesToSkip,
		LogLevel:           "info",
		Title:              "thicket",
		Width:              960,
		Height:             540,
		AssetDir:           "assets",
	}
}

// ParseConfig decodes TOML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Marshal encodes the config as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalidParameter, c.TPS)
	case c.ViewportScale <= 0:
		return fmt.Errorf("%w: viewport_scale %v must be positive", ErrInvalidParameter, c.ViewportScale)
	case c.MaxUpdatesPerFrame <= 0:
		return fmt.Errorf("%w: max_updates_per_frame %d must be positive", ErrInvalidParameter, c.MaxUpdatesPerFrame)
	case c.FramesToSkip < 0:
		return fmt.Errorf("%w: frames_to_skip %d must not be negative", ErrInvalidParameter, c.FramesToSkip)
	case c.FrameSkip && c.FramesToSkip == 0:
		return fmt.Errorf("%w: frame_skip needs frames_to_skip of at least 1", ErrInvalidParameter)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %v", ErrInvalidParameter, err)
		}
	}
	return nil
}

// withDefaults fills zero fields from DefaultConfig. FrameSkip is left as
// given; FramesToSkip is filled only when FrameSkip is on.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TPS == 0 {
		c.TPS = d.TPS
	}
	if c.ViewportScale == 0 {
		c.ViewportScale = d.ViewportScale
	}
	if c.MaxUpdatesPerFrame == 0 {
		c.MaxUpdatesPerFrame = d.MaxUpdatesPerFrame
	}
	if c.FrameSkip && c.FramesToSkip == 0 {
		c.FramesToSkip = d.FramesToSkip
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	return c
}
