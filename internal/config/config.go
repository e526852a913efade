// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all application settings.
type Config struct {
	Window    WindowConfig    `yaml:"window" toml:"window"`
	Capture   CaptureConfig   `yaml:"capture" toml:"capture"`
	Warper    WarperConfig    `yaml:"warper" toml:"warper"`
	Source    SourceConfig    `yaml:"source" toml:"source"`
	Animation AnimationConfig `yaml:"animation" toml:"animation"`
	Audio     AudioConfig     `yaml:"audio" toml:"audio"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// CaptureConfig holds the face capture settings.
type CaptureConfig struct {
	Width         int     `yaml:"width" toml:"width"`
	Height        int     `yaml:"height" toml:"height"`
	Magnification float32 `yaml:"magnification" toml:"magnification"`
	FPS           float32 `yaml:"fps" toml:"fps"` // animation frames per second
}

// WarperConfig selects the slit-scan warper instead of the face controller.
type WarperConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode"` // full, eyes or mouth
	Grid    bool   `yaml:"grid" toml:"grid"`
}

// SourceConfig selects the capture source.
type SourceConfig struct {
	Kind       string `yaml:"kind" toml:"kind"` // synthetic or still
	ImagePath  string `yaml:"image_path" toml:"image_path"`
	PointsPath string `yaml:"points_path" toml:"points_path"`
}

// AnimationConfig locates the keyframe data. An empty path uses the
// built-in demo animation.
type AnimationConfig struct {
	Path string `yaml:"path" toml:"path"`
	// Watch reloads the file when it changes on disk.
	Watch bool `yaml:"watch" toml:"watch"`
}

// AudioConfig holds the capture sound settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"`
	// CaptureSound is a WAV file played on capture instead of the
	// built-in shutter click.
	CaptureSound string `yaml:"capture_sound" toml:"capture_sound"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Source kinds.
const (
	SourceSynthetic = "synthetic"
	SourceStill     = "still"
)

// ErrInvalid reports a config value outside its allowed set.
var ErrInvalid = errors.New("invalid config")

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Fukuwarai",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Capture: CaptureConfig{
			Width:         320,
			Height:        180,
			Magnification: 150,
			FPS:           30,
		},
		Warper: WarperConfig{
			Mode: "full",
		},
		Source: SourceConfig{
			Kind: SourceSynthetic,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values that have a fixed set of choices or must be
// positive.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	}
	if c.Capture.Width <= 0 || c.Capture.Height <= 0 {
		return fmt.Errorf("capture size %dx%d: %w", c.Capture.Width, c.Capture.Height, ErrInvalid)
	}
	if c.Capture.FPS <= 0 {
		return fmt.Errorf("capture fps %g: %w", c.Capture.FPS, ErrInvalid)
	}
	switch c.Warper.Mode {
	case "full", "eyes", "mouth":
	default:
		return fmt.Errorf("warper mode %q: %w", c.Warper.Mode, ErrInvalid)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %g: %w", c.Audio.Volume, ErrInvalid)
	}
	switch c.Source.Kind {
	case SourceSynthetic:
	case SourceStill:
		if c.Source.ImagePath == "" || c.Source.PointsPath == "" {
			return fmt.Errorf("still source needs image_path and points_path: %w", ErrInvalid)
		}
	default:
		return fmt.Errorf("source kind %q: %w", c.Source.Kind, ErrInvalid)
	}
	return nil
}
