// Package config handles application configuration loading and saving.
package config

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/phanxgames/anim2d"
	"github.com/phanxgames/anim2d/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. ANIM2D_RENDER_WIDTH.
const EnvPrefix = "ANIM2D"

// Config holds all application settings.
type Config struct {
	Scene   string        `yaml:"scene"`
	Render  RenderConfig  `yaml:"render"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds frame geometry and timing.
type RenderConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	TicksPerSecond float64 `yaml:"ticks_per_second" split_words:"true"`
	TicksPerFrame  int64   `yaml:"ticks_per_frame" split_words:"true"`
	MaxFrames      int     `yaml:"max_frames" split_words:"true"`
	// Frames is the number of frames to render; 0 renders until the scene
	// timeline ends.
	Frames     int    `yaml:"frames"`
	Workers    int    `yaml:"workers"`
	Background string `yaml:"background"`
}

// OutputConfig selects where frames are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	Zip string `yaml:"zip"`
}

// PreviewConfig selects live previews.
type PreviewConfig struct {
	Window   bool `yaml:"window"`
	Terminal bool `yaml:"terminal"`
	Scale    int  `yaml:"scale"`
	Hold     bool `yaml:"hold"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Console    bool   `yaml:"console"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" split_words:"true"`
	MaxBackups int    `yaml:"max_backups" split_words:"true"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	ac := anim2d.DefaultAnimationConfig()
	return &Config{
		Render: RenderConfig{
			Width:          ac.Width,
			Height:         ac.Height,
			TicksPerSecond: ac.TicksPerSecond,
			TicksPerFrame:  ac.TicksPerFrame,
			MaxFrames:      ac.MaxFrames,
			Workers:        2,
			Background:     "#ffffff",
		},
		Output: OutputConfig{
			Dir: "frames",
		},
		Preview: PreviewConfig{
			Scale: 1,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    true,
			MaxSizeMB:  20,
			MaxBackups: 3,
		},
	}
}

// BackgroundColor parses Render.Background as a hex color.
func (c *Config) BackgroundColor() (anim2d.Color, error) {
	col, err := colorful.Hex(c.Render.Background)
	if err != nil {
		return anim2d.Color{}, fmt.Errorf("background %q: %w", c.Render.Background, err)
	}
	return anim2d.ColorFrom(col.Clamped()), nil
}

// Animation returns the animation settings.
func (c *Config) Animation() (anim2d.AnimationConfig, error) {
	bg, err := c.BackgroundColor()
	if err != nil {
		return anim2d.AnimationConfig{}, err
	}
	return anim2d.AnimationConfig{
		Width:          c.Render.Width,
		Height:         c.Render.Height,
		TicksPerSecond: c.Render.TicksPerSecond,
		TicksPerFrame:  c.Render.TicksPerFrame,
		MaxFrames:      c.Render.MaxFrames,
		Background:     bg,
	}, nil
}

// Logger returns the logger settings.
func (c *Config) Logger() logger.Config {
	lc := logger.Config{
		Level:   c.Logging.Level,
		Console: c.Logging.Console,
	}
	if c.Logging.File != "" {
		lc.File = logger.DefaultFileConfig(c.Logging.File)
		lc.File.MaxSizeMB = c.Logging.MaxSizeMB
		lc.File.MaxBackups = c.Logging.MaxBackups
	}
	return lc
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height)
	}
	if !(c.Render.TicksPerSecond > 0) {
		return fmt.Errorf("ticks per second %g must be positive", c.Render.TicksPerSecond)
	}
	if c.Render.TicksPerFrame <= 0 {
		return fmt.Errorf("ticks per frame %d must be positive", c.Render.TicksPerFrame)
	}
	if c.Render.Frames < 0 || c.Render.MaxFrames < 0 {
		return fmt.Errorf("frame counts must not be negative")
	}
	if c.Render.MaxFrames > 0 && c.Render.Frames > c.Render.MaxFrames {
		return fmt.Errorf("%d frames requested, limit is %d", c.Render.Frames, c.Render.MaxFrames)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Preview.Scale < 1 {
		return fmt.Errorf("preview scale %d must be at least 1", c.Preview.Scale)
	}
	return nil
}
