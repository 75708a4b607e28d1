package config

import (
	"fmt"
	"math"
)

// Config is the root configuration document.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Spark     SparkConfig     `toml:"spark"`
	Image     ImageConfig     `toml:"image"`
	Theme     ThemeConfig     `toml:"theme"`
	Timeline  TimelineConfig  `toml:"timeline"`
	Collector CollectorConfig `toml:"collector"`
}

// GeneralConfig holds top-level behaviour settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"` // debug|info|warn|error
}

// SparkConfig holds the chart engine defaults. Every field is optional; the
// engine substitutes its own defaults for zero or out-of-range values.
type SparkConfig struct {
	// Color is an "rgba(r,g,b,a)" stroke color. Unparseable values fall
	// back to the engine's default stroke.
	Color string `toml:"color"`

	// Compact selects tighter paddings and a thinner stroke.
	Compact bool `toml:"compact"`

	// Duration is the animation length; clamped by the engine to
	// [200ms, 4s]. Zero keeps the 980ms default.
	Duration Duration `toml:"duration"`

	// LineWidth, GlowRadius, and AreaAlpha override the compact-derived
	// defaults when positive.
	LineWidth  float64 `toml:"line_width"`
	GlowRadius float64 `toml:"glow_radius"`
	AreaAlpha  float64 `toml:"area_alpha"`

	// LabelLeft / LabelRight are the axis span labels. Both empty omits
	// axis text.
	LabelLeft  string `toml:"label_left"`
	LabelRight string `toml:"label_right"`

	// AriaLabel is the accessible description attached to the rendered
	// surface.
	AriaLabel string `toml:"aria_label"`
}

// ImageConfig controls raster output.
type ImageConfig struct {
	// Protocol forces a graphics protocol: auto|kitty|iterm2|sixel|
	// halfblocks|none.
	Protocol string `toml:"protocol"`
}

// ThemeConfig selects the color theme.
type ThemeConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"` // optional custom theme TOML file
}

// TimelineConfig points at the milestone data file.
type TimelineConfig struct {
	Path string `toml:"path"`
}

// CollectorConfig controls the live metric collector used by demo mode.
type CollectorConfig struct {
	Enabled  bool     `toml:"enabled"`
	Source   string   `toml:"source"` // mem|cpu
	Interval Duration `toml:"interval"`
}

// Validate checks the few fields that have constrained value sets. Numeric
// chart knobs are deliberately not validated here: the engine clamps or
// defaults them silently.
func (c *Config) Validate() error {
	switch c.General.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.General.LogLevel)
	}
	switch c.Collector.Source {
	case "", "mem", "cpu":
	default:
		return fmt.Errorf("invalid collector source %q", c.Collector.Source)
	}
	return nil
}

// Override returns v if positive and finite, otherwise NaN (unset) for the
// engine's Overrides contract.
func Override(v float64) float64 {
	if v > 0 && !math.IsInf(v, 0) {
		return v
	}
	return math.NaN()
}
