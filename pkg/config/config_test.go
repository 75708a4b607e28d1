package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"980ms", 980 * time.Millisecond, false},
		{"2s", 2 * time.Second, false},
		{"", 0, false},
		{"-1s", 0, true},
		{"forever", 0, true},
	}
	for _, tt := range tests {
		var d Duration
		err := d.UnmarshalText([]byte(tt.in))
		if (err != nil) != tt.wantErr {
			t.Errorf("UnmarshalText(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && d.Duration != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.in, d.Duration, tt.want)
		}
	}
}

func TestDurationMarshalRoundTrip(t *testing.T) {
	d := Duration{1500 * time.Millisecond}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back Duration
	if err := back.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText(%q): %v", text, err)
	}
	if back.Duration != d.Duration {
		t.Errorf("round trip = %v, want %v", back.Duration, d.Duration)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Spark.Duration.Duration != 980*time.Millisecond {
		t.Errorf("default duration = %v, want 980ms", cfg.Spark.Duration.Duration)
	}
	if cfg.Image.Protocol != "auto" {
		t.Errorf("default protocol = %q, want auto", cfg.Image.Protocol)
	}
	if cfg.Theme.Name != "default" {
		t.Errorf("default theme = %q", cfg.Theme.Name)
	}
	if cfg.Collector.Source != "mem" || cfg.Collector.Interval.Duration != 2*time.Second {
		t.Errorf("default collector = %q/%v, want mem/2s",
			cfg.Collector.Source, cfg.Collector.Interval.Duration)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults fail validation: %v", err)
	}
}

func TestLoadFromReader(t *testing.T) {
	doc := `
[general]
log_level = "debug"

[spark]
color = "rgba(239,68,68,0.9)"
compact = true
duration = "1500ms"
line_width = 3.5
label_left = "2019"
label_right = "2026"

[image]
protocol = "kitty"

[collector]
enabled = true
source = "cpu"
interval = "5s"
`
	t.Setenv("PSPARK_PROTOCOL", "")
	t.Setenv("PSPARK_THEME", "")

	cfg, err := LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("log_level = %q", cfg.General.LogLevel)
	}
	if cfg.Spark.Color != "rgba(239,68,68,0.9)" || !cfg.Spark.Compact {
		t.Errorf("spark = %+v", cfg.Spark)
	}
	if cfg.Spark.Duration.Duration != 1500*time.Millisecond {
		t.Errorf("duration = %v, want 1.5s", cfg.Spark.Duration.Duration)
	}
	if cfg.Spark.LineWidth != 3.5 {
		t.Errorf("line_width = %v", cfg.Spark.LineWidth)
	}
	if cfg.Spark.LabelLeft != "2019" || cfg.Spark.LabelRight != "2026" {
		t.Errorf("labels = %q/%q", cfg.Spark.LabelLeft, cfg.Spark.LabelRight)
	}
	if cfg.Image.Protocol != "kitty" {
		t.Errorf("protocol = %q", cfg.Image.Protocol)
	}
	if !cfg.Collector.Enabled || cfg.Collector.Source != "cpu" {
		t.Errorf("collector = %+v", cfg.Collector)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	t.Setenv("PSPARK_PROTOCOL", "")
	t.Setenv("PSPARK_THEME", "")
	cfg, err := LoadFromReader(strings.NewReader(`[spark]` + "\ncompact = true\n"))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if !cfg.Spark.Compact {
		t.Error("compact not set")
	}
	if cfg.Spark.Duration.Duration != 980*time.Millisecond {
		t.Errorf("duration lost its default: %v", cfg.Spark.Duration.Duration)
	}
	if cfg.Image.Protocol != "auto" {
		t.Errorf("protocol lost its default: %q", cfg.Image.Protocol)
	}
}

func TestLoadFromReaderBadDocument(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader(`[spark]` + "\nduration = \"-5s\"\n")); err == nil {
		t.Error("expected error for negative duration")
	}
	if _, err := LoadFromReader(strings.NewReader("not [valid toml")); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PSPARK_PROTOCOL", "sixel")
	t.Setenv("PSPARK_THEME", "crimson")
	cfg, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Image.Protocol != "sixel" {
		t.Errorf("env protocol override = %q, want sixel", cfg.Image.Protocol)
	}
	if cfg.Theme.Name != "crimson" {
		t.Errorf("env theme override = %q, want crimson", cfg.Theme.Name)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}
	if cfg.Theme.Name != "default" {
		t.Errorf("theme = %q, want default", cfg.Theme.Name)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("PSPARK_PROTOCOL", "")
	t.Setenv("PSPARK_THEME", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[theme]\nname = \"sky\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Theme.Name != "sky" {
		t.Errorf("theme = %q, want sky", cfg.Theme.Name)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad log_level")
	}
	cfg = DefaultConfig()
	cfg.Collector.Source = "disk"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad collector source")
	}
}

func TestOverride(t *testing.T) {
	if got := Override(2.5); got != 2.5 {
		t.Errorf("Override(2.5) = %v", got)
	}
	for _, v := range []float64{0, -1, math.Inf(1), math.NaN()} {
		if got := Override(v); !math.IsNaN(got) {
			t.Errorf("Override(%v) = %v, want NaN", v, got)
		}
	}
}
