package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the standard config path. Search order:
//
//  1. $XDG_CONFIG_HOME/pulse-spark/config.toml
//  2. ~/.config/pulse-spark/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return DefaultConfig(), nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields the defaults rather than an error.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Spark: SparkConfig{
			Duration: Duration{980 * time.Millisecond},
		},
		Image: ImageConfig{
			Protocol: "auto",
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Collector: CollectorConfig{
			Source:   "mem",
			Interval: Duration{2 * time.Second},
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config
// values. PSPARK_PROTOCOL and PSPARK_THEME mirror the TOML fields for quick
// experimentation without editing the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PSPARK_PROTOCOL"); v != "" {
		cfg.Image.Protocol = v
	}
	if v := os.Getenv("PSPARK_THEME"); v != "" {
		cfg.Theme.Name = v
	}
}

func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "pulse-spark", "config.toml"))
	}
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "pulse-spark", "config.toml"))
	}
	return paths
}
