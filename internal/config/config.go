// Package config holds the editor's yaml-backed settings.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all compedit configuration.
type Config struct {
	Editor  EditorConfig  `yaml:"editor"`
	Watcher WatcherConfig `yaml:"watcher"`
	Logging LoggingConfig `yaml:"logging"`
}

// EditorConfig controls document defaults.
type EditorConfig struct {
	// DefaultClassName names a document whose root has no class name yet.
	DefaultClassName string `yaml:"default_class_name"`

	// JitterMin/JitterMax bound the random placement offset (px, per axis)
	// for newly added components.
	JitterMin int `yaml:"jitter_min"`
	JitterMax int `yaml:"jitter_max"`
}

// WatcherConfig controls the backing-file watcher.
type WatcherConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Debounce string `yaml:"debounce"` // duration string, e.g. "500ms"
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			DefaultClassName: "NewComponent",
			JitterMin:        100,
			JitterMax:        200,
		},
		Watcher: WatcherConfig{
			Enabled:  true,
			Debounce: "500ms",
		},
	}
}

// Load reads a yaml config file over the defaults. A missing file is not an
// error: it yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DebounceDuration parses the watcher debounce, falling back to 500ms for
// empty or malformed values.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Watcher.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}
