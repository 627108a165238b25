package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML configuration file.
type File struct {
	Theme        string        `yaml:"theme"`
	Presets      []int         `yaml:"presets"`
	TickInterval time.Duration `yaml:"tick_interval"`
	LogLevel     string        `yaml:"log_level"`
	DBPath       string        `yaml:"db_path"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() File {
	return File{
		Theme:        "default",
		Presets:      append([]int(nil), DefaultPresets...),
		TickInterval: TickInterval,
		LogLevel:     "info",
	}
}

// Load reads the file at path over the defaults. A missing file is not an error.
func Load(path string) (File, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Defaults(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the timer cannot run with.
func (f File) Validate() error {
	if len(f.Presets) == 0 {
		return errors.New("presets must not be empty")
	}
	if len(f.Presets) > 9 {
		return fmt.Errorf("at most 9 presets supported, got %d", len(f.Presets))
	}
	for _, p := range f.Presets {
		if p <= 0 {
			return fmt.Errorf("preset %d must be positive", p)
		}
	}
	if f.TickInterval < 10*time.Millisecond || f.TickInterval > MaxTickDelta {
		return fmt.Errorf("tick_interval %s out of range", f.TickInterval)
	}
	return nil
}
