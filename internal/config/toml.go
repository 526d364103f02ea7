// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Quiz QuizConfig `toml:"quiz"`
	ROI  ROIConfig  `toml:"roi"`
	Demo DemoConfig `toml:"demo"`
	UI   UIConfig   `toml:"ui"`
	Log  LogConfig  `toml:"log"`
}

// QuizConfig maps quiz-related settings.
type QuizConfig struct {
	Shuffle *bool   `toml:"shuffle"`
	Bank    *string `toml:"bank"`
}

// ROIConfig holds calculator defaults.
type ROIConfig struct {
	HourlyRate *float64 `toml:"hourly-rate"`
	ToolCost   *float64 `toml:"tool-cost"`
	Frequency  *string  `toml:"frequency"`
	Task       *string  `toml:"task"`
}

// DemoConfig holds demo defaults. Tick is a Go duration string.
type DemoConfig struct {
	ID   *string `toml:"id"`
	Tick *string `toml:"tick"`
}

// UIConfig holds theme settings.
type UIConfig struct {
	Accent *string `toml:"accent"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
