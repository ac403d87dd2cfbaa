package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/Swind/markbench/core"
	"github.com/Swind/markbench/messages"
	"github.com/Swind/markbench/workloads"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "markbench.yaml"

// Config is the optional markbench.yaml file. Command-line flags override
// every field.
type Config struct {
	Suite           string        `yaml:"suite"`
	Duration        time.Duration `yaml:"duration"`
	Locale          string        `yaml:"locale"`
	PinLanes        bool          `yaml:"pin_lanes"`
	ContinueOnError bool          `yaml:"continue_on_error"`
	MetricsAddr     string        `yaml:"metrics_addr"`
	LogLevel        string        `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Suite:    workloads.DefaultSuite,
		Duration: core.DefaultTestDuration,
		Locale:   messages.DefaultLocale,
		LogLevel: "warn",
	}
}

// LoadConfig reads path over DefaultConfig. A missing file is only an
// error when required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Duration < 0 {
		return cfg, fmt.Errorf("config %s: negative duration %v", path, cfg.Duration)
	}
	return cfg, nil
}
