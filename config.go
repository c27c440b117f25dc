package animator

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a config document fails validation.
var ErrInvalidConfig = errors.New("animator: invalid config")

// Config holds session tuning loaded from YAML. Fields missing from the
// document keep their DefaultConfig values.
type Config struct {
	// Transition is the crossfade duration used by Session.Mix.
	Transition float64 `yaml:"transition"`
	// Warp selects phase-matched crossfades for Session.Mix.
	Warp bool `yaml:"warp"`
	// AutoReturn sends unclamped one-shot clips back to the first action
	// when they finish.
	AutoReturn bool `yaml:"auto_return"`
	// Debug turns on package debug mode (see SetDebugMode).
	Debug bool `yaml:"debug"`
	// LogLevel configures the package logger; empty leaves it untouched.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the stock settings: 0.1s warped crossfades with
// automatic return after one-shots.
func DefaultConfig() Config {
	return Config{
		Transition: DefaultTransition,
		Warp:       true,
		AutoReturn: true,
	}
}

// ParseConfig decodes a YAML config document over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("animator: unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes the YAML config at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("animator: load config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// Validate reports whether the config can be applied.
func (c Config) Validate() error {
	if c.Transition < 0 {
		return fmt.Errorf("%w: transition %v is negative", ErrInvalidConfig, c.Transition)
	}
	return nil
}

// mixOptions returns the Mix defaults this config selects.
func (c Config) mixOptions() MixOptions {
	return MixOptions{Transition: c.Transition, Weight: DefaultWeight, Warp: c.Warp}
}
