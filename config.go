package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the store options, for applications keeping
// store settings next to the rest of their configuration.
//
// Example:
//
//	name: app
//	validate_actions: true
//	listener_policy: fail-fast
//	log_level: debug
type Config struct {
	// Name of the store in logs and metrics. Defaults to "store".
	Name string `yaml:"name"`

	// ValidateActions rejects actions with an empty kind.
	ValidateActions bool `yaml:"validate_actions"`

	// ListenerPolicy is "isolate" (default) or "fail-fast".
	ListenerPolicy string `yaml:"listener_policy"`

	// LogLevel enables a production zap logger at that level.
	// Empty keeps the no-op logger.
	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: reading config: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses a YAML config. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("store: parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := ParseListenerPolicy(c.ListenerPolicy); err != nil {
		return err
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("store: invalid log level: %w", err)
		}
	}

	return nil
}

// Options converts the config into options for New.
func (c *Config) Options() ([]Option, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	policy, _ := ParseListenerPolicy(c.ListenerPolicy)
	opts := []Option{
		WithActionValidation(c.ValidateActions),
		WithListenerPolicy(policy),
	}

	if c.Name != "" {
		opts = append(opts, WithName(c.Name))
	}

	if c.LogLevel != "" {
		level, _ := zapcore.ParseLevel(c.LogLevel)

		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		logger, err := zc.Build()
		if err != nil {
			return nil, fmt.Errorf("store: building logger: %w", err)
		}

		opts = append(opts, WithLogger(logger))
	}

	return opts, nil
}
