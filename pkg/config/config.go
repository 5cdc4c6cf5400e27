// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"github.com/user/rasterkit/pkg/pipeline"
	"github.com/user/rasterkit/pkg/raster"
	"gopkg.in/yaml.v3"
)

// Config represents a full pipeline run: input, output, codec settings and
// the ordered operation steps.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`

	// Encoding
	Compression int `yaml:"compression"` // PNG deflate level 0-9

	// Parallelism
	Workers int `yaml:"workers"` // 0 means one worker per CPU

	// Operations, applied in order
	Steps []pipeline.Step `yaml:"steps"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Compression: 6,
		Workers:     0,
	}
}

// LoadFromFile loads configuration from a YAML file, starting from Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate rejects values no codec or pipeline step could accept.
func (c Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("config: input path is required: %w", raster.ErrInvalidArgument)
	}
	if c.OutputPath == "" {
		return fmt.Errorf("config: output path is required: %w", raster.ErrInvalidArgument)
	}
	if c.Compression < 0 || c.Compression > 9 {
		return fmt.Errorf("config: compression level %d outside 0-9: %w", c.Compression, raster.ErrInvalidArgument)
	}
	return nil
}
