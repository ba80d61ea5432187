// Package config provides configuration for the sightings pipeline.
//
// Logging and observability settings come from environment variables, matching
// how the tool is deployed in batch schedulers. Pipeline thresholds have
// compiled-in defaults and may be overridden by an optional YAML file so
// analysts can tune filters without rebuilding.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidDurationBounds = errors.New("pipeline.duration_max_seconds must exceed pipeline.duration_min_seconds")
	ErrInvalidLongThresholds = errors.New("pipeline.very_long_duration_seconds must be >= pipeline.long_duration_seconds")
	ErrInvalidMaxPoints      = errors.New("globe.max_points must be at least 1")
	ErrInvalidScaleBounds    = errors.New("globe.max_scale_seconds must exceed globe.min_scale_seconds, both positive")
	ErrInvalidLogFormat      = errors.New("LOG_FORMAT must be 'json' or 'text'")
)

// Config holds all tool settings.
type Config struct {
	LogLevel       string
	LogFormat      string
	PushgatewayURL string

	Pipeline PipelineRules `yaml:"pipeline"`
	Globe    GlobeRules    `yaml:"globe"`
}

// PipelineRules are the cleaning and summary thresholds.
type PipelineRules struct {
	// Duration bounds are exclusive on both ends: a duration of exactly
	// DurationMinSeconds or DurationMaxSeconds drops the record.
	DurationMinSeconds float64 `yaml:"duration_min_seconds"`
	DurationMaxSeconds float64 `yaml:"duration_max_seconds"`

	// Long-duration proportion thresholds (strictly greater than).
	LongDurationSeconds     float64 `yaml:"long_duration_seconds"`
	VeryLongDurationSeconds float64 `yaml:"very_long_duration_seconds"`
}

// GlobeRules control sampling and visual scaling of the globe export.
type GlobeRules struct {
	MaxPoints  int   `yaml:"max_points"`
	SampleSeed int64 `yaml:"sample_seed"`

	// Visual scale clamp for the log-magnitude transform. Independent of the
	// cleaning bounds: it affects point size only, never inclusion.
	MinScaleSeconds float64 `yaml:"min_scale_seconds"`
	MaxScaleSeconds float64 `yaml:"max_scale_seconds"`
}

// Load reads configuration from the environment and, when path is non-empty,
// merges threshold overrides from the YAML file at path.
func Load(path string) (*Config, error) {
	cfg := &Config{
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
		Pipeline: PipelineRules{
			DurationMinSeconds:      0,
			DurationMaxSeconds:      604800, // 1 week
			LongDurationSeconds:     300,    // 5 minutes
			VeryLongDurationSeconds: 3600,   // 1 hour
		},
		Globe: GlobeRules{
			MaxPoints:       10000,
			SampleSeed:      42,
			MinScaleSeconds: 1,
			MaxScaleSeconds: 86400, // 1 day
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return ErrInvalidLogFormat
	}
	if c.Pipeline.DurationMaxSeconds <= c.Pipeline.DurationMinSeconds {
		return ErrInvalidDurationBounds
	}
	if c.Pipeline.VeryLongDurationSeconds < c.Pipeline.LongDurationSeconds {
		return ErrInvalidLongThresholds
	}
	if c.Globe.MaxPoints < 1 {
		return ErrInvalidMaxPoints
	}
	if c.Globe.MinScaleSeconds <= 0 || c.Globe.MaxScaleSeconds <= c.Globe.MinScaleSeconds {
		return ErrInvalidScaleBounds
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
