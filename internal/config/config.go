// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package config

import (
	"time"

	"github.com/tomtom215/venuerec/internal/logging"
	"github.com/tomtom215/venuerec/internal/recommend"
)

// Config holds all application configuration.
//
// Values are layered defaults < config file < environment variables by
// LoadWithKoanf.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Database  DatabaseConfig  `koanf:"database"`
	Input     InputConfig     `koanf:"input"`
	Output    OutputConfig    `koanf:"output"`
	Recommend RecommendConfig `koanf:"recommend"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// DatabaseConfig holds DuckDB settings. An empty Path opens an in-memory
// database, which is all a batch run needs.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory" validate:"required"`
	Threads   int    `koanf:"threads" validate:"gte=0"` // 0 = use NumCPU
}

// InputConfig describes the visit log.
type InputConfig struct {
	// Path is the CSV visit log.
	Path string `koanf:"path" validate:"required"`

	// Filter is an optional CEL expression selecting which visit records
	// enter the matrix. Empty keeps everything.
	Filter string `koanf:"filter"`
}

// OutputConfig describes where artifacts are written.
type OutputConfig struct {
	Dir string `koanf:"dir" validate:"required"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	TargetUserID int64         `koanf:"target_user_id" validate:"gte=0"`
	Rank         int           `koanf:"rank" validate:"gte=1"`
	TopN         int           `koanf:"top_n" validate:"gte=1"`
	Neighbors    int           `koanf:"neighbors" validate:"gte=1"`
	SummarySize  int           `koanf:"summary_size" validate:"gte=1"`
	Seed         int64         `koanf:"seed"`
	Backends     []string      `koanf:"backends" validate:"min=1,dive,oneof=nnf tsd"`
	NNF          NNFConfig     `koanf:"nnf"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
}

// NNFConfig holds non-negative factorization settings.
type NNFConfig struct {
	MaxIterations int     `koanf:"max_iterations" validate:"gte=1"`
	Tolerance     float64 `koanf:"tolerance" validate:"gte=0"`
}

// MetricsConfig holds Prometheus settings. Metrics are always collected;
// they are pushed only when PushgatewayURL is set.
type MetricsConfig struct {
	PushgatewayURL string `koanf:"pushgateway_url" validate:"omitempty,url"`
	Job            string `koanf:"job" validate:"required"`
}

// ToRecommendConfig converts the recommend section into the engine's
// configuration.
func (c *Config) ToRecommendConfig() *recommend.Config {
	return &recommend.Config{
		TargetUserID: c.Recommend.TargetUserID,
		Rank:         c.Recommend.Rank,
		TopN:         c.Recommend.TopN,
		Neighbors:    c.Recommend.Neighbors,
		SummarySize:  c.Recommend.SummarySize,
		Seed:         c.Recommend.Seed,
		NNF: recommend.NNFConfig{
			MaxIterations: c.Recommend.NNF.MaxIterations,
			Tolerance:     c.Recommend.NNF.Tolerance,
		},
		Timeout: c.Recommend.Timeout,
	}
}

// ToLoggingConfig converts the logging section for logging.Init.
func (c *Config) ToLoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// HasBackend reports whether the named factorization backend is enabled.
func (c *Config) HasBackend(name string) bool {
	for _, b := range c.Recommend.Backends {
		if b == name {
			return true
		}
	}
	return false
}
