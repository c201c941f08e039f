// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/venuerec/config.yaml",
	"/etc/venuerec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Path:      "", // in-memory
			MaxMemory: "1GB",
			Threads:   0,
		},
		Input: InputConfig{
			Path:   "clean_data.csv",
			Filter: "",
		},
		Output: OutputConfig{
			Dir: "output",
		},
		Recommend: RecommendConfig{
			TargetUserID: 42,
			Rank:         40,
			TopN:         10,
			Neighbors:    10,
			SummarySize:  10,
			Seed:         0,
			Backends:     []string{"nnf", "tsd"},
			NNF: NNFConfig{
				MaxIterations: 200,
				Tolerance:     1e-4,
			},
			Timeout: 5 * time.Minute,
		},
		Metrics: MetricsConfig{
			PushgatewayURL: "",
			Job:            "venuerec",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// RECOMMEND_RANK -> recommend.rank
	// NNF_MAX_ITERATIONS -> recommend.nnf.max_iterations
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"recommend.backends",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.ToLower(strings.TrimSpace(p))
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// DuckDB
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	// Input / output
	"visits_path":   "input.path",
	"visits_filter": "input.filter",
	"output_dir":    "output.dir",

	// Recommendation engine
	"target_user_id":         "recommend.target_user_id",
	"recommend_rank":         "recommend.rank",
	"recommend_top_n":        "recommend.top_n",
	"recommend_neighbors":    "recommend.neighbors",
	"recommend_summary_size": "recommend.summary_size",
	"recommend_seed":         "recommend.seed",
	"recommend_backends":     "recommend.backends",
	"recommend_timeout":      "recommend.timeout",
	"nnf_max_iterations":     "recommend.nnf.max_iterations",
	"nnf_tolerance":          "recommend.nnf.tolerance",

	// Metrics
	"metrics_pushgateway_url": "metrics.pushgateway_url",
	"metrics_job":             "metrics.job",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - VISITS_PATH -> input.path
//   - RECOMMEND_RANK -> recommend.rank
//   - NNF_TOLERANCE -> recommend.nnf.tolerance
//   - DUCKDB_PATH -> database.path
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// never reach the config.
	return ""
}
