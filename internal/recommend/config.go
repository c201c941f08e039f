// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// TargetUserID is the user recommendations are generated for.
	TargetUserID int64 `json:"target_user_id"`

	// Rank is the number of latent factors k.
	// Default: 40.
	Rank int `json:"rank"`

	// TopN is the length of each recommendation list.
	// Default: 10.
	TopN int `json:"top_n"`

	// Neighbors is the number of similar users to report.
	// Default: 10.
	Neighbors int `json:"neighbors"`

	// SummarySize is the number of neighbor locations to report.
	// Default: 10.
	SummarySize int `json:"summary_size"`

	// Seed drives every randomized initialization. It is used as given;
	// zero is a valid seed.
	Seed int64 `json:"seed"`

	// NNF contains parameters for non-negative factorization.
	NNF NNFConfig `json:"nnf"`

	// Timeout bounds the factorization and neighbor phase.
	// Default: 5m.
	Timeout time.Duration `json:"timeout"`
}

// NNFConfig contains parameters for non-negative factorization.
type NNFConfig struct {
	// MaxIterations is the hard bound on update rounds.
	// Default: 200.
	MaxIterations int `json:"max_iterations"`

	// Tolerance stops iteration once the relative improvement of the
	// reconstruction error falls below it.
	// Default: 1e-4.
	Tolerance float64 `json:"tolerance"`
}

// DefaultConfig returns a Config with the standard batch defaults.
func DefaultConfig() *Config {
	return &Config{
		TargetUserID: 42,
		Rank:         40,
		TopN:         10,
		Neighbors:    10,
		SummarySize:  10,
		Seed:         0,
		NNF: NNFConfig{
			MaxIterations: 200,
			Tolerance:     1e-4,
		},
		Timeout: 5 * time.Minute,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TargetUserID < 0 {
		return fmt.Errorf("target_user_id must be non-negative, got %d", c.TargetUserID)
	}
	if c.Rank < 1 {
		return fmt.Errorf("rank must be positive, got %d", c.Rank)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.Neighbors < 1 {
		return fmt.Errorf("neighbors must be positive, got %d", c.Neighbors)
	}
	if c.SummarySize < 1 {
		return fmt.Errorf("summary_size must be positive, got %d", c.SummarySize)
	}
	if c.NNF.MaxIterations < 1 {
		return fmt.Errorf("nnf.max_iterations must be positive, got %d", c.NNF.MaxIterations)
	}
	if c.NNF.Tolerance < 0 {
		return fmt.Errorf("nnf.tolerance must be non-negative, got %g", c.NNF.Tolerance)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All fields are value types.
	clone := *c
	return &clone
}

// MarshalJSON renders Timeout as a duration string.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Timeout string `json:"timeout"`
	}{
		Alias:   (*Alias)(c),
		Timeout: c.Timeout.String(),
	})
}
