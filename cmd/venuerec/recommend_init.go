// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/venuerec/internal/config"
	"github.com/tomtom215/venuerec/internal/recommend"
	"github.com/tomtom215/venuerec/internal/recommend/algorithms"
)

// backendRegistrar holds dependencies for backend registration.
type backendRegistrar struct {
	engine  *recommend.Engine
	cfg     *config.Config
	backend *recommend.Config
	logger  zerolog.Logger
}

// initRecommend creates the engine with the configured backends and the
// neighbor similarity module.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	logger.Info().
		Strs("backends", cfg.Recommend.Backends).
		Int64("target_user_id", cfg.Recommend.TargetUserID).
		Int("rank", cfg.Recommend.Rank).
		Int64("seed", cfg.Recommend.Seed).
		Msg("initializing recommendation engine")

	rc := cfg.ToRecommendConfig()
	engine, err := recommend.NewEngine(rc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendation engine: %w", err)
	}

	r := &backendRegistrar{engine: engine, cfg: cfg, backend: rc, logger: logger}
	if err := r.registerBackends(); err != nil {
		return nil, err
	}

	engine.SetNeighborFinder(algorithms.NewNeighborSimilarity())
	return engine, nil
}

// registerBackends registers every configured backend in configuration
// order, which is also the order of the results.
func (r *backendRegistrar) registerBackends() error {
	for _, name := range r.cfg.Recommend.Backends {
		f, err := r.newFactorizer(name)
		if err != nil {
			return err
		}
		r.engine.RegisterFactorizer(f)
	}
	return nil
}

func (r *backendRegistrar) newFactorizer(name string) (recommend.Factorizer, error) {
	switch name {
	case algorithms.NNFName:
		return algorithms.NewNNF(r.backend.NNF, r.backend.Seed), nil
	case algorithms.TSDName:
		return algorithms.NewTSD(), nil
	default:
		return nil, fmt.Errorf("unknown factorization backend %q", name)
	}
}
