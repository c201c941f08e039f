// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Note: This package has no dependencies on other internal packages. Data
// loading, metrics and export live in their own packages and consume
// RunResult.

// Stage names used as keys in RunResult.Timings.
const (
	StageBuildMatrix = "build_matrix"
	StageFactorize   = "factorize"
	StageNeighbors   = "neighbors"
	StageRecommend   = "recommend"
	StageTotal       = "total"
)

// Engine coordinates one batch recommendation run.
type Engine struct {
	config *Config
	logger zerolog.Logger

	mu          sync.RWMutex
	factorizers []Factorizer
	neighbors   NeighborFinder
	runID       string
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:      cfg.Clone(),
		logger:      logger.With().Str("component", "recommend").Logger(),
		factorizers: make([]Factorizer, 0, 2),
	}, nil
}

// RegisterFactorizer adds a factorization backend. Backends produce results
// in registration order.
func (e *Engine) RegisterFactorizer(f Factorizer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.factorizers = append(e.factorizers, f)
	e.logger.Info().
		Str("backend", f.Name()).
		Msg("registered factorizer")
}

// SetNeighborFinder sets the similarity module used for neighbor lookup.
func (e *Engine) SetNeighborFinder(n NeighborFinder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.neighbors = n
}

// SetRunID fixes the identifier reported for the next runs. When unset a
// random UUID is generated per run.
func (e *Engine) SetRunID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runID = id
}

// Run executes the full pipeline over records: build the interaction matrix,
// factorize with every registered backend while searching neighbors, then
// recommend, enrich and evaluate per backend. Any error aborts the run and no
// partial result is returned.
func (e *Engine) Run(ctx context.Context, records []VisitRecord) (*RunResult, error) {
	e.mu.RLock()
	factorizers := make([]Factorizer, len(e.factorizers))
	copy(factorizers, e.factorizers)
	neighbors := e.neighbors
	runID := e.runID
	e.mu.RUnlock()

	if len(factorizers) == 0 {
		return nil, fmt.Errorf("no factorizers registered")
	}
	if runID == "" {
		runID = uuid.New().String()
	}

	cfg := e.config
	logger := e.logger.With().
		Str("run_id", runID).
		Int64("target_user", cfg.TargetUserID).
		Logger()

	start := time.Now()
	result := &RunResult{
		RunID:        runID,
		TargetUserID: cfg.TargetUserID,
		Timings:      make(map[string]time.Duration),
	}

	logger.Info().Int("records", len(records)).Msg("starting recommendation run")

	stageStart := time.Now()
	matrix, err := BuildInteractionMatrix(records)
	if err != nil {
		return nil, err
	}
	result.Matrix = matrix.Stats()
	result.Timings[StageBuildMatrix] = time.Since(stageStart)

	logger.Info().
		Int("users", result.Matrix.Users).
		Int("categories", result.Matrix.Categories).
		Float64("density", result.Matrix.Density).
		Msg("interaction matrix built")

	if _, ok := matrix.UserIndex(cfg.TargetUserID); !ok {
		return nil, fmt.Errorf("%w: target user %d has no visit records", ErrUnknownUser, cfg.TargetUserID)
	}

	factors, similar, err := e.runParallelPhase(ctx, matrix, factorizers, neighbors, result.Timings, logger)
	if err != nil {
		return nil, err
	}

	stageStart = time.Now()
	relevant := RelevantCategories(cfg.TargetUserID, records)
	universe := CategoryUniverse(records)

	result.Backends = make([]BackendResult, 0, len(factors))
	for _, fp := range factors {
		br, err := e.evaluateBackend(fp, matrix, records, relevant, universe)
		if err != nil {
			return nil, err
		}
		logger.Info().
			Str("backend", br.Backend).
			Strs("recommendations", br.Recommendations).
			Float64("precision", br.Metrics.Precision).
			Float64("recall", br.Metrics.Recall).
			Float64("coverage", br.Metrics.Coverage).
			Msg("backend evaluated")
		result.Backends = append(result.Backends, br)
	}

	if similar != nil {
		result.SimilarUsers = similar
		result.NeighborVenues = SummarizeNeighborVenues(records, similar, cfg.SummarySize)
	}
	result.Timings[StageRecommend] = time.Since(stageStart)

	result.Timings[StageTotal] = time.Since(start)
	result.CompletedAt = time.Now()

	logger.Info().
		Int("backends", len(result.Backends)).
		Int("neighbors", len(result.SimilarUsers)).
		Dur("duration", result.Timings[StageTotal]).
		Msg("recommendation run complete")

	return result, nil
}

// runParallelPhase factorizes with every backend and searches neighbors
// concurrently. The first error cancels the remaining work.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) runParallelPhase(
	ctx context.Context,
	matrix *InteractionMatrix,
	factorizers []Factorizer,
	neighbors NeighborFinder,
	timings map[string]time.Duration,
	logger zerolog.Logger,
) ([]*FactorPair, []SimilarUser, error) {
	cfg := e.config
	phaseCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(phaseCtx)

	var timingsMu sync.Mutex
	record := func(stage string, d time.Duration) {
		timingsMu.Lock()
		timings[stage] = d
		timingsMu.Unlock()
	}

	factors := make([]*FactorPair, len(factorizers))
	for i, f := range factorizers {
		g.Go(func() error {
			t := time.Now()
			fp, err := f.Factorize(gctx, matrix, cfg.Rank)
			if err != nil {
				return fmt.Errorf("%s factorization: %w", f.Name(), err)
			}
			d := time.Since(t)
			record(StageFactorize+":"+f.Name(), d)
			factors[i] = fp

			logger.Info().
				Str("backend", f.Name()).
				Int("rank", fp.Rank).
				Int("iterations", fp.Diagnostics.Iterations).
				Bool("converged", fp.Diagnostics.Converged).
				Float64("reconstruction_error", fp.Diagnostics.ReconstructionError).
				Dur("duration", d).
				Msg("factorization complete")
			return nil
		})
	}

	var similar []SimilarUser
	if neighbors != nil {
		g.Go(func() error {
			t := time.Now()
			users, err := neighbors.SimilarUsers(gctx, matrix, cfg.TargetUserID, cfg.Neighbors)
			if err != nil {
				return fmt.Errorf("neighbor search: %w", err)
			}
			record(StageNeighbors, time.Since(t))
			similar = users
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return factors, similar, nil
}

func (e *Engine) evaluateBackend(
	fp *FactorPair,
	matrix *InteractionMatrix,
	records []VisitRecord,
	relevant, universe []string,
) (BackendResult, error) {
	cfg := e.config
	recs, err := GenerateRecommendations(cfg.TargetUserID, fp, matrix, cfg.TopN)
	if err != nil {
		return BackendResult{}, fmt.Errorf("%s recommendations: %w", fp.Backend, err)
	}

	enriched, err := EnrichRecommendations(recs, records)
	if err != nil {
		return BackendResult{}, fmt.Errorf("%s enrichment: %w", fp.Backend, err)
	}

	return BackendResult{
		Backend:         fp.Backend,
		Factors:         fp,
		Recommendations: recs,
		Enriched:        enriched,
		Metrics:         ComputeMetrics(recs, relevant, universe),
	}, nil
}
