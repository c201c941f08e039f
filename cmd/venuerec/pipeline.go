// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/venuerec/internal/config"
	"github.com/tomtom215/venuerec/internal/database"
	"github.com/tomtom215/venuerec/internal/filter"
	"github.com/tomtom215/venuerec/internal/logging"
	"github.com/tomtom215/venuerec/internal/metrics"
	"github.com/tomtom215/venuerec/internal/recommend"
)

// Pipeline stages outside the engine, used as metric labels.
const (
	stageConfig = "config"
	stageLoad   = "load"
	stageFilter = "filter"
	stageEngine = "engine"
	stageExport = "export"
)

// runPipeline executes one batch run: load, filter, recommend and export.
// Artifacts are only written after the engine succeeded.
func runPipeline(ctx context.Context, cfg *config.Config) (*recommend.RunResult, error) {
	log := logging.Ctx(ctx)

	if raw, err := json.Marshal(cfg.ToRecommendConfig()); err == nil {
		log.Info().
			RawJSON("recommend", raw).
			Str("input", cfg.Input.Path).
			Str("output", cfg.Output.Dir).
			Msg("Configuration loaded")
	}

	// Compile the filter before touching any data so a bad expression
	// fails fast.
	visitFilter, err := filter.Compile(cfg.Input.Filter)
	if err != nil {
		metrics.RecordRunError(stageConfig)
		return nil, fmt.Errorf("visit filter: %w", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		metrics.RecordRunError(stageLoad)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	start := time.Now()
	records, err := db.LoadVisitRecords(ctx, cfg.Input.Path)
	if err != nil {
		metrics.RecordRunError(stageLoad)
		return nil, fmt.Errorf("failed to load visit log: %w", err)
	}
	metrics.RecordStage(stageLoad, time.Since(start))
	metrics.RecordRecordsLoaded(len(records))

	if !visitFilter.IsPassThrough() {
		start = time.Now()
		before := len(records)
		records, err = visitFilter.Apply(records)
		if err != nil {
			metrics.RecordRunError(stageFilter)
			return nil, fmt.Errorf("failed to filter visit log: %w", err)
		}
		metrics.RecordStage(stageFilter, time.Since(start))
		log.Info().
			Str("filter", visitFilter.Expression()).
			Int("before", before).
			Int("after", len(records)).
			Msg("Visit filter applied")
	}

	engine, err := initRecommend(cfg, logging.WithComponent("engine"))
	if err != nil {
		metrics.RecordRunError(stageEngine)
		return nil, err
	}
	if runID := logging.RunIDFromContext(ctx); runID != "" {
		engine.SetRunID(runID)
	}

	result, err := engine.Run(ctx, records)
	if err != nil {
		metrics.RecordRunError(stageEngine)
		return nil, fmt.Errorf("recommendation run failed: %w", err)
	}

	start = time.Now()
	paths, err := db.ExportRun(ctx, cfg.Output.Dir, result)
	if err != nil {
		metrics.RecordRunError(stageExport)
		return nil, fmt.Errorf("failed to export artifacts: %w", err)
	}
	metrics.RecordStage(stageExport, time.Since(start))

	metrics.RecordRun(result)
	logSummary(ctx, result, paths)

	return result, nil
}

// logSummary logs the per-backend outcome of a run.
func logSummary(ctx context.Context, result *recommend.RunResult, paths []string) {
	log := logging.Ctx(ctx)
	for i := range result.Backends {
		b := &result.Backends[i]
		log.Info().
			Str("backend", b.Backend).
			Strs("recommendations", b.Recommendations).
			Float64("precision", b.Metrics.Precision).
			Float64("recall", b.Metrics.Recall).
			Float64("coverage", b.Metrics.Coverage).
			Msg("Backend summary")
	}
	log.Info().
		Int("similar_users", len(result.SimilarUsers)).
		Int("neighbor_venues", len(result.NeighborVenues)).
		Strs("artifacts", paths).
		Dur("duration", result.Timings[recommend.StageTotal]).
		Msg("Run complete")
}

// pushMetrics sends the collected metrics when a Pushgateway is configured.
// A failed push is logged and does not fail the run.
func pushMetrics(ctx context.Context, cfg *config.Config) {
	if cfg.Metrics.PushgatewayURL == "" {
		return
	}

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := metrics.Push(pushCtx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to push metrics")
		return
	}
	logging.Ctx(ctx).Debug().Str("url", cfg.Metrics.PushgatewayURL).Msg("Metrics pushed")
}
