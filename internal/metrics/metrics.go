// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/tomtom215/venuerec/internal/recommend"
)

var (
	// Pipeline Metrics
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "venuerec_stage_duration_seconds",
			Help:    "Duration of recommendation pipeline stages in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8), // 10ms .. ~164s
		},
		[]string{"stage"}, // "load", "build_matrix", "factorize:nnf", "neighbors", "recommend", "export", "total"
	)

	RecordsLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "venuerec_records_loaded_total",
			Help: "Total number of visit records loaded from the visit log",
		},
	)

	RunErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venuerec_run_errors_total",
			Help: "Total number of failed runs by pipeline stage",
		},
		[]string{"stage"},
	)

	RunLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "venuerec_run_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful run",
		},
	)

	// Matrix Metrics
	MatrixCells = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "venuerec_matrix_cells",
			Help: "Shape of the user x category interaction matrix",
		},
		[]string{"kind"}, // "users", "categories", "non_zero"
	)

	// Factorization Metrics
	FactorizationIterations = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "venuerec_factorization_iterations",
			Help: "Update rounds performed by the last factorization",
		},
		[]string{"backend"},
	)

	ReconstructionError = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "venuerec_reconstruction_error",
			Help: "Frobenius norm of the reconstruction residual of the last factorization",
		},
		[]string{"backend"},
	)

	// Evaluation Metrics
	RecommendationPrecision = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "venuerec_recommendation_precision",
			Help: "Precision of the last recommendation list against the target user's visits",
		},
		[]string{"backend"},
	)

	RecommendationRecall = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "venuerec_recommendation_recall",
			Help: "Recall of the last recommendation list against the target user's visits",
		},
		[]string{"backend"},
	)

	RecommendationCoverage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "venuerec_recommendation_coverage",
			Help: "Share of all categories covered by the last recommendation list",
		},
		[]string{"backend"},
	)
)

// RecordStage records the duration of a pipeline stage.
func RecordStage(stage string, duration time.Duration) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordRecordsLoaded adds n loaded visit records.
func RecordRecordsLoaded(n int) {
	RecordsLoaded.Add(float64(n))
}

// RecordRunError counts a run that failed in the given stage.
func RecordRunError(stage string) {
	RunErrors.WithLabelValues(stage).Inc()
}

// RecordRun records everything a successful run produced: stage timings,
// matrix shape, per-backend diagnostics and evaluation metrics.
func RecordRun(result *recommend.RunResult) {
	if result == nil {
		return
	}

	for stage, d := range result.Timings {
		RecordStage(stage, d)
	}

	MatrixCells.WithLabelValues("users").Set(float64(result.Matrix.Users))
	MatrixCells.WithLabelValues("categories").Set(float64(result.Matrix.Categories))
	MatrixCells.WithLabelValues("non_zero").Set(float64(result.Matrix.NonZero))

	for i := range result.Backends {
		b := &result.Backends[i]
		if b.Factors != nil {
			FactorizationIterations.WithLabelValues(b.Backend).Set(float64(b.Factors.Diagnostics.Iterations))
			ReconstructionError.WithLabelValues(b.Backend).Set(b.Factors.Diagnostics.ReconstructionError)
		}
		RecommendationPrecision.WithLabelValues(b.Backend).Set(b.Metrics.Precision)
		RecommendationRecall.WithLabelValues(b.Backend).Set(b.Metrics.Recall)
		RecommendationCoverage.WithLabelValues(b.Backend).Set(b.Metrics.Coverage)
	}

	RunLastSuccess.Set(float64(result.CompletedAt.Unix()))
}

// Push sends the default registry to a Prometheus Pushgateway. A batch
// run exits before any scraper could reach it, so this is the only way
// its metrics leave the process.
func Push(ctx context.Context, url, job string) error {
	return PushGatherer(ctx, url, job, prometheus.DefaultGatherer)
}

// PushGatherer sends the metrics of g to the Pushgateway at url under job.
func PushGatherer(ctx context.Context, url, job string, g prometheus.Gatherer) error {
	if url == "" {
		return fmt.Errorf("pushgateway url is empty")
	}
	if err := push.New(url, job).Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
