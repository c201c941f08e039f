// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

/*
Package metrics provides Prometheus instrumentation for recommendation runs.

Collectors are registered on the default registry with promauto. A run is
a short-lived batch job, so instead of exposing a /metrics endpoint the
collected values are pushed to a Pushgateway when one is configured.

# Available Metrics

Pipeline:
  - venuerec_stage_duration_seconds: Stage latency (histogram)
    Labels: stage
  - venuerec_records_loaded_total: Visit records read (counter)
  - venuerec_run_errors_total: Failed runs (counter)
    Labels: stage
  - venuerec_run_last_success_timestamp_seconds: Last success (gauge)

Matrix:
  - venuerec_matrix_cells: Matrix shape (gauge)
    Labels: kind (users, categories, non_zero)

Factorization and evaluation (all gauges, label: backend):
  - venuerec_factorization_iterations
  - venuerec_reconstruction_error
  - venuerec_recommendation_precision
  - venuerec_recommendation_recall
  - venuerec_recommendation_coverage

# Usage

	result, err := engine.Run(ctx, records)
	if err != nil {
	    metrics.RecordRunError("engine")
	    return err
	}
	metrics.RecordRun(result)
	if cfg.Metrics.PushgatewayURL != "" {
	    if err := metrics.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job); err != nil {
	        logging.Ctx(ctx).Warn().Err(err).Msg("Failed to push metrics")
	    }
	}

# Thread Safety

All collectors are safe for concurrent use.
*/
package metrics
