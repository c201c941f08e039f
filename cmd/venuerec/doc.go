// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

/*
Package main is the entry point of the venuerec batch job.

One invocation performs one recommendation run for a single target user:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog with JSON/console output and a per-run ID
 3. Filter: optional CEL expression over visit records (VISITS_FILTER)
 4. Database: in-memory DuckDB reads the visit log CSV
 5. Engine: interaction matrix, NNF and TSD factorization and neighbor
    search in parallel, then recommendation, enrichment and evaluation
 6. Export: six CSV artifacts written by DuckDB into OUTPUT_DIR
 7. Metrics: Prometheus collectors pushed to a Pushgateway when configured

Any failure aborts the run before artifacts are written and exits with
status 1.

# Example Usage

	export VISITS_PATH=clean_data.csv
	export TARGET_USER_ID=42
	export RECOMMEND_RANK=40
	./venuerec

Restricting the input with a filter:

	export VISITS_FILTER='venueCategory != "Home (private)" && visitCount >= 2'
	./venuerec

With a config file:

	CONFIG_PATH=/etc/venuerec/config.yaml ./venuerec

# Output

  - enriched_nnf_recommendations.csv, enriched_tsd_recommendations.csv
  - nnf_metrics.csv, tsd_metrics.csv
  - similar_users.csv
  - top_common_venues.csv
*/
package main
