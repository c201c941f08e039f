// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

/*
Package config provides configuration loading for venuerec.

Configuration is layered with koanf: built-in defaults, then an optional
YAML file, then environment variables. The file is taken from CONFIG_PATH
or the first of config.yaml, config.yml, /etc/venuerec/config.yaml found.

# Environment Variables

Input and output:
  - VISITS_PATH: visit log CSV (default: clean_data.csv)
  - VISITS_FILTER: CEL expression selecting visit records (default: none)
  - OUTPUT_DIR: artifact directory (default: output)

DuckDB:
  - DUCKDB_PATH: database file, empty for in-memory (default: empty)
  - DUCKDB_MAX_MEMORY: memory limit (default: 1GB)
  - DUCKDB_THREADS: worker threads, 0 for NumCPU (default: 0)

Recommendation engine:
  - TARGET_USER_ID: user to recommend for (default: 42)
  - RECOMMEND_RANK: latent factors k (default: 40)
  - RECOMMEND_TOP_N: recommendations per backend (default: 10)
  - RECOMMEND_NEIGHBORS: similar users reported (default: 10)
  - RECOMMEND_SUMMARY_SIZE: neighbor locations reported (default: 10)
  - RECOMMEND_SEED: random seed (default: 0)
  - RECOMMEND_BACKENDS: comma-separated, nnf and/or tsd (default: nnf,tsd)
  - RECOMMEND_TIMEOUT: factorization phase bound (default: 5m)
  - NNF_MAX_ITERATIONS: update rounds (default: 200)
  - NNF_TOLERANCE: relative improvement threshold (default: 1e-4)

Metrics:
  - METRICS_PUSHGATEWAY_URL: Pushgateway base URL, empty disables push
  - METRICS_JOB: Pushgateway job label (default: venuerec)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: true/false (default: false)

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	engine, err := recommend.NewEngine(cfg.ToRecommendConfig(), logger)
*/
package config
