// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

// Package recommend implements a matrix factorization recommendation engine
// for venue categories.
//
// # Architecture
//
// A single batch run flows through the following stages:
//
//   - Interaction matrix: visit records are aggregated into a sparse
//     user × category matrix of summed visit counts
//   - Factorization: registered Factorizer backends (NNF, TSD) decompose
//     the matrix into user and category latent factors
//   - Neighbors: a NeighborFinder ranks users by cosine similarity of their
//     raw interaction rows
//   - Recommendation: category scores are the dot product of the target
//     user's latent row with the category factors
//   - Enrichment and evaluation: each recommendation is tied to its most
//     visited location and the list is scored for precision, recall and
//     coverage
//
// Factorization and the neighbor search run concurrently on the same
// read-only matrix.
//
// # Design Principles
//
//   - Deterministic: seeds are explicit configuration, never implicit
//   - Auditable: every stage is logged with structured fields
//   - Fail fast: invalid input aborts the run before any artifact is produced
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	cfg.TargetUserID = 42
//	engine, err := recommend.NewEngine(cfg, logger)
//	if err != nil {
//	    return err
//	}
//
//	engine.RegisterFactorizer(algorithms.NewNNF(cfg.NNF, cfg.Seed))
//	engine.RegisterFactorizer(algorithms.NewTSD())
//	engine.SetNeighborFinder(algorithms.NewNeighborSimilarity())
//
//	result, err := engine.Run(ctx, records)
//
// # Thread Safety
//
// An InteractionMatrix and a FactorPair are immutable once built and may be
// shared across goroutines. The engine itself should run one batch at a time.
package recommend
