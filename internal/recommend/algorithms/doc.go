// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

// Package algorithms implements the factorization backends and the neighbor
// similarity module used by the recommendation engine.
//
// Factorization backends implement recommend.Factorizer and can be
// registered with recommend.Engine:
//
//   - NNF: non-negative factorization with Lee-Seung multiplicative updates,
//     seeded random initialization, an iteration bound and a relative
//     tolerance
//   - TSD: truncated singular value decomposition keeping the k largest
//     singular triples, with user factors U·Σ and item factors Vᵀ
//
// NeighborSimilarity implements recommend.NeighborFinder using cosine
// similarity of raw interaction rows.
//
// # Usage Example
//
//	cfg := recommend.DefaultConfig()
//	nnf := algorithms.NewNNF(cfg.NNF, cfg.Seed)
//	factors, err := nnf.Factorize(ctx, matrix, 40)
//	if err != nil {
//	    return err
//	}
//
//	recs, err := recommend.GenerateRecommendations(userID, factors, matrix, 10)
//
// # Rank Constraints
//
// Every backend requires 1 <= k < min(users, categories) and rejects an
// empty matrix. TSD further requires k < min(users, categories) - 1.
// Violations wrap recommend.ErrInvalidRank or recommend.ErrEmptyInput.
//
// # Thread Safety
//
// Backends keep no state between calls and only read the matrix, so the
// engine runs them concurrently on one shared matrix.
package algorithms
