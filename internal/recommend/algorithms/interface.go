// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package algorithms

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/tomtom215/venuerec/internal/recommend"
)

// BaseAlgorithm carries the identifier shared by every backend. Backends
// keep no state between calls, so one instance may serve concurrent runs.
type BaseAlgorithm struct {
	name string
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{name: name}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// validateRank checks that m is non-empty and 1 <= k < min(rows, cols).
func validateRank(m *recommend.InteractionMatrix, k int) (rows, cols int, err error) {
	if m == nil {
		return 0, 0, fmt.Errorf("%w: nil interaction matrix", recommend.ErrEmptyInput)
	}
	rows, cols = m.Dims()
	if rows == 0 || cols == 0 {
		return rows, cols, fmt.Errorf("%w: interaction matrix is %dx%d", recommend.ErrEmptyInput, rows, cols)
	}
	if k < 1 || k >= min(rows, cols) {
		return rows, cols, fmt.Errorf("%w: k=%d must satisfy 1 <= k < min(%d, %d)",
			recommend.ErrInvalidRank, k, rows, cols)
	}
	return rows, cols, nil
}

// cosineSimilarity computes cosine similarity between two vectors.
// A zero vector has similarity 0 with everything.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}

	return floats.Dot(a, b) / (normA * normB)
}

// Ensure all backends implement the engine interfaces.
var (
	_ recommend.Factorizer     = (*NNF)(nil)
	_ recommend.Factorizer     = (*TSD)(nil)
	_ recommend.NeighborFinder = (*NeighborSimilarity)(nil)
)

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
