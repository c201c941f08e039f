// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package algorithms

import (
	"context"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/venuerec/internal/recommend"
)

// NeighborSimilarityName is the identifier of the neighbor module.
const NeighborSimilarityName = "neighbor_similarity"

// NeighborSimilarity ranks users by cosine similarity of their raw
// interaction rows.
type NeighborSimilarity struct {
	BaseAlgorithm
}

// NewNeighborSimilarity creates a new neighbor similarity module.
func NewNeighborSimilarity() *NeighborSimilarity {
	return &NeighborSimilarity{
		BaseAlgorithm: NewBaseAlgorithm(NeighborSimilarityName),
	}
}

// SimilarityTable returns the users × users cosine similarity table of m.
// The table is exactly symmetric and its diagonal is 1.0. Rows with no
// visits have similarity 0 with every other user.
func (n *NeighborSimilarity) SimilarityTable(ctx context.Context, m *recommend.InteractionMatrix) (*mat.SymDense, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil interaction matrix", recommend.ErrEmptyInput)
	}
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: interaction matrix is %dx%d", recommend.ErrEmptyInput, rows, cols)
	}

	vectors := make([][]float64, rows)
	for i := range vectors {
		vectors[i] = m.Row(i)
	}

	table := mat.NewSymDense(rows, nil)
	for i := 0; i < rows; i++ {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		table.SetSym(i, i, 1.0)
		for j := i + 1; j < rows; j++ {
			table.SetSym(i, j, cosineSimilarity(vectors[i], vectors[j]))
		}
	}

	return table, nil
}

// SimilarUsers returns the k users most similar to userID. The target is
// excluded by identity, so a different user with an identical profile is
// still reported. Equal similarities keep row order.
func (n *NeighborSimilarity) SimilarUsers(ctx context.Context, m *recommend.InteractionMatrix, userID int64, k int) ([]recommend.SimilarUser, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil interaction matrix", recommend.ErrEmptyInput)
	}
	target, ok := m.UserIndex(userID)
	if !ok {
		return nil, fmt.Errorf("%w: user %d not in interaction matrix", recommend.ErrUnknownUser, userID)
	}

	table, err := n.SimilarityTable(ctx, m)
	if err != nil {
		return nil, err
	}

	users := m.Users()
	candidates := make([]recommend.SimilarUser, 0, len(users)-1)
	for i, id := range users {
		if id == userID {
			continue
		}
		candidates = append(candidates, recommend.SimilarUser{
			UserID:          id,
			SimilarityScore: table.At(target, i),
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].SimilarityScore > candidates[b].SimilarityScore
	})

	if k < 0 {
		k = 0
	}
	if k > len(candidates) {
		k = len(candidates)
	}

	return candidates[:k], nil
}
