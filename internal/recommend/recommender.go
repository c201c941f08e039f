// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ScoreCategories returns the predicted score of every category for userID,
// in column order.
func ScoreCategories(userID int64, factors *FactorPair, m *InteractionMatrix) ([]float64, error) {
	row, ok := m.UserIndex(userID)
	if !ok {
		return nil, fmt.Errorf("%w: user %d not in interaction matrix", ErrUnknownUser, userID)
	}

	users, k := factors.UserFactors.Dims()
	ik, cols := factors.ItemFactors.Dims()
	if ik != k || row >= users {
		return nil, fmt.Errorf("%w: factor shapes %dx%d and %dx%d do not match user row %d",
			ErrInvalidRank, users, k, ik, cols, row)
	}

	var scores mat.VecDense
	scores.MulVec(factors.ItemFactors.T(), factors.UserFactors.RowView(row))

	out := make([]float64, cols)
	for j := range out {
		out[j] = scores.AtVec(j)
	}
	return out, nil
}

// GenerateRecommendations returns the topN category labels with the highest
// predicted score for userID. Categories the user already visited are not
// masked. Equal scores keep column order.
func GenerateRecommendations(userID int64, factors *FactorPair, m *InteractionMatrix, topN int) ([]string, error) {
	scores, err := ScoreCategories(userID, factors, m)
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		return []string{}, nil
	}

	order := make([]int, len(scores))
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topN > len(order) {
		topN = len(order)
	}

	categories := m.Categories()
	out := make([]string, topN)
	for i := 0; i < topN; i++ {
		out[i] = categories[order[i]]
	}
	return out, nil
}
