// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

import (
	"errors"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// fixedFactors returns factors whose scores for user row i are scores[i].
// UserFactors is the identity so ItemFactors rows are the score rows.
func fixedFactors(scores [][]float64) *FactorPair {
	n := len(scores)
	cols := len(scores[0])
	user := mat.NewDense(n, n, nil)
	item := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		user.Set(i, i, 1)
		item.SetRow(i, scores[i])
	}
	return &FactorPair{Backend: "fixed", Rank: n, UserFactors: user, ItemFactors: item}
}

func TestGenerateRecommendations(t *testing.T) {
	m, err := BuildInteractionMatrix(sampleRecords())
	if err != nil {
		t.Fatalf("BuildInteractionMatrix() error = %v", err)
	}
	// Columns: Bar, Cafe, Museum, Park
	factors := fixedFactors([][]float64{
		{0.2, 0.9, 0.2, 0.5},
		{1, 1, 1, 1},
		{0.1, 0.3, 0.7, 0.0},
	})

	tests := []struct {
		name   string
		userID int64
		topN   int
		want   []string
	}{
		{name: "top two by score", userID: 1, topN: 2, want: []string{"Cafe", "Park"}},
		{name: "ties keep column order", userID: 1, topN: 4, want: []string{"Cafe", "Park", "Bar", "Museum"}},
		{name: "all equal scores", userID: 2, topN: 3, want: []string{"Bar", "Cafe", "Museum"}},
		{name: "topN larger than categories", userID: 3, topN: 10, want: []string{"Museum", "Cafe", "Bar", "Park"}},
		{name: "zero topN", userID: 3, topN: 0, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateRecommendations(tt.userID, factors, m, tt.topN)
			if err != nil {
				t.Fatalf("GenerateRecommendations() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateRecommendations() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateRecommendations_DoesNotMaskVisited(t *testing.T) {
	m, err := BuildInteractionMatrix(sampleRecords())
	if err != nil {
		t.Fatalf("BuildInteractionMatrix() error = %v", err)
	}
	// User 1 already visited Park; it must still be recommended first.
	factors := fixedFactors([][]float64{
		{0, 0, 0, 9},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	got, err := GenerateRecommendations(1, factors, m, 1)
	if err != nil {
		t.Fatalf("GenerateRecommendations() error = %v", err)
	}
	if len(got) != 1 || got[0] != "Park" {
		t.Errorf("GenerateRecommendations() = %v, want [Park]", got)
	}
}

func TestGenerateRecommendations_UnknownUser(t *testing.T) {
	m, err := BuildInteractionMatrix(sampleRecords())
	if err != nil {
		t.Fatalf("BuildInteractionMatrix() error = %v", err)
	}
	factors := fixedFactors([][]float64{{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}})

	_, err = GenerateRecommendations(42, factors, m, 3)
	if !errors.Is(err, ErrUnknownUser) {
		t.Errorf("GenerateRecommendations() error = %v, want ErrUnknownUser", err)
	}
}

func TestScoreCategories(t *testing.T) {
	m, err := BuildInteractionMatrix(sampleRecords())
	if err != nil {
		t.Fatalf("BuildInteractionMatrix() error = %v", err)
	}
	fp := &FactorPair{
		UserFactors: mat.NewDense(3, 2, []float64{1, 0, 0, 1, 1, 1}),
		ItemFactors: mat.NewDense(2, 4, []float64{1, 2, 3, 4, 10, 20, 30, 40}),
	}

	got, err := ScoreCategories(3, fp, m)
	if err != nil {
		t.Fatalf("ScoreCategories() error = %v", err)
	}
	if want := []float64{11, 22, 33, 44}; !reflect.DeepEqual(got, want) {
		t.Errorf("ScoreCategories() = %v, want %v", got, want)
	}
}
