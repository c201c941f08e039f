// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/venuerec/internal/recommend"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 1},
		{name: "scaled", a: []float64{1, 2, 3}, b: []float64{2, 4, 6}, want: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 1}, want: 0},
		{name: "length mismatch", a: []float64{1}, b: []float64{1, 1}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("cosineSimilarity() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestNeighborSimilarity_SimilarityTable(t *testing.T) {
	rows := append(sampleRows(), []float64{0, 0, 0, 0, 0})
	m := matrixFromRows(t, rows)

	table, err := NewNeighborSimilarity().SimilarityTable(context.Background(), m)
	if err != nil {
		t.Fatalf("SimilarityTable() error = %v", err)
	}

	n := table.SymmetricDim()
	if n != len(rows) {
		t.Fatalf("SymmetricDim() = %d, want %d", n, len(rows))
	}
	for i := 0; i < n; i++ {
		if table.At(i, i) != 1.0 {
			t.Errorf("diagonal (%d,%d) = %g, want 1.0", i, i, table.At(i, i))
		}
		for j := 0; j < n; j++ {
			if table.At(i, j) != table.At(j, i) {
				t.Errorf("table not symmetric at (%d,%d)", i, j)
			}
		}
	}

	zero := n - 1
	for j := 0; j < zero; j++ {
		if table.At(zero, j) != 0 {
			t.Errorf("zero row similarity with %d = %g, want 0", j, table.At(zero, j))
		}
	}
}

func TestNeighborSimilarity_ElevenUsers(t *testing.T) {
	rows := make([][]float64, 11)
	for i := range rows {
		rows[i] = []float64{float64(i + 1), float64(11 - i), float64(i % 3), 1}
	}
	m := matrixFromRows(t, rows)

	for _, target := range m.Users() {
		got, err := NewNeighborSimilarity().SimilarUsers(context.Background(), m, target, 10)
		if err != nil {
			t.Fatalf("SimilarUsers(%d) error = %v", target, err)
		}
		if len(got) != 10 {
			t.Fatalf("SimilarUsers(%d) returned %d users, want 10", target, len(got))
		}

		seen := make(map[int64]bool)
		for i, su := range got {
			if su.UserID == target {
				t.Errorf("SimilarUsers(%d) includes the target", target)
			}
			if seen[su.UserID] {
				t.Errorf("SimilarUsers(%d) duplicates user %d", target, su.UserID)
			}
			seen[su.UserID] = true
			if i > 0 && su.SimilarityScore > got[i-1].SimilarityScore {
				t.Errorf("SimilarUsers(%d) not sorted descending at %d", target, i)
			}
		}
	}
}

func TestNeighborSimilarity_DuplicateProfileKept(t *testing.T) {
	// Users 1 and 2 have identical rows, so both have similarity 1.0 with
	// user 1. Only the target itself may be excluded.
	rows := [][]float64{
		{3, 1, 0},
		{3, 1, 0},
		{0, 1, 4},
		{1, 0, 1},
	}
	m := matrixFromRows(t, rows)

	got, err := NewNeighborSimilarity().SimilarUsers(context.Background(), m, 2, 3)
	if err != nil {
		t.Fatalf("SimilarUsers() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].UserID != 1 || math.Abs(got[0].SimilarityScore-1) > 1e-12 {
		t.Errorf("first neighbor = %+v, want user 1 with similarity 1", got[0])
	}
	for _, su := range got {
		if su.UserID == 2 {
			t.Error("target user 2 included in its own neighbors")
		}
	}
}

func TestNeighborSimilarity_Errors(t *testing.T) {
	m := matrixFromRows(t, sampleRows())

	_, err := NewNeighborSimilarity().SimilarUsers(context.Background(), m, 999, 5)
	if !errors.Is(err, recommend.ErrUnknownUser) {
		t.Errorf("SimilarUsers(unknown) error = %v, want ErrUnknownUser", err)
	}

	_, err = NewNeighborSimilarity().SimilarityTable(context.Background(), nil)
	if !errors.Is(err, recommend.ErrEmptyInput) {
		t.Errorf("SimilarityTable(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestNeighborSimilarity_KLargerThanUsers(t *testing.T) {
	m := matrixFromRows(t, sampleRows())

	got, err := NewNeighborSimilarity().SimilarUsers(context.Background(), m, 1, 50)
	if err != nil {
		t.Fatalf("SimilarUsers() error = %v", err)
	}
	if len(got) != 5 {
		t.Errorf("len = %d, want 5", len(got))
	}
}
