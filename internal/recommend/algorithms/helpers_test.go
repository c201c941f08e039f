// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package algorithms

import (
	"fmt"
	"testing"

	"github.com/tomtom215/venuerec/internal/recommend"
)

// matrixFromRows builds an interaction matrix whose row i belongs to user
// i+1 and whose column j is category "c%02d". Zero cells are omitted from
// the records except when a whole row is zero.
func matrixFromRows(t *testing.T, rows [][]float64) *recommend.InteractionMatrix {
	t.Helper()

	var records []recommend.VisitRecord
	for i, row := range rows {
		added := false
		for j, v := range row {
			if v == 0 {
				continue
			}
			records = append(records, recommend.VisitRecord{
				UserID:        int64(i + 1),
				VenueID:       int64(j),
				VenueCategory: fmt.Sprintf("c%02d", j),
				VisitCount:    int64(v),
			})
			added = true
		}
		if !added {
			records = append(records, recommend.VisitRecord{
				UserID:        int64(i + 1),
				VenueCategory: "c00",
				VisitCount:    0,
			})
		}
	}

	m, err := recommend.BuildInteractionMatrix(records)
	if err != nil {
		t.Fatalf("BuildInteractionMatrix() error = %v", err)
	}
	return m
}

// sampleRows is a small user × category matrix with mixed profiles.
func sampleRows() [][]float64 {
	return [][]float64{
		{5, 0, 3, 0, 1},
		{4, 0, 0, 1, 1},
		{1, 1, 0, 5, 0},
		{0, 1, 5, 4, 0},
		{0, 3, 0, 0, 2},
		{2, 2, 1, 0, 4},
	}
}
