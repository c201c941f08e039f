// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildInteractionMatrix(t *testing.T) {
	m, err := BuildInteractionMatrix(sampleRecords())
	if err != nil {
		t.Fatalf("BuildInteractionMatrix() error = %v", err)
	}

	if rows, cols := m.Dims(); rows != 3 || cols != 4 {
		t.Fatalf("Dims() = %d, %d, want 3, 4", rows, cols)
	}
	if got, want := m.Users(), []int64{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("Users() = %v, want %v", got, want)
	}
	if got, want := m.Categories(), []string{"Bar", "Cafe", "Museum", "Park"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}

	want := [][]float64{
		{0, 1, 0, 5},
		{2, 0, 2, 0},
		{1, 0, 1, 3},
	}
	for i, row := range want {
		if got := m.Row(i); !reflect.DeepEqual(got, row) {
			t.Errorf("Row(%d) = %v, want %v", i, got, row)
		}
	}

	dense := m.Dense()
	for i, row := range want {
		for j, v := range row {
			if dense.At(i, j) != v {
				t.Errorf("Dense().At(%d,%d) = %g, want %g", i, j, dense.At(i, j), v)
			}
		}
	}

	if m.NonZero() != 7 {
		t.Errorf("NonZero() = %d, want 7", m.NonZero())
	}
	if got := m.Density(); got != 7.0/12.0 {
		t.Errorf("Density() = %g, want %g", got, 7.0/12.0)
	}
}

func TestBuildInteractionMatrix_OrderIndependent(t *testing.T) {
	records := sampleRecords()
	reversed := make([]VisitRecord, len(records))
	for i := range records {
		reversed[len(records)-1-i] = records[i]
	}

	a, err := BuildInteractionMatrix(records)
	if err != nil {
		t.Fatalf("BuildInteractionMatrix() error = %v", err)
	}
	b, err := BuildInteractionMatrix(reversed)
	if err != nil {
		t.Fatalf("BuildInteractionMatrix() error = %v", err)
	}

	if !reflect.DeepEqual(a.Users(), b.Users()) || !reflect.DeepEqual(a.Categories(), b.Categories()) {
		t.Error("labels depend on record order")
	}
	for i := range a.Users() {
		if !reflect.DeepEqual(a.Row(i), b.Row(i)) {
			t.Errorf("Row(%d) depends on record order", i)
		}
	}
}

func TestBuildInteractionMatrix_Errors(t *testing.T) {
	tests := []struct {
		name    string
		records []VisitRecord
		wantErr error
	}{
		{name: "no records", records: nil, wantErr: ErrEmptyInput},
		{
			name:    "empty category",
			records: []VisitRecord{{UserID: 1, VenueCategory: "", VisitCount: 1}},
			wantErr: ErrDataValidation,
		},
		{
			name:    "negative visit count",
			records: []VisitRecord{{UserID: 1, VenueCategory: "Park", VisitCount: -1}},
			wantErr: ErrDataValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildInteractionMatrix(tt.records)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BuildInteractionMatrix() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInteractionMatrix_Lookups(t *testing.T) {
	m, err := BuildInteractionMatrix(sampleRecords())
	if err != nil {
		t.Fatalf("BuildInteractionMatrix() error = %v", err)
	}

	if i, ok := m.UserIndex(3); !ok || i != 2 {
		t.Errorf("UserIndex(3) = %d, %v, want 2, true", i, ok)
	}
	if _, ok := m.UserIndex(99); ok {
		t.Error("UserIndex(99) found, want missing")
	}
	if j, ok := m.CategoryIndex("Museum"); !ok || j != 2 {
		t.Errorf("CategoryIndex(Museum) = %d, %v, want 2, true", j, ok)
	}
	if got := m.At(2, 3); got != 3 {
		t.Errorf("At(2,3) = %g, want 3", got)
	}

	// Returned label slices are copies.
	users := m.Users()
	users[0] = 100
	if m.Users()[0] != 1 {
		t.Error("Users() exposes internal state")
	}
}
