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

// cell addresses one (row, column) entry of the interaction matrix.
type cell struct {
	row, col int
}

// InteractionMatrix is a sparse user × category matrix of summed visit
// counts. Rows are ordered by ascending user ID and columns by ascending
// category label. It is immutable after construction.
type InteractionMatrix struct {
	users      []int64
	categories []string
	userIndex  map[int64]int
	catIndex   map[string]int
	values     map[cell]float64
}

// BuildInteractionMatrix aggregates visit records into an interaction matrix.
// Pairs that never occur are implicitly zero.
func BuildInteractionMatrix(records []VisitRecord) (*InteractionMatrix, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("build interaction matrix: %w: no visit records", ErrEmptyInput)
	}

	userSet := make(map[int64]struct{})
	catSet := make(map[string]struct{})
	for i := range records {
		r := &records[i]
		if r.VenueCategory == "" {
			return nil, fmt.Errorf("%w: user %d has a record with an empty venue category", ErrDataValidation, r.UserID)
		}
		if r.VisitCount < 0 {
			return nil, fmt.Errorf("%w: user %d category %q has negative visit count %d",
				ErrDataValidation, r.UserID, r.VenueCategory, r.VisitCount)
		}
		userSet[r.UserID] = struct{}{}
		catSet[r.VenueCategory] = struct{}{}
	}

	m := &InteractionMatrix{
		users:      make([]int64, 0, len(userSet)),
		categories: make([]string, 0, len(catSet)),
		userIndex:  make(map[int64]int, len(userSet)),
		catIndex:   make(map[string]int, len(catSet)),
		values:     make(map[cell]float64),
	}
	for id := range userSet {
		m.users = append(m.users, id)
	}
	for c := range catSet {
		m.categories = append(m.categories, c)
	}
	sort.Slice(m.users, func(i, j int) bool { return m.users[i] < m.users[j] })
	sort.Strings(m.categories)

	for i, id := range m.users {
		m.userIndex[id] = i
	}
	for j, c := range m.categories {
		m.catIndex[c] = j
	}

	for i := range records {
		r := &records[i]
		key := cell{row: m.userIndex[r.UserID], col: m.catIndex[r.VenueCategory]}
		m.values[key] += float64(r.VisitCount)
	}

	return m, nil
}

// Dims returns the number of users (rows) and categories (columns).
func (m *InteractionMatrix) Dims() (rows, cols int) {
	return len(m.users), len(m.categories)
}

// Users returns the row labels in row order.
func (m *InteractionMatrix) Users() []int64 {
	out := make([]int64, len(m.users))
	copy(out, m.users)
	return out
}

// Categories returns the column labels in column order.
func (m *InteractionMatrix) Categories() []string {
	out := make([]string, len(m.categories))
	copy(out, m.categories)
	return out
}

// UserIndex returns the row of userID.
func (m *InteractionMatrix) UserIndex(userID int64) (int, bool) {
	i, ok := m.userIndex[userID]
	return i, ok
}

// CategoryIndex returns the column of category.
func (m *InteractionMatrix) CategoryIndex(category string) (int, bool) {
	j, ok := m.catIndex[category]
	return j, ok
}

// At returns the summed visit count at (row, col).
func (m *InteractionMatrix) At(row, col int) float64 {
	return m.values[cell{row: row, col: col}]
}

// Row returns a dense copy of the given row.
func (m *InteractionMatrix) Row(row int) []float64 {
	out := make([]float64, len(m.categories))
	for j := range out {
		out[j] = m.values[cell{row: row, col: j}]
	}
	return out
}

// NonZero returns the number of non-zero entries.
func (m *InteractionMatrix) NonZero() int {
	n := 0
	for _, v := range m.values {
		if v != 0 {
			n++
		}
	}
	return n
}

// Density returns the fraction of non-zero entries.
func (m *InteractionMatrix) Density() float64 {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return 0
	}
	return float64(m.NonZero()) / float64(rows*cols)
}

// Dense materializes the matrix as a gonum dense matrix.
func (m *InteractionMatrix) Dense() *mat.Dense {
	rows, cols := m.Dims()
	d := mat.NewDense(rows, cols, nil)
	for k, v := range m.values {
		d.Set(k.row, k.col, v)
	}
	return d
}

// Stats returns a summary of the matrix shape and sparsity.
func (m *InteractionMatrix) Stats() MatrixStats {
	rows, cols := m.Dims()
	return MatrixStats{
		Users:      rows,
		Categories: cols,
		NonZero:    m.NonZero(),
		Density:    m.Density(),
	}
}
