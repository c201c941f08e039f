// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package algorithms

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/venuerec/internal/recommend"
)

// TSDName is the backend identifier of truncated spectral decomposition.
const TSDName = "tsd"

// errSVDFailed is returned when the decomposition does not converge.
var errSVDFailed = errors.New("singular value decomposition failed")

// TSD factorizes an interaction matrix with a truncated singular value
// decomposition V ≈ U_k·Σ_k·V_kᵀ. User factors are U_k·Σ_k and item factors
// are V_kᵀ.
type TSD struct {
	BaseAlgorithm
}

// NewTSD creates a new TSD backend.
func NewTSD() *TSD {
	return &TSD{
		BaseAlgorithm: NewBaseAlgorithm(TSDName),
	}
}

// Factorize computes the k largest singular triples of m.
// In addition to the common rank rule it requires k < min(rows, cols) - 1.
func (t *TSD) Factorize(ctx context.Context, m *recommend.InteractionMatrix, k int) (*recommend.FactorPair, error) {
	rows, cols, err := validateRank(m, k)
	if err != nil {
		return nil, err
	}
	if k >= min(rows, cols)-1 {
		return nil, fmt.Errorf("%w: k=%d must satisfy k < min(%d, %d) - 1 for truncated decomposition",
			recommend.ErrInvalidRank, k, rows, cols)
	}
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	v := m.Dense()

	var svd mat.SVD
	if ok := svd.Factorize(v, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: %dx%d matrix", errSVDFailed, rows, cols)
	}

	// Values are returned in descending order.
	sigma := svd.Values(nil)[:k]

	var u, vv mat.Dense
	svd.UTo(&u)
	svd.VTo(&vv)

	userFactors := mat.DenseCopyOf(u.Slice(0, rows, 0, k))
	for j := 0; j < k; j++ {
		col := userFactors.ColView(j).(*mat.VecDense)
		col.ScaleVec(sigma[j], col)
	}

	itemFactors := mat.DenseCopyOf(vv.Slice(0, cols, 0, k).T())

	fp := &recommend.FactorPair{
		Backend:     TSDName,
		Rank:        k,
		UserFactors: userFactors,
		ItemFactors: itemFactors,
	}
	fp.Diagnostics = recommend.FactorDiagnostics{
		Converged:           true,
		ReconstructionError: reconstructionError(v, fp),
		SingularValues:      append([]float64(nil), sigma...),
	}
	return fp, nil
}
