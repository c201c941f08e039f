// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package algorithms

import (
	"context"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/venuerec/internal/recommend"
)

// NNFName is the backend identifier of non-negative factorization.
const NNFName = "nnf"

// nnfEpsilon keeps multiplicative update denominators away from zero.
const nnfEpsilon = 1e-12

// NNF factorizes an interaction matrix V into non-negative W (users × k)
// and H (k × categories) minimizing ||V - W·H||_F with the Lee-Seung
// multiplicative update rules.
//
// Both factors start from sqrt(mean(V)/k)·|N(0,1)| drawn from a source
// seeded with the run seed, so repeated runs with the same seed produce the
// same factors.
type NNF struct {
	BaseAlgorithm
	config recommend.NNFConfig
	seed   int64
}

// NewNNF creates an NNF backend. Non-positive MaxIterations and negative
// Tolerance fall back to the defaults of recommend.DefaultConfig.
func NewNNF(cfg recommend.NNFConfig, seed int64) *NNF {
	defaults := recommend.DefaultConfig().NNF
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaults.MaxIterations
	}
	if cfg.Tolerance < 0 {
		cfg.Tolerance = defaults.Tolerance
	}

	return &NNF{
		BaseAlgorithm: NewBaseAlgorithm(NNFName),
		config:        cfg,
		seed:          seed,
	}
}

// Factorize computes a rank-k non-negative factor pair for m.
func (n *NNF) Factorize(ctx context.Context, m *recommend.InteractionMatrix, k int) (*recommend.FactorPair, error) {
	rows, cols, err := validateRank(m, k)
	if err != nil {
		return nil, err
	}

	v := m.Dense()
	w, h := n.initFactors(v, rows, cols, k)

	// fp aliases w and h, which the updates below modify in place.
	fp := &recommend.FactorPair{
		Backend:     NNFName,
		Rank:        k,
		UserFactors: w,
		ItemFactors: h,
	}

	initErr := reconstructionError(v, fp)
	prevErr := initErr
	history := make([]float64, 0, n.config.MaxIterations)

	var (
		wtv, wtw, wtwh mat.Dense
		vht, hht, whht mat.Dense
		converged      bool
		iter           int
	)

	for iter = 1; iter <= n.config.MaxIterations; iter++ {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}

		// H <- H * (Wt V) / (Wt W H)
		wtv.Mul(w.T(), v)
		wtw.Mul(w.T(), w)
		wtwh.Mul(&wtw, h)
		h.Apply(func(i, j int, x float64) float64 {
			return x * wtv.At(i, j) / (wtwh.At(i, j) + nnfEpsilon)
		}, h)

		// W <- W * (V Ht) / (W H Ht)
		vht.Mul(v, h.T())
		hht.Mul(h, h.T())
		whht.Mul(w, &hht)
		w.Apply(func(i, j int, x float64) float64 {
			return x * vht.At(i, j) / (whht.At(i, j) + nnfEpsilon)
		}, w)

		e := reconstructionError(v, fp)
		history = append(history, e)

		var stop bool
		if stop, converged = stopCheck(prevErr, e, initErr, n.config.Tolerance); stop {
			break
		}
		prevErr = e
	}
	if iter > n.config.MaxIterations {
		iter = n.config.MaxIterations
	}

	fp.Diagnostics = recommend.FactorDiagnostics{
		Iterations:          iter,
		Converged:           converged,
		ReconstructionError: history[len(history)-1],
		ErrorHistory:        history,
	}
	return fp, nil
}

// initFactors draws non-negative starting factors scaled to the data mean.
func (n *NNF) initFactors(v *mat.Dense, rows, cols, k int) (w, h *mat.Dense) {
	rng := rand.New(rand.NewSource(n.seed)) //nolint:gosec // deterministic init, not security sensitive

	mean := mat.Sum(v) / float64(rows*cols)
	scale := math.Sqrt(mean / float64(k))

	h = mat.NewDense(k, cols, nil)
	h.Apply(func(_, _ int, _ float64) float64 {
		return scale * math.Abs(rng.NormFloat64())
	}, h)

	w = mat.NewDense(rows, k, nil)
	w.Apply(func(_, _ int, _ float64) float64 {
		return scale * math.Abs(rng.NormFloat64())
	}, w)

	return w, h
}

// stopCheck decides whether the updates end after an iteration that moved
// the error from prev to e. A rising error ends the run unconverged.
func stopCheck(prev, e, initErr, tol float64) (stop, converged bool) {
	switch {
	case e == 0:
		return true, true
	case e > prev:
		return true, false
	case initErr > 0 && (prev-e)/initErr < tol:
		return true, true
	}
	return false, false
}

// reconstructionError returns ||V - W·H||_F for the factors of fp.
func reconstructionError(v *mat.Dense, fp *recommend.FactorPair) float64 {
	diff := fp.Reconstruct()
	diff.Sub(v, diff)
	return mat.Norm(diff, 2)
}
