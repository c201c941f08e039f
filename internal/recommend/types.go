// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

import (
	"context"
	"time"

	"gonum.org/v1/gonum/mat"
)

// VisitRecord is one row of the cleaned visit log.
type VisitRecord struct {
	// UserID identifies the visitor.
	UserID int64 `json:"userId" validate:"gte=0"`

	// VenueID is the encoded venue identifier.
	VenueID int64 `json:"venueIdEncoded" validate:"gte=0"`

	// VenueCategory is the category label, e.g. "Coffee Shop".
	VenueCategory string `json:"venueCategory" validate:"required,notblank"`

	// VenueCategoryEncoded is the integer code of VenueCategory.
	VenueCategoryEncoded int64 `json:"venueCategoryEncoded"`

	// Latitude of the venue in decimal degrees.
	Latitude float64 `json:"latitude" validate:"latitude"`

	// Longitude of the venue in decimal degrees.
	Longitude float64 `json:"longitude" validate:"longitude"`

	// VisitCount is the number of visits in this record.
	VisitCount int64 `json:"visitCount" validate:"gte=0"`

	// VisitTimestamps lists the individual visit times, oldest first.
	VisitTimestamps []time.Time `json:"visitTimestamps,omitempty"`
}

// FactorDiagnostics carries per-backend training details.
type FactorDiagnostics struct {
	// Iterations is the number of update rounds performed (NNF only).
	Iterations int `json:"iterations,omitempty"`

	// Converged reports whether the tolerance was reached before the
	// iteration bound.
	Converged bool `json:"converged"`

	// ReconstructionError is the final Frobenius norm of V - W·H.
	ReconstructionError float64 `json:"reconstruction_error"`

	// ErrorHistory holds the reconstruction error after each iteration.
	ErrorHistory []float64 `json:"error_history,omitempty"`

	// SingularValues holds the retained singular values in descending
	// order (TSD only).
	SingularValues []float64 `json:"singular_values,omitempty"`
}

// FactorPair is the output of a factorization backend.
//
// UserFactors is users × k and ItemFactors is k × categories, so that
// UserFactors · ItemFactors approximates the interaction matrix.
type FactorPair struct {
	Backend     string
	Rank        int
	UserFactors *mat.Dense
	ItemFactors *mat.Dense
	Diagnostics FactorDiagnostics
}

// Reconstruct returns UserFactors · ItemFactors.
func (f *FactorPair) Reconstruct() *mat.Dense {
	var out mat.Dense
	out.Mul(f.UserFactors, f.ItemFactors)
	return &out
}

// EnrichedRecommendation ties a recommended category to a representative
// location.
type EnrichedRecommendation struct {
	Category    string  `json:"category"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TotalVisits int64   `json:"totalVisits"`
}

// MetricsResult holds the evaluation metrics for one recommendation list.
// Every value is in [0, 1].
type MetricsResult struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	Coverage  float64 `json:"coverage"`
}

// SimilarUser is a neighbor of the target user.
type SimilarUser struct {
	UserID          int64   `json:"userId"`
	SimilarityScore float64 `json:"similarityScore"`
}

// NeighborVenueSummary is an aggregated location visited by the neighbors.
type NeighborVenueSummary struct {
	Category    string  `json:"venueCategory"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TotalVisits int64   `json:"visitCount"`
}

// Factorizer decomposes an interaction matrix into latent factors.
type Factorizer interface {
	// Name returns the backend identifier used in logs and artifact names.
	Name() string

	// Factorize computes a rank-k factor pair for m.
	Factorize(ctx context.Context, m *InteractionMatrix, k int) (*FactorPair, error)
}

// NeighborFinder ranks users by interaction similarity.
type NeighborFinder interface {
	// SimilarUsers returns the k most similar users to userID, excluding
	// userID itself, in descending similarity order.
	SimilarUsers(ctx context.Context, m *InteractionMatrix, userID int64, k int) ([]SimilarUser, error)
}

// BackendResult is everything produced for one factorization backend.
type BackendResult struct {
	Backend         string
	Factors         *FactorPair
	Recommendations []string
	Enriched        []EnrichedRecommendation
	Metrics         MetricsResult
}

// MatrixStats summarizes the interaction matrix of a run.
type MatrixStats struct {
	Users      int     `json:"users"`
	Categories int     `json:"categories"`
	NonZero    int     `json:"non_zero"`
	Density    float64 `json:"density"`
}

// RunResult is the complete output of Engine.Run.
type RunResult struct {
	RunID          string
	TargetUserID   int64
	Matrix         MatrixStats
	Backends       []BackendResult
	SimilarUsers   []SimilarUser
	NeighborVenues []NeighborVenueSummary
	Timings        map[string]time.Duration
	CompletedAt    time.Time
}

// Backend returns the result for the named backend, or nil.
func (r *RunResult) Backend(name string) *BackendResult {
	for i := range r.Backends {
		if r.Backends[i].Backend == name {
			return &r.Backends[i]
		}
	}
	return nil
}
