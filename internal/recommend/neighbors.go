// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

import "sort"

// locationKey groups neighbor visits by category and coordinates.
type locationKey struct {
	category  string
	latitude  float64
	longitude float64
}

// SummarizeNeighborVenues aggregates the visits of the given neighbors by
// (category, latitude, longitude) and returns the limit most visited
// locations. Equal totals keep first-seen order.
func SummarizeNeighborVenues(records []VisitRecord, neighbors []SimilarUser, limit int) []NeighborVenueSummary {
	ids := make(map[int64]struct{}, len(neighbors))
	for _, n := range neighbors {
		ids[n.UserID] = struct{}{}
	}

	totals := make(map[locationKey]int64)
	var order []locationKey
	for i := range records {
		r := &records[i]
		if _, ok := ids[r.UserID]; !ok {
			continue
		}
		key := locationKey{category: r.VenueCategory, latitude: r.Latitude, longitude: r.Longitude}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += r.VisitCount
	}

	sort.SliceStable(order, func(a, b int) bool {
		return totals[order[a]] > totals[order[b]]
	})

	if limit < 0 {
		limit = 0
	}
	if limit > len(order) {
		limit = len(order)
	}

	out := make([]NeighborVenueSummary, limit)
	for i := 0; i < limit; i++ {
		k := order[i]
		out[i] = NeighborVenueSummary{
			Category:    k.category,
			Latitude:    k.latitude,
			Longitude:   k.longitude,
			TotalVisits: totals[k],
		}
	}
	return out
}
