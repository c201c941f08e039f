// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

import "fmt"

// venueKey groups records that refer to the same physical venue.
type venueKey struct {
	venueID   int64
	latitude  float64
	longitude float64
}

// EnrichRecommendations attaches the most visited location to each
// recommended category. Locations are grouped by venue ID and coordinates,
// and ties go to the group seen first in records.
func EnrichRecommendations(categories []string, records []VisitRecord) ([]EnrichedRecommendation, error) {
	out := make([]EnrichedRecommendation, 0, len(categories))
	for _, category := range categories {
		rec, err := enrichCategory(category, records)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func enrichCategory(category string, records []VisitRecord) (EnrichedRecommendation, error) {
	totals := make(map[venueKey]int64)
	var order []venueKey

	for i := range records {
		r := &records[i]
		if r.VenueCategory != category {
			continue
		}
		key := venueKey{venueID: r.VenueID, latitude: r.Latitude, longitude: r.Longitude}
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += r.VisitCount
	}

	if len(order) == 0 {
		return EnrichedRecommendation{}, fmt.Errorf("%w: category %q has no visit records", ErrNoMatchingVenue, category)
	}

	best := order[0]
	for _, key := range order[1:] {
		if totals[key] > totals[best] {
			best = key
		}
	}

	return EnrichedRecommendation{
		Category:    category,
		Latitude:    best.latitude,
		Longitude:   best.longitude,
		TotalVisits: totals[best],
	}, nil
}
