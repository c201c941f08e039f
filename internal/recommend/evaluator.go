// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

// ComputeMetrics scores a recommendation list against the relevant set and
// the category universe. All three inputs are treated as sets. A metric
// whose denominator is empty is defined as zero.
//
//	precision = |R ∩ L| / |R|
//	recall    = |R ∩ L| / |L|
//	coverage  = |R| / |U|
func ComputeMetrics(recommended, relevant, universe []string) MetricsResult {
	rec := toSet(recommended)
	rel := toSet(relevant)
	all := toSet(universe)

	hits := 0
	for c := range rec {
		if _, ok := rel[c]; ok {
			hits++
		}
	}

	var out MetricsResult
	if len(rec) > 0 {
		out.Precision = float64(hits) / float64(len(rec))
	}
	if len(rel) > 0 {
		out.Recall = float64(hits) / float64(len(rel))
	}
	if len(all) > 0 {
		out.Coverage = float64(len(rec)) / float64(len(all))
	}
	return out
}

// RelevantCategories returns the distinct categories userID has visited, in
// first-seen order.
func RelevantCategories(userID int64, records []VisitRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range records {
		if records[i].UserID != userID {
			continue
		}
		c := records[i].VenueCategory
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// CategoryUniverse returns every distinct category in records, in
// first-seen order.
func CategoryUniverse(records []VisitRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range records {
		c := records[i].VenueCategory
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
