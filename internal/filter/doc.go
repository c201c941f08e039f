// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

// Package filter selects visit records with CEL (Common Expression Language)
// expressions before they enter the interaction matrix.
//
// Expressions are compiled once against typed variables, so unknown names,
// type mismatches and non-bool results are rejected at startup instead of
// per record:
//
//	f, err := filter.Compile(`visitCount >= 2 && venueCategory != "Home (private)"`)
//	if err != nil {
//	    return err // errors.Is(err, filter.ErrInvalidFilter)
//	}
//	records, err = f.Apply(records)
//
// An empty expression keeps every record.
package filter
