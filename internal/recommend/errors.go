// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package recommend

import "errors"

// Sentinel errors returned by the engine and its backends. They are always
// wrapped with context (user, category or dimensions), so callers should
// compare with errors.Is.
var (
	// ErrInvalidRank indicates a latent rank outside the valid range for
	// the matrix dimensions.
	ErrInvalidRank = errors.New("invalid factorization rank")

	// ErrEmptyInput indicates there were no records or the matrix has a
	// zero dimension.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnknownUser indicates the requested user has no row in the matrix.
	ErrUnknownUser = errors.New("unknown user")

	// ErrNoMatchingVenue indicates a recommended category has no visit
	// records to pick a location from.
	ErrNoMatchingVenue = errors.New("no matching venue")

	// ErrDataValidation indicates a malformed visit record.
	ErrDataValidation = errors.New("data validation failed")
)
