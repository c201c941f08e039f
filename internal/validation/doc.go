// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

// Package validation checks visit records and configuration with
// go-playground/validator v10.
//
// ValidateStruct returns FieldErrors, one readable message per broken
// rule, and is what configuration loading uses. Visit log rows go through
// ValidateRecord, which wraps the same checks in a RecordValidationError
// naming the row, user and category:
//
//	if err := validation.ValidateRecord(row, &rec); err != nil {
//	    return nil, err // errors.Is(err, recommend.ErrDataValidation)
//	}
//	// row 17 (user 42, category "Park"): VisitCount must be greater than or equal to 0
//
// Cells the loader cannot type at all are reported with CellError, which
// matches recommend.ErrDataValidation the same way.
//
// # Custom Validators
//
//   - notblank: string must contain a non-whitespace character
package validation
