// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package validation

import (
	"fmt"

	"github.com/tomtom215/venuerec/internal/recommend"
)

// RecordValidationError locates an unusable row of the visit log. Rows are
// numbered from 1, excluding the header.
//
// Column is set when a cell could not be read as its column type; the
// record was never built and Fields is empty. Otherwise the record was
// built and Fields lists the rules it broke.
type RecordValidationError struct {
	Row      int
	UserID   int64
	Category string
	Column   string
	Reason   string
	Fields   FieldErrors
}

func (e *RecordValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d: column %s: %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("row %d (user %d, category %q): %s", e.Row, e.UserID, e.Category, e.Fields.Error())
}

// Unwrap makes every record error match recommend.ErrDataValidation.
func (e *RecordValidationError) Unwrap() error {
	return recommend.ErrDataValidation
}

// CellError reports a cell of row that is empty or has the wrong type.
// reason describes the cell value, e.g. "value is empty".
func CellError(row int, column, reason string) *RecordValidationError {
	return &RecordValidationError{Row: row, Column: column, Reason: reason}
}

// ValidateRecord checks rec, read from row of the visit log, and returns a
// *RecordValidationError naming the row, user and category on failure.
func ValidateRecord(row int, rec *recommend.VisitRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: row %d: nil record", recommend.ErrDataValidation, row)
	}
	fields := ValidateStruct(rec)
	if fields == nil {
		return nil
	}
	return &RecordValidationError{
		Row:      row,
		UserID:   rec.UserID,
		Category: rec.VenueCategory,
		Fields:   fields,
	}
}
