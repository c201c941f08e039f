// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package filter

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/tomtom215/venuerec/internal/recommend"
)

// ErrInvalidFilter indicates an expression that does not compile or does
// not evaluate to a bool.
var ErrInvalidFilter = errors.New("invalid visit filter")

var (
	// celEnv is shared by all filters; cel.Env is safe for concurrent use.
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// getCELEnv returns the visit record environment, creating it once.
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("userId", cel.IntType),
			cel.Variable("venueId", cel.IntType),
			cel.Variable("venueCategory", cel.StringType),
			cel.Variable("venueCategoryEncoded", cel.IntType),
			cel.Variable("latitude", cel.DoubleType),
			cel.Variable("longitude", cel.DoubleType),
			cel.Variable("visitCount", cel.IntType),
			cel.Variable("visitTimestamps", cel.ListType(cel.TimestampType)),
			cel.Variable("visits", cel.IntType),
		)
	})
	return celEnv, celEnvErr
}

// Filter selects visit records with a compiled CEL expression.
// The zero value and a Filter compiled from "" keep every record.
type Filter struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks expr. Variables:
//
//	userId, venueId, venueCategoryEncoded, visitCount, visits  int
//	venueCategory                                              string
//	latitude, longitude                                        double
//	visitTimestamps                                            list(timestamp)
//
// visits is the number of parsed timestamps. Example:
//
//	venueCategory != "Home (private)" && visitCount >= 2
func Compile(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return &Filter{}, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: expression must return bool, got %s", ErrInvalidFilter, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	return &Filter{expr: expr, prg: prg}, nil
}

// Expression returns the compiled expression, empty for a pass-through filter.
func (f *Filter) Expression() string {
	return f.expr
}

// IsPassThrough reports whether the filter keeps every record.
func (f *Filter) IsPassThrough() bool {
	return f == nil || f.prg == nil
}

// Match evaluates the filter against one record.
func (f *Filter) Match(rec *recommend.VisitRecord) (bool, error) {
	if f.IsPassThrough() {
		return true, nil
	}

	out, _, err := f.prg.Eval(activation(rec))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Apply returns the records the filter keeps, in their original order.
// An evaluation error aborts the whole pass.
func (f *Filter) Apply(records []recommend.VisitRecord) ([]recommend.VisitRecord, error) {
	if f.IsPassThrough() {
		return records, nil
	}

	kept := make([]recommend.VisitRecord, 0, len(records))
	for i := range records {
		ok, err := f.Match(&records[i])
		if err != nil {
			return nil, fmt.Errorf("record %d (user %d, category %q): %w",
				i+1, records[i].UserID, records[i].VenueCategory, err)
		}
		if ok {
			kept = append(kept, records[i])
		}
	}
	return kept, nil
}

// activation builds the CEL input for a record.
func activation(rec *recommend.VisitRecord) map[string]any {
	return map[string]any{
		"userId":               rec.UserID,
		"venueId":              rec.VenueID,
		"venueCategory":        rec.VenueCategory,
		"venueCategoryEncoded": rec.VenueCategoryEncoded,
		"latitude":             rec.Latitude,
		"longitude":            rec.Longitude,
		"visitCount":           rec.VisitCount,
		"visitTimestamps":      rec.VisitTimestamps,
		"visits":               int64(len(rec.VisitTimestamps)),
	}
}
