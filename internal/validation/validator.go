// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed constraint on one struct field.
type FieldError struct {
	Field   string // Go field name, e.g. "VisitCount"
	Tag     string // failed rule, e.g. "gte"
	Param   string // rule parameter, e.g. "0"
	Value   any
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// FieldErrors lists every failed constraint of one struct in field order.
// A nil FieldErrors means the struct is valid.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(fe))
	for i := range fe {
		messages[i] = fe[i].Message
	}
	return strings.Join(messages, "; ")
}

// HasField reports whether the named field failed validation.
func (fe FieldErrors) HasField(field string) bool {
	for i := range fe {
		if fe[i].Field == field {
			return true
		}
	}
	return false
}

// GetValidator returns the shared validator. Struct metadata is cached
// across calls, so validating every row of a large visit log stays cheap.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Registration only fails for an empty tag or nil func.
		_ = validate.RegisterValidation("notblank", notBlank)
	})

	return validate
}

// notBlank rejects whitespace-only strings. "required" alone accepts "  ",
// which would otherwise become its own matrix column.
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidateStruct checks s against its validate tags and returns nil when
// every rule passes.
//
//	if errs := validation.ValidateStruct(cfg); errs != nil {
//	    return errs
//	}
func ValidateStruct(s any) FieldErrors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// nil or non-struct argument
		return FieldErrors{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make(FieldErrors, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: message(fe),
		}
	}
	return out
}

var plainMessages = map[string]string{
	"required":  "%s is required",
	"notblank":  "%s must not be blank",
	"url":       "%s must be a valid URL",
	"latitude":  "%s must be a valid latitude (-90 to 90)",
	"longitude": "%s must be a valid longitude (-180 to 180)",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

// message renders fe for a person reading a run log.
func message(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if tmpl, ok := plainMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}
	if tag != "min" && tag != "max" {
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}

	bound := "at least"
	if tag == "max" {
		bound = "at most"
	}
	switch fe.Kind().String() {
	case "string":
		return fmt.Sprintf("%s must be %s %s characters", field, bound, param)
	case "slice", "map", "array":
		return fmt.Sprintf("%s must contain %s %s items", field, bound, param)
	default:
		return fmt.Sprintf("%s must be %s %s", field, bound, param)
	}
}
