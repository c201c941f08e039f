// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

// Package logging provides centralized zerolog-based structured logging.
//
// The package wraps a single global zerolog logger that emits JSON by
// default and human-readable console output on request. Every batch run
// carries a run ID in its context so all log lines of one run can be
// correlated.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx := logging.ContextWithNewRunID(context.Background())
//	logging.Ctx(ctx).Info().Int("records", n).Msg("visit log loaded")
//
// # Components
//
// Long-lived components take a zerolog.Logger and tag it:
//
//	logger := logging.WithComponent("database")
//
// A logger stored with ContextWithLogger is what Ctx returns for that
// context; otherwise Ctx falls back to the global logger.
//
// # Configuration
//
// Environment Variables (through internal/config):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false (default: false)
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Ctx(ctx).Info().Str("key", "value").Msg("message")  // Correct
//	logging.Ctx(ctx).Info().Str("key", "value")                 // WRONG - log not emitted
//
// Outside a run context (configuration errors) only logging.Fatal is used.
package logging
