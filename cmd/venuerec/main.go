// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/venuerec/internal/config"
	"github.com/tomtom215/venuerec/internal/logging"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.ToLoggingConfig())

	// Cancel the run on SIGINT and SIGTERM; nothing is exported then.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logging.ContextWithLogger(ctx, logging.WithComponent("pipeline"))
	ctx = logging.ContextWithNewRunID(ctx)

	logging.Ctx(ctx).Info().Msg("Starting venuerec")

	_, err = runPipeline(ctx, cfg)
	pushMetrics(ctx, cfg)
	stop()

	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}
