// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

// Package database provides the DuckDB data layer of venuerec.
//
// # Overview
//
// DuckDB reads the visit log and writes the run artifacts. Nothing is
// persisted between runs; by default the database lives in memory.
//
// Files:
//   - database.go: Lifecycle (open, ping, close)
//   - database_connection.go: Pool configuration and pinned sessions
//   - database_utils.go: Context timeouts, SQL quoting, checkpointing
//   - visits.go: Visit log loading and validation
//   - export.go: CSV artifact export
//
// # Loading
//
// LoadVisitRecords queries the CSV through read_csv with every column read
// as text and cast with TRY_CAST, so a bad value is reported with its row
// and column instead of a generic conversion failure. Each row is then
// validated with the validation package. All failures wrap
// recommend.ErrDataValidation.
//
//	records, err := db.LoadVisitRecords(ctx, "clean_data.csv")
//	if errors.Is(err, recommend.ErrDataValidation) {
//	    // malformed input
//	}
//
// # Export
//
// ExportRun stages each artifact in a temporary table and writes it with
// COPY ... TO (FORMAT CSV, HEADER):
//   - enriched_<backend>_recommendations.csv
//   - <backend>_metrics.csv
//   - similar_users.csv
//   - top_common_venues.csv
//
// # Thread Safety
//
// DB is safe for concurrent use. Operations that depend on temporary
// tables run on a single pinned connection.
package database
