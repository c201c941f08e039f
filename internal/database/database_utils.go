// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

/*
database_utils.go - Database Utility Functions

Context Management:
  - ensureContext(): Adds a default timeout when the caller set none
  - Ensures all database operations have a timeout to prevent hanging queries

SQL Helpers:
  - quoteLiteral(): Renders a string as a single-quoted SQL literal for
    positions DuckDB does not accept bound parameters in (file paths of
    read_csv and COPY)

Checkpointing:
  - Checkpoint(): Forces a WAL checkpoint before close
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// defaultQueryTimeout bounds operations whose caller set no deadline.
// Loading a large visit log is the slowest operation.
const defaultQueryTimeout = 2 * time.Minute

// ensureContext creates a context with the default timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), defaultQueryTimeout)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, defaultQueryTimeout)
	}

	return ctx, func() {}
}

// quoteLiteral returns s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent returns s as a double-quoted SQL identifier.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, "CHECKPOINT")
	if err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// GetDatabasePath returns the path to the database file, empty for an
// in-memory database.
func (db *DB) GetDatabasePath() string {
	if db.IsInMemory() {
		return ""
	}
	return db.cfg.Path
}
