// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/venuerec/internal/recommend"
)

// Artifact file names that do not depend on a backend.
const (
	SimilarUsersFile    = "similar_users.csv"
	TopCommonVenuesFile = "top_common_venues.csv"
)

// EnrichedFileName returns the enriched recommendations file of a backend.
func EnrichedFileName(backend string) string {
	return fmt.Sprintf("enriched_%s_recommendations.csv", backend)
}

// MetricsFileName returns the evaluation metrics file of a backend.
func MetricsFileName(backend string) string {
	return fmt.Sprintf("%s_metrics.csv", backend)
}

// artifactColumn is one column of an exported table.
type artifactColumn struct {
	name    string
	sqlType string
}

// artifact is a table staged in DuckDB and copied out as CSV.
type artifact struct {
	file    string
	columns []artifactColumn
	rows    [][]any
}

// ExportRun writes the CSV artifacts of a completed run into dir and
// returns the written paths. Each artifact is staged in a temporary table
// and written with COPY ... TO, in the order the rows were produced.
func (db *DB) ExportRun(ctx context.Context, dir string, result *recommend.RunResult) ([]string, error) {
	if result == nil {
		return nil, fmt.Errorf("run result is nil")
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	artifacts := runArtifacts(result)
	start := time.Now()

	paths := make([]string, 0, len(artifacts))
	err := db.withSession(ctx, func(conn *sql.Conn) error {
		for i := range artifacts {
			path := filepath.Join(dir, artifacts[i].file)
			if err := copyArtifact(ctx, conn, &artifacts[i], path); err != nil {
				return fmt.Errorf("failed to export %s: %w", artifacts[i].file, err)
			}
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	db.logger.Info().
		Str("dir", dir).
		Int("files", len(paths)).
		Dur("duration", time.Since(start)).
		Msg("Artifacts exported")

	return paths, nil
}

// runArtifacts lays out every artifact of result: the enriched list and
// metrics of each backend, then the neighbor tables.
func runArtifacts(result *recommend.RunResult) []artifact {
	artifacts := make([]artifact, 0, 2*len(result.Backends)+2)

	for i := range result.Backends {
		b := &result.Backends[i]

		enriched := artifact{
			file: EnrichedFileName(b.Backend),
			columns: []artifactColumn{
				{"category", "VARCHAR"},
				{"latitude", "DOUBLE"},
				{"longitude", "DOUBLE"},
				{"totalVisits", "BIGINT"},
			},
		}
		for _, e := range b.Enriched {
			enriched.rows = append(enriched.rows, []any{e.Category, e.Latitude, e.Longitude, e.TotalVisits})
		}

		metrics := artifact{
			file: MetricsFileName(b.Backend),
			columns: []artifactColumn{
				{"precision", "DOUBLE"},
				{"recall", "DOUBLE"},
				{"coverage", "DOUBLE"},
			},
			rows: [][]any{{b.Metrics.Precision, b.Metrics.Recall, b.Metrics.Coverage}},
		}

		artifacts = append(artifacts, enriched, metrics)
	}

	similar := artifact{
		file: SimilarUsersFile,
		columns: []artifactColumn{
			{"userId", "BIGINT"},
			{"similarityScore", "DOUBLE"},
		},
	}
	for _, s := range result.SimilarUsers {
		similar.rows = append(similar.rows, []any{s.UserID, s.SimilarityScore})
	}

	venues := artifact{
		file: TopCommonVenuesFile,
		columns: []artifactColumn{
			{"venueCategory", "VARCHAR"},
			{"latitude", "DOUBLE"},
			{"longitude", "DOUBLE"},
			{"visitCount", "BIGINT"},
		},
	}
	for _, v := range result.NeighborVenues {
		venues.rows = append(venues.rows, []any{v.Category, v.Latitude, v.Longitude, v.TotalVisits})
	}

	return append(artifacts, similar, venues)
}

// copyArtifact stages a in a temporary table on conn and copies it to path.
func copyArtifact(ctx context.Context, conn *sql.Conn, a *artifact, path string) error {
	table := quoteIdent("export_" + strings.TrimSuffix(a.file, filepath.Ext(a.file)))

	defs := make([]string, 0, len(a.columns)+1)
	names := make([]string, 0, len(a.columns))
	placeholders := make([]string, 0, len(a.columns)+1)
	defs = append(defs, "ord INTEGER")
	placeholders = append(placeholders, "?")
	for _, c := range a.columns {
		defs = append(defs, quoteIdent(c.name)+" "+c.sqlType)
		names = append(names, quoteIdent(c.name))
		placeholders = append(placeholders, "?")
	}

	createQuery := fmt.Sprintf("CREATE OR REPLACE TEMPORARY TABLE %s (%s)", table, strings.Join(defs, ", "))
	if _, err := conn.ExecContext(ctx, createQuery); err != nil {
		return fmt.Errorf("failed to create temporary table: %w", err)
	}
	defer func() {
		// Non-fatal; the table disappears with the connection anyway.
		_, _ = conn.ExecContext(context.Background(), "DROP TABLE IF EXISTS "+table)
	}()

	if len(a.rows) > 0 {
		if err := insertRows(ctx, conn, table, strings.Join(placeholders, ", "), a.rows); err != nil {
			return err
		}
	}

	copyQuery := fmt.Sprintf("COPY (SELECT %s FROM %s ORDER BY ord) TO %s (FORMAT CSV, HEADER)",
		strings.Join(names, ", "), table, quoteLiteral(path))
	if _, err := conn.ExecContext(ctx, copyQuery); err != nil {
		return fmt.Errorf("failed to copy to %s: %w", path, err)
	}
	return nil
}

func insertRows(ctx context.Context, conn *sql.Conn, table, placeholders string, rows [][]any) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, placeholders))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}

	for i, row := range rows {
		args := make([]any, 0, len(row)+1)
		args = append(args, i)
		args = append(args, row...)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			closeQuietly(stmt)
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}
	closeQuietly(stmt)

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rows: %w", err)
	}
	return nil
}
