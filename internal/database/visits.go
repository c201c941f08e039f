// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/venuerec/internal/recommend"
	"github.com/tomtom215/venuerec/internal/validation"
)

// VisitColumns are the visit log columns a CSV must provide, in scan order.
var VisitColumns = []string{
	"userId",
	"venueIdEncoded",
	"venueCategory",
	"venueCategoryEncoded",
	"latitude",
	"longitude",
	"visitCount",
	"visitTimestamps",
}

// timestampLayout is the layout of a single visit timestamp.
const timestampLayout = "2006-01-02 15:04:05"

// timestampPattern finds timestamps inside list renderings that are not
// JSON, such as "[Timestamp('2012-04-03 18:00:09'), ...]".
var timestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}`)

// LoadVisitRecords reads the visit log CSV at path.
//
// Every row is type-checked by DuckDB and then validated; the first bad
// row aborts the load with an error wrapping recommend.ErrDataValidation.
// Records are returned in file order.
func (db *DB) LoadVisitRecords(ctx context.Context, path string) ([]recommend.VisitRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("visit log %s: %w", path, err)
	}

	start := time.Now()
	source := fmt.Sprintf("read_csv(%s, header = true, all_varchar = true)", quoteLiteral(path))

	var records []recommend.VisitRecord
	err := db.withSession(ctx, func(conn *sql.Conn) error {
		columns, err := csvColumns(ctx, conn, source)
		if err != nil {
			return fmt.Errorf("failed to read header of %s: %w", path, err)
		}
		if missing := missingColumns(columns); len(missing) > 0 {
			return fmt.Errorf("%w: %s is missing required column(s): %s",
				recommend.ErrDataValidation, path, strings.Join(missing, ", "))
		}

		records, err = scanVisitRecords(ctx, conn, source)
		return err
	})
	if err != nil {
		return nil, err
	}

	db.logger.Info().
		Str("path", path).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Visit log loaded")

	return records, nil
}

// csvColumns returns the header names of a read_csv source.
func csvColumns(ctx context.Context, conn *sql.Conn, source string) ([]string, error) {
	rows, err := conn.QueryContext(ctx, "SELECT * FROM "+source+" LIMIT 0")
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	return rows.Columns()
}

// missingColumns lists required visit columns absent from columns.
// Header names are matched case-insensitively, as DuckDB resolves them.
func missingColumns(columns []string) []string {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[strings.ToLower(c)] = true
	}

	var missing []string
	for _, c := range VisitColumns {
		if !have[strings.ToLower(c)] {
			missing = append(missing, c)
		}
	}
	return missing
}

// columnKind is how a visit column is read from its text cell.
type columnKind int

const (
	textColumn columnKind = iota
	integerColumn
	decimalColumn
)

// visitColumnKinds types every VisitColumns entry.
var visitColumnKinds = map[string]columnKind{
	"userId":               integerColumn,
	"venueIdEncoded":       integerColumn,
	"venueCategory":        textColumn,
	"venueCategoryEncoded": integerColumn,
	"latitude":             decimalColumn,
	"longitude":            decimalColumn,
	"visitCount":           integerColumn,
	"visitTimestamps":      textColumn,
}

// visitQuery builds the projection over source. Each column is selected
// as text next to its TRY_CAST values, so a bad cell can be named with the
// value it holds. Integer columns are also cast through DOUBLE because
// pandas writes integer columns that once held NaN as "3.0".
func visitQuery(source string) string {
	exprs := make([]string, 0, 3*len(VisitColumns))
	for _, name := range VisitColumns {
		col := quoteIdent(name)
		exprs = append(exprs, col)
		switch visitColumnKinds[name] {
		case integerColumn:
			exprs = append(exprs,
				fmt.Sprintf("TRY_CAST(%s AS BIGINT)", col),
				fmt.Sprintf("TRY_CAST(%s AS DOUBLE)", col))
		case decimalColumn:
			exprs = append(exprs, fmt.Sprintf("TRY_CAST(%s AS DOUBLE)", col))
		}
	}
	return "SELECT " + strings.Join(exprs, ", ") + " FROM " + source
}

// visitCells holds the scanned cells of one row, indexed like VisitColumns.
type visitCells struct {
	text  []sql.NullString
	ints  []sql.NullInt64
	reals []sql.NullFloat64
}

func newVisitCells() *visitCells {
	n := len(VisitColumns)
	return &visitCells{
		text:  make([]sql.NullString, n),
		ints:  make([]sql.NullInt64, n),
		reals: make([]sql.NullFloat64, n),
	}
}

// dest returns scan targets in visitQuery order.
func (c *visitCells) dest() []any {
	out := make([]any, 0, 3*len(VisitColumns))
	for i, name := range VisitColumns {
		out = append(out, &c.text[i])
		switch visitColumnKinds[name] {
		case integerColumn:
			out = append(out, &c.ints[i], &c.reals[i])
		case decimalColumn:
			out = append(out, &c.reals[i])
		}
	}
	return out
}

// record converts the cells of row into a VisitRecord. The first cell that
// is empty or not of its column type is reported as a CellError.
func (c *visitCells) record(row int) (recommend.VisitRecord, error) {
	r := visitRow{cells: c, row: row}
	rec := recommend.VisitRecord{
		UserID:               r.integer(0),
		VenueID:              r.integer(1),
		VenueCategory:        r.text(2),
		VenueCategoryEncoded: r.integer(3),
		Latitude:             r.decimal(4),
		Longitude:            r.decimal(5),
		VisitCount:           r.integer(6),
	}
	if r.err != nil {
		return recommend.VisitRecord{}, r.err
	}
	if ts := c.text[7]; ts.Valid {
		rec.VisitTimestamps = parseVisitTimestamps(ts.String)
	}
	return rec, nil
}

// visitRow reads cells of one row and keeps the first failure.
type visitRow struct {
	cells *visitCells
	row   int
	err   error
}

func (r *visitRow) fail(i int, reason string) {
	if r.err == nil {
		r.err = validation.CellError(r.row, VisitColumns[i], reason)
	}
}

func (r *visitRow) present(i int) bool {
	if r.err != nil {
		return false
	}
	if t := r.cells.text[i]; !t.Valid || strings.TrimSpace(t.String) == "" {
		r.fail(i, "value is empty")
		return false
	}
	return true
}

func (r *visitRow) text(i int) string {
	if !r.present(i) {
		return ""
	}
	return r.cells.text[i].String
}

func (r *visitRow) integer(i int) int64 {
	if !r.present(i) {
		return 0
	}
	raw := r.cells.text[i].String
	iv, fv := r.cells.ints[i], r.cells.reals[i]
	switch {
	case !iv.Valid && !fv.Valid:
		r.fail(i, fmt.Sprintf("%q is not a number", raw))
	case fv.Valid && fv.Float64 != math.Trunc(fv.Float64):
		r.fail(i, fmt.Sprintf("%q is not a whole number", raw))
	case iv.Valid:
		return iv.Int64
	case math.Abs(fv.Float64) > maxExactInteger:
		r.fail(i, fmt.Sprintf("%q is out of range", raw))
	default:
		return int64(fv.Float64)
	}
	return 0
}

func (r *visitRow) decimal(i int) float64 {
	if !r.present(i) {
		return 0
	}
	f := r.cells.reals[i]
	if !f.Valid || math.IsNaN(f.Float64) || math.IsInf(f.Float64, 0) {
		r.fail(i, fmt.Sprintf("%q is not a number", r.cells.text[i].String))
		return 0
	}
	return f.Float64
}

// maxExactInteger is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactInteger = 1 << 53

func scanVisitRecords(ctx context.Context, conn *sql.Conn, source string) ([]recommend.VisitRecord, error) {
	rows, err := conn.QueryContext(ctx, visitQuery(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", recommend.ErrDataValidation, err)
	}
	defer closeQuietly(rows)

	cells := newVisitCells()
	dest := cells.dest()

	var records []recommend.VisitRecord
	row := 0
	for rows.Next() {
		row++

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", row, err)
		}

		rec, err := cells.record(row)
		if err != nil {
			return nil, err
		}
		if err := validation.ValidateRecord(row, &rec); err != nil {
			return nil, err
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", recommend.ErrDataValidation, err)
	}

	return records, nil
}

// parseVisitTimestamps extracts visit times from a list rendering. A JSON
// array of strings is decoded directly; anything else is scanned for
// YYYY-MM-DD HH:MM:SS substrings. Entries that match no layout are skipped.
func parseVisitTimestamps(raw string) []time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var items []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			items = nil
		}
	}
	if items == nil {
		items = timestampPattern.FindAllString(raw, -1)
	}

	out := make([]time.Time, 0, len(items))
	for _, s := range items {
		if ts, ok := parseTimestamp(s); ok {
			out = append(out, ts)
		}
	}
	return out
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if ts, err := time.Parse(timestampLayout, s); err == nil {
		return ts, true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}
