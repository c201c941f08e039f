// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/venuerec/internal/config"
)

// testDBSemaphore limits concurrent database creation. Too many concurrent
// DuckDB CGO calls can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a new in-memory test database with timeout protection.
// The semaphore is held for the entire test and released by t.Cleanup.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
		Threads:   2,
	}

	type result struct {
		db  *DB
		err error
	}

	resultCh := make(chan result, 1)
	go func() {
		db, err := New(cfg)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s (DuckDB may be under resource pressure)")
		return nil
	}
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t)

	if !db.IsInMemory() {
		t.Error("IsInMemory() = false, want true")
	}
	if db.GetDatabasePath() != "" {
		t.Errorf("GetDatabasePath() = %q, want empty", db.GetDatabasePath())
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if db.Conn() == nil {
		t.Error("Conn() returned nil")
	}
}

func TestNew_EmptyPathIsInMemory(t *testing.T) {
	db, err := New(&config.DatabaseConfig{MaxMemory: "512MB"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if !db.IsInMemory() {
		t.Error("IsInMemory() = false, want true")
	}
}

func TestNew_FileBacked(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "venuerec.duckdb")

	db, err := New(&config.DatabaseConfig{Path: path, MaxMemory: "512MB", Threads: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if db.IsInMemory() {
		t.Error("IsInMemory() = true, want false")
	}
	if db.GetDatabasePath() != path {
		t.Errorf("GetDatabasePath() = %q, want %q", db.GetDatabasePath(), path)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) expected error")
	}
}

func TestEnsureContext(t *testing.T) {
	db := &DB{}

	ctx, cancel := db.ensureContext(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected default deadline")
	}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
	defer parentCancel()
	want, _ := parent.Deadline()

	ctx2, cancel2 := db.ensureContext(parent)
	defer cancel2()
	got, _ := ctx2.Deadline()
	if !got.Equal(want) {
		t.Errorf("deadline = %v, want caller deadline %v", got, want)
	}
}
