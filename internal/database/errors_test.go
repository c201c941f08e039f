// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package database

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tomtom215/venuerec/internal/logging"
)

// mockCloser implements io.Closer for testing
type mockCloser struct {
	closed bool
	err    error
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

func TestCloseWithLog(t *testing.T) {
	t.Run("nil closer does not panic", func(t *testing.T) {
		var buf bytes.Buffer
		closeWithLog(nil, logging.NewTestLogger(&buf), "test")

		if buf.Len() > 0 {
			t.Errorf("Expected no log output for nil closer, got: %s", buf.String())
		}
	})

	t.Run("successful close does not log", func(t *testing.T) {
		var buf bytes.Buffer
		closer := &mockCloser{err: nil}
		closeWithLog(closer, logging.NewTestLogger(&buf), "test resource")

		if !closer.closed {
			t.Error("Expected closer to be closed")
		}
		if buf.Len() > 0 {
			t.Errorf("Expected no log output for successful close, got: %s", buf.String())
		}
	})

	t.Run("error during close is logged", func(t *testing.T) {
		var buf bytes.Buffer
		closer := &mockCloser{err: errors.New("close failed: connection reset")}
		closeWithLog(closer, logging.NewTestLogger(&buf), "session connection")

		if !closer.closed {
			t.Error("Expected closer to be closed")
		}
		logOutput := buf.String()
		if !strings.Contains(logOutput, "Failed to close resource") {
			t.Errorf("Expected log to contain 'Failed to close resource', got: %s", logOutput)
		}
		if !strings.Contains(logOutput, "session connection") {
			t.Errorf("Expected log to contain resource type, got: %s", logOutput)
		}
		if !strings.Contains(logOutput, "close failed: connection reset") {
			t.Errorf("Expected log to contain error message, got: %s", logOutput)
		}
	})
}

func TestCloseQuietly(t *testing.T) {
	t.Run("nil closer does not panic", func(t *testing.T) {
		closeQuietly(nil)
	})

	t.Run("error during close is ignored", func(t *testing.T) {
		closer := &mockCloser{err: errors.New("close failed")}
		closeQuietly(closer)

		if !closer.closed {
			t.Error("Expected closer to be closed even with error")
		}
	})

	t.Run("works with various io.Closer implementations", func(t *testing.T) {
		closeQuietly(io.NopCloser(strings.NewReader("test data")))
	})
}

func TestQuoting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"plain literal", quoteLiteral("/tmp/visits.csv"), "'/tmp/visits.csv'"},
		{"literal with quote", quoteLiteral("/tmp/o'neil.csv"), "'/tmp/o''neil.csv'"},
		{"plain ident", quoteIdent("userId"), `"userId"`},
		{"ident with quote", quoteIdent(`a"b`), `"a""b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}
