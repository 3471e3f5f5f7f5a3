package store

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "base.db")
	opts = append([]Option{WithLogger(zaptest.NewLogger(t).Sugar())}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustAdd adds a law or fails the test.
func mustAdd(t *testing.T, s *Store, name, formula, section string) {
	t.Helper()
	err := s.Add(context.Background(), Law{Name: name, Formula: formula, Section: section})
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", name, err)
	}
}

// countRows returns the number of rows in maths.
func countRows(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM maths").Scan(&n); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}
