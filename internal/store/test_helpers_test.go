package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// recordTest appends e and fails the test on error.
func recordTest(t *testing.T, s *Store, e Extraction) int64 {
	t.Helper()
	seq, err := s.Record(context.Background(), e)
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	return seq
}
