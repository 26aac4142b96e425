package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/ccgdrs/internal/testutil"
)

// createTestStore creates a new store in a temp directory with
// deterministic IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDs()))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
