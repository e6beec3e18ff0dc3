package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/tenniscalc/internal/scoring"
	"github.com/roach88/tenniscalc/internal/testutil"
	"github.com/roach88/tenniscalc/internal/tournament"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestMatch creates a match with the given points already recorded.
func createTestMatch(t *testing.T, id, playerOne, playerTwo string, points []int) *scoring.Match {
	t.Helper()
	m := scoring.NewMatch(id, playerOne, playerTwo)
	for _, p := range points {
		if err := m.RecordPoint(p); err != nil {
			t.Fatalf("RecordPoint(%d) failed: %v", p, err)
		}
	}
	return m
}

// createTestTournament creates a tournament with two matches:
// "01" finished 6-0, 6-0 and "02" live at 1-0.
func createTestTournament(t *testing.T) *tournament.Tournament {
	t.Helper()
	tour := tournament.New()
	matches := []*scoring.Match{
		createTestMatch(t, "01", "Person A", "Person B", testutil.Repeat(testutil.P1, 48)),
		createTestMatch(t, "02", "Person A", "Person C", testutil.Game(testutil.P2)),
	}
	for _, m := range matches {
		if err := tour.AddMatch(m, false); err != nil {
			t.Fatalf("AddMatch(%s) failed: %v", m.ID(), err)
		}
	}
	return tour
}
