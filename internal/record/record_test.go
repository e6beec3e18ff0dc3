package record

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tenniscalc/internal/scoring"
	"github.com/roach88/tenniscalc/internal/testutil"
)

func newPlayedMatch(t *testing.T, points []int) *scoring.Match {
	t.Helper()
	m := scoring.NewMatch("01", "Person A", "Person B")
	for _, p := range points {
		require.NoError(t, m.RecordPoint(p))
	}
	return m
}

func TestFromMatch(t *testing.T) {
	points := testutil.Concat(testutil.Game(testutil.P1), []int{2, 1})
	rec := FromMatch(newPlayedMatch(t, points))

	want := MatchRecord{ID: "01", PlayerOne: "Person A", PlayerTwo: "Person B", Points: points}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("FromMatch() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromMatch_NoPoints(t *testing.T) {
	rec := FromMatch(scoring.NewMatch("01", "A", "B"))
	assert.NotNil(t, rec.Points)
	assert.Empty(t, rec.Points)
}

func TestReplay_RoundTrip(t *testing.T) {
	points := testutil.Concat(
		testutil.LoveSet(testutil.P2),
		testutil.AlternatingGames(testutil.P1, 12),
		[]int{1, 1, 2},
	)
	original := newPlayedMatch(t, points)

	replayed, err := FromMatch(original).Replay()
	require.NoError(t, err)

	assert.Equal(t, original.ScoreDisplay(), replayed.ScoreDisplay())
	assert.Equal(t, original.SetsWon(), replayed.SetsWon())
	if diff := cmp.Diff(original.Points(), replayed.Points()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestReplay_CompletedMatch(t *testing.T) {
	original := newPlayedMatch(t, testutil.Repeat(testutil.P1, 48))

	replayed, err := FromMatch(original).Replay()
	require.NoError(t, err)
	assert.True(t, replayed.IsCompleted())
	assert.Equal(t, "Person A", replayed.Winner())
}

func TestReplay_PointsAfterCompletion(t *testing.T) {
	rec := MatchRecord{ID: "01", PlayerOne: "A", PlayerTwo: "B", Points: testutil.Repeat(testutil.P1, 49)}

	_, err := rec.Replay()
	assert.ErrorIs(t, err, scoring.ErrInvalidMatchData)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		rec  MatchRecord
	}{
		{"empty id", MatchRecord{PlayerOne: "A", PlayerTwo: "B"}},
		{"empty player", MatchRecord{ID: "01", PlayerOne: "A"}},
		{"bad point", MatchRecord{ID: "01", PlayerOne: "A", PlayerTwo: "B", Points: []int{1, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.rec.Validate(), scoring.ErrInvalidMatchData)
		})
	}
}
