package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tenniscalc/internal/scoring"
	"github.com/roach88/tenniscalc/internal/testutil"
)

func TestParseDetails(t *testing.T) {
	details, err := ParseDetails([]string{"Match: 01", "Person A vs Person B", "0"})
	require.NoError(t, err)
	assert.Equal(t, Details{ID: "01", PlayerOne: "Person A", PlayerTwo: "Person B"}, details)
}

func TestParseDetails_TrimsNames(t *testing.T) {
	details, err := ParseDetails([]string{"  Match:   7  ", "  Ann   vs   Bo  "})
	require.NoError(t, err)
	assert.Equal(t, "7", details.ID)
	assert.Equal(t, "Ann", details.PlayerOne)
	assert.Equal(t, "Bo", details.PlayerTwo)
}

func TestParseDetails_Errors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"only id", []string{"Match: 01"}},
		{"missing marker", []string{"Game: 01", "A vs B"}},
		{"empty id", []string{"Match:", "A vs B"}},
		{"missing separator", []string{"Match: 01", "A versus B"}},
		{"empty player", []string{"Match: 01", " vs B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDetails(tt.lines)
			require.Error(t, err)
			assert.ErrorIs(t, err, scoring.ErrInvalidMatchFormat)
		})
	}
}

func TestParsePoints(t *testing.T) {
	points, err := ParsePoints([]string{"Match: 01", "A vs B", "0", "", "1", "0"})
	require.NoError(t, err)
	assert.Equal(t, []int{scoring.PlayerOne, scoring.PlayerTwo, scoring.PlayerOne}, points)
}

func TestParsePoints_InvalidValue(t *testing.T) {
	for _, bad := range []string{"2", "x", "00", "-1"} {
		_, err := ParsePoints([]string{"Match: 01", "A vs B", "0", bad})
		assert.ErrorIs(t, err, scoring.ErrInvalidMatchFormat, "value %q", bad)
	}
}

func TestParseMatch_ReplaysPoints(t *testing.T) {
	m, err := ParseMatch(testutil.MatchBlock("01", "Player One", "Player Two", testutil.Game(testutil.P1)))
	require.NoError(t, err)

	assert.Equal(t, "01", m.ID())
	assert.Equal(t, "1-0", m.ScoreDisplay())
	assert.False(t, m.IsCompleted())
}

func TestParseMatch_DropsPointsAfterCompletion(t *testing.T) {
	points := testutil.Concat(testutil.Repeat(testutil.P1, 48), testutil.Repeat(testutil.P2, 10))
	m, err := ParseMatch(testutil.MatchBlock("01", "A", "B", points))
	require.NoError(t, err)

	assert.True(t, m.IsCompleted())
	assert.Equal(t, "A", m.Winner())
	assert.Len(t, m.Points(), 48)
}

func TestParseMatch_InvalidPointCarriesMatchID(t *testing.T) {
	_, err := ParseMatch([]string{"Match: 42", "A vs B", "0", "3"})
	require.Error(t, err)
	assert.ErrorIs(t, err, scoring.ErrInvalidMatchFormat)

	var e *scoring.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "42", e.MatchID)
}

func TestParseMatch_NormalizesNames(t *testing.T) {
	decomposed := "Jose\u0301"
	composed := "Jos\u00e9"
	require.NotEqual(t, decomposed, composed)

	m, err := ParseMatch([]string{"Match: 01", decomposed + " vs B"})
	require.NoError(t, err)
	assert.Equal(t, composed, m.PlayerOne())
	assert.Equal(t, composed, NormalizeName(decomposed))
}

func TestParseDetails_CollapsesInnerWhitespace(t *testing.T) {
	details, err := ParseDetails([]string{"Match: 0  1", "Player  One vs Player \t Two"})
	require.NoError(t, err)
	assert.Equal(t, Details{ID: "0 1", PlayerOne: "Player One", PlayerTwo: "Player Two"}, details)
	assert.Equal(t, "Player One", NormalizeName("  Player   One "))
}
