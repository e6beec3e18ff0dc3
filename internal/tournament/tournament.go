// Package tournament keeps the registry of matches for a run and answers
// player-scoped aggregate questions across them.
package tournament

import (
	"log/slog"
	"sort"

	"github.com/roach88/tenniscalc/internal/scoring"
)

// MatchNotStarted is returned by MatchScore for a match with no points.
const MatchNotStarted = "Match not started"

// Tournament maps match ids to matches.
//
// Insertion order is preserved so listings and persistence are
// deterministic. Replacing a match keeps its original position.
//
// Thread-safety: not safe for concurrent mutation. One writer at a time.
type Tournament struct {
	matches map[string]*scoring.Match
	order   []string
}

// New creates an empty tournament.
func New() *Tournament {
	return &Tournament{matches: make(map[string]*scoring.Match)}
}

// AddMatch registers m under its id.
// Returns a DuplicateMatch error if the id exists and overwrite is false.
func (t *Tournament) AddMatch(m *scoring.Match, overwrite bool) error {
	id := m.ID()
	if _, exists := t.matches[id]; exists {
		if !overwrite {
			return scoring.NewDuplicateMatchError(id)
		}
		slog.Debug("replacing match", "match_id", id)
	} else {
		t.order = append(t.order, id)
	}
	t.matches[id] = m
	return nil
}

// Match returns the match registered under id.
func (t *Tournament) Match(id string) (*scoring.Match, error) {
	m, ok := t.matches[id]
	if !ok {
		return nil, scoring.NewMatchNotFoundError(id)
	}
	return m, nil
}

// RecordMatchPoint records a point for player in the match registered under id.
func (t *Tournament) RecordMatchPoint(id string, player int) error {
	m, err := t.Match(id)
	if err != nil {
		return err
	}
	return m.RecordPoint(player)
}

// Matches returns every match in insertion order.
func (t *Tournament) Matches() []*scoring.Match {
	out := make([]*scoring.Match, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.matches[id])
	}
	return out
}

// Len returns the number of registered matches.
func (t *Tournament) Len() int {
	return len(t.order)
}

// PlayerMatches returns the matches name plays in, in insertion order.
// Returns a PlayerNotFound error if there are none.
func (t *Tournament) PlayerMatches(name string) ([]*scoring.Match, error) {
	var out []*scoring.Match
	for _, m := range t.Matches() {
		if m.HasPlayer(name) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, scoring.NewPlayerNotFoundError(name)
	}
	return out, nil
}

// PlayerGames sums games won and lost by name across all of their matches.
// Returns a PlayerNotFound error if no match references name.
func (t *Tournament) PlayerGames(name string) (won, lost int, err error) {
	matches, err := t.PlayerMatches(name)
	if err != nil {
		return 0, 0, err
	}

	for _, m := range matches {
		w, l, err := m.GamesSummary(name)
		if err != nil {
			return 0, 0, err
		}
		won += w
		lost += l
	}
	return won, lost, nil
}

// MatchScore returns the live score display for id, or MatchNotStarted when
// the match has no recorded points.
func (t *Tournament) MatchScore(id string) (string, error) {
	m, err := t.Match(id)
	if err != nil {
		return "", err
	}
	if !m.HasStarted() {
		return MatchNotStarted, nil
	}
	return m.ScoreDisplay(), nil
}

// Players returns every distinct player name, sorted.
func (t *Tournament) Players() []string {
	seen := make(map[string]bool)
	for _, m := range t.matches {
		seen[m.PlayerOne()] = true
		seen[m.PlayerTwo()] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
