// Package record defines the persisted form of a match.
//
// A match is stored as its header and point log, never as derived state.
// Loading replays the log through scoring.Match, so a stored match always
// obeys the current scoring rules.
//
// Each record carries a content digest: SHA-256 over its canonical JSON,
// with a domain prefix. The digest lets the store detect edited or
// truncated point logs.
package record

import (
	"fmt"

	"github.com/roach88/tenniscalc/internal/scoring"
)

// MatchRecord is the stored form of a match.
type MatchRecord struct {
	ID        string `json:"id"`
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
	Points    []int  `json:"points"` // scoring.PlayerOne or scoring.PlayerTwo per point
}

// FromMatch captures m's header and point log.
func FromMatch(m *scoring.Match) MatchRecord {
	points := m.Points()
	if points == nil {
		points = []int{}
	}
	return MatchRecord{
		ID:        m.ID(),
		PlayerOne: m.PlayerOne(),
		PlayerTwo: m.PlayerTwo(),
		Points:    points,
	}
}

// Validate checks the header and that every point names a player.
func (r MatchRecord) Validate() error {
	if r.ID == "" {
		return scoring.NewInvalidMatchDataError("record has empty match id")
	}
	if r.PlayerOne == "" || r.PlayerTwo == "" {
		return scoring.NewInvalidMatchDataError(fmt.Sprintf("record %s has empty player name", r.ID))
	}
	for i, p := range r.Points {
		if p != scoring.PlayerOne && p != scoring.PlayerTwo {
			return scoring.NewInvalidMatchDataError(fmt.Sprintf("record %s: point %d has invalid player %d", r.ID, i, p))
		}
	}
	return nil
}

// Replay rebuilds the match by recording every point in order.
//
// A stored log never extends past the deciding point, so a point after
// completion is reported as InvalidMatchData rather than dropped.
func (r MatchRecord) Replay() (*scoring.Match, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	m := scoring.NewMatch(r.ID, r.PlayerOne, r.PlayerTwo)
	for i, p := range r.Points {
		if m.IsCompleted() {
			return nil, scoring.NewInvalidMatchDataError(
				fmt.Sprintf("record %s: %d points after match completion", r.ID, len(r.Points)-i))
		}
		if err := m.RecordPoint(p); err != nil {
			return nil, fmt.Errorf("replay %s point %d: %w", r.ID, i, err)
		}
	}
	return m, nil
}
