package store

import (
	"context"
	"fmt"

	"github.com/roach88/tenniscalc/internal/record"
	"github.com/roach88/tenniscalc/internal/tournament"
)

// StoredMatch is a match record with its storage metadata.
type StoredMatch struct {
	Record         record.MatchRecord `json:"record"`
	Digest         string             `json:"digest"`
	IngestionToken string             `json:"ingestion_token"`
	Seq            int64              `json:"seq"`
}

// Ingestion is one SaveTournament batch.
type Ingestion struct {
	Token      string `json:"token"`
	Seq        int64  `json:"seq"`
	Source     string `json:"source"`
	MatchCount int    `json:"match_count"` // matches written or replaced by this batch
}

// LoadTournament rebuilds the stored tournament.
//
// Each point log is checked against its digest and replayed in order.
// A digest mismatch or an unreplayable log is an error; nothing is
// partially loaded.
func (s *Store) LoadTournament(ctx context.Context) (*tournament.Tournament, error) {
	stored, err := s.ListMatchRecords(ctx)
	if err != nil {
		return nil, err
	}

	t := tournament.New()
	for _, sm := range stored {
		if err := record.VerifyDigest(sm.Record, sm.Digest); err != nil {
			return nil, fmt.Errorf("load tournament: %w", err)
		}
		m, err := sm.Record.Replay()
		if err != nil {
			return nil, fmt.Errorf("load tournament: %w", err)
		}
		if err := t.AddMatch(m, false); err != nil {
			return nil, fmt.Errorf("load tournament: %w", err)
		}
	}
	return t, nil
}

// ListMatchRecords returns every stored match with its point log.
// Results are ordered by seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the store holds no matches.
func (s *Store) ListMatchRecords(ctx context.Context) ([]StoredMatch, error) {
	points, err := s.readPoints(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_one, player_two, ingestion_token, digest, seq
		FROM matches
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	matches := []StoredMatch{}
	for rows.Next() {
		var sm StoredMatch
		if err := rows.Scan(
			&sm.Record.ID,
			&sm.Record.PlayerOne,
			&sm.Record.PlayerTwo,
			&sm.IngestionToken,
			&sm.Digest,
			&sm.Seq,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		sm.Record.Points = points[sm.Record.ID]
		if sm.Record.Points == nil {
			sm.Record.Points = []int{}
		}
		matches = append(matches, sm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matches: %w", err)
	}
	return matches, nil
}

// readPoints returns every point log keyed by match id.
func (s *Store) readPoints(ctx context.Context) (map[string][]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_id, player
		FROM points
		ORDER BY match_id COLLATE BINARY ASC, seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query points: %w", err)
	}
	defer rows.Close()

	points := make(map[string][]int)
	for rows.Next() {
		var id string
		var player int
		if err := rows.Scan(&id, &player); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		points[id] = append(points[id], player)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points: %w", err)
	}
	return points, nil
}

// ListIngestions returns every ingestion batch ordered by seq.
//
// Returns an empty slice (not nil) if nothing was saved yet.
func (s *Store) ListIngestions(ctx context.Context) ([]Ingestion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, seq, source, match_count
		FROM ingestions
		ORDER BY seq ASC, token COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query ingestions: %w", err)
	}
	defer rows.Close()

	ingestions := []Ingestion{}
	for rows.Next() {
		var ing Ingestion
		if err := rows.Scan(&ing.Token, &ing.Seq, &ing.Source, &ing.MatchCount); err != nil {
			return nil, fmt.Errorf("scan ingestion: %w", err)
		}
		ingestions = append(ingestions, ing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingestions: %w", err)
	}
	return ingestions, nil
}
