package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/tenniscalc/internal/record"
	"github.com/roach88/tenniscalc/internal/tournament"
)

// SaveTournament writes every match of t in one transaction and records the
// batch as one ingestion labelled with source. Returns the ingestion token.
//
// Matches are keyed by id. A match whose digest is unchanged is left alone;
// a changed match has its point log replaced and keeps its original seq, so
// reloading preserves insertion order.
func (s *Store) SaveTournament(ctx context.Context, t *tournament.Tournament, source string) (string, error) {
	records := make([]record.MatchRecord, 0, t.Len())
	for _, m := range t.Matches() {
		records = append(records, record.FromMatch(m))
	}
	return s.SaveRecords(ctx, records, source)
}

// SaveRecords is SaveTournament for records that are already captured.
func (s *Store) SaveRecords(ctx context.Context, records []record.MatchRecord, source string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save tournament: begin tx: %w", err)
	}
	defer tx.Rollback()

	token := s.tokens.Generate()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO ingestions (token, seq, source, match_count)
		VALUES (?, ?, ?, 0)
	`, token, s.clock.Next(), source)
	if err != nil {
		return "", fmt.Errorf("save tournament: write ingestion: %w", err)
	}

	written := 0
	for _, rec := range records {
		changed, err := s.writeMatch(ctx, tx, rec, token)
		if err != nil {
			return "", fmt.Errorf("save tournament: %w", err)
		}
		if changed {
			written++
		}
	}

	_, err = tx.ExecContext(ctx, `UPDATE ingestions SET match_count = ? WHERE token = ?`, written, token)
	if err != nil {
		return "", fmt.Errorf("save tournament: update ingestion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save tournament: commit: %w", err)
	}

	slog.Debug("tournament saved",
		"token", token,
		"source", source,
		"matches", len(records),
		"written", written,
	)
	return token, nil
}

// writeMatch upserts one match and its point log.
// Returns false when the stored digest already matches.
func (s *Store) writeMatch(ctx context.Context, tx *sql.Tx, rec record.MatchRecord, token string) (bool, error) {
	if err := rec.Validate(); err != nil {
		return false, err
	}
	digest, err := record.Digest(rec)
	if err != nil {
		return false, err
	}

	var storedDigest string
	var seq int64
	err = tx.QueryRowContext(ctx, `SELECT digest, seq FROM matches WHERE id = ?`, rec.ID).Scan(&storedDigest, &seq)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		seq = s.clock.Next()
	case err != nil:
		return false, fmt.Errorf("read match %s: %w", rec.ID, err)
	case storedDigest == digest:
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO matches (id, player_one, player_two, ingestion_token, digest, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			player_one = excluded.player_one,
			player_two = excluded.player_two,
			ingestion_token = excluded.ingestion_token,
			digest = excluded.digest
	`, rec.ID, rec.PlayerOne, rec.PlayerTwo, token, digest, seq)
	if err != nil {
		return false, fmt.Errorf("write match %s: %w", rec.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM points WHERE match_id = ?`, rec.ID); err != nil {
		return false, fmt.Errorf("clear points %s: %w", rec.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points (match_id, seq, player) VALUES (?, ?, ?)`)
	if err != nil {
		return false, fmt.Errorf("prepare points %s: %w", rec.ID, err)
	}
	defer stmt.Close()

	for i, p := range rec.Points {
		if _, err := stmt.ExecContext(ctx, rec.ID, i, p); err != nil {
			return false, fmt.Errorf("write point %s/%d: %w", rec.ID, i, err)
		}
	}
	return true, nil
}
