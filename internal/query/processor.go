// Package query answers text queries against a tournament.
//
// Two forms are recognized; the leading words are case-insensitive:
//
//	Score Match <id>
//	Games Player <name with spaces>
package query

import (
	"fmt"
	"strings"

	"github.com/roach88/tenniscalc/internal/ingest"
	"github.com/roach88/tenniscalc/internal/scoring"
	"github.com/roach88/tenniscalc/internal/tournament"
)

// Kind identifies the query form.
type Kind string

const (
	KindScore Kind = "score"
	KindGames Kind = "games"
)

// Answer is a structured query response.
type Answer struct {
	Kind    Kind   `json:"kind"`
	Subject string `json:"subject"` // match id or player name
	Text    string `json:"text"`
}

// Processor dispatches queries to tournament reads.
type Processor struct {
	tournament *tournament.Tournament
}

// NewProcessor creates a processor reading from t.
func NewProcessor(t *tournament.Tournament) *Processor {
	return &Processor{tournament: t}
}

// Handle answers q and returns the response text.
func (p *Processor) Handle(q string) (string, error) {
	answer, err := p.Answer(q)
	if err != nil {
		return "", err
	}
	return answer.Text, nil
}

// Answer parses q and answers it.
func (p *Processor) Answer(q string) (Answer, error) {
	kind, subject, err := Parse(q)
	if err != nil {
		return Answer{}, err
	}

	var text string
	switch kind {
	case KindScore:
		text, err = p.score(subject)
	case KindGames:
		text, err = p.games(subject)
	}
	if err != nil {
		return Answer{}, err
	}
	return Answer{Kind: kind, Subject: subject, Text: text}, nil
}

// Parse splits q into its kind and subject.
// Returns an InvalidQuery error for anything but the two recognized forms.
func Parse(q string) (Kind, string, error) {
	parts := strings.Fields(q)
	if len(parts) < 3 {
		return "", "", scoring.NewInvalidQueryError(fmt.Sprintf("invalid query format: %q", q))
	}

	verb, noun := strings.ToLower(parts[0]), strings.ToLower(parts[1])
	switch verb {
	case "score":
		if noun != "match" {
			return "", "", scoring.NewInvalidQueryError("invalid score query, expected: Score Match <id>")
		}
		return KindScore, ingest.NormalizeName(strings.Join(parts[2:], " ")), nil
	case "games":
		if noun != "player" {
			return "", "", scoring.NewInvalidQueryError("invalid games query, expected: Games Player <name>")
		}
		return KindGames, ingest.NormalizeName(strings.Join(parts[2:], " ")), nil
	default:
		return "", "", scoring.NewInvalidQueryError(fmt.Sprintf("unknown query type %q", parts[0]))
	}
}

// score returns the live display of an unfinished match, or the result
// text of a finished one.
func (p *Processor) score(id string) (string, error) {
	m, err := p.tournament.Match(id)
	if err != nil {
		return "", err
	}

	result, finished := m.Result()
	if !finished {
		if !m.HasStarted() {
			return tournament.MatchNotStarted, nil
		}
		return m.ScoreDisplay(), nil
	}
	return fmt.Sprintf("%s defeated %s\n%d sets to %d",
		m.Winner(), m.Loser(), result.WinnerSets, result.LoserSets), nil
}

func (p *Processor) games(name string) (string, error) {
	won, lost, err := p.tournament.PlayerGames(name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d", won, lost), nil
}
