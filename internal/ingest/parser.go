// Package ingest turns raw match text into replayed matches.
//
// # Input Format
//
// A match block is:
//
//	Match: <id>
//	<player one> vs <player two>
//	0
//	1
//	...
//
// Each point line is "0" (point to player one) or "1" (point to player two).
// Blank lines are ignored. A multi-match input is split into blocks at every
// line that begins with "Match:".
//
// Names and ids are normalized to Unicode NFC so that composed and decomposed
// spellings of the same name aggregate as one player.
package ingest

import (
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/tenniscalc/internal/scoring"
)

// Line markers of the input grammar.
const (
	MatchMarker     = "Match:"
	PlayerSeparator = " vs "

	PointPlayerOne = "0"
	PointPlayerTwo = "1"
)

// Details is the header of a match block.
type Details struct {
	ID        string
	PlayerOne string
	PlayerTwo string
}

// ParseDetails reads the id and player lines of a block.
// Blank lines are skipped before the header.
func ParseDetails(lines []string) (Details, error) {
	header := nonBlank(lines)
	if len(header) < 2 {
		return Details{}, scoring.NewInvalidMatchFormatError("match data must have at least 2 lines")
	}

	idLine := header[0]
	if !strings.HasPrefix(idLine, MatchMarker) {
		return Details{}, scoring.NewInvalidMatchFormatError("first line must start with %q, got %q", MatchMarker, idLine)
	}
	id := normalize(strings.TrimPrefix(idLine, MatchMarker))
	if id == "" {
		return Details{}, scoring.NewInvalidMatchFormatError("match id is empty")
	}

	playerOne, playerTwo, ok := strings.Cut(header[1], PlayerSeparator)
	if !ok {
		return Details{}, scoring.NewInvalidMatchFormatError("second line must contain %q, got %q", PlayerSeparator, header[1])
	}
	playerOne, playerTwo = normalize(playerOne), normalize(playerTwo)
	if playerOne == "" || playerTwo == "" {
		return Details{}, scoring.NewInvalidMatchFormatError("player names must not be empty: %q", header[1])
	}

	return Details{ID: id, PlayerOne: playerOne, PlayerTwo: playerTwo}, nil
}

// ParsePoints reads the point lines after the header and maps them to
// scoring.PlayerOne / scoring.PlayerTwo.
func ParsePoints(lines []string) ([]int, error) {
	body := nonBlank(lines)
	if len(body) < 2 {
		return nil, nil
	}

	points := make([]int, 0, len(body)-2)
	for _, line := range body[2:] {
		switch line {
		case PointPlayerOne:
			points = append(points, scoring.PlayerOne)
		case PointPlayerTwo:
			points = append(points, scoring.PlayerTwo)
		default:
			return nil, scoring.NewInvalidMatchFormatError(
				"invalid point value %q, must be %s or %s", line, PointPlayerOne, PointPlayerTwo)
		}
	}
	return points, nil
}

// ParseMatch builds a match from one block and replays every point in order.
//
// Points arriving after the match is decided are dropped silently. The whole
// block is validated before any point is replayed.
func ParseMatch(lines []string) (*scoring.Match, error) {
	details, err := ParseDetails(lines)
	if err != nil {
		return nil, err
	}
	points, err := ParsePoints(lines)
	if err != nil {
		return nil, withMatchID(err, details.ID)
	}

	m := scoring.NewMatch(details.ID, details.PlayerOne, details.PlayerTwo)
	for i, p := range points {
		if m.IsCompleted() {
			slog.Debug("dropping points after match completion",
				"match_id", details.ID,
				"extra", len(points)-i,
			)
			break
		}
		if err := m.RecordPoint(p); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NormalizeName normalizes a player name or match id the same way the
// parser does, so lookups agree with stored names.
func NormalizeName(s string) string {
	return normalize(s)
}

// normalize collapses whitespace runs to one space and applies NFC. Queries
// are tokenized on whitespace, so stored names must not keep runs either.
func normalize(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// nonBlank returns the trimmed, non-empty lines.
func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func withMatchID(err error, id string) error {
	var e *scoring.Error
	if errors.As(err, &e) && e.MatchID == "" {
		copied := *e
		copied.MatchID = id
		return &copied
	}
	return err
}
