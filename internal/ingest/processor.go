package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/tenniscalc/internal/scoring"
	"github.com/roach88/tenniscalc/internal/tournament"
)

// Options controls how a Processor reacts to existing ids and bad blocks.
type Options struct {
	// Overwrite replaces a stored match that has the same id. When false a
	// repeated id is a DuplicateMatch failure.
	Overwrite bool

	// SkipInvalid records a failing block in the report and continues at the
	// next "Match:" marker. When false the first failure aborts processing.
	SkipInvalid bool
}

// DefaultOptions re-processes a file by replacing its matches and aborts on
// the first bad block.
func DefaultOptions() Options {
	return Options{Overwrite: true, SkipInvalid: false}
}

// Failure describes a block that could not be ingested.
type Failure struct {
	Block   int    `json:"block"`              // 1-based block index
	MatchID string `json:"match_id,omitempty"` // empty when the id line itself was bad
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report summarizes one Process call.
type Report struct {
	Ingested []string  `json:"ingested"`
	Skipped  []Failure `json:"skipped,omitempty"`
}

// Processor splits multi-match text into blocks, parses each block and adds
// the resulting match to a tournament.
type Processor struct {
	tournament *tournament.Tournament
	opts       Options
}

// NewProcessor creates a processor that feeds t.
func NewProcessor(t *tournament.Tournament, opts Options) *Processor {
	return &Processor{tournament: t, opts: opts}
}

// Tournament returns the tournament being fed.
func (p *Processor) Tournament() *tournament.Tournament {
	return p.tournament
}

// Process ingests every match block in lines.
//
// Returns an InvalidMatchData error when lines holds no text at all. With
// SkipInvalid unset, the first failing block aborts processing; matches from
// earlier blocks stay in the tournament.
func (p *Processor) Process(lines []string) (Report, error) {
	report := Report{Ingested: []string{}}

	blocks := SplitBlocks(lines)
	if len(blocks) == 0 {
		return report, scoring.NewInvalidMatchDataError("no match data provided")
	}

	for i, block := range blocks {
		id, err := p.processBlock(block)
		if err == nil {
			report.Ingested = append(report.Ingested, id)
			continue
		}

		if !p.opts.SkipInvalid {
			return report, fmt.Errorf("block %d: %w", i+1, err)
		}

		failure := Failure{Block: i + 1, Message: err.Error()}
		var e *scoring.Error
		if errors.As(err, &e) {
			failure.Code = string(e.Code)
			failure.Message = e.Message
			failure.MatchID = e.MatchID
		}
		slog.Warn("skipping invalid match block",
			"block", failure.Block,
			"match_id", failure.MatchID,
			"code", failure.Code,
		)
		report.Skipped = append(report.Skipped, failure)
	}

	slog.Info("match data processed",
		"ingested", len(report.Ingested),
		"skipped", len(report.Skipped),
	)
	return report, nil
}

// ProcessText splits text into lines and calls Process.
func (p *Processor) ProcessText(text string) (Report, error) {
	return p.Process(strings.Split(text, "\n"))
}

func (p *Processor) processBlock(block []string) (string, error) {
	m, err := ParseMatch(block)
	if err != nil {
		return "", err
	}
	if err := p.tournament.AddMatch(m, p.opts.Overwrite); err != nil {
		return "", err
	}
	slog.Debug("match ingested",
		"match_id", m.ID(),
		"points", len(m.Points()),
		"completed", m.IsCompleted(),
	)
	return m.ID(), nil
}

// SplitBlocks groups lines into match blocks, starting a new block at each
// line beginning with "Match:". Blank lines are dropped and every line is
// trimmed. Lines before the first marker form their own block, which then
// fails to parse.
func SplitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, MatchMarker) && len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}
