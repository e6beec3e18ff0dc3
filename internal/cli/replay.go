package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tenniscalc/internal/record"
	"github.com/roach88/tenniscalc/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	MatchID string // optional - specific match only
}

// ReplayMatchResult holds the replay result for a single match.
type ReplayMatchResult struct {
	MatchID       string `json:"match_id"`
	Points        int    `json:"points"`
	Score         string `json:"score"`
	Completed     bool   `json:"completed"`
	Deterministic bool   `json:"deterministic"`
	Error         string `json:"error,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Ingestions       []store.Ingestion   `json:"ingestions"`
	Matches          []ReplayMatchResult `json:"matches"`
	TotalMatches     int                 `json:"total_matches"`
	AllDeterministic bool                `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay stored point logs and verify determinism",
		Long: `Replay every stored point log to verify determinism.

Each match is rebuilt twice from its point log. Both rebuilds must produce
the same score display and the same point log, and the log must still hash
to the stored digest.

Exit codes:
  0 - All matches are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, etc.)

Examples:
  tenniscalc replay
  tenniscalc replay --db ./tournament.db --match 01
  tenniscalc replay --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.MatchID, "match", "", "replay specific match only")

	return cmd
}

func runReplay(ctx context.Context, opts *ReplayOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return reportError(formatter, err)
	}
	defer st.Close()

	stored, err := st.ListMatchRecords(ctx)
	if err != nil {
		return reportError(formatter, &LoadError{Code: ErrCodeStoreFailed, Message: "failed to list matches", Err: err})
	}

	ingestions, err := st.ListIngestions(ctx)
	if err != nil {
		return reportError(formatter, &LoadError{Code: ErrCodeStoreFailed, Message: "failed to list ingestions", Err: err})
	}

	result := ReplayResult{
		Ingestions:       ingestions,
		Matches:          make([]ReplayMatchResult, 0, len(stored)),
		AllDeterministic: true,
	}
	for _, sm := range stored {
		if opts.MatchID != "" && sm.Record.ID != opts.MatchID {
			continue
		}
		r := replayAndVerifyMatch(sm)
		if !r.Deterministic {
			result.AllDeterministic = false
		}
		formatter.VerboseLog("Replayed %s: %d points, deterministic=%v", r.MatchID, r.Points, r.Deterministic)
		result.Matches = append(result.Matches, r)
	}
	result.TotalMatches = len(result.Matches)

	if err := formatter.Success(result); err != nil {
		return err
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "non-deterministic replay detected")
	}
	return nil
}

// replayAndVerifyMatch rebuilds a match twice and compares the results.
func replayAndVerifyMatch(sm store.StoredMatch) ReplayMatchResult {
	r := ReplayMatchResult{MatchID: sm.Record.ID, Points: len(sm.Record.Points)}

	if err := record.VerifyDigest(sm.Record, sm.Digest); err != nil {
		r.Error = err.Error()
		return r
	}

	first, err := sm.Record.Replay()
	if err != nil {
		r.Error = err.Error()
		return r
	}
	second, err := sm.Record.Replay()
	if err != nil {
		r.Error = err.Error()
		return r
	}

	firstDigest, err := record.Digest(record.FromMatch(first))
	if err != nil {
		r.Error = err.Error()
		return r
	}
	secondDigest, err := record.Digest(record.FromMatch(second))
	if err != nil {
		r.Error = err.Error()
		return r
	}

	r.Score = first.ScoreDisplay()
	r.Completed = first.IsCompleted()
	r.Deterministic = first.ScoreDisplay() == second.ScoreDisplay() &&
		firstDigest == secondDigest &&
		firstDigest == sm.Digest
	if !r.Deterministic {
		r.Error = "replays differ"
	}
	return r
}

func (result ReplayResult) writeText(w io.Writer) {
	if result.TotalMatches == 0 {
		fmt.Fprintln(w, "No matches found in database.")
		return
	}

	for _, in := range result.Ingestions {
		fmt.Fprintf(w, "ingestion %s (seq %d): %s, %d match(es)\n", in.Token, in.Seq, in.Source, in.MatchCount)
	}
	fmt.Fprintln(w)

	for _, r := range result.Matches {
		if r.Deterministic {
			fmt.Fprintf(w, "✓ %s: %d points, %s\n", r.MatchID, r.Points, r.Score)
		} else {
			fmt.Fprintf(w, "✗ %s: %s\n", r.MatchID, r.Error)
		}
	}

	fmt.Fprintln(w)
	if result.AllDeterministic {
		fmt.Fprintf(w, "✓ All %d match(es) replayed deterministically\n", result.TotalMatches)
		return
	}
	fmt.Fprintln(w, "✗ Non-deterministic replay detected")
}
