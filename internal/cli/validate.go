package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/tenniscalc/internal/ingest"
	"github.com/roach88/tenniscalc/internal/tournament"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Input string
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool             `json:"valid"`
	Matches  []MatchSummary   `json:"matches"`
	Failures []ingest.Failure `json:"failures,omitempty"`
}

// MatchSummary describes one parsed match.
type MatchSummary struct {
	ID        string `json:"id"`
	PlayerOne string `json:"player_one"`
	PlayerTwo string `json:"player_two"`
	Points    int    `json:"points"`
	Score     string `json:"score"`
	Completed bool   `json:"completed"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a match file without saving it",
		Long: `Parse and score every block of a match file without touching the
tournament database. Every block is checked; all failures are reported.

Exit codes:
  0 - Every block is valid
  1 - One or more blocks are invalid
  2 - Command error (missing file, etc.)

Examples:
  tenniscalc validate --input matches.txt
  tenniscalc validate -i matches.txt --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "match file to validate (required)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runValidate(opts *ValidateOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	lines, err := readInputLines(opts.Input)
	if err != nil {
		return reportError(formatter, err)
	}

	// Duplicate ids are checked against the file alone.
	p := ingest.NewProcessor(tournament.New(), ingest.Options{Overwrite: false, SkipInvalid: true})
	report, err := p.Process(lines)
	if err != nil {
		return reportError(formatter, err)
	}
	t := p.Tournament()

	result := ValidationResult{
		Valid:    len(report.Skipped) == 0,
		Matches:  make([]MatchSummary, 0, t.Len()),
		Failures: report.Skipped,
	}
	for _, m := range t.Matches() {
		result.Matches = append(result.Matches, MatchSummary{
			ID:        m.ID(),
			PlayerOne: m.PlayerOne(),
			PlayerTwo: m.PlayerTwo(),
			Points:    len(m.Points()),
			Score:     m.ScoreDisplay(),
			Completed: m.IsCompleted(),
		})
	}

	if err := formatter.Success(result); err != nil {
		return err
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d invalid block(s)", len(result.Failures)))
	}
	return nil
}

func (result ValidationResult) writeText(w io.Writer) {
	for _, m := range result.Matches {
		status := "in progress"
		if m.Completed {
			status = "completed"
		}
		fmt.Fprintf(w, "✓ %s: %s vs %s, %d points, %s (%s)\n",
			m.ID, m.PlayerOne, m.PlayerTwo, m.Points, m.Score, status)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(w, "✗ block %d: [%s] %s\n", f.Block, f.Code, f.Message)
	}

	fmt.Fprintln(w)
	if result.Valid {
		fmt.Fprintf(w, "✓ %d match(es) valid\n", len(result.Matches))
		return
	}
	fmt.Fprintf(w, "%d valid, %d invalid\n", len(result.Matches), len(result.Failures))
}
