package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/tenniscalc/internal/ingest"
)

// ProcessOptions holds flags for the process command.
type ProcessOptions struct {
	*RootOptions
	Input       string
	NoOverwrite bool
	SkipInvalid bool
}

// ProcessResult is the JSON payload of a successful process run.
type ProcessResult struct {
	Token    string           `json:"token"`
	Ingested []string         `json:"ingested"`
	Skipped  []ingest.Failure `json:"skipped,omitempty"`
	Matches  int              `json:"matches"` // matches stored after the run
}

// NewProcessCommand creates the process command.
func NewProcessCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProcessOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Ingest a match file into the tournament",
		Long: `Parse a file of match blocks, score every point, and save the
matches to the tournament database.

A match whose id is already stored is replaced unless --no-overwrite is
given. With --skip-invalid, malformed blocks are reported and skipped;
otherwise the first bad block stops processing.

Exit codes:
  0 - All matches processed
  1 - Match data error (malformed block, duplicate id, no data)
  2 - Command error (missing file, database error, etc.)

Examples:
  tenniscalc process --input matches.txt
  tenniscalc process -i matches.txt --skip-invalid
  tenniscalc process -i matches.txt --no-overwrite --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "match file to process (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().BoolVar(&opts.NoOverwrite, "no-overwrite", false, "fail on match ids that are already stored")
	cmd.Flags().BoolVar(&opts.SkipInvalid, "skip-invalid", false, "skip malformed match blocks")

	return cmd
}

// ingestOptions merges the config defaults with command flags.
func (o *ProcessOptions) ingestOptions() ingest.Options {
	cfg := o.config().Ingest
	return ingest.Options{
		Overwrite:   cfg.Overwrite && !o.NoOverwrite,
		SkipInvalid: cfg.SkipInvalid || o.SkipInvalid,
	}
}

func runProcess(ctx context.Context, opts *ProcessOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	result, err := processFile(ctx, opts.RootOptions, opts.Input, opts.ingestOptions())
	if err != nil {
		return reportError(formatter, err)
	}

	formatter.VerboseLog("Ingested %d match(es), %d stored, ingestion %s",
		len(result.Ingested), result.Matches, result.Token)
	return formatter.Success(result)
}

func (r ProcessResult) writeText(w io.Writer) {
	for _, f := range r.Skipped {
		fmt.Fprintf(w, "Skipped block %d: [%s] %s\n", f.Block, f.Code, f.Message)
	}
	fmt.Fprintln(w, "Matches processed successfully.")
}

// processFile ingests path into the stored tournament and saves it.
// Shared by the process and watch commands.
func processFile(ctx context.Context, opts *RootOptions, path string, ingestOpts ingest.Options) (ProcessResult, error) {
	lines, err := readInputLines(path)
	if err != nil {
		return ProcessResult{}, err
	}

	st, t, err := loadTournament(ctx, opts)
	if err != nil {
		return ProcessResult{}, err
	}
	defer st.Close()

	report, err := ingest.NewProcessor(t, ingestOpts).Process(lines)
	if err != nil {
		return ProcessResult{}, err
	}

	token, err := st.SaveTournament(ctx, t, filepath.Base(path))
	if err != nil {
		return ProcessResult{}, &LoadError{Code: ErrCodeStoreFailed, Message: "failed to save tournament", Err: err}
	}

	return ProcessResult{
		Token:    token,
		Ingested: report.Ingested,
		Skipped:  report.Skipped,
		Matches:  t.Len(),
	}, nil
}
