package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/tenniscalc/internal/query"
)

// QueryOptions holds flags for the query subcommands.
type QueryOptions struct {
	*RootOptions
	MatchID string
	Player  string
}

// NewQueryCommand creates the query command with its score and games
// subcommands.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query the stored tournament",
		Long: `Answer a single query against the stored tournament.

Exit codes:
  0 - Query answered
  1 - Query failed (unknown match or player)
  2 - Command error (database error, etc.)

Examples:
  tenniscalc query score --id 01
  tenniscalc query games --player "Person A"`,
	}

	cmd.AddCommand(newQueryScoreCommand(rootOpts))
	cmd.AddCommand(newQueryGamesCommand(rootOpts))

	return cmd
}

func newQueryScoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "score",
		Short:         "Show a match's score or result",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), opts.RootOptions, cmd, "Score Match "+opts.MatchID)
		},
	}

	cmd.Flags().StringVar(&opts.MatchID, "id", "", "match id (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func newQueryGamesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "games",
		Short:         "Show games won and lost by a player",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), opts.RootOptions, cmd, "Games Player "+opts.Player)
		},
	}

	cmd.Flags().StringVar(&opts.Player, "player", "", "player name (required)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func runQuery(ctx context.Context, opts *RootOptions, cmd *cobra.Command, q string) error {
	formatter := opts.formatter(cmd)

	st, t, err := loadTournament(ctx, opts)
	if err != nil {
		return reportError(formatter, err)
	}
	defer st.Close()

	answer, err := query.NewProcessor(t).Answer(q)
	if err != nil {
		return reportError(formatter, err)
	}

	return formatter.Success(answer)
}
