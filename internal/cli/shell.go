package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/roach88/tenniscalc/internal/query"
)

// ExitKeyword ends a shell session.
const ExitKeyword = "exit"

const shellWelcome = `Tennis calculator. Enter queries, one per line:
  Score Match <id>
  Games Player <name>
Type "exit" to quit.`

// ShellOptions holds flags for the shell command.
type ShellOptions struct {
	*RootOptions
	Script string // read queries from this file instead of stdin
}

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShellOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Answer queries from a prompt or a script",
		Long: `Load the stored tournament once and answer queries line by line.

Interactive mode prints a welcome banner and a prompt; a failing query
prints its error and the session continues. Script mode (--script FILE, or
stdin that is not a terminal) prints answers only and stops at the first
failing query. Blank lines are ignored and "exit" ends the session.

Exit codes:
  0 - Session ended normally
  1 - A query failed in script mode
  2 - Command error (database error, etc.)

Examples:
  tenniscalc shell
  tenniscalc shell --script queries.txt
  printf 'Score Match 01\n' | tenniscalc shell`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Script, "script", "", "file of queries to run in script mode")

	return cmd
}

func runShell(ctx context.Context, opts *ShellOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	in := cmd.InOrStdin()
	interactive := isTerminal(in)
	if opts.Script != "" {
		f, err := os.Open(opts.Script)
		if err != nil {
			return reportError(formatter, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("failed to open script %s", opts.Script), Err: err})
		}
		defer f.Close()
		in = f
		interactive = false
	}

	st, t, err := loadTournament(ctx, opts.RootOptions)
	if err != nil {
		return reportError(formatter, err)
	}
	defer st.Close()

	s := &shell{
		processor:   query.NewProcessor(t),
		formatter:   formatter,
		out:         cmd.OutOrStdout(),
		interactive: interactive,
	}
	return s.run(in)
}

// shell reads queries line by line and answers each.
type shell struct {
	processor   *query.Processor
	formatter   *OutputFormatter
	out         io.Writer
	interactive bool
}

func (s *shell) run(in io.Reader) error {
	if s.interactive {
		fmt.Fprintln(s.out, shellWelcome)
		s.prompt()
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.EqualFold(line, ExitKeyword):
			return nil
		default:
			if err := s.answer(line); err != nil && !s.interactive {
				return err
			}
		}
		if s.interactive {
			s.prompt()
		}
	}

	if err := scanner.Err(); err != nil {
		return reportError(s.formatter, &LoadError{Code: ErrCodeReadFailed, Message: "failed to read queries", Err: err})
	}
	return nil
}

// answer prints the response to one query, or its error.
func (s *shell) answer(q string) error {
	answer, err := s.processor.Answer(q)
	if err != nil {
		return reportError(s.formatter, err)
	}
	return s.formatter.Success(answer)
}

func (s *shell) prompt() {
	fmt.Fprint(s.out, "> ")
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
