package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/roach88/tenniscalc/internal/ingest"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Input       string
	SkipInvalid bool
}

// WatchResult is printed after each re-ingestion.
type WatchResult struct {
	Input string `json:"input"`
	ProcessResult
}

func (r WatchResult) writeText(w io.Writer) {
	fmt.Fprintf(w, "Processed %s: %d match(es) ingested, %d skipped, %d stored\n",
		r.Input, len(r.Ingested), len(r.Skipped), r.Matches)
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-ingest a match file whenever it changes",
		Long: `Process a match file, then keep watching it and process it again
after every change. Matches already stored are replaced, so points
appended to a block during play update that match's score.

Changes are debounced by [watch] debounce from the config file.
Stop with Ctrl-C.

Exit codes:
  0 - Stopped by signal
  2 - Command error (missing file, watcher failure, etc.)

Examples:
  tenniscalc watch --input live.txt
  tenniscalc watch -i live.txt --skip-invalid -v`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "match file to watch (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().BoolVar(&opts.SkipInvalid, "skip-invalid", false, "skip malformed match blocks")

	return cmd
}

func runWatch(ctx context.Context, opts *WatchOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if _, err := os.Stat(opts.Input); err != nil {
		return reportError(formatter, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input file not found: %s", opts.Input)})
	}

	debounce, err := opts.config().GetWatchDebounce()
	if err != nil {
		return reportError(formatter, &LoadError{Code: ErrCodeConfig, Message: "invalid watch debounce", Err: err})
	}

	ingestOpts := ingest.Options{
		Overwrite:   true,
		SkipInvalid: opts.config().Ingest.SkipInvalid || opts.SkipInvalid,
	}

	process := func() {
		result, err := processFile(ctx, opts.RootOptions, opts.Input, ingestOpts)
		if err != nil {
			slog.Warn("watch: processing failed", "input", opts.Input, "error", err)
			_ = reportError(formatter, err)
			return
		}
		_ = formatter.Success(WatchResult{Input: filepath.Base(opts.Input), ProcessResult: result})
	}

	process()

	err = watchFile(ctx, opts.Input, debounce, process)
	if err != nil && ctx.Err() == nil {
		return reportError(formatter, &LoadError{Code: ErrCodeGeneric, Message: "file watcher failed", Err: err})
	}
	return nil
}

// watchFile calls onChange after path is written or created. Bursts of events closer together than debounce collapse into one
// call. It blocks until ctx is done.
//
// The parent directory is watched rather than the file so that editors
// which save by replacing the file keep triggering events.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	slog.Debug("watch: started", "input", abs, "debounce", debounce)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				slog.Debug("watch: change", "op", event.Op.String())
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch: watcher error", "error", err)
		case <-timer.C:
			onChange()
		}
	}
}
