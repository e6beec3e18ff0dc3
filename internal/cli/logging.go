package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// setupLogging installs a charmbracelet/log handler as the default slog
// logger. Library packages log through the slog package functions.
func setupLogging(w io.Writer, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid log level %q", level))
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "tenniscalc",
	})
	slog.SetDefault(slog.New(logger))
	return nil
}
