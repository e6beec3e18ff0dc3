package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/roach88/tenniscalc/internal/scoring"
	"github.com/roach88/tenniscalc/internal/store"
	"github.com/roach88/tenniscalc/internal/tournament"
)

// Error codes for failures outside the scoring domain. Domain failures
// report their scoring.ErrorCode instead.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeReadFailed  = "E002" // Input file read error
	ErrCodeConfig      = "E003" // Config file invalid
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeStoreFailed = "E006" // Database open, load or save failed
	ErrCodeWriteFailed = "E007" // File write error
)

// LoadError represents a failure to read an input file or the store.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// readInputLines reads a match file into lines.
func readInputLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("input file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("failed to open %s", path), Err: err}
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("failed to read %s", path), Err: err}
	}
	return lines, nil
}

// openStore opens the tournament database selected by --db or the config.
func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.storePath())
	if err != nil {
		return nil, &LoadError{Code: ErrCodeStoreFailed, Message: fmt.Sprintf("failed to open database %s", opts.storePath()), Err: err}
	}
	return st, nil
}

// loadTournament opens the store and rebuilds the saved tournament.
// The caller closes the returned store.
func loadTournament(ctx context.Context, opts *RootOptions) (*store.Store, *tournament.Tournament, error) {
	st, err := openStore(opts)
	if err != nil {
		return nil, nil, err
	}
	t, err := st.LoadTournament(ctx)
	if err != nil {
		st.Close()
		// A corrupt point log is a data error, not a store failure.
		if scoring.CodeOf(err) != "" {
			return nil, nil, err
		}
		return nil, nil, &LoadError{Code: ErrCodeStoreFailed, Message: "failed to load tournament", Err: err}
	}
	return st, t, nil
}

// reportError prints err in the configured format and converts it to an
// ExitError. Domain failures exit with ExitFailure, everything else with
// ExitCommandError.
func reportError(f *OutputFormatter, err error) error {
	var domainErr *scoring.Error
	if errors.As(err, &domainErr) {
		var details any
		if domainErr.MatchID != "" {
			details = map[string]string{"match_id": domainErr.MatchID}
		}
		if outErr := f.Error(string(domainErr.Code), domainErr.Message, details); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, string(domainErr.Code), err)
	}

	var loadErr *LoadError
	code, message := ErrCodeGeneric, err.Error()
	if errors.As(err, &loadErr) {
		code, message = loadErr.Code, loadErr.Message
		if loadErr.Err != nil {
			message = fmt.Sprintf("%s: %v", loadErr.Message, loadErr.Err)
		}
	}
	if outErr := f.Error(code, message, nil); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, code, err)
}
