package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/tenniscalc/internal/tournament"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assertion failed: %s\n  Expected: %s\n  Actual: %s", e.Type, e.Expected, e.Actual)
}

func assertIngested(result *Result, a Assertion) error {
	if slices.Equal(result.Ingested, a.Matches) {
		return nil
	}
	return &AssertionError{
		Type:     AssertIngested,
		Expected: strings.Join(a.Matches, ", "),
		Actual:   strings.Join(result.Ingested, ", "),
	}
}

func assertSkipped(result *Result, a Assertion) error {
	if len(result.Skipped) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertSkipped,
		Expected: fmt.Sprintf("%d skipped blocks", a.Count),
		Actual:   fmt.Sprintf("%d skipped blocks", len(result.Skipped)),
	}
}

func assertWinner(t *tournament.Tournament, a Assertion) error {
	m, err := t.Match(a.Match)
	if err != nil {
		return &AssertionError{Type: AssertWinner, Expected: fmt.Sprintf("match %s won by %s", a.Match, a.Player), Actual: err.Error()}
	}
	if m.Winner() == a.Player {
		return nil
	}
	actual := "in progress"
	if m.IsCompleted() {
		actual = "won by " + m.Winner()
	}
	return &AssertionError{
		Type:     AssertWinner,
		Expected: fmt.Sprintf("match %s won by %s", a.Match, a.Player),
		Actual:   fmt.Sprintf("match %s %s", a.Match, actual),
	}
}

func assertInProgress(t *tournament.Tournament, a Assertion) error {
	m, err := t.Match(a.Match)
	if err != nil {
		return &AssertionError{Type: AssertInProgress, Expected: fmt.Sprintf("match %s in progress", a.Match), Actual: err.Error()}
	}
	if !m.IsCompleted() {
		return nil
	}
	return &AssertionError{
		Type:     AssertInProgress,
		Expected: fmt.Sprintf("match %s in progress", a.Match),
		Actual:   fmt.Sprintf("match %s won by %s", a.Match, m.Winner()),
	}
}

// EvaluateAssertions evaluates all assertions against the result and the
// reloaded tournament. Returns a slice of error messages for failed
// assertions.
func EvaluateAssertions(result *Result, t *tournament.Tournament, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertIngested:
			err = assertIngested(result, assertion)
		case AssertSkipped:
			err = assertSkipped(result, assertion)
		case AssertWinner:
			err = assertWinner(t, assertion)
		case AssertInProgress:
			err = assertInProgress(t, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
