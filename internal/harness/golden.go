package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a result as the plain-text snapshot stored in golden
// files:
//
//	scenario: scenario_b
//	ingestion: test-ingestion-default
//	ingested: 01
//
//	> Score Match 01
//	Player One defeated Player Two
//	2 sets to 0
//
// Skipped blocks and an ingestion error get their own header lines. A failed
// query renders as "error: CODE".
func Transcript(name string, result *Result) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "scenario: %s\n", name)
	fmt.Fprintf(&buf, "ingestion: %s\n", result.Token)
	if len(result.Ingested) == 0 {
		fmt.Fprintln(&buf, "ingested: (none)")
	} else {
		fmt.Fprintf(&buf, "ingested: %s\n", strings.Join(result.Ingested, ", "))
	}
	for _, f := range result.Skipped {
		fmt.Fprintf(&buf, "skipped: block %d", f.Block)
		if f.MatchID != "" {
			fmt.Fprintf(&buf, " match %s", f.MatchID)
		}
		fmt.Fprintf(&buf, " %s\n", f.Code)
	}
	if result.IngestError != "" {
		fmt.Fprintf(&buf, "ingest error: %s\n", result.IngestError)
	}

	for _, e := range result.Transcript {
		fmt.Fprintf(&buf, "\n> %s\n", e.Query)
		if e.Error != "" {
			fmt.Fprintf(&buf, "error: %s\n", e.Error)
		} else {
			fmt.Fprintln(&buf, e.Output)
		}
	}

	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares its transcript against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the transcript doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Transcript(scenarioName, result))
}

// GoldenPath returns the golden file next to a scenario file:
// <dir>/golden/<name>.golden.
func GoldenPath(scenarioFile string) string {
	dir := filepath.Dir(scenarioFile)
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// UpdateGolden writes the transcript of result to path.
func UpdateGolden(path, scenarioName string, result *Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, Transcript(scenarioName, result), 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the transcript of result equals the golden
// file at path.
func CompareGolden(path, scenarioName string, result *Result) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	return bytes.Equal(want, Transcript(scenarioName, result)), nil
}
