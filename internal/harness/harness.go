package harness

import (
	"context"
	"fmt"

	"github.com/roach88/tenniscalc/internal/ingest"
	"github.com/roach88/tenniscalc/internal/query"
	"github.com/roach88/tenniscalc/internal/scoring"
	"github.com/roach88/tenniscalc/internal/store"
	"github.com/roach88/tenniscalc/internal/testutil"
	"github.com/roach88/tenniscalc/internal/tournament"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database for isolation.
//
// Execution flow:
//  1. Ingest the input into a new tournament
//  2. Save the tournament and load it back from the store
//  3. Run queries against the loaded tournament
//  4. Evaluate assertions
//
// A returned error means the scenario could not run at all; expectation
// mismatches are reported through Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	input, err := scenario.ReadInput()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(store.MemoryPath,
		store.WithTokenGenerator(testutil.NewFixedTokenGenerator(scenario.Token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	result := NewResult()

	built := tournament.New()
	report, ingestErr := ingest.NewProcessor(built, scenario.Options.IngestOptions()).ProcessText(input)
	result.Ingested = report.Ingested
	result.Skipped = report.Skipped
	checkIngestError(scenario, result, ingestErr)

	token, err := st.SaveTournament(ctx, built, scenario.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}
	result.Token = token

	loaded, err := st.LoadTournament(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament: %w", err)
	}

	executeQueries(query.NewProcessor(loaded), scenario.Queries, result)

	for _, msg := range EvaluateAssertions(result, loaded, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// checkIngestError compares an ingestion failure with scenario.IngestError.
func checkIngestError(scenario *Scenario, result *Result, err error) {
	if err != nil {
		result.IngestError = errorCode(err)
	}

	switch {
	case err == nil && scenario.IngestError != "":
		result.AddError(fmt.Sprintf("ingestion: expected error %s, got success", scenario.IngestError))
	case err != nil && scenario.IngestError == "":
		result.AddError(fmt.Sprintf("ingestion: unexpected error: %v", err))
	case err != nil && result.IngestError != scenario.IngestError:
		result.AddError(fmt.Sprintf("ingestion: expected error %s, got %s", scenario.IngestError, result.IngestError))
	}
}

// executeQueries runs each query and compares it with its expectation.
func executeQueries(p *query.Processor, steps []QueryStep, result *Result) {
	for i, step := range steps {
		entry := TranscriptEntry{Query: step.Query}

		output, err := p.Handle(step.Query)
		if err != nil {
			entry.Error = errorCode(err)
		} else {
			entry.Output = output
		}
		result.Transcript = append(result.Transcript, entry)

		switch {
		case step.Error != "" && entry.Error != step.Error:
			result.AddError(fmt.Sprintf("queries[%d] %q: expected error %s, got %s",
				i, step.Query, step.Error, describe(entry)))
		case step.Error == "" && (entry.Error != "" || entry.Output != step.Expect):
			result.AddError(fmt.Sprintf("queries[%d] %q: expected %q, got %s",
				i, step.Query, step.Expect, describe(entry)))
		}
	}
}

// errorCode returns the scoring error code of err, or its message when err
// is not a scoring error.
func errorCode(err error) string {
	if code := scoring.CodeOf(err); code != "" {
		return string(code)
	}
	return err.Error()
}

func describe(e TranscriptEntry) string {
	if e.Error != "" {
		return "error " + e.Error
	}
	return fmt.Sprintf("%q", e.Output)
}
