// Package harness runs scripted tennis scenarios end to end.
//
// A scenario feeds match text through ingestion, saves the tournament to an
// in-memory store, reloads it, and runs queries against the reloaded copy.
// Every scenario therefore exercises parsing, scoring, persistence and the
// query layer together.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	input: |
//	  Match: 01
//	  Person A vs Person B
//	  0
//	  1
//	options:
//	  overwrite: true
//	  skip_invalid: false
//	queries:
//	  - query: Score Match 01
//	    expect: "0-0 (15-15)"
//	  - query: Games Player Nobody
//	    error: PLAYER_NOT_FOUND
//	assertions:
//	  - type: ingested
//	    matches: ["01"]
//	  - type: winner
//	    match: "01"
//	    player: Person A
//
// input_file may replace input; it is resolved relative to the scenario
// file. ingest_error names the error code ingestion is expected to fail with.
//
// # Assertion Types
//
//   - ingested: the ids ingested, in order
//   - skipped: the number of blocks skipped with skip_invalid
//   - winner: a match is complete and won by player
//   - in_progress: a match exists and is not complete
//
// # Deterministic Testing
//
// The store uses a fixed ingestion token (scenario.token, or
// "test-ingestion-default") so transcripts compare byte for byte with the
// golden files in testdata/golden.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/scenario_b.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
