package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tenniscalc/internal/testutil"
)

func TestProcessMissingInputFlag(t *testing.T) {
	_, err := execute(NewProcessCommand(newTestOptions(t)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestProcessNonExistentInput(t *testing.T) {
	out, err := execute(NewProcessCommand(newTestOptions(t)), "--input", "/nonexistent/matches.txt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestProcessScenarioA(t *testing.T) {
	opts := newTestOptions(t)
	input := writeInput(t, "matches.txt", scenarioAInput)

	out, err := execute(NewProcessCommand(opts), "--input", input)
	require.NoError(t, err)
	assert.Equal(t, "Matches processed successfully.\n", out)

	out, err = execute(NewQueryCommand(opts), "score", "--id", "01")
	require.NoError(t, err)
	assert.Equal(t, "1-0\n", out)
}

func TestProcessAccumulatesAcrossRuns(t *testing.T) {
	opts := newTestOptions(t)
	mustProcess(t, opts, testutil.MatchText("01", "Person A", "Person B", testutil.Repeat(testutil.P1, 48)))
	mustProcess(t, opts, testutil.MatchText("02", "Person A", "Person C", testutil.Games(testutil.P2, 3)))

	out, err := execute(NewQueryCommand(opts), "games", "--player", "Person A")
	require.NoError(t, err)
	assert.Equal(t, "12 3\n", out)
}

func TestProcessInvalidBlock(t *testing.T) {
	opts := newTestOptions(t)
	input := writeInput(t, "matches.txt", "Match: 01\nA vs B\n0\n\nMatch: 02\nC and D\n0\n")

	out, err := execute(NewProcessCommand(opts), "--input", input)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [INVALID_MATCH_FORMAT]")

	// Nothing is saved when ingestion aborts.
	out, err = execute(NewQueryCommand(opts), "score", "--id", "01")
	require.Error(t, err)
	assert.Contains(t, out, "MATCH_NOT_FOUND")
}

func TestProcessSkipInvalid(t *testing.T) {
	opts := newTestOptions(t)
	input := writeInput(t, "matches.txt", "Match: 01\nA vs B\n0\n\nMatch: 02\nC vs D\n9\n")

	out, err := execute(NewProcessCommand(opts), "--input", input, "--skip-invalid")
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped block 2: [INVALID_MATCH_FORMAT]")
	assert.Contains(t, out, "Matches processed successfully.")
}

func TestProcessNoOverwrite(t *testing.T) {
	opts := newTestOptions(t)
	input := writeInput(t, "matches.txt", scenarioAInput)

	_, err := execute(NewProcessCommand(opts), "--input", input, "--no-overwrite")
	require.NoError(t, err)

	out, err := execute(NewProcessCommand(opts), "--input", input, "--no-overwrite")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [DUPLICATE_MATCH]")
}

func TestProcessOverwriteByDefault(t *testing.T) {
	opts := newTestOptions(t)
	mustProcess(t, opts, testutil.MatchText("01", "A", "B", testutil.Game(testutil.P1)))
	mustProcess(t, opts, testutil.MatchText("01", "A", "B", testutil.Games(testutil.P1, 2)))

	out, err := execute(NewQueryCommand(opts), "score", "--id", "01")
	require.NoError(t, err)
	assert.Equal(t, "2-0\n", out)
}

func TestProcessJSON(t *testing.T) {
	opts := newTestOptions(t)
	opts.Format = "json"
	input := writeInput(t, "matches.txt", scenarioAInput)

	out, err := execute(NewProcessCommand(opts), "--input", input)
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   ProcessResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, []string{"01"}, resp.Data.Ingested)
	assert.Equal(t, 1, resp.Data.Matches)
}
