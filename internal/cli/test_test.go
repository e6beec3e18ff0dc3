package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata"

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := execute(NewTestCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := execute(NewTestCommand(&RootOptions{Format: "json"}), t.TempDir())
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Data.Total)
}

func TestTestCommandRunsHarnessScenarios(t *testing.T) {
	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), harnessScenarios)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ scenario_a")
	assert.Contains(t, out, "✓ scenario_b")
	assert.Contains(t, out, "✓ scenario_c")
	assert.Contains(t, out, "Test Summary: 6 passed, 0 failed, 6 total")
}

func TestTestCommandFilter(t *testing.T) {
	out, err := execute(NewTestCommand(&RootOptions{Format: "json"}), harnessScenarios, "--filter", "scenario_*")
	require.NoError(t, err)

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.Data.Total)
	assert.Equal(t, 3, resp.Data.Passed)
}

func TestTestCommandInvalidFilter(t *testing.T) {
	_, err := execute(NewTestCommand(&RootOptions{Format: "text"}), harnessScenarios, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandUpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	scenario := `name: love_game
description: "One love game"
input: |
  Match: 01
  A vs B
  0
  0
  0
  0
queries:
  - query: Score Match 01
    expect: "1-0"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "love_game.yaml"), []byte(scenario), 0644))

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir, "--update")
	require.NoError(t, err, out)

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "love_game.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), "> Score Match 01\n1-0\n")

	out, err = execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ love_game")

	// A stale golden file fails the run.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "love_game.golden"), []byte("stale\n"), 0644))
	out, err = execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	scenario := `name: wrong_answer
description: "Expects a score the points never reach"
input: |
  Match: 01
  A vs B
queries:
  - query: Score Match 01
    expect: "6-0"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong_answer.yaml"), []byte(scenario), 0644))

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_answer")
	assert.Contains(t, out, "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestTestCommandBadScenarioFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: broken\nunknown_key: 1\n"), 0644))

	out, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandUpdateWriteFailure(t *testing.T) {
	dir := t.TempDir()
	scenario := `name: love_game
description: "One love game"
input: |
  Match: 01
  A vs B
queries:
  - query: Score Match 01
    expect: "Match not started"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "love_game.yaml"), []byte(scenario), 0644))
	// A plain file where the golden directory should go.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden"), []byte("x"), 0644))

	out, err := execute(NewTestCommand(&RootOptions{Format: "json"}), dir, "--update")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, ErrCodeWriteFailed, resp.Data.Scenarios[0].Code)
	assert.False(t, resp.Data.Scenarios[0].Pass)
}
