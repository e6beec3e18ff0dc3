package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tenniscalc/internal/ingest"
	"github.com/roach88/tenniscalc/internal/query"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error("E001", "match 01 not found", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, "E001", resp.Error.Code)
	assert.Equal(t, "match 01 not found", resp.Error.Message)
}

func TestOutputFormatter_JSONErrorWithDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	details := map[string]string{"match_id": "07"}
	err := formatter.Error("INVALID_MATCH_FORMAT", "invalid point value \"9\"", details)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	assert.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{
			name: "process_result",
			data: ProcessResult{
				Token:    "batch-0001",
				Ingested: []string{"01"},
				Skipped:  []ingest.Failure{{Block: 2, Code: "INVALID_MATCH_FORMAT", Message: "invalid point value \"9\""}},
			},
			want: "Skipped block 2: [INVALID_MATCH_FORMAT] invalid point value \"9\"\nMatches processed successfully.\n",
		},
		{
			name: "query_answer",
			data: query.Answer{Kind: query.KindScore, Subject: "01", Text: "Player One defeated Player Two\n2 sets to 0"},
			want: "Player One defeated Player Two\n2 sets to 0\n",
		},
		{
			name: "watch_result",
			data: WatchResult{Input: "live.txt", ProcessResult: ProcessResult{Ingested: []string{"01", "02"}, Matches: 3}},
			want: "Processed live.txt: 2 match(es) ingested, 0 skipped, 3 stored\n",
		},
		{
			name: "plain_string",
			data: "done",
			want: "done\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf}

			require.NoError(t, formatter.Success(tt.data))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestOutputFormatter_VerboseLogUsesErrWriter(t *testing.T) {
	out, diag := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag, Verbose: true}

	formatter.VerboseLog("Replayed %s", "01")

	assert.Empty(t, out.String())
	assert.Equal(t, "Replayed 01\n", diag.String())
	assert.Same(t, diag, formatter.GetErrWriter())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: false,
	}

	err := formatter.Error("E001", "match 01 not found", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E001]")
	assert.Contains(t, buf.String(), "match 01 not found")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	details := map[string]string{"match_id": "01"}
	err := formatter.Error("E001", "match 01 not found", details)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E001]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Processing %s", "matches.txt")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Processing matches.txt")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"exit_error", NewExitError(ExitCommandError, "no database"), ExitCommandError},
		{"wrapped", fmt.Errorf("outer: %w", NewExitError(ExitFailure, "bad block")), ExitFailure},
		{"plain", errors.New("boom"), ExitFailure},
		{"nil", nil, ExitSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestWrapExitError(t *testing.T) {
	inner := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "E006", inner)

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "E006: disk full", err.Error())
}
