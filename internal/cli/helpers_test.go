package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// newTestOptions returns root options pointing at a fresh database.
func newTestOptions(t *testing.T) *RootOptions {
	t.Helper()
	return &RootOptions{
		Format: "text",
		DBPath: filepath.Join(t.TempDir(), "tournament.db"),
	}
}

// writeInput writes content to a file in a temp dir and returns its path.
func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	if args == nil {
		args = []string{} // nil makes cobra fall back to os.Args
	}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// mustProcess ingests content into the database of opts.
func mustProcess(t *testing.T, opts *RootOptions, content string) {
	t.Helper()
	path := writeInput(t, "matches.txt", content)
	_, err := execute(NewProcessCommand(opts), "--input", path)
	require.NoError(t, err)
}

const scenarioAInput = `Match: 01
Player One vs Player Two
0
0
0
0
`
