package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPanicRecovery(t *testing.T) {
	t.Parallel()

	// A manifest with a syntax error panics inside app.NewApp; run must
	// recover it and report an ordinary error.
	invalidHCL := `
parser "broken" {
  field "x" {
`
	tempDir := t.TempDir()
	manifestPath := filepath.Join(tempDir, "broken.hcl")
	require.NoError(t, os.WriteFile(manifestPath, []byte(invalidHCL), 0600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-manifests", manifestPath, "-parser", "broken", "input.bin"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "application startup panicked")
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestRunShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}

func TestRunUnknownParserType(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	manifestPath := filepath.Join(tempDir, "empty.hcl")
	require.NoError(t, os.WriteFile(manifestPath, nil, 0600))
	inputPath := filepath.Join(tempDir, "input.bin")
	require.NoError(t, os.WriteFile(inputPath, []byte("x"), 0600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-manifests", manifestPath, "-parser", "ghost", inputPath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser type 'ghost'")
}
