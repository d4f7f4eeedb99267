// Package testutil provides the shared harness for integration tests:
// temporary manifest trees, synthetic input files, log capture, and a
// panic-safe app runner.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/parsekit/internal/app"
	"github.com/vk/parsekit/internal/handlers"
	"github.com/vk/parsekit/internal/hcl"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunParseTest materializes the given manifest files and input bytes in a
// temp directory, then builds and runs the app against them. Manifest file
// names are relative paths like "manifests/bmp.hcl". A startup panic is
// converted into an error on the result.
func RunParseTest(t *testing.T, files map[string]string, input []byte, parserType string, mods ...handlers.Module) *HarnessResult {
	t.Helper()
	return RunParseTestWithContext(context.Background(), t, files, input, parserType, mods...)
}

// RunParseTestWithContext is RunParseTest with a caller-provided context.
func RunParseTestWithContext(ctx context.Context, t *testing.T, files map[string]string, input []byte, parserType string, mods ...handlers.Module) *HarnessResult {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-parsekit-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	manifestDir := filepath.Join(tmpDir, "manifests")
	require.NoError(t, os.Mkdir(manifestDir, 0755))

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	inputPath := filepath.Join(tmpDir, "input.bin")
	require.NoError(t, os.WriteFile(inputPath, input, 0644))

	appConfig, err := app.NewConfig(app.Config{
		InputPath:    inputPath,
		ParserType:   parserType,
		ManifestPath: manifestDir,
		LogLevel:     "debug",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	output := &SafeBuffer{}
	result := &HarnessResult{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("startup panic: %v", r)
			}
		}()
		result.App = app.NewApp(output, appConfig, hcl.NewLoader(), mods...)
		result.Err = result.App.Run(ctx, appConfig)
	}()

	result.Output = output.String()
	return result
}
