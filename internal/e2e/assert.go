package e2e

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSuccess stops the test when the command failed.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	require.NoError(t, r.Err, "stdout:\n%s", r.Stdout)
	assert.Equal(t, 0, r.ExitCode)
}

// AssertError stops the test when the command succeeded.
func AssertError(t *testing.T, r *Result) {
	t.Helper()
	require.Error(t, r.Err, "stdout:\n%s", r.Stdout)
	assert.Equal(t, 1, r.ExitCode)
}

// AssertErrorIs checks the command failed with target in its error chain.
func AssertErrorIs(t *testing.T, r *Result, target error) {
	t.Helper()
	require.ErrorIs(t, r.Err, target, "stdout:\n%s", r.Stdout)
}

// AssertErrorContains checks the command failed with substr in its message.
func AssertErrorContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	require.Error(t, r.Err, "expected error containing %q", substr)
	assert.Contains(t, r.Err.Error(), substr)
}

// AssertOutputContains checks stdout contains every substring.
func AssertOutputContains(t *testing.T, r *Result, substrs ...string) {
	t.Helper()
	for _, s := range substrs {
		assert.Contains(t, r.Stdout, s)
	}
}

// AssertOutputNotContains checks stdout contains none of the substrings.
func AssertOutputNotContains(t *testing.T, r *Result, substrs ...string) {
	t.Helper()
	for _, s := range substrs {
		assert.NotContains(t, r.Stdout, s)
	}
}

// AssertOutputMatches compares stdout against testdata/<name>.golden,
// rewriting the file when -update is set.
func AssertOutputMatches(t *testing.T, r *Result, testdataDir, name string) {
	t.Helper()
	goldenPath := filepath.Join(testdataDir, name+".golden")

	if UpdateGolden() {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o750))
		require.NoError(t, os.WriteFile(goldenPath, []byte(r.Stdout), 0o600))
		return
	}

	// #nosec G304 - goldenPath is built from the testdata directory and test name
	want, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "run with -update to create %s", goldenPath)
	assert.Equal(t, string(want), r.Stdout, "output mismatch for %s", name)
}

// AssertFileExists checks path exists.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	assert.FileExists(t, path)
}

// AssertNotExists checks nothing exists at path.
func AssertNotExists(t *testing.T, path string) {
	t.Helper()
	assert.NoFileExists(t, path)
	assert.NoDirExists(t, path)
}

// AssertFileContains checks the file at path contains every substring.
func AssertFileContains(t *testing.T, path string, substrs ...string) {
	t.Helper()
	// #nosec G304 - path is provided by test code
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, s := range substrs {
		assert.Contains(t, string(data), s, "file %s", path)
	}
}

// AssertFileEquals checks the file at path has exactly expected content.
func AssertFileEquals(t *testing.T, path, expected string) {
	t.Helper()
	// #nosec G304 - path is provided by test code
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, expected, string(data), "file %s", path)
}

var updateGoldenFlag = false

// SetUpdateGolden sets the update golden flag (call from TestMain).
func SetUpdateGolden(update bool) {
	updateGoldenFlag = update
}

// UpdateGolden returns whether golden files should be updated.
func UpdateGolden() bool {
	return updateGoldenFlag
}
