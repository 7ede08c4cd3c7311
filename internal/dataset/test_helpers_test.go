package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	validVersion = `{"version": 3}`

	pythagorean = `{"equations": [{"name": "Pythagorean", "keywords": ["geometry"], "variables": [{"name": "Hypotenuse", "symbol": "c", "expression": "sqrt(a^2+b^2)"}]}]}`
)

// writeDataDir creates a temp data directory. An empty string skips the file.
func writeDataDir(t *testing.T, version, equations string) string {
	t.Helper()
	dir := t.TempDir()
	if version != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, VersionFile), []byte(version), 0644))
	}
	if equations != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, EquationDataFile), []byte(equations), 0644))
	}
	return dir
}

// requireCheckError asserts err is a *CheckError of the given kind.
func requireCheckError(t *testing.T, err error, kind Kind) *CheckError {
	t.Helper()
	require.Error(t, err)
	ce, ok := err.(*CheckError)
	require.True(t, ok, "expected *CheckError, got %T: %v", err, err)
	require.Equal(t, kind, ce.Kind, "unexpected error: %v", err)
	return ce
}

// equationsWith wraps a single equation entry in an equations document.
func equationsWith(entry string) string {
	return `{"equations": [` + entry + `]}`
}
