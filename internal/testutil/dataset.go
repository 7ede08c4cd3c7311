package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/eqncheck/internal/dataset"
)

// Canonical fixtures used across packages.
const (
	ValidVersion = `{"version": 3}`

	ValidEquations = `{
  "equations": [
    {
      "name": "Pythagorean",
      "keywords": ["geometry", "triangle"],
      "variables": [
        {"name": "Hypotenuse", "symbol": "c", "expression": "sqrt(a^2+b^2)"},
        {"name": "Leg", "symbol": "a", "expression": "sqrt(c^2-b^2)"}
      ]
    }
  ]
}`
)

// WriteDataDir creates a temporary data directory holding the given
// documents. An empty string leaves that file out.
func WriteDataDir(t testing.TB, version, equations string) string {
	t.Helper()
	dir := t.TempDir()
	if version != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.VersionFile), []byte(version), 0644))
	}
	if equations != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.EquationDataFile), []byte(equations), 0644))
	}
	return dir
}

// RequireValidDataset fails the test immediately, listing every violation,
// unless dir holds a valid dataset. Use it as the release gate in a
// repository's own test suite:
//
//	func TestShippedData(t *testing.T) {
//	    testutil.RequireValidDataset(t, "data")
//	}
func RequireValidDataset(t testing.TB, dir string) *dataset.Report {
	t.Helper()
	report, err := dataset.New(dataset.Options{Mode: dataset.CollectAll}).Validate(dir)
	if vs, ok := dataset.AsViolations(err); ok {
		for _, v := range vs {
			t.Errorf("%s %s", v.Code(), v.Error())
		}
	}
	require.NoError(t, err, "dataset in %s is invalid", dir)
	return report
}
