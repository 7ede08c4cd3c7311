package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/eqncheck/internal/dataset"
)

func TestRun_Scenarios(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, strings.Join(result.Errors, "\n"))
			assert.Empty(t, result.Report.DataDir)
		})
	}
}

func TestRun_ReportsMismatches(t *testing.T) {
	s := &Scenario{
		Name:        "mismatch",
		Description: "expectations that do not hold",
		Files: map[string]string{
			dataset.VersionFile:      `{"version": 3}`,
			dataset.EquationDataFile: `{"equations": [{"name": "A", "keywords": [], "variables": [{"name": "x"}]}]}`,
		},
		Expect: Expectation{
			Valid: false,
			Violations: []ExpectedViolation{
				{Kind: "MissingField", Field: "expression"},
			},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Expectation failed: violations[0].field")
	assert.Contains(t, result.Errors[0], `Expected: "expression"`)
	assert.Contains(t, result.Errors[0], `Actual: "symbol"`)
	assert.Contains(t, result.Errors[0], "Reported violations:")
}

func TestRun_ViolationCountMismatch(t *testing.T) {
	s := &Scenario{
		Name:        "count",
		Description: "wrong number of violations",
		Mode:        "collect-all",
		Expect: Expectation{
			Violations: []ExpectedViolation{{Kind: "MissingFile"}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Expected: 1 violation(s)")
	assert.Contains(t, result.Errors[0], "Actual: 2 violation(s)")
}

func TestRun_ValidityMismatch(t *testing.T) {
	s := &Scenario{
		Name:        "validity",
		Description: "data is valid but expected invalid",
		Files: map[string]string{
			dataset.VersionFile:      `{"version": 3}`,
			dataset.EquationDataFile: `{"equations": []}`,
		},
		Expect: Expectation{Valid: false},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "Expectation failed: valid")
}

func TestRun_PolicyLoadError(t *testing.T) {
	s := &Scenario{
		Name:        "policy",
		Description: "policy file does not exist",
		Policy:      filepath.Join(t.TempDir(), "absent.cue"),
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read policy file")
}

func TestAssertionErrorFormat(t *testing.T) {
	err := &AssertionError{
		Field:    "version",
		Expected: "3",
		Actual:   "2",
	}
	assert.Equal(t, "Expectation failed: version\n  Expected: 3\n  Actual: 2\n", err.Error())
}
