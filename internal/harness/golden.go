package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/eqncheck/internal/canonical"
	"github.com/roach88/eqncheck/internal/dataset"
)

// snapshot converts a report to the value tree stored in golden files.
// Causes are left out because they carry decoder-specific wording.
func snapshot(name string, report *dataset.Report) map[string]any {
	violations := make([]any, len(report.Violations))
	for i, v := range report.Violations {
		m := map[string]any{
			"kind":    string(v.Kind),
			"code":    v.Code(),
			"message": v.Message,
		}
		if v.File != "" {
			m["file"] = v.File
		}
		if v.Path != "" {
			m["path"] = v.Path
		}
		if v.Field != "" {
			m["field"] = v.Field
		}
		if v.Index >= 0 {
			m["index"] = v.Index
		}
		violations[i] = m
	}

	result := map[string]any{
		"scenario_name": name,
		"mode":          report.Mode,
		"valid":         report.Valid,
		"version":       report.Version,
		"equations":     report.Equations,
		"keywords":      report.Keywords,
		"variables":     report.Variables,
		"violations":    violations,
	}
	if report.Fingerprint != "" {
		result["fingerprint"] = report.Fingerprint
	}
	return result
}

// RunWithGolden executes a scenario and compares its report against
// testdata/golden/{scenario.Name}.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the report doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := canonical.Marshal(snapshot(scenarioName, result.Report))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
