package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/eqncheck/internal/dataset"
	"github.com/roach88/eqncheck/internal/schema"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Create a fresh temporary data directory
// 2. Write the scenario's data files into it
// 3. Compile the release policy, if any
// 4. Validate the directory in the scenario's mode
// 5. Compare the report against the expectation
//
// The returned error is reserved for harness failures (temp dir, policy
// compilation). Expectation mismatches are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "eqncheck-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	defer os.RemoveAll(dir)

	for name, content := range scenario.Files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	mode, err := dataset.ParseMode(scenario.Mode)
	if err != nil {
		return nil, err
	}

	opts := dataset.Options{
		Mode:   mode,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	if scenario.Policy != "" {
		policy, err := schema.LoadPolicy(scenario.Policy)
		if err != nil {
			return nil, err
		}
		opts.Policy = policy
	}

	report, verr := dataset.New(opts).Validate(dir)
	if verr != nil {
		if _, ok := dataset.AsViolations(verr); !ok {
			return nil, verr
		}
	}
	report.DataDir = ""

	result := NewResult(report)
	for _, err := range checkExpectation(scenario.Expect, report) {
		result.AddError(err.Error())
	}
	return result, nil
}
