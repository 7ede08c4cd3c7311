package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/eqncheck/internal/dataset"
)

// Scenario defines a dataset conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Mode is "fail-fast" (default) or "collect-all".
	Mode string `yaml:"mode,omitempty"`

	// Policy is an optional CUE release policy file. LoadScenario resolves
	// it relative to the scenario file.
	Policy string `yaml:"policy,omitempty"`

	// Files maps data file names to their raw contents.
	Files map[string]string `yaml:"files"`

	// Expect is what the validator must report.
	Expect Expectation `yaml:"expect"`
}

// Expectation describes the expected report.
type Expectation struct {
	Valid bool `yaml:"valid"`

	// Version and Equations are checked only when set.
	Version   *int64 `yaml:"version,omitempty"`
	Equations *int   `yaml:"equations,omitempty"`

	// Violations, when non-empty, must match the reported violations
	// one-to-one and in order.
	Violations []ExpectedViolation `yaml:"violations,omitempty"`
}

// ExpectedViolation is a subset match against one *dataset.CheckError.
// Empty fields are not compared.
type ExpectedViolation struct {
	Kind  string `yaml:"kind"`
	File  string `yaml:"file,omitempty"`
	Path  string `yaml:"path,omitempty"`
	Field string `yaml:"field,omitempty"`
	Index *int   `yaml:"index,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "violation:" vs "violations:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Policy != "" && !filepath.IsAbs(scenario.Policy) {
		scenario.Policy = filepath.Join(filepath.Dir(path), scenario.Policy)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := dataset.ParseMode(s.Mode); err != nil {
		return err
	}

	for name := range s.Files {
		if name != dataset.VersionFile && name != dataset.EquationDataFile {
			return fmt.Errorf("files: unknown data file %q (want %s or %s)",
				name, dataset.VersionFile, dataset.EquationDataFile)
		}
	}

	if s.Expect.Valid && len(s.Expect.Violations) > 0 {
		return fmt.Errorf("expect: a valid dataset cannot list violations")
	}

	for i, v := range s.Expect.Violations {
		if v.Kind == "" {
			return fmt.Errorf("expect.violations[%d]: kind is required", i)
		}
		if dataset.Kind(v.Kind).Code() == "E200" {
			return fmt.Errorf("expect.violations[%d]: unknown kind %q", i, v.Kind)
		}
	}

	return nil
}
