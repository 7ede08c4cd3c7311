package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/eqncheck/internal/dataset"
)

// AssertionError is returned when an expectation does not match the report.
type AssertionError struct {
	Field    string // Expectation that failed, e.g. "violations[1].path"
	Expected string
	Actual   string

	// Violations is the full list the validator reported, for context.
	Violations dataset.Violations
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Expectation failed: %s\n", e.Field)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Violations) > 0 {
		fmt.Fprintf(&buf, "\nReported violations:\n")
		for i, v := range e.Violations {
			fmt.Fprintf(&buf, "  [%d] %s\n", i, v.Error())
		}
	}

	return buf.String()
}

// checkExpectation compares report with exp and returns every mismatch.
func checkExpectation(exp Expectation, report *dataset.Report) []error {
	var errs []error
	fail := func(field, expected, actual string) {
		errs = append(errs, &AssertionError{
			Field:      field,
			Expected:   expected,
			Actual:     actual,
			Violations: report.Violations,
		})
	}

	if report.Valid != exp.Valid {
		fail("valid", fmt.Sprint(exp.Valid), fmt.Sprint(report.Valid))
	}
	if exp.Version != nil && report.Version != *exp.Version {
		fail("version", fmt.Sprint(*exp.Version), fmt.Sprint(report.Version))
	}
	if exp.Equations != nil && report.Equations != *exp.Equations {
		fail("equations", fmt.Sprint(*exp.Equations), fmt.Sprint(report.Equations))
	}

	if len(exp.Violations) == 0 {
		return errs
	}
	if len(exp.Violations) != len(report.Violations) {
		fail("violations", fmt.Sprintf("%d violation(s)", len(exp.Violations)),
			fmt.Sprintf("%d violation(s)", len(report.Violations)))
		return errs
	}
	for i, want := range exp.Violations {
		got := report.Violations[i]
		prefix := fmt.Sprintf("violations[%d]", i)
		matchField(fail, prefix+".kind", want.Kind, string(got.Kind))
		matchField(fail, prefix+".file", want.File, got.File)
		matchField(fail, prefix+".path", want.Path, got.Path)
		matchField(fail, prefix+".field", want.Field, got.Field)
		if want.Index != nil && *want.Index != got.Index {
			fail(prefix+".index", fmt.Sprint(*want.Index), fmt.Sprint(got.Index))
		}
	}
	return errs
}

// matchField compares one string field with subset semantics: an empty
// expectation matches anything.
func matchField(fail func(field, expected, actual string), field, want, got string) {
	if want != "" && want != got {
		fail(field, fmt.Sprintf("%q", want), fmt.Sprintf("%q", got))
	}
}
