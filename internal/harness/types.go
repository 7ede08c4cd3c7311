package harness

import (
	"github.com/roach88/eqncheck/internal/dataset"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates every expectation matched.
	Pass bool `json:"pass"`

	// Report is what the validator produced. DataDir is cleared because
	// it names a temporary directory.
	Report *dataset.Report `json:"report"`

	// Errors contains one message per failed expectation.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result for report.
func NewResult(report *dataset.Report) *Result {
	return &Result{
		Pass:   true,
		Report: report,
		Errors: []string{},
	}
}

// AddError adds an expectation failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
