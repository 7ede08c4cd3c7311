package dataset

import (
	"github.com/roach88/eqncheck/internal/canonical"
)

// Report summarizes one validation run.
type Report struct {
	DataDir     string     `json:"data_dir"`
	Mode        string     `json:"mode"`
	Valid       bool       `json:"valid"`
	Version     int64      `json:"version,omitempty"`
	Equations   int        `json:"equations"`
	Keywords    int        `json:"keywords"`
	Variables   int        `json:"variables"`
	Fingerprint string     `json:"fingerprint,omitempty"`
	Violations  Violations `json:"violations,omitempty"`

	// Dataset is the typed view of equation_data.json. In CollectAll mode
	// it may be partial when the data is invalid.
	Dataset *EquationDataset `json:"-"`
}

// Fingerprint returns the content digest of a validated dataset.
//
// The digest covers only the schema fields, so unknown keys, key order and
// whitespace do not affect it. Strings are NFC normalized first.
func Fingerprint(version int64, data *EquationDataset) (string, error) {
	if data == nil {
		data = &EquationDataset{}
	}
	return canonical.Digest(canonical.DomainDataset, canonicalValue(version, data))
}
