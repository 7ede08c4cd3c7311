package testutil

// FixedRunID generates the same run id every time.
//
// This keeps JSON envelopes byte-identical across runs so they can be
// compared against golden files.
//
// Thread-safety: FixedRunID is stateless and safe for concurrent use.
type FixedRunID struct {
	id string
}

// NewFixedRunID creates a fixed run id generator.
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run id.
//
// Implements cli.RunIDGenerator.
func (g *FixedRunID) Generate() string {
	return g.id
}
