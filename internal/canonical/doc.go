// Package canonical serializes plain Go values to RFC 8785 canonical JSON and
// computes domain-separated content digests over that serialization.
//
// Accepted values are strings, integers, booleans, []any and map[string]any.
// Floats and null are rejected so a digest never depends on number formatting.
package canonical
