// Package harness runs dataset conformance scenarios.
//
// A scenario is a YAML file that embeds the contents of the two data files
// and states what the validator must report for them. Each scenario runs in
// its own temporary data directory, so scenarios are isolated and can be
// executed in parallel.
//
// # Scenario Format
//
//	name: missing_symbol
//	description: "A variable without a symbol is rejected"
//	mode: fail-fast                # or collect-all
//	policy: ../policy/release.cue  # optional, relative to the scenario file
//	files:
//	  version.json: '{"version": 3}'
//	  equation_data.json: |
//	    {"equations": [...]}
//	expect:
//	  valid: false
//	  violations:
//	    - kind: MissingField
//	      path: equations[0].variables[0]
//	      field: symbol
//
// A data file left out of files is absent from the data directory.
// Expected violations are matched in order; only the fields given are
// compared.
//
// # Golden Snapshots
//
// RunWithGolden renders the report as canonical JSON and compares it with
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
