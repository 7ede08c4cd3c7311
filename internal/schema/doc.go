// Package schema evaluates the equation dataset against CUE definitions.
//
// The embedded dataset.cue declares #Version, #Variable, #Equation and
// #EquationData. A release policy is an extra CUE file compiled in the scope
// of those definitions. It may constrain either document through two
// optional top-level fields:
//
//	version_file: version: int & >=1
//	equation_data: equations: [...{keywords: [_, ...]}]
//
// Each document is unified with its base definition and the matching policy
// field, then validated as concrete data. Every CUE error becomes a
// dataset.CheckError of kind PolicyViolation.
package schema
