// Package dataset validates the equation dataset shipped with the math app.
//
// A data directory holds two JSON documents:
//
//	equation_data.json  {"equations": [{"name", "keywords", "variables": [{"name", "symbol", "expression"}]}]}
//	version.json        {"version": <integer>}
//
// Validation is a single linear pass: locate both files, read them, decode
// them strictly (duplicate keys and trailing data are rejected), then check
// the version document followed by every equation entry in order.
//
// # Modes
//
// FailFast (the default) stops at the first violation and returns it as a
// *CheckError. CollectAll keeps going and returns every violation as
// Violations. File-level failures still stop processing of the affected
// document in CollectAll mode; a missing directory stops everything.
//
// # Usage
//
//	if err := dataset.Validate("data"); err != nil {
//	    log.Fatal(err)
//	}
//
// With options:
//
//	v := dataset.New(dataset.Options{Mode: dataset.CollectAll})
//	report, err := v.Validate("data")
package dataset
