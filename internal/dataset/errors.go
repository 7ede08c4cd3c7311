package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a validation failure.
type Kind string

const (
	// KindMissingDirectory indicates the data directory does not exist or is not a directory.
	KindMissingDirectory Kind = "MissingDirectory"

	// KindMissingFile indicates a required data file is absent or not a regular file.
	KindMissingFile Kind = "MissingFile"

	// KindIOError indicates a data file could not be read as UTF-8 text.
	KindIOError Kind = "IOError"

	// KindMalformedJSON indicates a document is not a single well-formed JSON object.
	KindMalformedJSON Kind = "MalformedJson"

	// KindInvalidVersion indicates version.json lacks an integer "version".
	KindInvalidVersion Kind = "InvalidVersion"

	// KindInvalidEquationList indicates "equations" is missing, null or not an array.
	KindInvalidEquationList Kind = "InvalidEquationList"

	// KindInvalidEquationEntry indicates an element of "equations" is not an object.
	KindInvalidEquationEntry Kind = "InvalidEquationEntry"

	// KindMissingField indicates a required key is absent from an entry.
	KindMissingField Kind = "MissingField"

	// KindInvalidFieldType indicates a required key holds the wrong JSON type.
	KindInvalidFieldType Kind = "InvalidFieldType"

	// KindInvalidKeyword indicates an element of "keywords" is not a string.
	KindInvalidKeyword Kind = "InvalidKeyword"

	// KindInvalidVariable indicates an element of "variables" is not an object.
	KindInvalidVariable Kind = "InvalidVariable"

	// KindPolicyViolation indicates the data breaks a release policy constraint.
	KindPolicyViolation Kind = "PolicyViolation"
)

// Stable error codes, grouped the same way as the checks run.
var kindCodes = map[Kind]string{
	KindMissingDirectory:     "E201",
	KindMissingFile:          "E202",
	KindIOError:              "E203",
	KindMalformedJSON:        "E204",
	KindInvalidVersion:       "E210",
	KindInvalidEquationList:  "E211",
	KindInvalidEquationEntry: "E212",
	KindMissingField:         "E213",
	KindInvalidFieldType:     "E214",
	KindInvalidKeyword:       "E215",
	KindInvalidVariable:      "E216",
	KindPolicyViolation:      "E220",
}

// Code returns the stable error code for the kind, or "E200" if unknown.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return "E200"
}

// IsFileLevel reports whether the kind concerns locating, reading or decoding
// a file rather than its content.
func (k Kind) IsFileLevel() bool {
	switch k {
	case KindMissingDirectory, KindMissingFile, KindIOError:
		return true
	}
	return false
}

// CheckError is a single failed schema check.
type CheckError struct {
	// Kind identifies which check failed.
	Kind Kind

	// File is the base name of the offending file. Empty for directory errors.
	File string

	// Path locates the offending value, e.g. "equations[0].variables[1]".
	Path string

	// Field names the offending key, if any.
	Field string

	// Index is the array index the kind refers to, or -1.
	Index int

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
//
// Format: "Kind: file: path: message: cause", omitting empty parts.
func (e *CheckError) Error() string {
	parts := []string{string(e.Kind)}
	if e.File != "" {
		parts = append(parts, e.File)
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	parts = append(parts, e.Message)
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// Code returns the stable error code of the failure.
func (e *CheckError) Code() string {
	return e.Kind.Code()
}

// MarshalJSON renders the error for machine-readable reports.
func (e *CheckError) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind    Kind   `json:"kind"`
		Code    string `json:"code"`
		File    string `json:"file,omitempty"`
		Path    string `json:"path,omitempty"`
		Field   string `json:"field,omitempty"`
		Index   *int   `json:"index,omitempty"`
		Message string `json:"message"`
		Cause   string `json:"cause,omitempty"`
	}
	w := wire{
		Kind:    e.Kind,
		Code:    e.Code(),
		File:    e.File,
		Path:    e.Path,
		Field:   e.Field,
		Message: e.Message,
	}
	if e.Index >= 0 {
		idx := e.Index
		w.Index = &idx
	}
	if e.Err != nil {
		w.Cause = e.Err.Error()
	}
	return json.Marshal(w)
}

// Violations is every failed check of a collect-all run, in document order.
type Violations []*CheckError

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(vs), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(vs[i].Error())
	}
	if len(vs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(vs))
	}
	return b.String()
}

// Kinds returns the kind of every violation in order.
func (vs Violations) Kinds() []Kind {
	kinds := make([]Kind, len(vs))
	for i, v := range vs {
		kinds[i] = v.Kind
	}
	return kinds
}

// AsViolations flattens err into the violations it carries.
// A single *CheckError yields a one-element slice.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	var ce *CheckError
	if errors.As(err, &ce) {
		return Violations{ce}, true
	}
	return nil, false
}

// IsKind reports whether err is, wraps, or contains a failure of the given kind.
func IsKind(err error, kind Kind) bool {
	vs, ok := AsViolations(err)
	if !ok {
		return false
	}
	for _, v := range vs {
		if v.Kind == kind {
			return true
		}
	}
	return false
}
