package dataset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"
)

// Mode controls whether validation stops at the first violation.
type Mode int

const (
	// FailFast stops at the first violated check.
	FailFast Mode = iota
	// CollectAll records every violation before returning.
	CollectAll
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case FailFast:
		return "fail-fast"
	case CollectAll:
		return "collect-all"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "fail-fast" or "collect-all".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fail-fast", "":
		return FailFast, nil
	case "collect-all":
		return CollectAll, nil
	default:
		return FailFast, fmt.Errorf("invalid mode %q: must be fail-fast or collect-all", s)
	}
}

// Policy evaluates release constraints against documents that already passed
// structural validation. The raw file contents are passed unchanged.
type Policy interface {
	Evaluate(versionData, equationData []byte) []*CheckError
}

// Options configures a Validator. The zero value is fail-fast with no policy
// and no logging.
type Options struct {
	Mode   Mode
	Policy Policy
	Logger *slog.Logger
}

// Validator checks data directories. It holds no per-run state, so one
// Validator may be reused and called concurrently.
type Validator struct {
	mode   Mode
	policy Policy
	logger *slog.Logger
}

// New creates a Validator.
func New(opts Options) *Validator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Validator{mode: opts.Mode, policy: opts.Policy, logger: logger}
}

// Validate checks dir with default options and returns the first violation.
func Validate(dir string) error {
	_, err := New(Options{}).Validate(dir)
	return err
}

// document tracks one data file through the load stages.
type document struct {
	name   string
	path   string
	raw    []byte
	tree   map[string]any
	failed bool
}

// pass accumulates violations for a single Validate call.
type pass struct {
	mode       Mode
	logger     *slog.Logger
	violations Violations
}

// add records a violation and reports whether validation must stop.
func (p *pass) add(e *CheckError) bool {
	p.logger.Debug("check failed", "kind", e.Kind, "file", e.File, "path", e.Path, "field", e.Field)
	p.violations = append(p.violations, e)
	return p.mode == FailFast
}

// Validate runs every check against dir and returns a report.
//
// The report is never nil. The error is nil when the data is valid, a
// *CheckError in FailFast mode, and Violations in CollectAll mode.
func (v *Validator) Validate(dir string) (*Report, error) {
	p := &pass{mode: v.mode, logger: v.logger}
	report := &Report{DataDir: dir, Mode: v.mode.String()}

	v.logger.Debug("validating data directory", "dir", dir, "mode", v.mode)
	v.run(p, dir, report)

	if len(p.violations) > 0 {
		report.Violations = p.violations
		v.logger.Info("validation failed", "dir", dir, "violations", len(p.violations))
		if v.mode == FailFast {
			return report, p.violations[0]
		}
		return report, p.violations
	}

	report.Valid = true
	v.logger.Info("validation passed",
		"dir", dir,
		"version", report.Version,
		"equations", report.Equations,
		"fingerprint", report.Fingerprint,
	)
	return report, nil
}

func (v *Validator) run(p *pass, dir string, report *Report) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		msg := fmt.Sprintf("data directory %s does not exist", dir)
		if err == nil {
			msg = fmt.Sprintf("%s is not a directory", dir)
		} else if errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		p.add(&CheckError{
			Kind:    KindMissingDirectory,
			Index:   -1,
			Message: msg,
			Err:     err,
		})
		return
	}

	eqn := &document{name: EquationDataFile, path: filepath.Join(dir, EquationDataFile)}
	ver := &document{name: VersionFile, path: filepath.Join(dir, VersionFile)}
	docs := []*document{eqn, ver}

	for _, d := range docs {
		if checkExists(p, d) {
			return
		}
	}
	for _, d := range docs {
		if !d.failed && readDocument(p, d) {
			return
		}
	}
	for _, d := range docs {
		if !d.failed && parseDocument(p, d) {
			return
		}
	}

	var version int64
	if !ver.failed {
		n, halt := checkVersion(p, ver.tree)
		if halt {
			return
		}
		version = n
	}

	var data *EquationDataset
	if !eqn.failed {
		d, halt := checkEquationData(p, eqn.tree)
		if halt {
			return
		}
		data = d
	}

	if data != nil {
		report.Equations = len(data.Equations)
		report.Keywords, report.Variables = data.counts()
	}
	report.Version = version
	report.Dataset = data

	if len(p.violations) > 0 {
		return
	}

	if v.policy != nil {
		v.logger.Debug("evaluating policy")
		for _, e := range v.policy.Evaluate(ver.raw, eqn.raw) {
			if p.add(e) {
				return
			}
		}
		if len(p.violations) > 0 {
			return
		}
	}

	fp, err := Fingerprint(version, data)
	if err != nil {
		// Validated data only holds strings and integers; this is unreachable
		// unless the model and canonical encoder disagree.
		v.logger.Error("fingerprint failed", "error", err)
		return
	}
	report.Fingerprint = fp
}

func checkExists(p *pass, d *document) bool {
	info, err := os.Stat(d.path)
	if err == nil && info.Mode().IsRegular() {
		return false
	}
	d.failed = true
	msg := fmt.Sprintf("%s does not exist", d.name)
	if err == nil {
		msg = fmt.Sprintf("%s is not a regular file", d.name)
	} else if errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	return p.add(&CheckError{
		Kind:    KindMissingFile,
		File:    d.name,
		Index:   -1,
		Message: msg,
		Err:     err,
	})
}

func readDocument(p *pass, d *document) bool {
	data, err := os.ReadFile(d.path)
	if err != nil {
		d.failed = true
		return p.add(&CheckError{
			Kind:    KindIOError,
			File:    d.name,
			Index:   -1,
			Message: "read failed",
			Err:     err,
		})
	}
	if !utf8.Valid(data) {
		d.failed = true
		return p.add(&CheckError{
			Kind:    KindIOError,
			File:    d.name,
			Index:   -1,
			Message: "file is not valid UTF-8 text",
		})
	}
	p.logger.Debug("read data file", "file", d.name, "bytes", len(data))
	d.raw = data
	return false
}

func parseDocument(p *pass, d *document) bool {
	tree, err := decodeObject(d.raw)
	if err != nil {
		d.failed = true
		return p.add(&CheckError{
			Kind:    KindMalformedJSON,
			File:    d.name,
			Index:   -1,
			Message: "invalid JSON",
			Err:     err,
		})
	}
	d.tree = tree
	return false
}

// checkVersion validates version.json and returns the version number.
func checkVersion(p *pass, doc map[string]any) (int64, bool) {
	raw, ok := doc[KeyVersion]
	if !ok {
		return 0, p.add(&CheckError{
			Kind:    KindInvalidVersion,
			File:    VersionFile,
			Field:   KeyVersion,
			Index:   -1,
			Message: `version data does not contain "version"`,
		})
	}
	num, isNum := raw.(gojson.Number)
	if !isNum {
		return 0, p.add(&CheckError{
			Kind:    KindInvalidVersion,
			File:    VersionFile,
			Field:   KeyVersion,
			Index:   -1,
			Message: fmt.Sprintf("version must be an integer, got %s", describe(raw)),
		})
	}
	n, ok := parseInteger(num)
	if !ok {
		return 0, p.add(&CheckError{
			Kind:    KindInvalidVersion,
			File:    VersionFile,
			Field:   KeyVersion,
			Index:   -1,
			Message: fmt.Sprintf("version must be an integer, got %s", num),
		})
	}
	return n, false
}

// parseInteger accepts any JSON number with an integral value in int64 range,
// so 3, 3.0 and 3e0 are all version 3.
func parseInteger(num gojson.Number) (int64, bool) {
	s := string(num)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// checkEquationData validates equation_data.json. In CollectAll mode the
// returned dataset holds every entry that could be read, valid or not.
func checkEquationData(p *pass, doc map[string]any) (*EquationDataset, bool) {
	raw, ok := doc[KeyEquations]
	if !ok {
		return nil, p.add(&CheckError{
			Kind:    KindInvalidEquationList,
			File:    EquationDataFile,
			Field:   KeyEquations,
			Index:   -1,
			Message: `equation data does not contain "equations"`,
		})
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, p.add(&CheckError{
			Kind:    KindInvalidEquationList,
			File:    EquationDataFile,
			Field:   KeyEquations,
			Index:   -1,
			Message: fmt.Sprintf("equations must be an array, got %s", describe(raw)),
		})
	}

	p.logger.Debug("checking equations", "count", len(list))
	data := &EquationDataset{Equations: make([]EquationEntry, 0, len(list))}
	for i, elem := range list {
		entry, halt := checkEquation(p, i, elem)
		if halt {
			return nil, true
		}
		if entry != nil {
			data.Equations = append(data.Equations, *entry)
		}
	}
	return data, false
}

func equationPath(i int) string {
	return fmt.Sprintf("%s[%d]", KeyEquations, i)
}

func checkEquation(p *pass, i int, elem any) (*EquationEntry, bool) {
	path := equationPath(i)
	obj, ok := elem.(map[string]any)
	if !ok {
		return nil, p.add(&CheckError{
			Kind:    KindInvalidEquationEntry,
			File:    EquationDataFile,
			Path:    path,
			Index:   i,
			Message: fmt.Sprintf("equation must be an object, got %s", describe(elem)),
		})
	}

	missing := false
	for _, key := range []string{KeyName, KeyKeywords, KeyVariables} {
		if _, ok := obj[key]; ok {
			continue
		}
		missing = true
		if p.add(missingField(path, key, i)) {
			return nil, true
		}
	}

	entry := &EquationEntry{}
	var halt bool
	if raw, ok := obj[KeyName]; ok {
		if entry.Name, halt = checkString(p, path, KeyName, i, raw); halt {
			return nil, true
		}
	}
	if raw, ok := obj[KeyKeywords]; ok {
		if entry.Keywords, halt = checkKeywords(p, path, i, raw); halt {
			return nil, true
		}
	}
	if raw, ok := obj[KeyVariables]; ok {
		if entry.Variables, halt = checkVariables(p, path, i, raw); halt {
			return nil, true
		}
	}
	if missing {
		return nil, false
	}
	return entry, false
}

func missingField(path, key string, index int) *CheckError {
	return &CheckError{
		Kind:    KindMissingField,
		File:    EquationDataFile,
		Path:    path,
		Field:   key,
		Index:   index,
		Message: fmt.Sprintf("missing field %q", key),
	}
}

func checkString(p *pass, path, key string, index int, raw any) (string, bool) {
	s, ok := raw.(string)
	if ok {
		return s, false
	}
	return "", p.add(&CheckError{
		Kind:    KindInvalidFieldType,
		File:    EquationDataFile,
		Path:    path,
		Field:   key,
		Index:   index,
		Message: fmt.Sprintf("field %q must be a string, got %s", key, describe(raw)),
	})
}

func checkKeywords(p *pass, path string, index int, raw any) ([]string, bool) {
	list, ok := raw.([]any)
	if !ok {
		return nil, p.add(&CheckError{
			Kind:    KindInvalidFieldType,
			File:    EquationDataFile,
			Path:    path,
			Field:   KeyKeywords,
			Index:   index,
			Message: fmt.Sprintf("field %q must be an array, got %s", KeyKeywords, describe(raw)),
		})
	}
	keywords := make([]string, 0, len(list))
	for j, elem := range list {
		kw, ok := elem.(string)
		if !ok {
			if p.add(&CheckError{
				Kind:    KindInvalidKeyword,
				File:    EquationDataFile,
				Path:    fmt.Sprintf("%s.%s[%d]", path, KeyKeywords, j),
				Field:   KeyKeywords,
				Index:   j,
				Message: fmt.Sprintf("keyword must be a string, got %s", describe(elem)),
			}) {
				return nil, true
			}
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords, false
}

func checkVariables(p *pass, path string, index int, raw any) ([]VariableEntry, bool) {
	list, ok := raw.([]any)
	if !ok {
		return nil, p.add(&CheckError{
			Kind:    KindInvalidFieldType,
			File:    EquationDataFile,
			Path:    path,
			Field:   KeyVariables,
			Index:   index,
			Message: fmt.Sprintf("field %q must be an array, got %s", KeyVariables, describe(raw)),
		})
	}
	variables := make([]VariableEntry, 0, len(list))
	for j, elem := range list {
		v, halt := checkVariable(p, fmt.Sprintf("%s.%s[%d]", path, KeyVariables, j), j, elem)
		if halt {
			return nil, true
		}
		if v != nil {
			variables = append(variables, *v)
		}
	}
	return variables, false
}

func checkVariable(p *pass, path string, j int, elem any) (*VariableEntry, bool) {
	obj, ok := elem.(map[string]any)
	if !ok {
		return nil, p.add(&CheckError{
			Kind:    KindInvalidVariable,
			File:    EquationDataFile,
			Path:    path,
			Index:   j,
			Message: fmt.Sprintf("variable must be an object, got %s", describe(elem)),
		})
	}

	keys := []string{KeyName, KeySymbol, KeyExpression}
	missing := false
	for _, key := range keys {
		if _, ok := obj[key]; ok {
			continue
		}
		missing = true
		if p.add(missingField(path, key, j)) {
			return nil, true
		}
	}

	values := make(map[string]string, len(keys))
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		s, halt := checkString(p, path, key, j, raw)
		if halt {
			return nil, true
		}
		values[key] = s
	}
	if missing {
		return nil, false
	}
	return &VariableEntry{
		Name:       values[KeyName],
		Symbol:     values[KeySymbol],
		Expression: values[KeyExpression],
	}, false
}
