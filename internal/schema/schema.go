package schema

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/eqncheck/internal/dataset"
)

// Source is the embedded CUE schema of the dataset.
//
//go:embed dataset.cue
var Source string

// Policy field names.
const (
	FieldVersionFile  = "version_file"
	FieldEquationData = "equation_data"
)

// Policy is a compiled release policy. The zero policy (from New with empty
// source) checks documents against the base definitions only.
type Policy struct {
	ctx  *cue.Context
	name string

	versionDef   cue.Value
	equationDef  cue.Value
	versionRule  cue.Value
	equationRule cue.Value
}

// LoadPolicy reads and compiles a policy file.
func LoadPolicy(path string) (*Policy, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return New(src, path)
}

// New compiles policy source. name is used in error positions.
func New(src []byte, name string) (*Policy, error) {
	ctx := cuecontext.New()

	base := ctx.CompileString(Source, cue.Filename("dataset.cue"))
	if err := base.Err(); err != nil {
		return nil, fmt.Errorf("building embedded schema: %w", err)
	}

	p := &Policy{
		ctx:         ctx,
		name:        name,
		versionDef:  base.LookupPath(cue.ParsePath("#Version")),
		equationDef: base.LookupPath(cue.ParsePath("#EquationData")),
	}

	if len(src) == 0 {
		return p, nil
	}

	rules := ctx.CompileBytes(src, cue.Filename(name), cue.Scope(base))
	if err := rules.Err(); err != nil {
		return nil, fmt.Errorf("compiling policy %s: %w", name, err)
	}
	p.versionRule = rules.LookupPath(cue.ParsePath(FieldVersionFile))
	p.equationRule = rules.LookupPath(cue.ParsePath(FieldEquationData))
	return p, nil
}

// Name returns the file name the policy was compiled from.
func (p *Policy) Name() string {
	return p.name
}

// Evaluate implements dataset.Policy.
func (p *Policy) Evaluate(versionData, equationData []byte) []*dataset.CheckError {
	var violations []*dataset.CheckError
	violations = append(violations, p.check(dataset.VersionFile, versionData, p.versionDef, p.versionRule)...)
	violations = append(violations, p.check(dataset.EquationDataFile, equationData, p.equationDef, p.equationRule)...)
	return violations
}

func (p *Policy) check(file string, data []byte, def, rule cue.Value) []*dataset.CheckError {
	doc := p.ctx.CompileBytes(data, cue.Filename(file))
	if err := doc.Err(); err != nil {
		return p.violations(file, err)
	}

	v := doc.Unify(def)
	if rule.Exists() {
		v = v.Unify(rule)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return p.violations(file, err)
	}
	return nil
}

func (p *Policy) violations(file string, err error) []*dataset.CheckError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return []*dataset.CheckError{{
			Kind:    dataset.KindPolicyViolation,
			File:    file,
			Index:   -1,
			Message: err.Error(),
		}}
	}

	out := make([]*dataset.CheckError, 0, len(errs))
	for _, e := range errs {
		format, args := e.Msg()
		out = append(out, &dataset.CheckError{
			Kind:    dataset.KindPolicyViolation,
			File:    file,
			Path:    formatPath(e.Path()),
			Index:   -1,
			Message: fmt.Sprintf(format, args...),
		})
	}
	return out
}

// formatPath renders CUE selectors the way the validator renders paths:
// ["equations", "0", "name"] becomes "equations[0].name". Definition
// selectors are dropped.
func formatPath(sels []string) string {
	var b strings.Builder
	for _, s := range sels {
		if strings.HasPrefix(s, "#") {
			continue
		}
		if _, err := strconv.Atoi(s); err == nil {
			fmt.Fprintf(&b, "[%s]", s)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
	return b.String()
}
