package dataset

// File names and keys of the on-disk layout.
const (
	DefaultDataDir   = "data"
	EquationDataFile = "equation_data.json"
	VersionFile      = "version.json"

	KeyVersion    = "version"
	KeyEquations  = "equations"
	KeyName       = "name"
	KeyKeywords   = "keywords"
	KeyVariables  = "variables"
	KeySymbol     = "symbol"
	KeyExpression = "expression"
)

// VersionDocument is the decoded version.json.
type VersionDocument struct {
	Version int64 `json:"version"`
}

// EquationDataset is the decoded equation_data.json.
type EquationDataset struct {
	Equations []EquationEntry `json:"equations"`
}

// EquationEntry is one named equation with its search keywords and variables.
type EquationEntry struct {
	Name      string          `json:"name"`
	Keywords  []string        `json:"keywords"`
	Variables []VariableEntry `json:"variables"`
}

// VariableEntry pairs a variable's display name and symbol with the
// expression that solves for it. Expression is opaque text.
type VariableEntry struct {
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Expression string `json:"expression"`
}

// counts returns the number of keywords and variables across all entries.
func (d *EquationDataset) counts() (keywords, variables int) {
	for _, eq := range d.Equations {
		keywords += len(eq.Keywords)
		variables += len(eq.Variables)
	}
	return keywords, variables
}

// canonicalValue converts the validated dataset into the plain value tree
// consumed by the canonical package. Unknown keys never reach this point.
func canonicalValue(version int64, d *EquationDataset) map[string]any {
	equations := make([]any, len(d.Equations))
	for i, eq := range d.Equations {
		variables := make([]any, len(eq.Variables))
		for j, v := range eq.Variables {
			variables[j] = map[string]any{
				KeyName:       v.Name,
				KeySymbol:     v.Symbol,
				KeyExpression: v.Expression,
			}
		}
		keywords := eq.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		equations[i] = map[string]any{
			KeyName:      eq.Name,
			KeyKeywords:  keywords,
			KeyVariables: variables,
		}
	}
	return map[string]any{
		KeyVersion:   version,
		KeyEquations: equations,
	}
}
