package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/eqncheck/internal/schema"
)

// SchemaResult is the JSON payload of the schema command.
type SchemaResult struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the dataset schema",
		Long: `Print the CUE definitions of the dataset shape.

Release policies passed to "validate --policy" are compiled in the scope of
these definitions and may refer to #Version, #Equation, #Variable and
#EquationData.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  rootOpts.Format,
				Writer:  cmd.OutOrStdout(),
				TraceID: rootOpts.RunID.Generate(),
			}
			if formatter.Format == "json" {
				return formatter.Success(SchemaResult{Name: "dataset.cue", Source: schema.Source})
			}
			_, err := fmt.Fprint(formatter.Writer, schema.Source)
			return err
		},
	}
}
