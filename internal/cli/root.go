package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// RunID generates the trace id of each command invocation.
	RunID RunIDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the eqncheck CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(UUIDv7Generator{})
}

func newRootCommand(runID RunIDGenerator) *cobra.Command {
	opts := &RootOptions{RunID: runID}

	cmd := &cobra.Command{
		Use:   "eqncheck",
		Short: "eqncheck - equation dataset release gate",
		Long: `Validate the equation dataset (equation_data.json and version.json)
before it is shipped to the downstream application.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default .eqncheck.yaml if present)")

	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatOverride returns the --format value if it was set explicitly.
func formatOverride(cmd *cobra.Command, opts *RootOptions) string {
	if cmd.Flags().Changed("format") {
		return opts.Format
	}
	return ""
}
