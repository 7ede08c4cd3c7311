package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/eqncheck/internal/dataset"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	CollectAll bool
	Policy     string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [data-dir]",
		Short: "Validate the equation dataset",
		Long: `Validate equation_data.json and version.json in a data directory.

Checks that both files exist, are well-formed JSON objects without duplicate
keys, and match the dataset schema. With --policy, a CUE release policy is
evaluated once the structural checks pass.

Exit codes: 0 valid, 1 invalid data, 2 command error or missing/unreadable files.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.CollectAll, "all", false, "report every violation instead of stopping at the first")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "CUE release policy file")

	return cmd
}

func runValidate(cmd *cobra.Command, rootOpts *RootOptions, opts *ValidateOptions, args []string) error {
	overrides := Overrides{
		Format: formatOverride(cmd, rootOpts),
		Policy: opts.Policy,
	}
	if len(args) == 1 {
		overrides.DataDir = args[0]
	}
	if opts.CollectAll {
		overrides.Mode = dataset.CollectAll.String()
	}

	settings, err := LoadSettings(rootOpts.ConfigPath, overrides)

	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Logs go to stderr to avoid corrupting JSON
		Verbose:   rootOpts.Verbose,
		TraceID:   rootOpts.RunID.Generate(),
	}
	if settings != nil {
		formatter.Format = settings.Config.Format
	}
	if err != nil {
		return outputCommandError(formatter, err)
	}

	cfg := settings.Config
	formatter.VerboseLog("Validating %s (%s)", cfg.DataDir, settings.Mode)
	if settings.Policy != nil {
		formatter.VerboseLog("Using policy %s", settings.Policy.Name())
	}

	validator := dataset.New(dataset.Options{
		Mode:   settings.Mode,
		Policy: policyOrNil(settings),
		Logger: newLogger(formatter.GetErrWriter(), rootOpts.Verbose),
	})

	report, err := validator.Validate(cfg.DataDir)
	if err != nil {
		vs, ok := dataset.AsViolations(err)
		if !ok {
			return outputCommandError(formatter, err)
		}
		return outputValidationFailure(formatter, report, vs)
	}
	return outputValidateSuccess(formatter, report)
}

// policyOrNil avoids storing a typed nil pointer in the Policy interface.
func policyOrNil(s *Settings) dataset.Policy {
	if s.Policy == nil {
		return nil
	}
	return s.Policy
}

// newLogger returns the run logger. Verbose runs log every check at Debug.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// outputValidateSuccess outputs a passing report.
func outputValidateSuccess(formatter *OutputFormatter, report *dataset.Report) error {
	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	w := formatter.Writer
	fmt.Fprintln(w, "✓ Dataset valid")
	fmt.Fprintf(w, "  data dir:    %s\n", report.DataDir)
	fmt.Fprintf(w, "  version:     %d\n", report.Version)
	fmt.Fprintf(w, "  equations:   %d (%d keywords, %d variables)\n", report.Equations, report.Keywords, report.Variables)
	fmt.Fprintf(w, "  fingerprint: %s\n", report.Fingerprint)
	return nil
}

// outputValidationFailure outputs every violation and picks the exit code.
// Missing or unreadable files are command errors (exit 2); anything about
// the content of the files is a validation failure (exit 1).
func outputValidationFailure(formatter *OutputFormatter, report *dataset.Report, vs dataset.Violations) error {
	code := ExitFailure
	for _, v := range vs {
		if v.Kind.IsFileLevel() {
			code = ExitCommandError
			break
		}
	}
	message := fmt.Sprintf("validation failed with %d violation(s)", len(vs))

	if formatter.Format == "json" {
		if err := formatter.Failure(vs[0].Code(), message, report); err != nil {
			return err
		}
		return WrapExitError(code, message, vs)
	}

	w := formatter.Writer
	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)
	for _, v := range vs {
		fmt.Fprintf(w, "  %s: %s\n", v.Code(), v.Error())
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d violation(s) in %s\n", len(vs), report.DataDir)

	return WrapExitError(code, message, vs)
}

// outputCommandError outputs a setup failure (exit code 2).
func outputCommandError(formatter *OutputFormatter, err error) error {
	code, message := describeLoadError(err)
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, "validate", err)
}
