package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	KeepGoing bool // report every problem instead of stopping at the first
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool           `json:"valid"`
	Events     int            `json:"events"`     // events compiled from the catalog
	Registered int            `json:"registered"` // events the registry accepted
	Errors     []CatalogIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <catalog-dir>",
		Short: "Validate an event catalog",
		Long: `Compile a CUE event catalog and register every event, in declaration
order, into an empty registry.

Reports catalogs that do not compile, events whose conditions overlap an
earlier event (DUPLICATE_CONDITION) and malformed events (INVALID_EVENT).

Exit codes:
  0 - Every event registered
  1 - One or more events rejected
  2 - Command error (missing directory, catalog does not compile)

Examples:
  tickreg validate ./catalog
  tickreg validate ./catalog --keep-going
  tickreg validate ./catalog --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.KeepGoing, "keep-going", false, "report every problem instead of stopping at the first")

	return cmd
}

func runValidate(opts *ValidateOptions, catalogDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	mode := LoadModeFailFast
	if opts.KeepGoing {
		mode = LoadModeCollectAll
	}

	loadResult, loadErrors := LoadCatalog(catalogDir, mode)

	// Nothing compiled at all (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		issue := issueFromLoadError(loadErrors[0])
		return formatter.Fail(ExitCommandError, issue.Code, issue.Message)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, catalogDir)

	var issues []CatalogIssue
	for _, err := range loadErrors {
		issues = append(issues, issueFromLoadError(err))
	}
	// A catalog that does not compile is not registered in fail-fast mode.
	if len(issues) > 0 && !opts.KeepGoing {
		return outputValidationErrors(formatter, ValidationResult{Events: len(loadResult.Events), Errors: issues})
	}

	reg, rejections := RegisterCatalog(loadResult.Events, opts.logger(), mode)
	issues = append(issues, rejections...)

	result := ValidationResult{
		Valid:      len(issues) == 0,
		Events:     len(loadResult.Events),
		Registered: reg.Len(),
		Errors:     issues,
	}
	for _, e := range reg.Entries() {
		formatter.VerboseLog("Registered %s (seq %d)", e.Event, e.Seq)
	}

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ All %d event(s) registered\n", result.Registered)
	return nil
}

// outputValidationErrors outputs every issue. Compile problems are command
// errors (exit 2); registry rejections are validation failures (exit 1).
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	errs := result.Errors
	exitCode := ExitFailure
	for _, e := range errs {
		exitCode = max(exitCode, ExitCodeFor(e.Code))
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := formatter.Encode(response); err != nil {
			return err
		}
		return NewExitError(exitCode, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, e := range errs {
		formatter.WriteIssue(e)
		fmt.Fprintln(formatter.Writer)
	}

	return NewExitError(exitCode, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
