package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/tickreg/internal/registry"
)

// Process exit codes.
const (
	ExitSuccess      = 0 // every event registered, every scenario passed
	ExitFailure      = 1 // an event was rejected or a scenario failed
	ExitCommandError = 2 // bad path or flag, catalog does not compile
)

// ExitError carries the process exit code out of a command. Commands
// render their own output before returning one, so main only exits.
type ExitError struct {
	Code    int
	Message string
	Err     error // optional cause
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError creates an ExitError around err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the code of the first ExitError in err's chain, or
// ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ExitCodeFor maps an issue code to an exit code. Registry rejections
// (DUPLICATE_CONDITION, INVALID_EVENT) exit 1; E0xx/E1xx exit 2.
func ExitCodeFor(code string) int {
	switch registry.ErrorCode(code) {
	case registry.ErrCodeDuplicateCondition, registry.ErrCodeInvalidEvent:
		return ExitFailure
	default:
		return ExitCommandError
	}
}

// OutputFormatter renders command results as text or as the JSON envelope.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // verbose lines; falls back to Writer
	Verbose   bool
	TraceID   string // stamped on every JSON response
}

// CLIResponse is the JSON envelope:
//
//	{"status":"ok","data":{...},"trace_id":"0192..."}
//	{"status":"error","error":{"code":"DUPLICATE_CONDITION",...},"trace_id":"0192..."}
type CLIResponse struct {
	Status  string    `json:"status"`
	Data    any       `json:"data,omitempty"`
	Error   *CLIError `json:"error,omitempty"`
	TraceID string    `json:"trace_id,omitempty"`
}

// CLIError is the error member of a CLIResponse. Details holds the
// CatalogIssue for catalog problems.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (f *OutputFormatter) isJSON() bool {
	return f.Format == "json"
}

// Success writes data. Text callers usually print their own lines and only
// use this for JSON.
func (f *OutputFormatter) Success(data any) error {
	if f.isJSON() {
		return f.Encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Fail writes a command-level error and returns the matching ExitError.
func (f *OutputFormatter) Fail(exitCode int, code, message string) error {
	if f.isJSON() {
		if err := f.Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	}
	return NewExitError(exitCode, fmt.Sprintf("%s: %s", code, message))
}

// Reject writes a single catalog issue and returns an ExitError whose code
// follows ExitCodeFor.
func (f *OutputFormatter) Reject(issue CatalogIssue) error {
	msg := issue.Message
	if issue.Kind != "" {
		msg = fmt.Sprintf("%s: %s", issue.Kind, issue.Message)
	}

	if f.isJSON() {
		if err := f.Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: issue.Code, Message: msg, Details: issue},
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", issue.Code, msg)
		f.writeIssueDetails(issue, "  ")
	}
	return NewExitError(ExitCodeFor(issue.Code), fmt.Sprintf("%s: %s", issue.Code, msg))
}

// WriteIssue renders one issue of a validation report:
//
//	events.cue:5
//	  DUPLICATE_CONDITION: B: condition overlaps a registered event
//	    overlaps A at 0
func (f *OutputFormatter) WriteIssue(issue CatalogIssue) {
	if issue.Line > 0 {
		fmt.Fprintf(f.Writer, "%s:%d\n", issue.File, issue.Line)
	}
	if issue.Kind != "" {
		fmt.Fprintf(f.Writer, "  %s: %s: %s\n", issue.Code, issue.Kind, issue.Message)
	} else {
		fmt.Fprintf(f.Writer, "  %s: %s\n", issue.Code, issue.Message)
	}
	f.writeIssueDetails(issue, "    ")
}

// writeIssueDetails prints the conflict of a duplicate and the
// classifier findings of an invalid event.
func (f *OutputFormatter) writeIssueDetails(issue CatalogIssue, indent string) {
	if issue.Conflict != "" && issue.At != nil {
		fmt.Fprintf(f.Writer, "%soverlaps %s at %d\n", indent, issue.Conflict, *issue.At)
	}
	for _, v := range issue.Violations {
		fmt.Fprintf(f.Writer, "%s%s\n", indent, v)
	}
}

// VerboseLog writes a line when Verbose is set. It goes to ErrWriter so
// JSON on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Encode writes resp as indented JSON, stamping the formatter's trace ID.
func (f *OutputFormatter) Encode(resp CLIResponse) error {
	if resp.TraceID == "" {
		resp.TraceID = f.TraceID
	}
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}
