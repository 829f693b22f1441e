package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/tickreg/internal/classify"
	"github.com/roach88/tickreg/internal/compiler"
	"github.com/roach88/tickreg/internal/ir"
	"github.com/roach88/tickreg/internal/registry"
)

// LoadMode controls how errors are handled during catalog loading and
// registration.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading a catalog directory.
type LoadResult struct {
	Events    []ir.GameEvent // In declaration order
	CUEValue  cue.Value      // The raw CUE value for additional processing
	FileCount int            // Number of CUE files found
}

// LoadError represents an error that occurred during catalog loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadCatalog loads and compiles the CUE event catalog in dir.
// If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
// A nil result means nothing could be compiled at all.
func LoadCatalog(dir string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	var errs []error
	eventsVal := value.LookupPath(cue.ParsePath("event"))
	if eventsVal.Exists() {
		iter, iterErr := eventsVal.Fields()
		if iterErr != nil {
			return result, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating events: %v", iterErr)}}
		}
		for iter.Next() {
			ev, compileErr := compiler.CompileEvent(iter.Value())
			if compileErr != nil {
				errs = append(errs, convertCompileError(compileErr, "event."+iter.Selector().String()))
				if mode == LoadModeFailFast {
					return result, errs
				}
				continue
			}
			result.Events = append(result.Events, *ev)
		}
	}

	if len(result.Events) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no events found in catalog"})
	}

	return result, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeBadFlag     = "E007" // Flag value out of range

	// Catalog compile errors
	ErrCodeConditionShape = "E101" // Zero or several of at, range, set
	ErrCodeRangeBounds    = "E102" // Range without x or y
	ErrCodeInvalidType    = "E103" // Instant is not an integer (e.g., float)
)

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch {
	case strings.HasPrefix(field, "event."):
		return ErrCodeConditionShape
	case field == "range":
		return ErrCodeRangeBounds
	case field == "at", strings.HasPrefix(field, "range."), strings.HasPrefix(field, "set["):
		return ErrCodeInvalidType
	default:
		return ErrCodeGeneric
	}
}

// CatalogIssue is one problem found while loading or registering a catalog.
type CatalogIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`

	// Conflict and At describe a DUPLICATE_CONDITION rejection.
	Conflict string `json:"conflict,omitempty"`
	At       *int64 `json:"at,omitempty"`

	// Violations lists the classifier findings of an INVALID_EVENT rejection.
	Violations []classify.ValidationError `json:"violations,omitempty"`
}

// issueFromLoadError converts a loader error to a CatalogIssue.
func issueFromLoadError(err error) CatalogIssue {
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		return CatalogIssue{Code: ErrCodeGeneric, Message: err.Error()}
	}
	issue := CatalogIssue{Code: loadErr.Code, Message: loadErr.Message}
	if loadErr.Pos.IsValid() {
		issue.File = loadErr.Pos.Filename()
		issue.Line = loadErr.Pos.Line()
	}
	return issue
}

// issueFromRejection converts a registry rejection to a CatalogIssue.
func issueFromRejection(ev ir.GameEvent, err error) CatalogIssue {
	var re *registry.RegistryError
	if !errors.As(err, &re) {
		return CatalogIssue{Code: ErrCodeGeneric, Message: err.Error(), Kind: ev.Kind}
	}
	issue := CatalogIssue{
		Code:       string(re.Code),
		Message:    re.Message,
		Kind:       ev.Kind,
		Violations: re.Violations,
	}
	if re.Conflict != nil {
		issue.Conflict = re.Conflict.Event.Kind
		at := re.At
		issue.At = &at
	}
	return issue
}

// RegisterCatalog adds events to a fresh registry in order. In fail-fast
// mode registration stops at the first rejection; otherwise every
// rejection is collected and registration continues with the next event.
func RegisterCatalog(events []ir.GameEvent, logger *slog.Logger, mode LoadMode) (*registry.Registry, []CatalogIssue) {
	reg := registry.New(registry.WithLogger(logger))
	var issues []CatalogIssue
	for _, ev := range events {
		if _, err := reg.AddEvent(ev); err != nil {
			issues = append(issues, issueFromRejection(ev, err))
			if mode == LoadModeFailFast {
				break
			}
		}
	}
	return reg, issues
}

// buildRegistry loads the catalog in dir and registers every event,
// failing on the first problem. Used by the read-only commands.
func buildRegistry(dir string, logger *slog.Logger) (*registry.Registry, *CatalogIssue) {
	loaded, loadErrs := LoadCatalog(dir, LoadModeFailFast)
	if len(loadErrs) > 0 {
		issue := issueFromLoadError(loadErrs[0])
		return nil, &issue
	}
	reg, issues := RegisterCatalog(loaded.Events, logger, LoadModeFailFast)
	if len(issues) > 0 {
		return nil, &issues[0]
	}
	return reg, nil
}
