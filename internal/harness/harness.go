package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/tickreg/internal/compiler"
	"github.com/roach88/tickreg/internal/ir"
	"github.com/roach88/tickreg/internal/logging"
	"github.com/roach88/tickreg/internal/registry"
)

// Harness is the scenario execution engine.
// It drives one fresh registry per scenario with a deterministic clock.
type Harness struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh registry for isolation.
//
// Execution flow:
// 1. Create an empty registry with a clock starting at 1
// 2. Compile the catalog, if any, and register its events
// 3. Execute steps, checking each outcome against its expectation
// 4. Evaluate assertions against the final registry
//
// A returned error means the scenario could not be executed at all (for
// example, the catalog does not compile). Unmet expectations are reported
// in Result.Errors instead.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, logging.Discard())
}

// RunWithLogger is Run with the registry logging to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	h := &Harness{
		registry: registry.New(
			registry.WithLogger(logger),
			registry.WithClock(registry.NewClock()),
		),
		logger: logger,
	}

	result := NewResult()

	if scenario.Catalog != "" {
		if err := h.loadCatalog(scenario.Catalog, result); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	for i, step := range scenario.Steps {
		if err := h.executeStep(i, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	for _, errMsg := range EvaluateAssertions(h.registry, result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	h.logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"entries", h.registry.Len(),
	)
	return result, nil
}

// loadCatalog registers every catalog event. A rejected catalog event is a
// scenario failure, not an execution error.
func (h *Harness) loadCatalog(path string, result *Result) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	events, err := compiler.CompileCatalogSource(path, src)
	if err != nil {
		return err
	}

	for _, ev := range events {
		te := result.AddTrace(h.add(OpCatalog, ev))
		if te.Outcome != OutcomeOK {
			result.AddError(fmt.Sprintf("step %d: catalog event %s was rejected: %s", te.Step, ev, te.Outcome))
		}
	}
	return nil
}

func (h *Harness) executeStep(index int, step Step, result *Result) error {
	switch {
	case step.Add != nil:
		ev, err := step.Add.Event()
		switch {
		case errors.Is(err, ir.ErrNoCondition):
			// Let the registry reject the missing condition.
			ev = ir.GameEvent{Kind: step.Add.Kind}
		case err != nil:
			return err
		}

		te := result.AddTrace(h.add(OpAdd, ev))
		want := step.Expect
		if want == "" {
			want = OutcomeOK
		}
		if te.Outcome != want {
			result.AddError(fmt.Sprintf("step %d: add %s: expected %s, got %s", te.Step, ev, want, te.Outcome))
		}

	case step.Get != nil:
		te := result.AddTrace(h.get(*step.Get))
		want := step.Expect
		if want == "" {
			want = OutcomeFound
		}
		if te.Outcome != want {
			result.AddError(fmt.Sprintf("step %d: get %d: expected %s, got %s", te.Step, *step.Get, want, te.Outcome))
		} else if step.Kind != "" && te.Kind != step.Kind {
			result.AddError(fmt.Sprintf("step %d: get %d: expected kind %q, got %q", te.Step, *step.Get, step.Kind, te.Kind))
		}

	default:
		return fmt.Errorf("step %d has neither add nor get", index)
	}
	return nil
}

func (h *Harness) add(op string, ev ir.GameEvent) TraceEvent {
	te := TraceEvent{
		Op:        op,
		Kind:      ev.Kind,
		Condition: ir.CloneCondition(ev.Condition),
	}

	entry, err := h.registry.AddEvent(ev)
	if err == nil {
		te.Outcome = OutcomeOK
		te.Seq = entry.Seq
		return te
	}

	var re *registry.RegistryError
	if !errors.As(err, &re) {
		// EventID cannot fail for a condition the classifier accepted.
		te.Outcome = err.Error()
		return te
	}
	switch re.Code {
	case registry.ErrCodeDuplicateCondition:
		te.Outcome = OutcomeDuplicateCondition
		te.Conflict = re.Conflict.Event.Kind
		at := re.At
		te.Witness = &at
	case registry.ErrCodeInvalidEvent:
		te.Outcome = OutcomeInvalidEvent
		for _, v := range re.Violations {
			te.Codes = append(te.Codes, v.Code)
		}
	}
	return te
}

func (h *Harness) get(t int64) TraceEvent {
	te := TraceEvent{Op: OpGet, At: &t, Outcome: OutcomeNotFound}
	if entry, ok := h.registry.Find(t); ok {
		te.Outcome = OutcomeFound
		te.Kind = entry.Event.Kind
		te.Seq = entry.Seq
	}
	return te
}
