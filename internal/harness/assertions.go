package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/tickreg/internal/registry"
)

// AssertionError is returned when an assertion fails.
// It includes the trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ev := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s\n", ev.Step, describe(ev))
	}

	return buf.String()
}

func describe(ev TraceEvent) string {
	switch ev.Op {
	case OpGet:
		if ev.Outcome == OutcomeFound {
			return fmt.Sprintf("get %d -> %s", *ev.At, ev.Kind)
		}
		return fmt.Sprintf("get %d -> %s", *ev.At, ev.Outcome)
	default:
		cond := "<nil>"
		if ev.Condition != nil {
			cond = ev.Condition.String()
		}
		return fmt.Sprintf("%s %s@%s -> %s", ev.Op, ev.Kind, cond, ev.Outcome)
	}
}

// EvaluateAssertions checks every assertion against the final registry and
// returns the failure messages. An empty slice means all assertions held.
func EvaluateAssertions(reg *registry.Registry, result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(reg, result.Trace, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(reg *registry.Registry, trace []TraceEvent, a Assertion) error {
	switch a.Type {
	case AssertRegistryCount:
		return assertRegistryCount(reg, trace, a)
	case AssertActiveAt:
		return assertActiveAt(reg, trace, a)
	case AssertInactiveAt:
		return assertInactiveAt(reg, trace, a)
	case AssertKindsInOrder:
		return assertKindsInOrder(reg, trace, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertRegistryCount checks the number of registered entries.
func assertRegistryCount(reg *registry.Registry, trace []TraceEvent, a Assertion) error {
	if n := reg.Len(); n != a.Count {
		return &AssertionError{
			Type:     AssertRegistryCount,
			Expected: fmt.Sprintf("%d entries", a.Count),
			Actual:   fmt.Sprintf("%d entries", n),
			Trace:    trace,
		}
	}
	return nil
}

// assertActiveAt checks which event fires at a.At.
func assertActiveAt(reg *registry.Registry, trace []TraceEvent, a Assertion) error {
	ev, ok := reg.GetEvent(*a.At)
	if !ok {
		return &AssertionError{
			Type:     AssertActiveAt,
			Expected: fmt.Sprintf("%s active at %d", a.Kind, *a.At),
			Actual:   "no event active",
			Trace:    trace,
		}
	}
	if ev.Kind != a.Kind {
		return &AssertionError{
			Type:     AssertActiveAt,
			Expected: fmt.Sprintf("%s active at %d", a.Kind, *a.At),
			Actual:   fmt.Sprintf("%s active", ev),
			Trace:    trace,
		}
	}
	return nil
}

// assertInactiveAt checks that nothing fires at a.At.
func assertInactiveAt(reg *registry.Registry, trace []TraceEvent, a Assertion) error {
	if ev, ok := reg.GetEvent(*a.At); ok {
		return &AssertionError{
			Type:     AssertInactiveAt,
			Expected: fmt.Sprintf("no event active at %d", *a.At),
			Actual:   fmt.Sprintf("%s active", ev),
			Trace:    trace,
		}
	}
	return nil
}

// assertKindsInOrder checks the registered kinds in insertion order. The
// match is exact: extra or missing entries fail.
func assertKindsInOrder(reg *registry.Registry, trace []TraceEvent, a Assertion) error {
	entries := reg.Entries()
	kinds := make([]string, len(entries))
	for i, e := range entries {
		kinds[i] = e.Event.Kind
	}
	if !slices.Equal(kinds, a.Kinds) {
		return &AssertionError{
			Type:     AssertKindsInOrder,
			Expected: fmt.Sprintf("%v", a.Kinds),
			Actual:   fmt.Sprintf("%v", kinds),
			Trace:    trace,
		}
	}
	return nil
}
