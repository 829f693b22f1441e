package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickreg/internal/ir"
	"github.com/roach88/tickreg/internal/logging"
	"github.com/roach88/tickreg/internal/registry"
)

func newAssertionRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New(registry.WithLogger(logging.Discard()))
	for _, ev := range []ir.GameEvent{
		{Kind: "A", Condition: ir.At(0)},
		{Kind: "B", Condition: ir.Between(2, 10)},
		{Kind: "C", Condition: ir.Set(11, 15, 20)},
	} {
		_, err := reg.AddEvent(ev)
		require.NoError(t, err)
	}
	return reg
}

func TestEvaluateAssertions(t *testing.T) {
	reg := newAssertionRegistry(t)

	tests := []struct {
		name      string
		assertion Assertion
		wantErr   string
	}{
		{"count holds", Assertion{Type: AssertRegistryCount, Count: 3}, ""},
		{"count differs", Assertion{Type: AssertRegistryCount, Count: 4}, "Actual: 3 entries"},
		{"active holds", Assertion{Type: AssertActiveAt, At: ptr(int64(9)), Kind: "B"}, ""},
		{"active wrong kind", Assertion{Type: AssertActiveAt, At: ptr(int64(9)), Kind: "C"}, "B@range[2,10) active"},
		{"active nothing", Assertion{Type: AssertActiveAt, At: ptr(int64(10)), Kind: "B"}, "no event active"},
		{"inactive holds", Assertion{Type: AssertInactiveAt, At: ptr(int64(1))}, ""},
		{"inactive fails", Assertion{Type: AssertInactiveAt, At: ptr(int64(15))}, "C@set{11,15,20} active"},
		{"order holds", Assertion{Type: AssertKindsInOrder, Kinds: []string{"A", "B", "C"}}, ""},
		{"order differs", Assertion{Type: AssertKindsInOrder, Kinds: []string{"B", "A", "C"}}, "Actual: [A B C]"},
		{"order missing entry", Assertion{Type: AssertKindsInOrder, Kinds: []string{"A", "B"}}, "Expected: [A B]"},
		{"unknown type", Assertion{Type: "trace_order"}, `unknown assertion type "trace_order"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(reg, NewResult(), []Assertion{tt.assertion})
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], tt.wantErr)
		})
	}
}

func TestAssertionError_IncludesTrace(t *testing.T) {
	result := NewResult()
	result.AddTrace(TraceEvent{Op: OpAdd, Kind: "A", Condition: ir.At(0), Outcome: OutcomeOK, Seq: 1})
	result.AddTrace(TraceEvent{Op: OpAdd, Kind: "B", Outcome: OutcomeInvalidEvent})
	result.AddTrace(TraceEvent{Op: OpGet, At: ptr(int64(0)), Kind: "A", Outcome: OutcomeFound, Seq: 1})
	result.AddTrace(TraceEvent{Op: OpGet, At: ptr(int64(4)), Outcome: OutcomeNotFound})

	err := &AssertionError{
		Type:     AssertRegistryCount,
		Expected: "2 entries",
		Actual:   "1 entries",
		Trace:    result.Trace,
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: registry_count")
	assert.Contains(t, msg, "[1] add A@at(0) -> ok")
	assert.Contains(t, msg, "[2] add B@<nil> -> invalid_event")
	assert.Contains(t, msg, "[3] get 0 -> A")
	assert.Contains(t, msg, "[4] get 4 -> not_found")
}
