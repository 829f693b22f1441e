package harness

import "github.com/roach88/tickreg/internal/ir"

// Trace operations.
const (
	OpCatalog = "catalog"
	OpAdd     = "add"
	OpGet     = "get"
)

// TraceEvent records one registry call and what came of it.
type TraceEvent struct {
	Step int    `json:"step"`
	Op   string `json:"op"`

	// Kind is the candidate's kind for catalog/add, or the returned
	// event's kind for a found get.
	Kind string `json:"kind,omitempty"`

	// Condition is the candidate condition (catalog/add only).
	Condition ir.Condition `json:"-"`

	// At is the probed instant (get only).
	At *int64 `json:"at,omitempty"`

	Outcome string `json:"outcome"`

	// Seq is the logical clock value of the accepted or returned entry.
	Seq int64 `json:"seq,omitempty"`

	// Conflict and Witness describe a duplicate_condition rejection.
	Conflict string `json:"conflict,omitempty"`
	Witness  *int64 `json:"witness,omitempty"`

	// Codes lists the validation codes of an invalid_event rejection.
	Codes []string `json:"codes,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every step matched its expectation and every assertion held.
	Pass bool `json:"pass"`

	// Trace contains every registry call in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends ev, numbering it after the events already recorded.
func (r *Result) AddTrace(ev TraceEvent) TraceEvent {
	ev.Step = len(r.Trace) + 1
	r.Trace = append(r.Trace, ev)
	return ev
}
