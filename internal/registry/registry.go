package registry

import (
	"fmt"
	"log/slog"

	"github.com/roach88/tickreg/internal/classify"
	"github.com/roach88/tickreg/internal/ir"
	"github.com/roach88/tickreg/internal/overlap"
)

// Entry is an accepted event.
type Entry struct {
	// ID is the content-addressed identity of the event (ir.EventID).
	ID string `json:"id"`

	// Seq is the logical clock value stamped on acceptance.
	Seq int64 `json:"seq"`

	Event ir.GameEvent `json:"event"`
}

func (e Entry) clone() Entry {
	e.Event = e.Event.Clone()
	return e
}

// Conflict pairs a stored entry with the earliest instant it shares with a
// probed condition.
type Conflict struct {
	Entry Entry `json:"entry"`
	At    int64 `json:"at"`
}

// Registry is the ordered collection of accepted events.
//
// INVARIANTS:
//   - no two stored conditions fire at the same instant
//   - every stored event passes classify.IsValidEvent
//   - entries keep insertion order and are never modified
type Registry struct {
	entries []Entry
	clock   *Clock
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for accept/reject decisions.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithClock sets the clock used to stamp entries. Default: NewClock().
func WithClock(c *Clock) Option {
	return func(r *Registry) {
		r.clock = c
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		clock:  NewClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddEvent validates ev and appends it.
//
// Collisions are checked before the rest of the event, so a well-formed
// condition that collides is DUPLICATE_CONDITION even when the kind is
// empty. A malformed condition never collides and is INVALID_EVENT. On any
// error the registry is unchanged. The stored copy shares no memory with ev.
func (r *Registry) AddEvent(ev ir.GameEvent) (Entry, error) {
	for _, stored := range r.entries {
		if at, ok := overlap.Witness(stored.Event.Condition, ev.Condition); ok {
			r.logger.Warn("event rejected",
				"code", ErrCodeDuplicateCondition,
				"kind", ev.Kind,
				"condition", conditionString(ev.Condition),
				"conflict_kind", stored.Event.Kind,
				"conflict_id", stored.ID,
				"at", at,
			)
			return Entry{}, NewDuplicateConditionError(ev, stored.clone(), at)
		}
	}

	if !classify.IsValidEvent(ev) {
		violations := classify.ValidateEvent(ev)
		r.logger.Warn("event rejected",
			"code", ErrCodeInvalidEvent,
			"kind", ev.Kind,
			"condition", conditionString(ev.Condition),
			"violations", len(violations),
		)
		return Entry{}, NewInvalidEventError(ev, violations)
	}

	id, err := ir.EventID(ev)
	if err != nil {
		return Entry{}, fmt.Errorf("add event %q: %w", ev.Kind, err)
	}

	entry := Entry{
		ID:    id,
		Seq:   r.clock.Next(),
		Event: ev.Clone(),
	}
	r.entries = append(r.entries, entry)

	r.logger.Info("event registered",
		"kind", ev.Kind,
		"condition", ev.Condition.String(),
		"seq", entry.Seq,
		"id", entry.ID,
	)
	return entry.clone(), nil
}

// GetEvent returns the event active at instant t. The second result is
// false when no event fires at t; that is not an error.
func (r *Registry) GetEvent(t int64) (ir.GameEvent, bool) {
	entry, ok := r.Find(t)
	if !ok {
		return ir.GameEvent{}, false
	}
	return entry.Event, true
}

// Find is GetEvent returning the full entry.
func (r *Registry) Find(t int64) (Entry, bool) {
	for _, entry := range r.entries {
		if entry.Event.Condition.Matches(t) {
			return entry.clone(), true
		}
	}
	return Entry{}, false
}

// Entries returns a copy of all entries in insertion order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, entry := range r.entries {
		out[i] = entry.clone()
	}
	return out
}

// Len returns the number of accepted entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Conflicts returns every stored entry c collides with, in insertion order.
// Unlike AddEvent it does not stop at the first hit and never mutates.
func (r *Registry) Conflicts(c ir.Condition) []Conflict {
	var out []Conflict
	for _, entry := range r.entries {
		if at, ok := overlap.Witness(entry.Event.Condition, c); ok {
			out = append(out, Conflict{Entry: entry.clone(), At: at})
		}
	}
	return out
}

func conditionString(c ir.Condition) string {
	if c == nil {
		return "<nil>"
	}
	return c.String()
}
