package registry

import (
	"slices"

	"github.com/roach88/tickreg/internal/ir"
)

// Span is a maximal run of consecutive instants [Start, End) during which one
// entry is active.
type Span struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
	Entry Entry `json:"entry"`
}

// Timeline returns the activation spans that fall inside [from, to), clipped
// to the window and ordered by start. Instants with no active event are
// simply absent. An empty or inverted window yields nil.
func (r *Registry) Timeline(from, to int64) []Span {
	if from >= to {
		return nil
	}

	var spans []Span
	for _, entry := range r.entries {
		for _, s := range conditionSpans(entry.Event.Condition, from, to) {
			s.Entry = entry.clone()
			spans = append(spans, s)
		}
	}
	// Stored conditions never overlap, so starts are unique.
	slices.SortFunc(spans, func(a, b Span) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	return spans
}

// conditionSpans lists the runs of c inside [from, to).
func conditionSpans(c ir.Condition, from, to int64) []Span {
	switch v := c.(type) {
	case ir.Instant:
		t := int64(v)
		if t >= from && t < to {
			return []Span{{Start: t, End: t + 1}}
		}
	case ir.Range:
		lo, hi := max(v.X, from), min(v.Y, to)
		if lo < hi {
			return []Span{{Start: lo, End: hi}}
		}
	case ir.DiscreteSet:
		values := slices.Clone(v.Values)
		slices.Sort(values)
		var spans []Span
		for _, t := range values {
			if t < from || t >= to {
				continue
			}
			if n := len(spans); n > 0 && spans[n-1].End == t {
				spans[n-1].End = t + 1
				continue
			}
			spans = append(spans, Span{Start: t, End: t + 1})
		}
		return spans
	}
	return nil
}
