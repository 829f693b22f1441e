// Package compiler turns CUE event catalogs into game events.
//
// A catalog declares events under the top-level "event" struct. The field
// label is the event kind unless a "kind" string overrides it, and exactly
// one of at, range or set gives the condition:
//
//	event: A: at: 0
//	event: B: range: {x: 2, y: 10}
//	event: C: set: [11, 15, 20]
//	event: boss: {kind: "Boss Spawn", at: 40}
//
// Events are returned in declaration order, which is the order a registry
// receives them. The compiler checks syntax and types only (integers, no
// floats). Value rules such as x <= y belong to package classify, so a
// catalog may compile and still be rejected on registration.
package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/tickreg/internal/ir"
)

// conditionFields lists the mutually exclusive condition fields.
var conditionFields = []string{"at", "range", "set"}

// CompileEvent parses a CUE value into a GameEvent.
//
// The CUE value should be the event struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`event: B: range: {x: 2, y: 10}`)
//	ev, err := CompileEvent(v.LookupPath(cue.ParsePath("event.B")))
func CompileEvent(v cue.Value) (*ir.GameEvent, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	ev := &ir.GameEvent{}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		ev.Kind = strings.Trim(labels[len(labels)-1].String(), `"`)
	}

	if kindVal := v.LookupPath(cue.ParsePath("kind")); kindVal.Exists() {
		kind, err := kindVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		ev.Kind = kind
	}

	var present []string
	for _, f := range conditionFields {
		if v.LookupPath(cue.ParsePath(f)).Exists() {
			present = append(present, f)
		}
	}
	switch len(present) {
	case 0:
		return nil, &CompileError{
			Field:   "event." + ev.Kind,
			Message: "one of at, range or set is required",
			Pos:     v.Pos(),
		}
	case 1:
	default:
		return nil, &CompileError{
			Field:   "event." + ev.Kind,
			Message: fmt.Sprintf("only one of at, range or set may be given, found %s", strings.Join(present, ", ")),
			Pos:     v.Pos(),
		}
	}

	cond, err := parseCondition(v, present[0])
	if err != nil {
		return nil, err
	}
	ev.Condition = cond
	return ev, nil
}

func parseCondition(v cue.Value, field string) (ir.Condition, error) {
	fv := v.LookupPath(cue.ParsePath(field))

	switch field {
	case "at":
		n, err := parseInstant(fv, "at")
		if err != nil {
			return nil, err
		}
		return ir.At(n), nil

	case "range":
		xVal := fv.LookupPath(cue.ParsePath("x"))
		yVal := fv.LookupPath(cue.ParsePath("y"))
		if !xVal.Exists() || !yVal.Exists() {
			return nil, &CompileError{
				Field:   "range",
				Message: "range requires both x and y",
				Pos:     fv.Pos(),
			}
		}
		x, err := parseInstant(xVal, "range.x")
		if err != nil {
			return nil, err
		}
		y, err := parseInstant(yVal, "range.y")
		if err != nil {
			return nil, err
		}
		return ir.Between(x, y), nil

	default:
		iter, err := fv.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		values := []int64{}
		for i := 0; iter.Next(); i++ {
			n, err := parseInstant(iter.Value(), fmt.Sprintf("set[%d]", i))
			if err != nil {
				return nil, err
			}
			values = append(values, n)
		}
		return ir.DiscreteSet{Values: values}, nil
	}
}

// parseInstant reads a concrete integer. Floats are forbidden: every
// instant is a whole tick.
func parseInstant(v cue.Value, field string) (int64, error) {
	switch v.IncompleteKind() {
	case cue.IntKind:
	case cue.FloatKind, cue.NumberKind:
		return 0, &CompileError{
			Field:   field,
			Message: "instants must be integers, floats are forbidden",
			Pos:     v.Pos(),
		}
	default:
		return 0, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("expected an integer instant, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}

	n, err := v.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return n, nil
}
