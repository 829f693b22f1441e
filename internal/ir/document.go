package ir

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Document errors. Both are returned when decoding a ConditionDoc.
var (
	ErrNoCondition        = errors.New("condition requires one of at, range or set")
	ErrAmbiguousCondition = errors.New("condition sets more than one of at, range and set")
)

// ConditionDoc is the file and wire form of a Condition. It is shared by
// YAML scenarios, JSON CLI output and CUE catalogs:
//
//	at: 0
//	range: {x: 2, y: 10}
//	set: [11, 15, 20]
//
// Exactly one field may be set. An explicitly empty set ("set: []") is a
// DiscreteSet with no values, which decodes fine and fails validation.
type ConditionDoc struct {
	At    *int64    `json:"at,omitempty" yaml:"at,omitempty"`
	Range *RangeDoc `json:"range,omitempty" yaml:"range,omitempty"`
	Set   []int64   `json:"set,omitempty" yaml:"set,omitempty"`
}

// RangeDoc is the document form of a Range.
type RangeDoc struct {
	X int64 `json:"x" yaml:"x"`
	Y int64 `json:"y" yaml:"y"`
}

// EventDoc is the document form of a GameEvent.
type EventDoc struct {
	Kind         string `json:"kind" yaml:"kind"`
	ConditionDoc `yaml:",inline"`
}

// conditionFields is ConditionDoc without its JSON methods.
type conditionFields ConditionDoc

// MarshalJSON writes only the field that is set. A non-nil empty set is
// written as "set":[] so it decodes back to an empty DiscreteSet.
func (d ConditionDoc) MarshalJSON() ([]byte, error) {
	if d.Set == nil {
		return json.Marshal(conditionFields(d))
	}
	return json.Marshal(struct {
		conditionFields
		Set []int64 `json:"set"`
	}{conditionFields(d), d.Set})
}

// MarshalJSON writes the kind followed by the condition fields. It is
// needed because the embedded ConditionDoc method would otherwise drop the
// kind.
func (d EventDoc) MarshalJSON() ([]byte, error) {
	if d.Set == nil {
		return json.Marshal(struct {
			Kind string `json:"kind"`
			conditionFields
		}{d.Kind, conditionFields(d.ConditionDoc)})
	}
	return json.Marshal(struct {
		Kind string `json:"kind"`
		conditionFields
		Set []int64 `json:"set"`
	}{d.Kind, conditionFields(d.ConditionDoc), d.Set})
}

// DocFor converts a condition to its document form. A nil condition
// yields an empty document.
func DocFor(c Condition) ConditionDoc {
	switch v := c.(type) {
	case Instant:
		at := int64(v)
		return ConditionDoc{At: &at}
	case Range:
		return ConditionDoc{Range: &RangeDoc{X: v.X, Y: v.Y}}
	case DiscreteSet:
		values := slices.Clone(v.Values)
		if values == nil {
			values = []int64{}
		}
		return ConditionDoc{Set: values}
	default:
		return ConditionDoc{}
	}
}

// DocForEvent converts an event to its document form.
func DocForEvent(e GameEvent) EventDoc {
	return EventDoc{Kind: e.Kind, ConditionDoc: DocFor(e.Condition)}
}

// Condition decodes the document. It enforces that exactly one variant is
// present but does not validate the variant's values.
func (d ConditionDoc) Condition() (Condition, error) {
	set := 0
	if d.At != nil {
		set++
	}
	if d.Range != nil {
		set++
	}
	if d.Set != nil {
		set++
	}
	switch {
	case set == 0:
		return nil, ErrNoCondition
	case set > 1:
		return nil, ErrAmbiguousCondition
	}

	switch {
	case d.At != nil:
		return At(*d.At), nil
	case d.Range != nil:
		return Between(d.Range.X, d.Range.Y), nil
	default:
		return Set(d.Set...), nil
	}
}

// Event decodes the document into a GameEvent.
func (d EventDoc) Event() (GameEvent, error) {
	cond, err := d.ConditionDoc.Condition()
	if err != nil {
		return GameEvent{}, fmt.Errorf("event %q: %w", d.Kind, err)
	}
	return GameEvent{Kind: d.Kind, Condition: cond}, nil
}
