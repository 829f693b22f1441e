package ir

import "encoding/json"

// GameEvent is a labelled temporal condition.
type GameEvent struct {
	// Kind is the caller-supplied label ("A", "boss_spawn", ...).
	// Must be non-empty to be accepted by a registry.
	Kind string

	// Condition says when the event fires. May be nil on a proposed event;
	// a registry rejects it.
	Condition Condition
}

// Clone returns a deep copy of the event.
func (e GameEvent) Clone() GameEvent {
	return GameEvent{Kind: e.Kind, Condition: CloneCondition(e.Condition)}
}

func (e GameEvent) String() string {
	if e.Condition == nil {
		return e.Kind + "@<nil>"
	}
	return e.Kind + "@" + e.Condition.String()
}

// MarshalJSON encodes the event in its document form:
//
//	{"kind":"B","range":{"x":2,"y":10}}
func (e GameEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(DocForEvent(e))
}

// UnmarshalJSON decodes the document form. Exactly one condition field
// must be present.
func (e *GameEvent) UnmarshalJSON(data []byte) error {
	var doc EventDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	ev, err := doc.Event()
	if err != nil {
		return err
	}
	*e = ev
	return nil
}
