package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainEvent prefixes registered-event hashes. The version suffix allows a
// future change of the hashed shape.
const DomainEvent = "tickreg/event/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data). The null separator
// keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EventID computes the content-addressed ID of an event from its kind and
// condition. Two events with the same kind and the same condition share an
// ID; a registry can never hold both because their conditions collide.
func EventID(e GameEvent) (string, error) {
	if e.Condition == nil {
		return "", fmt.Errorf("EventID: event %q has no condition", e.Kind)
	}
	canonical, err := MarshalCanonical(EventObject(e))
	if err != nil {
		return "", fmt.Errorf("EventID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEvent, canonical), nil
}

// MustEventID is like EventID but panics on error.
// Use only in tests or when the event is known to carry a condition.
func MustEventID(e GameEvent) string {
	id, err := EventID(e)
	if err != nil {
		panic(err)
	}
	return id
}
