package registry

import (
	"errors"
	"fmt"

	"github.com/roach88/tickreg/internal/classify"
	"github.com/roach88/tickreg/internal/ir"
)

// ErrorCode categorises registry rejections.
type ErrorCode string

const (
	// ErrCodeDuplicateCondition means the candidate would fire at an
	// instant already claimed by a stored entry.
	ErrCodeDuplicateCondition ErrorCode = "DUPLICATE_CONDITION"

	// ErrCodeInvalidEvent means the candidate is malformed: empty kind,
	// missing condition, or a badly shaped condition.
	ErrCodeInvalidEvent ErrorCode = "INVALID_EVENT"
)

// RegistryError is returned by AddEvent when a candidate is rejected.
// Both codes are recoverable; the registry is unchanged.
type RegistryError struct {
	Code    ErrorCode
	Message string

	// Event is the rejected candidate.
	Event ir.GameEvent

	// Conflict is the stored entry the candidate collides with and At the
	// earliest instant both fire. Set for ErrCodeDuplicateCondition only.
	Conflict *Entry
	At       int64

	// Violations lists every shape problem. Set for ErrCodeInvalidEvent
	// only.
	Violations []classify.ValidationError
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if e.Conflict != nil {
		return fmt.Sprintf("%s: %s (event=%s, conflict=%s, at=%d)",
			e.Code, e.Message, e.Event, e.Conflict.Event, e.At)
	}
	return fmt.Sprintf("%s: %s (event=%s)", e.Code, e.Message, e.Event)
}

// Unwrap exposes the validation errors to errors.As.
func (e *RegistryError) Unwrap() []error {
	if len(e.Violations) == 0 {
		return nil
	}
	errs := make([]error, len(e.Violations))
	for i, v := range e.Violations {
		errs[i] = v
	}
	return errs
}

// IsDuplicateCondition reports whether err is a DUPLICATE_CONDITION
// rejection. Uses errors.As to handle wrapped errors.
func IsDuplicateCondition(err error) bool {
	var re *RegistryError
	return errors.As(err, &re) && re.Code == ErrCodeDuplicateCondition
}

// IsInvalidEvent reports whether err is an INVALID_EVENT rejection.
// Uses errors.As to handle wrapped errors.
func IsInvalidEvent(err error) bool {
	var re *RegistryError
	return errors.As(err, &re) && re.Code == ErrCodeInvalidEvent
}

// CodeOf returns the rejection code carried by err, or "" if err is not a
// RegistryError.
func CodeOf(err error) ErrorCode {
	var re *RegistryError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// NewDuplicateConditionError creates the rejection for a candidate that
// collides with conflict at instant at.
func NewDuplicateConditionError(candidate ir.GameEvent, conflict Entry, at int64) *RegistryError {
	return &RegistryError{
		Code:     ErrCodeDuplicateCondition,
		Message:  "condition overlaps a registered event",
		Event:    candidate.Clone(),
		Conflict: &conflict,
		At:       at,
	}
}

// NewInvalidEventError creates the rejection for a malformed candidate.
func NewInvalidEventError(candidate ir.GameEvent, violations []classify.ValidationError) *RegistryError {
	msg := "event is malformed"
	if len(violations) > 0 {
		msg = violations[0].Message
	}
	return &RegistryError{
		Code:       ErrCodeInvalidEvent,
		Message:    msg,
		Event:      candidate.Clone(),
		Violations: violations,
	}
}
