package classify

import (
	"fmt"

	"github.com/roach88/tickreg/internal/ir"
)

// Validation error codes (E200-E299).
const (
	ErrKindEmpty        = "E201" // event kind is required
	ErrConditionMissing = "E202" // event condition is required
	ErrInstantNegative  = "E203" // instant below zero
	ErrRangeNegative    = "E204" // range bound below zero
	ErrRangeInverted    = "E205" // range x > y
	ErrSetEmpty         = "E206" // set has no values
	ErrSetNegative      = "E207" // set value below zero
	ErrSetDuplicate     = "E208" // set value listed twice
)

// ValidationError describes one reason a condition or event is malformed.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidateCondition returns every violation in c. A nil condition yields a
// single ErrConditionMissing.
func ValidateCondition(c ir.Condition) []ValidationError {
	switch v := c.(type) {
	case nil:
		return []ValidationError{{Field: "condition", Message: "condition is required", Code: ErrConditionMissing}}
	case ir.Instant:
		if v < 0 {
			return []ValidationError{{
				Field:   "condition.at",
				Message: fmt.Sprintf("instant must be >= 0, got %d", int64(v)),
				Code:    ErrInstantNegative,
			}}
		}
		return nil
	case ir.Range:
		return validateRange(v)
	case ir.DiscreteSet:
		return validateSet(v)
	default:
		// Unreachable while Condition stays sealed.
		return []ValidationError{{Field: "condition", Message: fmt.Sprintf("unknown condition type %T", c), Code: ErrConditionMissing}}
	}
}

func validateRange(r ir.Range) []ValidationError {
	var errs []ValidationError
	if r.X < 0 {
		errs = append(errs, ValidationError{
			Field:   "condition.range.x",
			Message: fmt.Sprintf("range start must be >= 0, got %d", r.X),
			Code:    ErrRangeNegative,
		})
	}
	if r.Y < 0 {
		errs = append(errs, ValidationError{
			Field:   "condition.range.y",
			Message: fmt.Sprintf("range end must be >= 0, got %d", r.Y),
			Code:    ErrRangeNegative,
		})
	}
	if r.X > r.Y {
		errs = append(errs, ValidationError{
			Field:   "condition.range",
			Message: fmt.Sprintf("range start %d is after end %d", r.X, r.Y),
			Code:    ErrRangeInverted,
		})
	}
	return errs
}

func validateSet(s ir.DiscreteSet) []ValidationError {
	if len(s.Values) == 0 {
		return []ValidationError{{Field: "condition.set", Message: "set must list at least one instant", Code: ErrSetEmpty}}
	}
	v, bad := firstSetViolation(s.Values)
	if !bad {
		return nil
	}
	msg := fmt.Sprintf("instant %d is listed more than once", v.value)
	if v.code == ErrSetNegative {
		msg = fmt.Sprintf("instants must be >= 0, got %d", v.value)
	}
	return []ValidationError{{Field: "condition.set", Message: msg, Code: v.code}}
}

// ValidateEvent returns every violation in e.
func ValidateEvent(e ir.GameEvent) []ValidationError {
	var errs []ValidationError
	if e.Kind == "" {
		errs = append(errs, ValidationError{Field: "kind", Message: "kind is required and must be non-empty", Code: ErrKindEmpty})
	}
	return append(errs, ValidateCondition(e.Condition)...)
}
