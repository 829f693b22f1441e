package classify

import (
	"slices"

	"github.com/roach88/tickreg/internal/ir"
)

// IsInstant reports whether c is a non-negative Instant.
func IsInstant(c ir.Condition) bool {
	v, ok := c.(ir.Instant)
	return ok && v >= 0
}

// IsRange reports whether c is a Range with both bounds non-negative and
// X <= Y.
func IsRange(c ir.Condition) bool {
	r, ok := c.(ir.Range)
	return ok && r.X > -1 && r.Y > -1 && r.X <= r.Y
}

// IsDiscreteSet reports whether c is a non-empty DiscreteSet of distinct,
// non-negative values.
func IsDiscreteSet(c ir.Condition) bool {
	s, ok := c.(ir.DiscreteSet)
	if !ok || len(s.Values) == 0 {
		return false
	}
	_, ok = firstSetViolation(s.Values)
	return !ok
}

// IsValidCondition reports whether c is a well-formed condition of any kind.
func IsValidCondition(c ir.Condition) bool {
	return IsInstant(c) || IsRange(c) || IsDiscreteSet(c)
}

// IsValidEvent reports whether e has a non-empty kind and a well-formed
// condition.
func IsValidEvent(e ir.GameEvent) bool {
	return e.Kind != "" && e.Condition != nil && IsValidCondition(e.Condition)
}

// Classify returns the kind of a well-formed condition, or the validation
// errors that make it malformed.
func Classify(c ir.Condition) (ir.ConditionKind, []ValidationError) {
	if errs := ValidateCondition(c); len(errs) > 0 {
		return "", errs
	}
	return c.Kind(), nil
}

// setViolation is the first problem found while scanning a sorted set.
type setViolation struct {
	code  string
	value int64
}

// firstSetViolation sorts a copy of values and scans it once. Negative
// values sort first, so the first element decides non-negativity and
// adjacent equal elements decide uniqueness.
func firstSetViolation(values []int64) (setViolation, bool) {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	if len(sorted) > 0 && sorted[0] < 0 {
		return setViolation{code: ErrSetNegative, value: sorted[0]}, true
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return setViolation{code: ErrSetDuplicate, value: sorted[i]}, true
		}
	}
	return setViolation{}, false
}
