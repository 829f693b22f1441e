// Package classify recognises which condition variant a value is and whether
// it is well formed.
//
// The boolean predicates (IsRange, IsDiscreteSet, IsValidCondition,
// IsValidEvent) answer accept/reject. ValidateCondition and ValidateEvent
// report every violation with a stable code so tooling can explain a
// rejection.
//
// Well-formedness rules:
//   - Instant: value >= 0.
//   - Range: x >= 0, y >= 0, x <= y. Range{5, 5} is valid and never fires.
//   - DiscreteSet: at least one value, every value >= 0, values pairwise
//     distinct. Input order does not matter.
//   - GameEvent: non-empty kind and a well-formed condition.
package classify
