// Package overlap decides whether two temporal conditions can fire at the
// same instant.
//
// Every pair of kinds is handled explicitly:
//
//	existing \ candidate | Instant     | Range              | DiscreteSet
//	Instant (v)          | v == w      | v in [x,y)         | v in S
//	Range [x,y)          | w in [x,y)  | max(x) < min(y)    | any of S in [x,y)
//	DiscreteSet (S)      | w in S      | any of S in [x,y)  | S and T intersect
//
// Two ranges collide when their intersection is non-empty, so identical
// ranges and nested ranges collide while an empty range collides with
// nothing. The relation is symmetric.
//
// Only well-formed conditions collide. A negative instant, an inverted or
// negative range, or a set that is empty, negative or repeats a value never
// collides with anything, so a registry rejects it for its shape instead.
package overlap

import (
	"slices"

	"github.com/roach88/tickreg/internal/classify"
	"github.com/roach88/tickreg/internal/ir"
)

// Collides reports whether existing and candidate share at least one
// instant. A nil or malformed condition never collides.
func Collides(existing, candidate ir.Condition) bool {
	_, ok := Witness(existing, candidate)
	return ok
}

// Witness returns the earliest instant at which both conditions fire.
// The second result is false when they never fire together.
func Witness(existing, candidate ir.Condition) (int64, bool) {
	if !classify.IsValidCondition(existing) || !classify.IsValidCondition(candidate) {
		return 0, false
	}
	switch e := existing.(type) {
	case ir.Instant:
		return instantWith(int64(e), candidate)
	case ir.Range:
		return rangeWith(e, candidate)
	case ir.DiscreteSet:
		return setWith(e, candidate)
	default:
		return 0, false
	}
}

func instantWith(v int64, candidate ir.Condition) (int64, bool) {
	if candidate == nil {
		return 0, false
	}
	// Instant, Range and DiscreteSet all reduce to membership of v.
	return v, candidate.Matches(v)
}

func rangeWith(r ir.Range, candidate ir.Condition) (int64, bool) {
	switch c := candidate.(type) {
	case ir.Instant:
		return int64(c), r.Matches(int64(c))
	case ir.Range:
		lo, hi := max(r.X, c.X), min(r.Y, c.Y)
		return lo, lo < hi
	case ir.DiscreteSet:
		return minMatching(c.Values, r.Matches)
	default:
		return 0, false
	}
}

func setWith(s ir.DiscreteSet, candidate ir.Condition) (int64, bool) {
	switch c := candidate.(type) {
	case ir.Instant:
		return int64(c), s.Matches(int64(c))
	case ir.Range:
		return minMatching(s.Values, c.Matches)
	case ir.DiscreteSet:
		small, large := s.Values, c.Values
		if len(small) > len(large) {
			small, large = large, small
		}
		index := make(map[int64]struct{}, len(small))
		for _, v := range small {
			index[v] = struct{}{}
		}
		return minMatching(large, func(v int64) bool {
			_, ok := index[v]
			return ok
		})
	default:
		return 0, false
	}
}

// minMatching returns the smallest value satisfying match.
func minMatching(values []int64, match func(int64) bool) (int64, bool) {
	var hits []int64
	for _, v := range values {
		if match(v) {
			hits = append(hits, v)
		}
	}
	if len(hits) == 0 {
		return 0, false
	}
	return slices.Min(hits), true
}
