package ir

import (
	"slices"
	"strconv"
	"strings"
)

// ConditionKind names one of the three condition variants.
type ConditionKind string

const (
	KindInstant     ConditionKind = "instant"
	KindRange       ConditionKind = "range"
	KindDiscreteSet ConditionKind = "set"
)

// Condition describes when a game event fires.
//
// The interface is sealed: only Instant, Range and DiscreteSet implement it,
// so a type switch over those three is exhaustive.
type Condition interface {
	// Kind reports which variant this is.
	Kind() ConditionKind

	// Matches reports whether the condition fires at instant t.
	Matches(t int64) bool

	// Clone returns a copy that shares no memory with the receiver.
	Clone() Condition

	String() string

	condition()
}

// Instant fires exactly at one tick.
type Instant int64

// At builds an Instant condition. No validation is performed.
func At(v int64) Instant {
	return Instant(v)
}

func (Instant) condition() {}

// Kind implements Condition.
func (Instant) Kind() ConditionKind { return KindInstant }

// Matches implements Condition.
func (i Instant) Matches(t int64) bool {
	return int64(i) == t
}

// Clone implements Condition.
func (i Instant) Clone() Condition { return i }

func (i Instant) String() string {
	return "at(" + strconv.FormatInt(int64(i), 10) + ")"
}

// Range fires for every tick in the half-open interval [X, Y).
// Range{2, 10} fires at 2 through 9 and not at 10. Range{5, 5} never fires.
type Range struct {
	X int64
	Y int64
}

// Between builds a Range condition. No validation is performed; an inverted
// or negative range is representable and rejected later by classify.
func Between(x, y int64) Range {
	return Range{X: x, Y: y}
}

func (Range) condition() {}

// Kind implements Condition.
func (Range) Kind() ConditionKind { return KindRange }

// Matches implements Condition. The upper bound is exclusive.
func (r Range) Matches(t int64) bool {
	return r.X <= t && t < r.Y
}

// Clone implements Condition.
func (r Range) Clone() Condition { return r }

// Empty reports whether the range contains no ticks.
func (r Range) Empty() bool {
	return r.X >= r.Y
}

func (r Range) String() string {
	return "range[" + strconv.FormatInt(r.X, 10) + "," + strconv.FormatInt(r.Y, 10) + ")"
}

// DiscreteSet fires at each listed tick.
type DiscreteSet struct {
	Values []int64
}

// Set builds a DiscreteSet condition from a copy of values.
// Duplicates and negative values are kept as given.
func Set(values ...int64) DiscreteSet {
	return DiscreteSet{Values: slices.Clone(values)}
}

func (DiscreteSet) condition() {}

// Kind implements Condition.
func (DiscreteSet) Kind() ConditionKind { return KindDiscreteSet }

// Matches implements Condition.
func (s DiscreteSet) Matches(t int64) bool {
	return slices.Contains(s.Values, t)
}

// Clone implements Condition.
func (s DiscreteSet) Clone() Condition {
	return DiscreteSet{Values: slices.Clone(s.Values)}
}

func (s DiscreteSet) String() string {
	var b strings.Builder
	b.WriteString("set{")
	for i, v := range s.Values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	b.WriteByte('}')
	return b.String()
}

// CloneCondition clones c, passing nil through.
func CloneCondition(c Condition) Condition {
	if c == nil {
		return nil
	}
	return c.Clone()
}
