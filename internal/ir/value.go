package ir

import (
	"slices"
	"unicode/utf16"
)

// IRValue is a sealed interface over the values canonical JSON accepts.
// There is no null and no float: every number in tickreg is an int64 tick.
type IRValue interface {
	irValue()
}

// IRString is a string value.
type IRString string

func (IRString) irValue() {}

// IRInt is an integer value.
type IRInt int64

func (IRInt) irValue() {}

// IRBool is a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRArray is an ordered list of values.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject maps string keys to values. Use SortedKeys for deterministic
// iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units). This differs
// from Go's byte-wise string order for characters outside the BMP.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// ConditionObject converts a condition to its canonical object:
//
//	{"kind":"instant","at":0}
//	{"kind":"range","x":2,"y":10}
//	{"kind":"set","values":[11,15,20]}
//
// A nil condition yields {"kind":"none"}.
func ConditionObject(c Condition) IRObject {
	switch v := c.(type) {
	case Instant:
		return IRObject{"kind": IRString(KindInstant), "at": IRInt(v)}
	case Range:
		return IRObject{"kind": IRString(KindRange), "x": IRInt(v.X), "y": IRInt(v.Y)}
	case DiscreteSet:
		values := make(IRArray, len(v.Values))
		for i, n := range v.Values {
			values[i] = IRInt(n)
		}
		return IRObject{"kind": IRString(KindDiscreteSet), "values": values}
	default:
		return IRObject{"kind": IRString("none")}
	}
}

// EventObject converts an event to its canonical object.
func EventObject(e GameEvent) IRObject {
	return IRObject{
		"kind":      IRString(e.Kind),
		"condition": ConditionObject(e.Condition),
	}
}
