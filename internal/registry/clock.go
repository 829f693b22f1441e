package registry

// Clock is the logical clock that stamps accepted entries.
//
// Seq values are strictly increasing and never derived from wall time, so
// loading the same catalog twice yields the same numbering.
//
// Not safe for concurrent use; it shares the registry's single-writer
// contract.
type Clock struct {
	seq int64
}

// NewClock creates a clock whose first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose first Next returns start+1. Used when a
// host numbers entries across several registries.
func NewClockAt(start int64) *Clock {
	return &Clock{seq: start}
}

// Next advances the clock and returns the new value.
func (c *Clock) Next() int64 {
	c.seq++
	return c.seq
}

// Current returns the last value handed out, or the start value if Next has
// not been called.
func (c *Clock) Current() int64 {
	return c.seq
}
