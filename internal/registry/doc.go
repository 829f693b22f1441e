// Package registry holds the ordered set of accepted game events and
// guarantees that no two of them can fire at the same instant.
//
// ARCHITECTURE:
//
// Single writer. A Registry is a plain in-memory slice with no internal
// locking. AddEvent is a check-then-append sequence; hosts that share one
// registry between goroutines must serialise every call behind their own
// mutex.
//
// Add path:
//  1. The candidate's condition is compared with every stored condition
//     (package overlap). Any collision rejects it with DUPLICATE_CONDITION.
//     A malformed condition never collides, so it falls through to step 2.
//  2. The candidate's shape is checked (package classify). A malformed
//     event is rejected with INVALID_EVENT.
//  3. The event is deep-copied, stamped with a content-addressed ID and the
//     next logical clock value, and appended.
//
// A rejected candidate leaves the registry untouched.
//
// Query path: GetEvent scans entries in insertion order and returns the
// first whose condition fires at the instant. Because stored conditions
// never overlap, at most one entry can match.
//
// Entries are immutable. There is no update or remove.
package registry
