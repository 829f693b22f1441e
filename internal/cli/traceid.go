package cli

import "github.com/google/uuid"

// TraceIDGenerator produces the trace_id attached to JSON responses.
// Implementations must be safe for concurrent use.
type TraceIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered UUIDv7 trace IDs.
//
// Uses github.com/google/uuid package for RFC 9562 compliant UUIDs.
// UUIDv7 embeds a millisecond timestamp, so IDs from successive commands
// sort in execution order.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
