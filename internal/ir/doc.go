// Package ir provides the value types shared by every tickreg package.
//
// This package contains type definitions and their encodings only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Instants are int64 ticks. There are no float or wall-clock times.
//   - Condition is a sealed interface with exactly three variants:
//     Instant, Range and DiscreteSet.
//   - Constructors never validate. Shape checks belong to package classify.
//   - Canonical JSON (RFC 8785 subset) is the only encoding used for
//     content-addressed identity and golden traces.
package ir
