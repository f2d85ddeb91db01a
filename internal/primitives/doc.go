// Package primitives provides the foundational, zero-dependency data types
// shared by the timing bus and the transition machine.
//
// This package uses ONLY the Go standard library.
//
// Core invariants:
// - Events are immutable once published
// - Details are cloned on entry, so recorded marks never alias caller maps
// - Measures never carry a negative duration
package primitives
