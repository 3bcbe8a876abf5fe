// Package errors provides standardized error handling patterns for Retain.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, the operation may succeed later), Invalid (bad input
// or API misuse, do not retry), and Fatal (unrecoverable, stop processing).
//
// Retain itself never retries anything; all core operations are synchronous
// and either their preconditions hold or they fail immediately. The
// classification exists so that hosts embedding the library can decide how
// to react without matching error strings.
//
// # Error Classification
//
//   - Transient: an unavailable snapshot sink, a temporarily unreachable
//     external persistence layer
//   - Invalid: empty keys, operations on a closed store, lifecycle signals
//     on a terminated binding, unresolvable identity context
//   - Fatal: corrupted snapshot data
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if key == "" {
//	    return errors.WrapInvalid(errors.ErrInvalidKey, "store", "Upsert", "validate key")
//	}
//
// Check classifications at the call site:
//
//	if errors.IsInvalid(err) {
//	    // caller bug: fix the input, do not retry
//	}
package errors
