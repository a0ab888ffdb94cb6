// Package assert provides lightweight runtime invariant checks.
// Failures panic rather than being recovered: an assertion failing means a
// component's internal bookkeeping has already diverged from its contract.
package assert

import "log"

// Assert panics with the given message if cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		log.Panicf("assertion failed: "+format, args...)
	}
}

// IsNotNil panics if v is nil.
func IsNotNil(v any, format string, args ...any) {
	if v == nil {
		log.Panicf("assertion failed (expected non-nil): "+format, args...)
	}
}

// IsNil panics if err is non-nil.
func IsNil(err error) {
	if err != nil {
		log.Panicf("assertion failed (expected nil error): %v", err)
	}
}

// Never panics unconditionally. Used to mark code paths that must not be reached.
func Never(format string, args ...any) {
	log.Panicf("unreachable: "+format, args...)
}
