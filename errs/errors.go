// Package errs collects the sentinel and assertion errors the engine
// surfaces across its public boundary, per the error taxonomy in
// SPEC_FULL.md §7: exhaustion and double-release are ordinary errors
// callers can match with errors.Is; contract violations are raised as
// assertion failures and are expected to propagate as panics, never to
// be handled inline.
package errs

import "github.com/cockroachdb/errors"

var (
	// ErrBadArgument is returned when a caller-supplied argument (a
	// requested size or a policy token) fails validation before the
	// engine ever touches the block list. A nil or undersized region is
	// a contract violation and panics instead.
	ErrBadArgument = errors.New("blockalloc: bad argument")

	// ErrExhausted is returned by Allocate when no free block can
	// satisfy a request under the engine's policy. This is a normal,
	// expected outcome, not a bug.
	ErrExhausted = errors.New("blockalloc: no free block large enough")

	// ErrDoubleFree is returned by Deallocate when the referenced block
	// is already free. The engine logs this and returns without
	// mutating state; it is the caller's choice whether to treat this
	// as fatal.
	ErrDoubleFree = errors.New("blockalloc: double free")

	// ErrClosed names the condition of an engine whose region has been
	// released through the ambient region helpers. The engine does not
	// track region release, and no operation in this module returns it.
	ErrClosed = errors.New("blockalloc: region closed")
)

// AssertionFailed wraps msg as a cockroachdb/errors assertion failure:
// a should-never-happen contract violation, carrying a stack trace. The
// engine panics with values built by this helper rather than returning
// them, per SPEC_FULL.md §7 — a breached invariant is a bug in the
// caller or in the engine itself, not a runtime condition to recover
// from.
func AssertionFailed(format string, args ...interface{}) error {
	return errors.AssertionFailedWithDepthf(1, format, args...)
}
