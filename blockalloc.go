// Package blockalloc is a bounded-region dynamic memory allocator: give
// it a fixed, contiguous byte region and it partitions that region on
// demand into aligned sub-blocks, hands them out by reference, and
// recycles them on release, coalescing adjacent free neighbors.
//
// The package exposes two layers. internal/engine.Engine is the
// explicit, caller-constructed value the §9 design note in SPEC_FULL.md
// recommends: construct one with New, pass it around, call its methods
// directly. This file is the thin global convenience wrapper around a
// single lazily-created Engine, retained for callers happy with
// process-wide allocator state — mirroring the teacher's own
// init-before-use global, narrowed to a package facade instead of bare
// package variables.
package blockalloc

import (
	"io"
	"sync"

	"blockalloc/errs"
	"blockalloc/internal/engine"
	"blockalloc/policy"
)

// Re-exported so callers can match engine errors with errors.Is without
// reaching into the internal error package themselves.
var (
	ErrBadArgument = errs.ErrBadArgument
	ErrExhausted   = errs.ErrExhausted
	ErrDoubleFree  = errs.ErrDoubleFree
)

// Policy re-exports the fit-strategy type so callers need only import
// this package.
type Policy = policy.Policy

const (
	FirstFit = policy.FirstFit
	NextFit  = policy.NextFit
	BestFit  = policy.BestFit
	WorstFit = policy.WorstFit
)

var (
	globalMu  sync.Mutex
	globalEng *engine.Engine
)

// Init installs the package-level global engine over region under the
// named policy token ("FirstFit", "NextFit", "BestFit", "WorstFit", or
// "" for the default). It panics on an unknown token or an undersized
// region, per the fatal-configuration-error rule in SPEC_FULL.md §7.
func Init(region []byte, policyToken string) {
	pol, err := policy.Parse(policyToken)
	if err != nil {
		panic(errs.AssertionFailed("blockalloc: %v", err))
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	globalEng = engine.New(region, pol, nil)
}

// Global returns the package-level engine installed by Init, or nil if
// Init has not been called.
func Global() *engine.Engine {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalEng
}

// New constructs an explicit Engine value over region, independent of
// the package-level global. Most callers beyond quick scripts and
// demos should prefer this over Init/the package-level wrappers below.
func New(region []byte, pol Policy) *engine.Engine {
	return engine.New(region, pol, nil)
}

// Allocate carves n payload bytes out of the global engine. It panics
// if Init has not been called — using the global wrapper without
// initializing it first is a programmer error, not a runtime
// condition.
func Allocate(n int) ([]byte, error) {
	return mustGlobal().Allocate(n)
}

// AllocateOrNil mirrors the spec's literal "returns a payload reference
// or null" against the global engine.
func AllocateOrNil(n int) []byte {
	return mustGlobal().AllocateOrNil(n)
}

// Deallocate releases payload back to the global engine. nil is a
// documented no-op.
func Deallocate(payload []byte) error {
	return mustGlobal().Deallocate(payload)
}

// Validate walks the global engine's block list and panics on any
// invariant violation.
func Validate() *engine.ValidationReport {
	return mustGlobal().Validate()
}

// PrintAllNodes dumps the global engine's block list to w as JSON.
func PrintAllNodes(w io.Writer) error {
	return mustGlobal().PrintAllNodes(w)
}

// Stats snapshots the global engine's block list.
func Stats() engine.Stats {
	return mustGlobal().Stats()
}

func mustGlobal() *engine.Engine {
	e := Global()
	if e == nil {
		panic(errs.AssertionFailed("blockalloc: Init has not been called"))
	}
	return e
}
