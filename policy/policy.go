// Package policy defines the fit strategies the allocator engine
// selects free blocks with. It is a tagged variant dispatched by the
// engine in one place, per the "policy as a strategy selector" design
// note: no stored function pointer, no per-engine vtable.
package policy

import (
	"github.com/cockroachdb/errors"

	"blockalloc/errs"
)

// Policy names one of the four closed-set fit strategies the engine
// understands. The zero value is FirstFit, matching "an unset policy
// defaults to FirstFit."
type Policy uint8

const (
	// FirstFit returns the first free block, scanning from head, whose
	// size is large enough to satisfy the request.
	FirstFit Policy = iota
	// NextFit resumes scanning from the cursor left by the previous
	// successful allocation, wrapping at the end of the list.
	NextFit
	// BestFit returns the smallest free block that still satisfies the
	// request, tie-broken by address order.
	BestFit
	// WorstFit returns the largest free block, tie-broken by address
	// order.
	WorstFit
)

// String renders the literal token the engine was configured with.
func (p Policy) String() string {
	switch p {
	case FirstFit:
		return "FirstFit"
	case NextFit:
		return "NextFit"
	case BestFit:
		return "BestFit"
	case WorstFit:
		return "WorstFit"
	default:
		return "Unknown"
	}
}

// Parse maps one of the four literal tokens ("FirstFit", "NextFit",
// "BestFit", "WorstFit") to a Policy. An empty token defaults to
// FirstFit, matching the spec's "passing an unset policy defaults to
// FirstFit." Any other unrecognized token yields an error wrapping
// errs.ErrBadArgument; Init treats that as a fatal configuration error
// rather than retrying with a fallback.
func Parse(token string) (Policy, error) {
	switch token {
	case "":
		return FirstFit, nil
	case "FirstFit":
		return FirstFit, nil
	case "NextFit":
		return NextFit, nil
	case "BestFit":
		return BestFit, nil
	case "WorstFit":
		return WorstFit, nil
	default:
		return 0, errors.Wrapf(errs.ErrBadArgument, "unknown policy token %q", token)
	}
}
