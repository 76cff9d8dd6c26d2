// Package consts holds the compile-time-ish tunables of the allocator
// engine: header layout size, split/merge thresholds and the region-size
// floor enforced at Init.
package consts

// HeaderSize is the size in bytes of one in-region block header
// (prev, next, free, size — see internal/engine/block.go for the exact
// layout). Every payload address is HeaderSize bytes past its block's
// start and Allocate rounds each request up to a multiple of Align,
// which keeps payloads naturally aligned as long as the caller's region
// itself starts aligned.
const HeaderSize = 24

// MinFreeBlock is the smallest payload size a split is allowed to leave
// behind. A split that would produce a right-hand free block smaller
// than this is skipped in favor of consuming the block whole, per the
// splitting rule in internal/engine/engine.go.
//
// This is a var, not a const, so tests can shrink it to exercise the
// split/no-split boundary on small regions without vendoring the
// package.
var MinFreeBlock uint32 = 32

// MinRegionSize is the floor enforced by Init: a region smaller than
// this is rejected as a contract violation rather than silently
// producing a degenerate one-block heap.
const MinRegionSize = 1024

// Align is the alignment, in bytes, that HeaderSize and every allocated
// payload size (and therefore every payload offset) are guaranteed to
// honor.
const Align = 8
