package engine

import "blockalloc/policy"

// selectFreeBlock dispatches to the configured fit policy in one
// place, per the §9 design note ("policy as a strategy selector...
// branch in one place"). Every strategy walks the list under the
// engine's lock (already held by the caller) and only ever touches
// the block it ultimately selects — none of them mutate while
// scanning.
func (e *Engine) selectFreeBlock(n uint32) (off uint64, ok bool) {
	switch e.pol {
	case policy.NextFit:
		return e.selectNextFit(n)
	case policy.BestFit:
		return e.selectBestFit(n)
	case policy.WorstFit:
		return e.selectWorstFit(n)
	default:
		return e.selectFirstFit(n)
	}
}

// selectFirstFit returns the first free block, scanning from head,
// whose size is large enough.
func (e *Engine) selectFirstFit(n uint32) (uint64, bool) {
	off := e.headOff
	for off != noLink {
		h := e.readHeader(off)
		if h.isFree() && h.size >= n {
			return off, true
		}
		off = h.next
	}
	return 0, false
}

// selectNextFit starts at the cursor (or head, if unset), walks
// forward wrapping at the end of the list, and stops once it has
// revisited its own starting block after at least one advance. On a
// hit, the cursor is set to the chosen block's next — resuming the
// next search past the block just allocated. On failure the cursor is
// left untouched.
func (e *Engine) selectNextFit(n uint32) (uint64, bool) {
	start := e.cursorOff
	if start == noLink {
		start = e.headOff
	}
	if start == noLink {
		return 0, false
	}

	off := start
	advanced := false
	for {
		h := e.readHeader(off)
		if h.isFree() && h.size >= n {
			e.cursorOff = h.next
			return off, true
		}

		next := h.next
		if next == noLink {
			next = e.headOff
		}
		if next == start && advanced {
			return 0, false
		}
		advanced = true
		off = next
	}
}

// selectBestFit scans the whole list and returns the smallest free
// block whose size still satisfies n, tie-broken by address order
// (the natural result of scanning forward and only replacing on a
// strictly smaller candidate).
func (e *Engine) selectBestFit(n uint32) (uint64, bool) {
	var best uint64
	found := false
	var bestSize uint32

	off := e.headOff
	for off != noLink {
		h := e.readHeader(off)
		if h.isFree() && h.size >= n {
			if !found || h.size < bestSize {
				best, bestSize, found = off, h.size, true
			}
		}
		off = h.next
	}
	return best, found
}

// selectWorstFit scans the whole list and returns the largest free
// block whose size satisfies n, tie-broken by address order. The spec
// notes the source's comparison as `size > bytes - 1`, equivalent to
// `size >= bytes`; this implementation uses the clearer form directly,
// per the §9 open-question resolution.
func (e *Engine) selectWorstFit(n uint32) (uint64, bool) {
	var worst uint64
	found := false
	var worstSize uint32

	off := e.headOff
	for off != noLink {
		h := e.readHeader(off)
		if h.isFree() && h.size >= n {
			if !found || h.size > worstSize {
				worst, worstSize, found = off, h.size, true
			}
		}
		off = h.next
	}
	return worst, found
}
