package engine

import "unsafe"

// sliceOffset reports the byte offset of sub within region, assuming
// sub really is a subslice of region. It is used to recover a block's
// header offset from the payload reference handed back to callers —
// the only pointer arithmetic this package does, mirroring the
// teacher's own use of unsafe for zero-copy byte views
// (internal/fixed/fixed.go's bytesViewOf) rather than threading offsets
// through the public API.
//
// ok is false when sub is empty (no address to compare) or clearly
// does not originate from region's backing array.
func sliceOffset(region, sub []byte) (off uint64, ok bool) {
	if len(sub) == 0 || len(region) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(&region[0]))
	ptr := uintptr(unsafe.Pointer(&sub[0]))
	if ptr < base {
		return 0, false
	}
	delta := ptr - base
	if delta > uintptr(len(region)) {
		return 0, false
	}
	return uint64(delta), true
}
