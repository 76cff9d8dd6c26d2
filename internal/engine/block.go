package engine

import "encoding/binary"

// noLink is the sentinel stored in prev/next when a block has no
// neighbor on that side, and in the engine's cursor when next-fit has
// not yet been primed. It plays the role of a null pointer inside the
// region: every real offset is well below 1<<64-1.
const noLink = ^uint64(0)

// blockFree / blockBusy are the two values stored in a header's free
// field. Kept as a uint32 rather than a single byte so the header's
// total size stays a multiple of 8; with Allocate rounding requests up
// to consts.Align, every payload starts 8-byte aligned, per the
// alignment guarantee in SPEC_FULL.md §3.
const (
	blockBusy uint32 = 0
	blockFree uint32 = 1
)

// header mirrors the in-region block header described in SPEC_FULL.md
// §3: prev/next neighbor offsets (address order, which coincides with
// list order), a free flag, and the payload size following the header.
// It is a plain Go value — reading/writing it round-trips through
// encodeHeader/decodeHeader rather than being laid directly over the
// region via unsafe, matching the teacher's own encode/decode-function
// approach to in-region record headers (core/header.go,
// internal/record/header.go) instead of a C-style cast.
type header struct {
	prev uint64
	next uint64
	size uint32
	free uint32
}

func (h header) isFree() bool { return h.free == blockFree }

// decodeHeader reads a header from the HeaderSize bytes at the front of
// b. b must be at least consts.HeaderSize bytes.
func decodeHeader(b []byte) header {
	return header{
		prev: binary.LittleEndian.Uint64(b[0:8]),
		next: binary.LittleEndian.Uint64(b[8:16]),
		size: binary.LittleEndian.Uint32(b[16:20]),
		free: binary.LittleEndian.Uint32(b[20:24]),
	}
}

// encodeHeader writes h into the HeaderSize bytes at the front of b.
func encodeHeader(b []byte, h header) {
	binary.LittleEndian.PutUint64(b[0:8], h.prev)
	binary.LittleEndian.PutUint64(b[8:16], h.next)
	binary.LittleEndian.PutUint32(b[16:20], h.size)
	binary.LittleEndian.PutUint32(b[20:24], h.free)
}
