// Package region provides the external collaborators SPEC_FULL.md §1
// and §9 call out: ways to acquire the contiguous byte region the
// allocator engine partitions. The engine itself never calls into this
// package — it only ever receives a []byte from whichever of these
// helpers the caller chose.
package region

// NewHeap allocates a plain Go-heap-backed region of size bytes. This
// is the simplest region source: ordinary GC-managed memory, useful
// for tests and for callers with no reason to step outside the Go
// heap.
func NewHeap(size int) []byte {
	return make([]byte, size)
}
