//go:build unix

package region

import (
	"golang.org/x/sys/unix"

	"github.com/cockroachdb/errors"
)

// AcquireMmap maps an anonymous, private region of size bytes outside
// the Go heap, for callers who want OS-backed memory the garbage
// collector never scans. It is the region-acquisition analogue of the
// teacher's own file-backed mmap wrapper (internal/mmap/mmap_unix.go
// in the source this module is descended from) with MAP_ANON in place
// of a file descriptor, since the allocator has no backing file to
// keep in sync.
func AcquireMmap(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrap(err, "blockalloc: mmap anonymous region")
	}
	return data, nil
}

// ReleaseMmap unmaps a region previously returned by AcquireMmap. It
// must not be called while an engine still holds live allocations
// inside data.
func ReleaseMmap(data []byte) error {
	if data == nil {
		return nil
	}
	if err := unix.Munmap(data); err != nil {
		return errors.Wrap(err, "blockalloc: munmap region")
	}
	return nil
}
