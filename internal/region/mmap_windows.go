//go:build windows

package region

import "github.com/cockroachdb/errors"

// ErrNotSupported is returned by AcquireMmap on platforms without an
// anonymous-mmap equivalent wired up. Callers on Windows should use
// NewHeap instead.
var ErrNotSupported = errors.New("blockalloc: anonymous mmap region not supported on windows")

func AcquireMmap(size int) ([]byte, error) {
	return nil, ErrNotSupported
}

func ReleaseMmap(data []byte) error {
	return nil
}
