package blockalloc

import (
	"blockalloc/internal/engine"
	"blockalloc/internal/typed"
)

// AllocateValue carves out sizeof(T) bytes from eng and returns a *T
// aliasing them directly, with no copy. T must contain no pointers,
// slices, maps, strings or interfaces — anything the garbage collector
// would need to trace, since the backing memory may come from outside
// the Go heap (see internal/region's mmap helper). This is the
// allocator-domain descendant of the teacher's SetFixed/GetFixed
// helpers for serializing fixed-layout structs.
func AllocateValue[T any](eng *engine.Engine) (*T, error) {
	return typed.Allocate[T](eng)
}

// FreeValue releases the block backing v, which must have come from
// AllocateValue[T] against the same engine.
func FreeValue[T any](eng *engine.Engine, v *T) error {
	return typed.Free[T](eng, v)
}
