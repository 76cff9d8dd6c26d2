// Package typed adapts the teacher's no-pointer-type marshaling helpers
// (originally SetFixed/GetFixed in internal/fixed, serializing a
// fixed-layout struct into a byte-oriented store) to this module's
// domain: allocating a block sized exactly for a pointer-free type T
// and handing back a *T backed directly by the engine's payload bytes,
// with no copy in either direction.
package typed

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"blockalloc/errs"
	"blockalloc/internal/engine"
)

// scalarKinds are the kinds whose representation the garbage collector
// never needs to trace, so nesting them inside a struct or array is
// always safe.
var scalarKinds = map[reflect.Kind]bool{
	reflect.Bool: true,
	reflect.Int: true, reflect.Int8: true, reflect.Int16: true, reflect.Int32: true, reflect.Int64: true,
	reflect.Uint: true, reflect.Uint8: true, reflect.Uint16: true, reflect.Uint32: true, reflect.Uint64: true,
	reflect.Uintptr: true,
	reflect.Float32: true, reflect.Float64: true,
}

// noPointerCache memoizes typeNoPointers by reflect.Type: Allocate[T]
// and Free[T] run this check on every call, and the allocator-domain
// workload (cmd/blockalloc-demo, the acceptance soak) calls them with
// the same handful of types in tight loops, so the reflective walk is
// worth caching rather than repeating per call.
var noPointerCache sync.Map // reflect.Type -> error

// assertNoPointers rejects types whose in-memory representation
// contains anything the Go garbage collector would need to track:
// reinterpreting engine-owned payload bytes as such a type would let a
// GC-managed pointer live inside memory the collector does not scan
// (most visibly when that payload comes from internal/region's mmap
// helper), which is unsound regardless of region source.
func assertNoPointers[T any]() error {
	var zero T
	t := reflect.TypeOf(zero)

	if cached, ok := noPointerCache.Load(t); ok {
		if cached == nil {
			return nil
		}
		return cached.(error)
	}
	err := typeNoPointers(t, nil)
	if err == nil {
		noPointerCache.Store(t, nil)
	} else {
		noPointerCache.Store(t, err)
	}
	return err
}

// typeNoPointers walks t's shape looking for anything pointer-like.
// path records the struct-field chain walked so far, for error context.
func typeNoPointers(t reflect.Type, path []string) error {
	if scalarKinds[t.Kind()] {
		return nil
	}

	switch t.Kind() {
	case reflect.Array:
		return typeNoPointers(t.Elem(), path)
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if err := typeNoPointers(f.Type, append(path, f.Name)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%s: kind %s is not pointer-free", fieldPath(path, t), t.Kind())
	}
}

func fieldPath(path []string, t reflect.Type) string {
	if len(path) == 0 {
		return t.String()
	}
	out := path[0]
	for _, p := range path[1:] {
		out += "." + p
	}
	return out
}

// Allocate carves out sizeof(T) payload bytes from eng and returns a
// *T aliasing them directly — writes through the returned pointer land
// in the engine's region, with no intermediate copy.
func Allocate[T any](eng *engine.Engine) (*T, error) {
	if err := assertNoPointers[T](); err != nil {
		return nil, errs.AssertionFailed("blockalloc: %v", err)
	}
	var zero T
	n := int(unsafe.Sizeof(zero))
	payload, err := eng.Allocate(n)
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(&payload[0])), nil
}

// Free releases the block backing v, which must have come from
// Allocate[T] against the same engine.
func Free[T any](eng *engine.Engine, v *T) error {
	if v == nil {
		return nil
	}
	n := int(unsafe.Sizeof(*v))
	payload := unsafe.Slice((*byte)(unsafe.Pointer(v)), n)
	return eng.Deallocate(payload)
}
