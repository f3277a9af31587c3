// Package nativebuf provides short-lived, natively allocated buffers used to
// pass arrays and strings across the native call boundary.  Every buffer is
// owned by the call scope that created it and is released when that scope
// exits, whether by return, error, or panic.
package nativebuf

/*
#include <stdlib.h>
#include <string.h>

static const char nativebuf_empty[1] = {0};

static void *nativebuf_empty_string(void) {
	return (void *)nativebuf_empty;
}
*/
import "C"

import (
	"sync/atomic"
	"unsafe"

	"github.com/emerge-lang/compiler/handle"
)

// ptrSize is the width of a native pointer.
const ptrSize = unsafe.Sizeof(uintptr(0))

// outstanding counts the live native allocations made by this package.
var outstanding atomic.Int64

// Outstanding returns the number of buffers which are currently allocated.
func Outstanding() int64 {
	return outstanding.Load()
}

func alloc(size uintptr) unsafe.Pointer {
	p := C.malloc(C.size_t(size))
	if p == nil {
		panic("nativebuf: out of memory")
	}

	outstanding.Add(1)
	return p
}

func free(p unsafe.Pointer) {
	C.free(p)
	outstanding.Add(-1)
}

// -----------------------------------------------------------------------------

// HandleArray is a contiguous native array of handle addresses.  The empty
// array has a nil pointer and length zero.
type HandleArray struct {
	ptr unsafe.Pointer
	n   int
}

// Ptr returns the address of the first element.
func (a HandleArray) Ptr() unsafe.Pointer {
	return a.ptr
}

// Len returns the number of elements in the array.
func (a HandleArray) Len() int {
	return a.n
}

// Read returns the elements of the array as handles of kind.
func (a HandleArray) Read(kind handle.Kind) []handle.Handle {
	return ReadHandles(a.ptr, a.n, kind)
}

// ReadHandles reads n handle addresses of kind from a native pointer array.
func ReadHandles(ptr unsafe.Pointer, n int, kind handle.Kind) []handle.Handle {
	if n == 0 || ptr == nil {
		return []handle.Handle{}
	}

	addrs := unsafe.Slice((*unsafe.Pointer)(ptr), n)
	hs := make([]handle.Handle, n)
	for i, addr := range addrs {
		hs[i] = handle.Wrap(kind, addr)
	}

	return hs
}

func newHandleArray(hs []handle.Handle) HandleArray {
	if len(hs) == 0 {
		return HandleArray{}
	}

	p := alloc(uintptr(len(hs)) * ptrSize)
	slots := unsafe.Slice((*unsafe.Pointer)(p), len(hs))
	for i, h := range hs {
		slots[i] = h.Pointer()
	}

	return HandleArray{ptr: p, n: len(hs)}
}

func newOutArray(n int) HandleArray {
	if n == 0 {
		return HandleArray{}
	}

	p := alloc(uintptr(n) * ptrSize)
	C.memset(p, 0, C.size_t(uintptr(n)*ptrSize))
	return HandleArray{ptr: p, n: n}
}

// -----------------------------------------------------------------------------

// Bytes is a native byte span.  The span is always followed by a NUL byte so
// it can also be passed where a C string is expected, but Len does not count
// that terminator.
type Bytes struct {
	ptr unsafe.Pointer
	n   int
}

// Ptr returns the address of the first byte.
func (b Bytes) Ptr() unsafe.Pointer {
	return b.ptr
}

// Len returns the number of bytes in the span.
func (b Bytes) Len() int {
	return b.n
}

// String copies the span back into a Go string.
func (b Bytes) String() string {
	if b.n == 0 {
		return ""
	}

	return C.GoStringN((*C.char)(b.ptr), C.int(b.n))
}

// empty reports whether b points at the shared empty string.
func (b Bytes) empty() bool {
	return b.n == 0
}

func newBytes(data []byte) Bytes {
	if len(data) == 0 {
		return Bytes{ptr: C.nativebuf_empty_string()}
	}

	p := alloc(uintptr(len(data)) + 1)
	dst := unsafe.Slice((*byte)(p), len(data)+1)
	copy(dst, data)
	dst[len(data)] = 0

	return Bytes{ptr: p, n: len(data)}
}

// Uint64s is a native array of 64-bit words.
type Uint64s struct {
	ptr unsafe.Pointer
	n   int
}

// Ptr returns the address of the first word.
func (u Uint64s) Ptr() unsafe.Pointer {
	return u.ptr
}

// Len returns the number of words.
func (u Uint64s) Len() int {
	return u.n
}

func newUint64s(vs []uint64) Uint64s {
	if len(vs) == 0 {
		return Uint64s{}
	}

	p := alloc(uintptr(len(vs)) * 8)
	copy(unsafe.Slice((*uint64)(p), len(vs)), vs)
	return Uint64s{ptr: p, n: len(vs)}
}

// -----------------------------------------------------------------------------

// WithHandles copies hs into a native array, runs body with it, and releases
// the array afterwards.  Null handles are copied as null.
func WithHandles(hs []handle.Handle, body func(HandleArray) error) error {
	arr := newHandleArray(hs)
	if arr.ptr != nil {
		defer free(arr.ptr)
	}

	return body(arr)
}

// WithString copies s into a native NUL-terminated byte span, runs body with
// it, and releases the span afterwards.
func WithString(s string, body func(Bytes) error) error {
	return WithBytes([]byte(s), body)
}

// WithBytes is like WithString but copies an arbitrary byte slice.
func WithBytes(data []byte, body func(Bytes) error) error {
	b := newBytes(data)
	if !b.empty() {
		defer free(b.ptr)
	}

	return body(b)
}

// WithUint64s copies vs into a native array, runs body with it, and releases
// the array afterwards.
func WithUint64s(vs []uint64, body func(Uint64s) error) error {
	u := newUint64s(vs)
	if u.ptr != nil {
		defer free(u.ptr)
	}

	return body(u)
}
