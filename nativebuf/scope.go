package nativebuf

import (
	"unsafe"

	"github.com/emerge-lang/compiler/handle"
)

// Scope collects the buffers needed by a single native call so that a call
// taking several arrays and strings releases all of them together.  The
// pattern for using a scope is as follows:
//
//	sc := nativebuf.NewScope()
//	defer sc.Release()
//
//	name := sc.String(name)
//	params := sc.Handles(params)
//	...
//
// A scope must not be shared between goroutines and none of its buffers may be
// retained once Release has run.
type Scope struct {
	allocs []unsafe.Pointer
}

// NewScope creates a new, empty buffer scope.
func NewScope() *Scope {
	return &Scope{}
}

func (sc *Scope) track(p unsafe.Pointer) {
	if p != nil {
		sc.allocs = append(sc.allocs, p)
	}
}

// Handles copies hs into a native array owned by the scope.
func (sc *Scope) Handles(hs []handle.Handle) HandleArray {
	arr := newHandleArray(hs)
	sc.track(arr.ptr)
	return arr
}

// Out allocates a zeroed native array of n handle slots to be filled in by a
// native call.
func (sc *Scope) Out(n int) HandleArray {
	arr := newOutArray(n)
	sc.track(arr.ptr)
	return arr
}

// String copies s into a native byte span owned by the scope.
func (sc *Scope) String(s string) Bytes {
	b := newBytes([]byte(s))
	if !b.empty() {
		sc.track(b.ptr)
	}

	return b
}

// Uint64s copies vs into a native array owned by the scope.
func (sc *Scope) Uint64s(vs []uint64) Uint64s {
	u := newUint64s(vs)
	sc.track(u.ptr)
	return u
}

// Release frees every buffer allocated through the scope.  It is safe to call
// Release more than once.
func (sc *Scope) Release() {
	for i := len(sc.allocs) - 1; i >= 0; i-- {
		free(sc.allocs[i])
	}

	sc.allocs = nil
}
