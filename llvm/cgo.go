// Package llvm is a memory-managed binding to the LLVM-C API.  Every native
// object is reached through a typed wrapper around a handle, and every object
// that must be disposed is owned by a Context.
package llvm

/*
#cgo CFLAGS: -I/usr/lib/llvm-18/include -D_GNU_SOURCE -D__STDC_CONSTANT_MACROS -D__STDC_FORMAT_MACROS -D__STDC_LIMIT_MACROS
#cgo LDFLAGS: -L/usr/lib/llvm-18/lib -lLLVM-18

#include <stdlib.h>
#include "llvm-c/Core.h"
*/
import "C"

import (
	"unsafe"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// byref returns a pointer to v suitable for an output parameter.
func byref[T any](v *T) *T {
	return v
}

// llvmBool converts a Go boolean to an LLVM boolean.
func llvmBool(b bool) C.LLVMBool {
	if b {
		return 1
	}

	return 0
}

// takeMessage copies a message allocated by LLVM into Go memory and disposes
// of the original.
func takeMessage(msg *C.char) string {
	if msg == nil {
		return ""
	}

	defer C.LLVMDisposeMessage(msg)
	return C.GoString(msg)
}

// cstr copies s into a NUL-terminated native string owned by sc.
func cstr(sc *nativebuf.Scope, s string) (*C.char, C.size_t) {
	b := sc.String(s)
	return (*C.char)(b.Ptr()), C.size_t(b.Len())
}

// cuint narrows a native string length for an `unsigned` parameter.
func cuint(n C.size_t) C.uint {
	return C.uint(abi.Uint32(abi.Length(uint64(n))))
}

// goStringN copies the n bytes at str into Go memory.
func goStringN(str *C.char, n uint64) string {
	return C.GoStringN(str, C.int(abi.Int32(abi.Length(n))))
}

// bufferBytes copies the contents of buf into Go memory.
func bufferBytes(buf C.LLVMMemoryBufferRef) []byte {
	n := abi.Int32(abi.Length(uint64(C.LLVMGetBufferSize(buf))))
	return C.GoBytes(unsafe.Pointer(C.LLVMGetBufferStart(buf)), C.int(n))
}

// cname is cstr without the length.
func cname(sc *nativebuf.Scope, s string) *C.char {
	p, _ := cstr(sc, s)
	return p
}

// -----------------------------------------------------------------------------

type handled interface {
	Handle() handle.Handle
}

func handlesOf[T handled](xs []T) []handle.Handle {
	hs := make([]handle.Handle, len(xs))
	for i, x := range xs {
		if any(x) != nil {
			hs[i] = x.Handle()
		}
	}

	return hs
}

// requireAll panics with an invalid handle error if any entry of hs is null or
// not of kind.
func requireAll(op string, hs []handle.Handle, kind handle.Kind) {
	for _, h := range hs {
		if h.IsNull() || h.Kind() != kind {
			errs.Fail(errs.InvalidHandle(op, kind.String()))
		}
	}
}

func typeArray(sc *nativebuf.Scope, ts []Type) (*C.LLVMTypeRef, C.uint) {
	hs := handlesOf(ts)
	requireAll("type operand", hs, handle.Type)

	arr := sc.Handles(hs)
	return (*C.LLVMTypeRef)(arr.Ptr()), C.uint(abi.Uint32(arr.Len()))
}

func valueArray(sc *nativebuf.Scope, vs []Value) (*C.LLVMValueRef, C.uint) {
	hs := handlesOf(vs)
	requireAll("value operand", hs, handle.Value)

	arr := sc.Handles(hs)
	return (*C.LLVMValueRef)(arr.Ptr()), C.uint(abi.Uint32(arr.Len()))
}

// metadataArray permits null entries: debug-info arrays use them for `void`.
// A retired placeholder is rejected.
func metadataArray[T Metadata](sc *nativebuf.Scope, ms []T) (*C.LLVMMetadataRef, C.uint) {
	for _, md := range ms {
		if dit, ok := any(md).(DIType); ok {
			dit.checkLive("metadata operand")
		}
	}

	arr := sc.Handles(handlesOf(ms))
	return (*C.LLVMMetadataRef)(arr.Ptr()), C.uint(abi.Uint32(arr.Len()))
}

// -----------------------------------------------------------------------------

func typeHandle(c C.LLVMTypeRef) handle.Handle {
	return handle.MustWrap(handle.Type, unsafe.Pointer(c))
}

func valueHandle(c C.LLVMValueRef) handle.Handle {
	return handle.MustWrap(handle.Value, unsafe.Pointer(c))
}

func metadataHandle(c C.LLVMMetadataRef) handle.Handle {
	return handle.MustWrap(handle.Metadata, unsafe.Pointer(c))
}

func blockHandle(c C.LLVMBasicBlockRef) handle.Handle {
	return handle.MustWrap(handle.BasicBlock, unsafe.Pointer(c))
}
