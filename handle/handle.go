// Package handle models references to objects owned by the native code
// generation library.  A handle is an address plus a capability kind: it is
// never dereferenced on the Go side.
package handle

import (
	"fmt"
	"unsafe"

	"github.com/emerge-lang/compiler/errs"
)

// Kind identifies the capability of a native handle.
type Kind uint8

// Enumeration of handle kinds.
const (
	Invalid Kind = iota
	Context
	Module
	Type
	Value
	BasicBlock
	Builder
	Metadata
	Target
	TargetMachine
	TargetData
	DIBuilder
	PassBuilderOptions
	Error
	MemoryBuffer
	Attribute
)

var kindNames = [...]string{
	Invalid:            "Invalid",
	Context:            "Context",
	Module:             "Module",
	Type:               "Type",
	Value:              "Value",
	BasicBlock:         "BasicBlock",
	Builder:            "Builder",
	Metadata:           "Metadata",
	Target:             "Target",
	TargetMachine:      "TargetMachine",
	TargetData:         "TargetData",
	DIBuilder:          "DIBuilder",
	PassBuilderOptions: "PassBuilderOptions",
	Error:              "Error",
	MemoryBuffer:       "MemoryBuffer",
	Attribute:          "Attribute",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// -----------------------------------------------------------------------------

// Handle is an opaque reference to a native object.  The zero value is a null
// handle of kind Invalid.
type Handle struct {
	ptr  unsafe.Pointer
	kind Kind
}

// Wrap creates a new handle of the given kind around ptr.  ptr may be nil.
func Wrap(kind Kind, ptr unsafe.Pointer) Handle {
	return Handle{ptr: ptr, kind: kind}
}

// MustWrap is like Wrap but panics with an invalid handle error if ptr is nil.
// It is used where the native call contract guarantees a non-null result.
func MustWrap(kind Kind, ptr unsafe.Pointer) Handle {
	if ptr == nil {
		errs.Fail(errs.InvalidHandle("wrap", kind.String()))
	}

	return Handle{ptr: ptr, kind: kind}
}

// Require panics with an invalid handle error if h is null or not of kind.
func Require(h Handle, kind Kind) Handle {
	if h.ptr == nil || h.kind != kind {
		errs.Fail(errs.InvalidHandle("require", kind.String()))
	}

	return h
}

// Addr returns the raw address of the handle.
func (h Handle) Addr() uintptr {
	return uintptr(h.ptr)
}

// Pointer returns the address of the handle as an unsafe pointer, suitable to
// be passed across the native call boundary.
func (h Handle) Pointer() unsafe.Pointer {
	return h.ptr
}

// IsNull returns whether the handle refers to nothing.
func (h Handle) IsNull() bool {
	return h.ptr == nil
}

// Kind returns the capability kind of the handle.
func (h Handle) Kind() Kind {
	return h.kind
}

func (h Handle) String() string {
	if h.ptr == nil {
		return h.kind.String() + "(null)"
	}

	return fmt.Sprintf("%s(%#x)", h.kind, uintptr(h.ptr))
}
