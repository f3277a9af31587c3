package llvm

/*
#include "llvm-c/Core.h"
#include "llvm-c/DebugInfo.h"
*/
import "C"

import (
	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// Metadata represents LLVM metadata.
type Metadata interface {
	// Handle returns the native handle of the metadata.
	Handle() handle.Handle

	// ptr returns the internal LLVM object pointer.
	ptr() C.LLVMMetadataRef

	// Kind returns the kind of the metadata.
	Kind() (abi.MetadataKind, error)

	// AsValue converts the metadata into a value of the context c.
	AsValue(c *Context) Value
}

// metaBase the base struct for all metadata classes.
type metaBase struct {
	h handle.Handle
}

func (mb metaBase) Handle() handle.Handle {
	return mb.h
}

func (mb metaBase) ptr() C.LLVMMetadataRef {
	return C.LLVMMetadataRef(handle.Require(mb.h, handle.Metadata).Pointer())
}

func (mb metaBase) Kind() (abi.MetadataKind, error) {
	return abi.MetadataKinds.Decode(int32(C.LLVMGetMetadataKind(mb.ptr())))
}

func (mb metaBase) AsValue(c *Context) Value {
	return wrapValue(C.LLVMMetadataAsValue(c.ptr(), mb.ptr()))
}

// mdRef returns the reference of md or nil for an absent operand.  A zero
// descriptor counts as absent.
func mdRef(md Metadata) C.LLVMMetadataRef {
	if md == nil || md.Handle().IsNull() {
		return nil
	}

	return md.ptr()
}

// -----------------------------------------------------------------------------

// MDString represents a LLVM MD string.
type MDString struct {
	metaBase
}

// MDString creates a new MD string of str in the context.
func (c *Context) MDString(str string) MDString {
	sc := nativebuf.NewScope()
	defer sc.Release()

	s, n := cstr(sc, str)
	return MDString{metaBase{metadataHandle(C.LLVMMDStringInContext2(c.ptr(), s, n))}}
}

// MDNode represents a LLVM MD node.
type MDNode struct {
	metaBase
}

// MDNode creates a new MD tuple of elems in the context.  Absent elements
// are stored as null operands.
func (c *Context) MDNode(elems ...Metadata) MDNode {
	sc := nativebuf.NewScope()
	defer sc.Release()

	mds, n := metadataArray(sc, elems)
	return MDNode{metaBase{metadataHandle(C.LLVMMDNodeInContext2(c.ptr(), mds, C.size_t(n)))}}
}

// ConstantMetadata returns the metadata wrapping the constant c.
func ConstantMetadata(c Constant) Metadata {
	return c.AsMetadata()
}
