package llvm

/*
#include "llvm-c/Core.h"
*/
import "C"

import (
	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// Type is an interface used to represent all LLVM types.
type Type interface {
	// Handle returns the native handle of the type.
	Handle() handle.Handle

	// ptr returns the internal LLVM object pointer to the type.
	ptr() C.LLVMTypeRef

	// Kind returns the type's type kind.
	Kind() (abi.TypeKind, error)

	// Sized returns whether or not the type is sized.
	Sized() bool

	// String returns the textual IR of the type.
	String() string
}

// typeBase is the base struct used to build LLVM types.
type typeBase struct {
	h handle.Handle
}

func (tb typeBase) Handle() handle.Handle {
	return tb.h
}

func (tb typeBase) ptr() C.LLVMTypeRef {
	return C.LLVMTypeRef(handle.Require(tb.h, handle.Type).Pointer())
}

func (tb typeBase) Kind() (abi.TypeKind, error) {
	return abi.TypeKinds.Decode(int32(C.LLVMGetTypeKind(tb.ptr())))
}

func (tb typeBase) Sized() bool {
	return C.LLVMTypeIsSized(tb.ptr()) == 1
}

func (tb typeBase) String() string {
	return takeMessage(C.LLVMPrintTypeToString(tb.ptr()))
}

// wrapType wraps a type reference in the most specific Type it has.
func wrapType(c C.LLVMTypeRef) Type {
	tb := typeBase{h: typeHandle(c)}

	kind, err := tb.Kind()
	if err != nil {
		return tb
	}

	switch kind {
	case abi.IntegerTypeKind:
		return IntegerType{tb}
	case abi.PointerTypeKind:
		return PointerType{tb}
	case abi.FunctionTypeKind:
		return FunctionType{tb}
	case abi.StructTypeKind:
		return StructType{tb}
	case abi.ArrayTypeKind:
		return ArrayType{tb}
	default:
		return tb
	}
}

// SameType returns whether a and b are the same type.  LLVM types are uniqued
// per context so this is an identity comparison.
func SameType(a, b Type) bool {
	return a.Handle().Pointer() == b.Handle().Pointer()
}

// -----------------------------------------------------------------------------

// IntegerType represents an LLVM integer type.
type IntegerType struct {
	typeBase
}

// BitWidth returns the bit width of the integer type.
func (it IntegerType) BitWidth() int {
	return abi.Int(uint32(C.LLVMGetIntTypeWidth(it.ptr())))
}

// Int1Type returns the `i1` type in the context.
func (c *Context) Int1Type() IntegerType {
	return IntegerType{typeBase{typeHandle(C.LLVMInt1TypeInContext(c.ptr()))}}
}

// Int8Type returns the `i8` type in the context.
func (c *Context) Int8Type() IntegerType {
	return IntegerType{typeBase{typeHandle(C.LLVMInt8TypeInContext(c.ptr()))}}
}

// Int16Type returns the `i16` type in the context.
func (c *Context) Int16Type() IntegerType {
	return IntegerType{typeBase{typeHandle(C.LLVMInt16TypeInContext(c.ptr()))}}
}

// Int32Type returns the `i32` type in the context.
func (c *Context) Int32Type() IntegerType {
	return IntegerType{typeBase{typeHandle(C.LLVMInt32TypeInContext(c.ptr()))}}
}

// Int64Type returns the `i64` type in the context.
func (c *Context) Int64Type() IntegerType {
	return IntegerType{typeBase{typeHandle(C.LLVMInt64TypeInContext(c.ptr()))}}
}

// IntType returns the integer type of the given bit width in the context.
func (c *Context) IntType(bits int) IntegerType {
	return IntegerType{typeBase{typeHandle(C.LLVMIntTypeInContext(c.ptr(), C.uint(abi.Uint32(bits))))}}
}

// -----------------------------------------------------------------------------

// FloatType returns the `float` type in the context.
func (c *Context) FloatType() Type {
	return typeBase{typeHandle(C.LLVMFloatTypeInContext(c.ptr()))}
}

// DoubleType returns the `double` type in the context.
func (c *Context) DoubleType() Type {
	return typeBase{typeHandle(C.LLVMDoubleTypeInContext(c.ptr()))}
}

// VoidType returns the `void` type in the context.
func (c *Context) VoidType() Type {
	return typeBase{typeHandle(C.LLVMVoidTypeInContext(c.ptr()))}
}

// MetadataType returns the `metadata` type in the context.
func (c *Context) MetadataType() Type {
	return typeBase{typeHandle(C.LLVMMetadataTypeInContext(c.ptr()))}
}

// -----------------------------------------------------------------------------

// PointerType represents an opaque LLVM pointer type.
type PointerType struct {
	typeBase
}

// PointerType returns the opaque pointer type in the given address space.
func (c *Context) PointerType(addrSpace int) PointerType {
	return PointerType{typeBase{typeHandle(C.LLVMPointerTypeInContext(c.ptr(), C.uint(abi.Uint32(addrSpace))))}}
}

// AddrSpace returns the address space of the pointer.
func (pt PointerType) AddrSpace() int {
	return abi.Int(uint32(C.LLVMGetPointerAddressSpace(pt.ptr())))
}

// -----------------------------------------------------------------------------

// FunctionType represents an LLVM function type.
type FunctionType struct {
	typeBase
}

// NewFunctionType returns a new function type.
func NewFunctionType(returnType Type, paramTypes []Type, isVarArg bool) FunctionType {
	sc := nativebuf.NewScope()
	defer sc.Release()

	params, n := typeArray(sc, paramTypes)
	return FunctionType{typeBase{typeHandle(C.LLVMFunctionType(returnType.ptr(), params, n, llvmBool(isVarArg)))}}
}

// IsVarArg returns whether or not the function is variadic.
func (ft FunctionType) IsVarArg() bool {
	return C.LLVMIsFunctionVarArg(ft.ptr()) == 1
}

// ReturnType returns the return type of the function.
func (ft FunctionType) ReturnType() Type {
	return wrapType(C.LLVMGetReturnType(ft.ptr()))
}

// NumParams returns the number of parameters of the function.
func (ft FunctionType) NumParams() int {
	return abi.Int(uint32(C.LLVMCountParamTypes(ft.ptr())))
}

// Params returns the parameter types of the function.
func (ft FunctionType) Params() []Type {
	sc := nativebuf.NewScope()
	defer sc.Release()

	out := sc.Out(ft.NumParams())
	if out.Len() > 0 {
		C.LLVMGetParamTypes(ft.ptr(), (*C.LLVMTypeRef)(out.Ptr()))
	}

	params := make([]Type, out.Len())
	for i, h := range out.Read(handle.Type) {
		params[i] = wrapType(C.LLVMTypeRef(h.Pointer()))
	}

	return params
}

// -----------------------------------------------------------------------------

// StructType represents an LLVM struct type.
type StructType struct {
	typeBase
}

// StructType returns a literal struct type with the given fields.
func (c *Context) StructType(fields []Type, packed bool) StructType {
	sc := nativebuf.NewScope()
	defer sc.Release()

	elems, n := typeArray(sc, fields)
	return StructType{typeBase{typeHandle(C.LLVMStructTypeInContext(c.ptr(), elems, n, llvmBool(packed)))}}
}

// NamedStruct returns a new, opaque named struct type.  Its body may be set
// later using SetBody which allows for recursive types.
func (c *Context) NamedStruct(name string) StructType {
	sc := nativebuf.NewScope()
	defer sc.Release()

	return StructType{typeBase{typeHandle(C.LLVMStructCreateNamed(c.ptr(), cname(sc, name)))}}
}

// Name returns the name of the struct or the empty string for literal structs.
func (st StructType) Name() string {
	if cname := C.LLVMGetStructName(st.ptr()); cname != nil {
		return C.GoString(cname)
	}

	return ""
}

// SetBody sets the fields of an opaque named struct.
func (st StructType) SetBody(fields []Type, packed bool) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	elems, n := typeArray(sc, fields)
	C.LLVMStructSetBody(st.ptr(), elems, n, llvmBool(packed))
}

// IsOpaque returns whether the struct has no body yet.
func (st StructType) IsOpaque() bool {
	return C.LLVMIsOpaqueStruct(st.ptr()) == 1
}

// IsPacked returns whether the struct is packed.
func (st StructType) IsPacked() bool {
	return C.LLVMIsPackedStruct(st.ptr()) == 1
}

// NumFields returns the number of fields of the struct.
func (st StructType) NumFields() int {
	return abi.Int(uint32(C.LLVMCountStructElementTypes(st.ptr())))
}

// Fields returns the field types of the struct.
func (st StructType) Fields() []Type {
	sc := nativebuf.NewScope()
	defer sc.Release()

	out := sc.Out(st.NumFields())
	if out.Len() > 0 {
		C.LLVMGetStructElementTypes(st.ptr(), (*C.LLVMTypeRef)(out.Ptr()))
	}

	fields := make([]Type, out.Len())
	for i, h := range out.Read(handle.Type) {
		fields[i] = wrapType(C.LLVMTypeRef(h.Pointer()))
	}

	return fields
}

// -----------------------------------------------------------------------------

// ArrayType represents an LLVM array type.
type ArrayType struct {
	typeBase
}

// NewArrayType returns the array type of n elements of elemType.
func NewArrayType(elemType Type, n int) ArrayType {
	return ArrayType{typeBase{typeHandle(C.LLVMArrayType2(elemType.ptr(), C.uint64_t(abi.Uint64(n))))}}
}

// Len returns the number of elements in the array type.
func (at ArrayType) Len() uint64 {
	return uint64(C.LLVMGetArrayLength2(at.ptr()))
}

// ElemType returns the element type of the array.
func (at ArrayType) ElemType() Type {
	return wrapType(C.LLVMGetElementType(at.ptr()))
}
