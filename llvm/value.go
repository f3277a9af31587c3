package llvm

/*
#include "llvm-c/Core.h"
*/
import "C"

import (
	"github.com/llir/llvm/ir/enum"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// Value is an interface used to represent all LLVM values.
type Value interface {
	// Handle returns the native handle of the value.
	Handle() handle.Handle

	// ptr returns the internal LLVM object pointer to the value.
	ptr() C.LLVMValueRef

	// Type returns the type of the LLVM value.
	Type() Type

	// Kind returns the kind of the LLVM value.
	Kind() (abi.ValueKind, error)

	// Name returns the name of the value.
	Name() string

	// SetName sets the name of the value to name.
	SetName(name string)

	// IsConstant returns whether the value is constant.
	IsConstant() bool

	// IsUndef returns whether the value is `undef`.
	IsUndef() bool

	// IsPoison returns whether the value is `poison`.
	IsPoison() bool

	// String returns the textual IR of the value.
	String() string

	// AsMetadata converts the value to metadata.
	AsMetadata() Metadata
}

// valueBase is the base type for all values.
type valueBase struct {
	h handle.Handle
}

func wrapValue(c C.LLVMValueRef) valueBase {
	return valueBase{h: valueHandle(c)}
}

func (v valueBase) Handle() handle.Handle {
	return v.h
}

func (v valueBase) ptr() C.LLVMValueRef {
	return C.LLVMValueRef(handle.Require(v.h, handle.Value).Pointer())
}

func (v valueBase) Type() Type {
	return wrapType(C.LLVMTypeOf(v.ptr()))
}

func (v valueBase) Kind() (abi.ValueKind, error) {
	return abi.ValueKinds.Decode(int32(C.LLVMGetValueKind(v.ptr())))
}

func (v valueBase) Name() string {
	var strlen C.size_t
	str := C.LLVMGetValueName2(v.ptr(), byref(&strlen))
	return goStringN(str, uint64(strlen))
}

func (v valueBase) SetName(name string) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	C.LLVMSetValueName2(v.ptr(), cname, n)
}

func (v valueBase) IsConstant() bool {
	return C.LLVMIsConstant(v.ptr()) == 1
}

func (v valueBase) IsUndef() bool {
	return C.LLVMIsUndef(v.ptr()) == 1
}

func (v valueBase) IsPoison() bool {
	return C.LLVMIsPoison(v.ptr()) == 1
}

func (v valueBase) String() string {
	return takeMessage(C.LLVMPrintValueToString(v.ptr()))
}

func (v valueBase) AsMetadata() Metadata {
	return metaBase{h: metadataHandle(C.LLVMValueAsMetadata(v.ptr()))}
}

// -----------------------------------------------------------------------------

// UserValue represents an LLVM value which has operands.
type UserValue struct {
	valueBase
}

// NumOperands returns the number of operands of the value.
func (uv UserValue) NumOperands() int {
	return int(C.LLVMGetNumOperands(uv.ptr()))
}

// Operand retrieves the operand at index ndx.
func (uv UserValue) Operand(ndx int) Value {
	return wrapValue(C.LLVMGetOperand(uv.ptr(), C.uint(abi.Uint32(ndx))))
}

// SetOperand sets the operand at index ndx to val.
func (uv UserValue) SetOperand(ndx int, val Value) {
	C.LLVMSetOperand(uv.ptr(), C.uint(abi.Uint32(ndx)), val.ptr())
}

// -----------------------------------------------------------------------------

// Constant represents an LLVM constant value.
type Constant struct {
	valueBase
}

// ConstNull creates the null value of typ: zero for scalars, the null pointer
// for pointers and zeroinitializer for aggregates.
func ConstNull(typ Type) Constant {
	return Constant{wrapValue(C.LLVMConstNull(typ.ptr()))}
}

// Undef creates an `undef` value of type typ.
func Undef(typ Type) Constant {
	return Constant{wrapValue(C.LLVMGetUndef(typ.ptr()))}
}

// Poison creates a `poison` value of type typ.
func Poison(typ Type) Constant {
	return Constant{wrapValue(C.LLVMGetPoison(typ.ptr()))}
}

// ConstInt creates a new integer constant of type intType with value n.  If
// signExtend is set, n is sign extended to the width of the type.
func ConstInt(intType IntegerType, n uint64, signExtend bool) Constant {
	return Constant{wrapValue(C.LLVMConstInt(intType.ptr(), C.ulonglong(n), llvmBool(signExtend)))}
}

// ConstReal creates a new real constant of type floatType with value n.
func ConstReal(floatType Type, n float64) Constant {
	return Constant{wrapValue(C.LLVMConstReal(floatType.ptr(), C.double(n)))}
}

// ConstStruct creates a literal struct constant from vals.
func (c *Context) ConstStruct(vals []Value, packed bool) Constant {
	sc := nativebuf.NewScope()
	defer sc.Release()

	elems, n := valueArray(sc, vals)
	return Constant{wrapValue(C.LLVMConstStructInContext(c.ptr(), elems, n, llvmBool(packed)))}
}

// ConstNamedStruct creates a constant of the named struct type st.
func ConstNamedStruct(st StructType, vals []Value) Constant {
	sc := nativebuf.NewScope()
	defer sc.Release()

	elems, n := valueArray(sc, vals)
	return Constant{wrapValue(C.LLVMConstNamedStruct(st.ptr(), elems, n))}
}

// ConstArray creates a constant array of elemType from vals.
func ConstArray(elemType Type, vals []Value) Constant {
	sc := nativebuf.NewScope()
	defer sc.Release()

	elems, n := valueArray(sc, vals)
	return Constant{wrapValue(C.LLVMConstArray2(elemType.ptr(), elems, C.uint64_t(n)))}
}

// ConstString creates a constant `i8` array holding the bytes of s, followed
// by a NUL byte if nullTerminate is set.
func (c *Context) ConstString(s string, nullTerminate bool) Constant {
	sc := nativebuf.NewScope()
	defer sc.Release()

	str, n := cstr(sc, s)
	return Constant{wrapValue(C.LLVMConstStringInContext(c.ptr(), str, cuint(n), llvmBool(!nullTerminate)))}
}

// IsNull returns whether or not the given constant is null.
func (c Constant) IsNull() bool {
	return C.LLVMIsNull(c.ptr()) == 1
}

// ZExtValue returns the zero extended value of an integer constant.
func (c Constant) ZExtValue() uint64 {
	return uint64(C.LLVMConstIntGetZExtValue(c.ptr()))
}

// SExtValue returns the sign extended value of an integer constant.
func (c Constant) SExtValue() int64 {
	return int64(C.LLVMConstIntGetSExtValue(c.ptr()))
}

// -----------------------------------------------------------------------------

// GlobalValue represents an LLVM global value.
type GlobalValue struct {
	valueBase
}

// IsDeclaration returns whether the global value is a declaration.
func (gv GlobalValue) IsDeclaration() bool {
	return C.LLVMIsDeclaration(gv.ptr()) == 1
}

// ValueType returns the value type of the global value.
func (gv GlobalValue) ValueType() Type {
	return wrapType(C.LLVMGlobalGetValueType(gv.ptr()))
}

// Linkage returns the linkage of the global value.
func (gv GlobalValue) Linkage() (enum.Linkage, error) {
	return abi.Linkages.Decode(int32(C.LLVMGetLinkage(gv.ptr())))
}

// SetLinkage sets the linkage of the global value to linkage.
func (gv GlobalValue) SetLinkage(linkage enum.Linkage) {
	C.LLVMSetLinkage(gv.ptr(), C.LLVMLinkage(abi.Linkages.Encode(linkage)))
}

// UnnamedAddr returns the `unnamed_addr` attribute of the global value.
func (gv GlobalValue) UnnamedAddr() (abi.UnnamedAddr, error) {
	return abi.UnnamedAddrs.Decode(int32(C.LLVMGetUnnamedAddress(gv.ptr())))
}

// SetUnnamedAddr sets the `unnamed_addr` attribute of the global value to ua.
func (gv GlobalValue) SetUnnamedAddr(ua abi.UnnamedAddr) {
	C.LLVMSetUnnamedAddress(gv.ptr(), C.LLVMUnnamedAddr(abi.UnnamedAddrs.Encode(ua)))
}

// Alignment returns the alignment of the global value in bytes.
func (gv GlobalValue) Alignment() int {
	return abi.Int(uint32(C.LLVMGetAlignment(gv.ptr())))
}

// SetAlignment sets the alignment of the global value in bytes.
func (gv GlobalValue) SetAlignment(bytes int) {
	C.LLVMSetAlignment(gv.ptr(), C.uint(abi.Uint32(bytes)))
}

// -----------------------------------------------------------------------------

// GlobalVariable represents an LLVM global variable.
type GlobalVariable struct {
	GlobalValue
}

// Initializer returns the initializer of the global if it has one.
func (gv GlobalVariable) Initializer() (Constant, bool) {
	if init := C.LLVMGetInitializer(gv.ptr()); init != nil {
		return Constant{wrapValue(init)}, true
	}

	return Constant{}, false
}

// SetInitializer sets the initializer of the global to init.
func (gv GlobalVariable) SetInitializer(init Constant) {
	C.LLVMSetInitializer(gv.ptr(), init.ptr())
}

// IsGlobalConstant returns whether the global is marked `constant`.
func (gv GlobalVariable) IsGlobalConstant() bool {
	return C.LLVMIsGlobalConstant(gv.ptr()) == 1
}

// SetGlobalConstant sets whether the global is marked `constant`.
func (gv GlobalVariable) SetGlobalConstant(isConst bool) {
	C.LLVMSetGlobalConstant(gv.ptr(), llvmBool(isConst))
}

// ThreadLocalMode returns the thread local storage model of the global.
func (gv GlobalVariable) ThreadLocalMode() (abi.ThreadLocalMode, error) {
	return abi.ThreadLocalModes.Decode(int32(C.LLVMGetThreadLocalMode(gv.ptr())))
}

// SetThreadLocalMode sets the thread local storage model of the global.
func (gv GlobalVariable) SetThreadLocalMode(mode abi.ThreadLocalMode) {
	C.LLVMSetThreadLocalMode(gv.ptr(), C.LLVMThreadLocalMode(abi.ThreadLocalModes.Encode(mode)))
}
