package llvm

/*
#include "llvm-c/Core.h"
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/llir/llvm/ir/enum"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// AttributeKind is the numeric kind of an enum or type attribute.  Kinds are
// assigned by the loaded LLVM library and are looked up by name.
type AttributeKind uint

// AttributeKindOf returns the kind of the attribute called name.
func AttributeKindOf(name string) (AttributeKind, bool) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	str, n := cstr(sc, name)
	kind := AttributeKind(C.LLVMGetEnumAttributeKindForName(str, n))
	return kind, kind != 0
}

func mustAttributeKind(name string) (AttributeKind, error) {
	kind, ok := AttributeKindOf(name)
	if !ok {
		return 0, fmt.Errorf("%w: attribute %q", errs.ErrUnknownEnumValue, name)
	}

	return kind, nil
}

// Attribute is an interface representing all possible LLVM attributes.
type Attribute interface {
	// Handle returns the native handle of the attribute.
	Handle() handle.Handle

	// ptr returns the internal LLVM object pointer to the attribute.
	ptr() C.LLVMAttributeRef

	// Variant returns the variant of the attribute.
	Variant() AttributeVariant
}

// AttributeVariant indicates what kind of attribute we are dealing with. It
// must be one of the enumerated attribute variants below.
type AttributeVariant int

// Enumeration of the different attribute variants.
const (
	EnumAttr AttributeVariant = iota
	TypeAttr
	StringAttr
	InvalidAttr
)

// A base type for all attributes.
type attrBase struct {
	h handle.Handle
}

func wrapAttr(c C.LLVMAttributeRef) Attribute {
	ab := attrBase{h: handle.Wrap(handle.Attribute, unsafe.Pointer(c))}
	switch ab.Variant() {
	case EnumAttr:
		return EnumAttribute{ab}
	case TypeAttr:
		return TypeAttribute{ab}
	case StringAttr:
		return StringAttribute{ab}
	default:
		return ab
	}
}

func (ab attrBase) Handle() handle.Handle {
	return ab.h
}

func (ab attrBase) ptr() C.LLVMAttributeRef {
	return C.LLVMAttributeRef(ab.h.Pointer())
}

func (ab attrBase) Variant() AttributeVariant {
	switch {
	case ab.h.IsNull():
		return InvalidAttr
	case C.LLVMIsEnumAttribute(ab.ptr()) == 1:
		return EnumAttr
	case C.LLVMIsTypeAttribute(ab.ptr()) == 1:
		return TypeAttr
	case C.LLVMIsStringAttribute(ab.ptr()) == 1:
		return StringAttr
	default:
		return InvalidAttr
	}
}

// -----------------------------------------------------------------------------

// EnumAttribute represents an LLVM enum attribute.
type EnumAttribute struct {
	attrBase
}

// EnumAttribute creates a new enum attribute called name with an integer
// value.  Most enum attributes take the value 0.
func (c *Context) EnumAttribute(name string, value uint64) (EnumAttribute, error) {
	kind, err := mustAttributeKind(name)
	if err != nil {
		return EnumAttribute{}, err
	}

	attr := C.LLVMCreateEnumAttribute(c.ptr(), C.uint(kind), C.uint64_t(value))
	return EnumAttribute{attrBase{handle.MustWrap(handle.Attribute, unsafe.Pointer(attr))}}, nil
}

// FuncAttribute creates the enum attribute for a function attribute.
func (c *Context) FuncAttribute(attr enum.FuncAttr) (EnumAttribute, error) {
	name, ok := abi.FuncAttrNames[attr]
	if !ok {
		return EnumAttribute{}, fmt.Errorf("%w: function attribute %d", errs.ErrUnknownEnumValue, attr)
	}

	return c.EnumAttribute(name, 0)
}

// ParamAttribute creates the enum attribute for a parameter attribute.
func (c *Context) ParamAttribute(attr enum.ParamAttr) (EnumAttribute, error) {
	name, ok := abi.ParamAttrNames[attr]
	if !ok {
		return EnumAttribute{}, fmt.Errorf("%w: parameter attribute %d", errs.ErrUnknownEnumValue, attr)
	}

	return c.EnumAttribute(name, 0)
}

// Kind returns the attribute kind of the enum attribute.
func (ea EnumAttribute) Kind() AttributeKind {
	return AttributeKind(C.LLVMGetEnumAttributeKind(ea.ptr()))
}

// Value returns the integer value of the enum attribute.
func (ea EnumAttribute) Value() uint64 {
	return uint64(C.LLVMGetEnumAttributeValue(ea.ptr()))
}

// -----------------------------------------------------------------------------

// TypeAttribute represents an LLVM type attribute such as `sret` or `byval`.
type TypeAttribute struct {
	attrBase
}

// TypeAttribute creates a new type attribute called name.
func (c *Context) TypeAttribute(name string, value Type) (TypeAttribute, error) {
	kind, err := mustAttributeKind(name)
	if err != nil {
		return TypeAttribute{}, err
	}

	attr := C.LLVMCreateTypeAttribute(c.ptr(), C.uint(kind), value.ptr())
	return TypeAttribute{attrBase{handle.MustWrap(handle.Attribute, unsafe.Pointer(attr))}}, nil
}

// Kind returns the attribute kind of the type attribute.
func (ta TypeAttribute) Kind() AttributeKind {
	return AttributeKind(C.LLVMGetEnumAttributeKind(ta.ptr()))
}

// Value returns the type value of the type attribute.
func (ta TypeAttribute) Value() Type {
	return wrapType(C.LLVMGetTypeAttributeValue(ta.ptr()))
}

// -----------------------------------------------------------------------------

// StringAttribute represents an LLVM string attribute.
type StringAttribute struct {
	attrBase
}

// StringAttribute creates a new string attribute in the context.
func (c *Context) StringAttribute(kind, value string) StringAttribute {
	sc := nativebuf.NewScope()
	defer sc.Release()

	ckind, nkind := cstr(sc, kind)
	cvalue, nvalue := cstr(sc, value)
	attr := C.LLVMCreateStringAttribute(c.ptr(), ckind, cuint(nkind), cvalue, cuint(nvalue))
	return StringAttribute{attrBase{handle.MustWrap(handle.Attribute, unsafe.Pointer(attr))}}
}

// Kind returns the kind of the string attribute.
func (sa StringAttribute) Kind() string {
	var strlen C.uint
	ckind := C.LLVMGetStringAttributeKind(sa.ptr(), byref(&strlen))
	return goStringN(ckind, uint64(strlen))
}

// Value returns the value of the string attribute.
func (sa StringAttribute) Value() string {
	var strlen C.uint
	cvalue := C.LLVMGetStringAttributeValue(sa.ptr(), byref(&strlen))
	return goStringN(cvalue, uint64(strlen))
}

// -----------------------------------------------------------------------------

// AttributeSet is used to access the attributes of a function, one of its
// parameters, its return value, or a call site.
type AttributeSet interface {
	// NumAttrs returns the number of attributes in the attribute set.
	NumAttrs() int

	// Attrs returns all the attributes in the set.
	Attrs() []Attribute

	// EnumAttr gets an enum or type attribute by its name.
	EnumAttr(name string) (Attribute, bool)

	// StringAttr gets a string attribute by its kind.
	StringAttr(kind string) (Attribute, bool)

	// Add adds attr to the set, replacing an attribute of the same kind.
	Add(attr Attribute)

	// RemoveEnum removes an enum or type attribute by its name.
	RemoveEnum(name string)

	// RemoveString removes a string attribute by its kind.
	RemoveString(kind string)
}

const (
	returnIndex   C.LLVMAttributeIndex = 0
	functionIndex                      = ^C.LLVMAttributeIndex(0)
)

func paramIndex(ndx int) C.LLVMAttributeIndex {
	return C.LLVMAttributeIndex(abi.Uint32(ndx + 1))
}

// funcAttrSet is an attribute set for a function, parameter, or return value.
type funcAttrSet struct {
	fn  C.LLVMValueRef
	ndx C.LLVMAttributeIndex
}

func (fas funcAttrSet) NumAttrs() int {
	return abi.Int(uint32(C.LLVMGetAttributeCountAtIndex(fas.fn, fas.ndx)))
}

func (fas funcAttrSet) Attrs() []Attribute {
	sc := nativebuf.NewScope()
	defer sc.Release()

	out := sc.Out(fas.NumAttrs())
	if out.Len() > 0 {
		C.LLVMGetAttributesAtIndex(fas.fn, fas.ndx, (*C.LLVMAttributeRef)(out.Ptr()))
	}

	return wrapAttrs(out)
}

func (fas funcAttrSet) EnumAttr(name string) (Attribute, bool) {
	kind, ok := AttributeKindOf(name)
	if !ok {
		return nil, false
	}

	return found(C.LLVMGetEnumAttributeAtIndex(fas.fn, fas.ndx, C.uint(kind)))
}

func (fas funcAttrSet) StringAttr(kind string) (Attribute, bool) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	ckind, n := cstr(sc, kind)
	return found(C.LLVMGetStringAttributeAtIndex(fas.fn, fas.ndx, ckind, cuint(n)))
}

func (fas funcAttrSet) Add(attr Attribute) {
	C.LLVMAddAttributeAtIndex(fas.fn, fas.ndx, attr.ptr())
}

func (fas funcAttrSet) RemoveEnum(name string) {
	if kind, ok := AttributeKindOf(name); ok {
		C.LLVMRemoveEnumAttributeAtIndex(fas.fn, fas.ndx, C.uint(kind))
	}
}

func (fas funcAttrSet) RemoveString(kind string) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	ckind, n := cstr(sc, kind)
	C.LLVMRemoveStringAttributeAtIndex(fas.fn, fas.ndx, ckind, cuint(n))
}

// callSiteAttrSet is an attribute set for a call site.
type callSiteAttrSet struct {
	call C.LLVMValueRef
	ndx  C.LLVMAttributeIndex
}

func (csas callSiteAttrSet) NumAttrs() int {
	return abi.Int(uint32(C.LLVMGetCallSiteAttributeCount(csas.call, csas.ndx)))
}

func (csas callSiteAttrSet) Attrs() []Attribute {
	sc := nativebuf.NewScope()
	defer sc.Release()

	out := sc.Out(csas.NumAttrs())
	if out.Len() > 0 {
		C.LLVMGetCallSiteAttributes(csas.call, csas.ndx, (*C.LLVMAttributeRef)(out.Ptr()))
	}

	return wrapAttrs(out)
}

func (csas callSiteAttrSet) EnumAttr(name string) (Attribute, bool) {
	kind, ok := AttributeKindOf(name)
	if !ok {
		return nil, false
	}

	return found(C.LLVMGetCallSiteEnumAttribute(csas.call, csas.ndx, C.uint(kind)))
}

func (csas callSiteAttrSet) StringAttr(kind string) (Attribute, bool) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	ckind, n := cstr(sc, kind)
	return found(C.LLVMGetCallSiteStringAttribute(csas.call, csas.ndx, ckind, cuint(n)))
}

func (csas callSiteAttrSet) Add(attr Attribute) {
	C.LLVMAddCallSiteAttribute(csas.call, csas.ndx, attr.ptr())
}

func (csas callSiteAttrSet) RemoveEnum(name string) {
	if kind, ok := AttributeKindOf(name); ok {
		C.LLVMRemoveCallSiteEnumAttribute(csas.call, csas.ndx, C.uint(kind))
	}
}

func (csas callSiteAttrSet) RemoveString(kind string) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	ckind, n := cstr(sc, kind)
	C.LLVMRemoveCallSiteStringAttribute(csas.call, csas.ndx, ckind, cuint(n))
}

func found(c C.LLVMAttributeRef) (Attribute, bool) {
	if c == nil {
		return nil, false
	}

	return wrapAttr(c), true
}

func wrapAttrs(out nativebuf.HandleArray) []Attribute {
	attrs := make([]Attribute, out.Len())
	for i, h := range out.Read(handle.Attribute) {
		attrs[i] = wrapAttr(C.LLVMAttributeRef(h.Pointer()))
	}

	return attrs
}

// -----------------------------------------------------------------------------

// Attrs returns the function attribute set.
func (f Function) Attrs() AttributeSet {
	return funcAttrSet{fn: f.ptr(), ndx: functionIndex}
}

// ReturnAttrs returns the return value attribute set.
func (f Function) ReturnAttrs() AttributeSet {
	return funcAttrSet{fn: f.ptr(), ndx: returnIndex}
}

// Attrs returns the parameter attribute set.
func (fp FuncParam) Attrs() AttributeSet {
	return funcAttrSet{fn: fp.fn.ptr(), ndx: paramIndex(fp.ndx)}
}

// FuncAttrs returns the call site function attribute set.
func (ci CallInstruction) FuncAttrs() AttributeSet {
	return callSiteAttrSet{call: ci.ptr(), ndx: functionIndex}
}

// ReturnAttrs returns the call site return value attribute set.
func (ci CallInstruction) ReturnAttrs() AttributeSet {
	return callSiteAttrSet{call: ci.ptr(), ndx: returnIndex}
}

// ParamAttrs returns the call site attribute set of the argument at ndx.
func (ci CallInstruction) ParamAttrs(ndx int) AttributeSet {
	return callSiteAttrSet{call: ci.ptr(), ndx: paramIndex(ndx)}
}
