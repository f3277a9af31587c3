package llvm

/*
#include <stdlib.h>

#include "llvm-c/Core.h"
#include "llvm-c/Analysis.h"
#include "llvm-c/BitWriter.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/llir/llvm/ir/enum"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// Module represents an LLVM module.
type Module struct {
	h   handle.Handle
	ctx *Context

	// pending holds the functions referenced through Callee before being
	// defined.  Each must either get a body or be marked external before the
	// module verifies.
	pending map[string]Function

	// external holds the names of functions which are declared on purpose.
	external map[string]struct{}

	// dibuilders holds the DI builders created for the module.  They are
	// disposed of along with it.
	dibuilders []*DIBuilder
}

// NewModule creates a new module with the given name in the context.
func (c *Context) NewModule(name string) *Module {
	sc := nativebuf.NewScope()
	defer sc.Release()

	m := &Module{
		h:        handle.MustWrap(handle.Module, unsafe.Pointer(C.LLVMModuleCreateWithNameInContext(cname(sc, name), c.ptr()))),
		ctx:      c,
		pending:  make(map[string]Function),
		external: make(map[string]struct{}),
	}
	c.takeOwnership(m)
	return m
}

// dispose disposes of the current module together with its DI builders.  The
// builders positioned inside the module lose their insertion point.
func (m *Module) dispose() {
	if m.h.IsNull() {
		return
	}

	for _, dib := range m.dibuilders {
		m.ctx.forget(dib)
		dib.dispose()
	}
	m.dibuilders = nil

	for _, obj := range m.ctx.ownedObjects {
		if b, ok := obj.(*Builder); ok {
			b.detach(m)
		}
	}

	C.LLVMDisposeModule(C.LLVMModuleRef(m.h.Pointer()))
	m.h = handle.Wrap(handle.Module, nil)
}

// Dispose releases the module before its context is disposed.
func (m *Module) Dispose() {
	m.ctx.Release(m)
}

// Handle returns the native handle of the module.
func (m *Module) Handle() handle.Handle {
	return m.h
}

func (m *Module) ptr() C.LLVMModuleRef {
	m.ctx.check("module")
	return C.LLVMModuleRef(handle.Require(m.h, handle.Module).Pointer())
}

// Context returns the context owning the module.
func (m *Module) Context() *Context {
	return m.ctx
}

// String returns the textual IR of the module.
func (m *Module) String() string {
	return takeMessage(C.LLVMPrintModuleToString(m.ptr()))
}

// WriteIRToFile writes the textual IR of the module to a file.
func (m *Module) WriteIRToFile(path string) error {
	sc := nativebuf.NewScope()
	defer sc.Release()

	var errMsg *C.char
	if C.LLVMPrintModuleToFile(m.ptr(), cname(sc, path), byref(&errMsg)) == 1 {
		return &errs.NativeCallError{Op: "write IR", Message: takeMessage(errMsg)}
	}

	return nil
}

// WriteBitcodeToFile writes the bitcode of the module to a file.
func (m *Module) WriteBitcodeToFile(path string) error {
	sc := nativebuf.NewScope()
	defer sc.Release()

	if C.LLVMWriteBitcodeToFile(m.ptr(), cname(sc, path)) != 0 {
		return &errs.NativeCallError{Op: "write bitcode", Message: "unable to write " + path}
	}

	return nil
}

// BitcodeBytes returns the bitcode of the module.
func (m *Module) BitcodeBytes() []byte {
	buf := C.LLVMWriteBitcodeToMemoryBuffer(m.ptr())
	defer C.LLVMDisposeMemoryBuffer(buf)

	return bufferBytes(buf)
}

// -----------------------------------------------------------------------------

// Name returns the name of the module.
func (m *Module) Name() string {
	var strlen C.size_t
	str := C.LLVMGetModuleIdentifier(m.ptr(), byref(&strlen))
	return goStringN(str, uint64(strlen))
}

// SourceFileName returns the source file name of the module.
func (m *Module) SourceFileName() string {
	var strlen C.size_t
	str := C.LLVMGetSourceFileName(m.ptr(), byref(&strlen))
	return goStringN(str, uint64(strlen))
}

// SetSourceFileName sets the source file name of the module to name.
func (m *Module) SetSourceFileName(name string) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	str, n := cstr(sc, name)
	C.LLVMSetSourceFileName(m.ptr(), str, n)
}

// DataLayout returns the data layout string of the module.
func (m *Module) DataLayout() string {
	return C.GoString(C.LLVMGetDataLayoutStr(m.ptr()))
}

// SetDataLayout sets the data layout of the module.
func (m *Module) SetDataLayout(td *TargetData) {
	C.LLVMSetModuleDataLayout(m.ptr(), td.ptr())
}

// TargetTriple returns the target triple string of the module.
func (m *Module) TargetTriple() string {
	return C.GoString(C.LLVMGetTarget(m.ptr()))
}

// SetTargetTriple sets the target triple string of the module.
func (m *Module) SetTargetTriple(triple string) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	C.LLVMSetTarget(m.ptr(), cname(sc, triple))
}

// AddModuleFlag adds a module level flag with the given merge behavior.
func (m *Module) AddModuleFlag(behavior abi.ModuleFlagBehavior, key string, val Metadata) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	ckey, n := cstr(sc, key)
	C.LLVMAddModuleFlag(
		m.ptr(),
		C.LLVMModuleFlagBehavior(abi.ModuleFlagBehaviors.Encode(behavior)),
		ckey, n,
		val.ptr(),
	)
}

// ModuleFlag returns the value of the module flag named key.
func (m *Module) ModuleFlag(key string) (Metadata, bool) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	ckey, n := cstr(sc, key)
	if md := C.LLVMGetModuleFlag(m.ptr(), ckey, n); md != nil {
		return metaBase{h: metadataHandle(md)}, true
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// AddGlobal adds a new external global variable of type typ to the module.
func (m *Module) AddGlobal(typ Type, name string) GlobalVariable {
	sc := nativebuf.NewScope()
	defer sc.Release()

	return GlobalVariable{GlobalValue{wrapValue(C.LLVMAddGlobal(m.ptr(), typ.ptr(), cname(sc, name)))}}
}

// AddConstantGlobal adds a private, unnamed_addr constant global initialized
// to init.  It is used for string literals and other read-only data.
func (m *Module) AddConstantGlobal(name string, init Constant) GlobalVariable {
	gv := m.AddGlobal(init.Type(), name)
	gv.SetInitializer(init)
	gv.SetGlobalConstant(true)
	gv.SetLinkage(enum.LinkagePrivate)
	gv.SetUnnamedAddr(abi.GlobalUnnamedAddr)
	return gv
}

// GetGlobal returns the global variable named name.
func (m *Module) GetGlobal(name string) (GlobalVariable, bool) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	if gv := C.LLVMGetNamedGlobal(m.ptr(), cname(sc, name)); gv != nil {
		return GlobalVariable{GlobalValue{wrapValue(gv)}}, true
	}

	return GlobalVariable{}, false
}

// -----------------------------------------------------------------------------

// AddFunction adds a new function to the module.  If a function of the same
// name and type already exists, for instance because it was referenced by
// Callee before being defined, that function is returned instead.  A function
// of the same name but another type panics with a symbol conflict error.
func (m *Module) AddFunction(name string, funcType FunctionType) Function {
	if fn, exists := m.GetFunction(name); exists {
		if !SameType(fn.FuncType(), funcType) {
			errs.Fail(errs.SymbolConflict("add function", name))
		}

		return fn
	}

	sc := nativebuf.NewScope()
	defer sc.Release()

	return Function{GlobalValue{wrapValue(C.LLVMAddFunction(m.ptr(), cname(sc, name), funcType.ptr()))}}
}

// GetFunction returns the declared function corresponding to name.
func (m *Module) GetFunction(name string) (fn Function, exists bool) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	if fnPtr := C.LLVMGetNamedFunction(m.ptr(), cname(sc, name)); fnPtr != nil {
		return Function{GlobalValue{wrapValue(fnPtr)}}, true
	}

	return Function{}, false
}

// Callee returns the function name to be used as a call target.  If the
// function does not exist yet, it is declared with funcType and recorded as a
// forward reference: Verify fails until the function is either given a body or
// marked external.
func (m *Module) Callee(name string, funcType FunctionType) Function {
	if fn, exists := m.GetFunction(name); exists {
		return fn
	}

	fn := m.AddFunction(name, funcType)
	m.pending[name] = fn
	return fn
}

// MarkExternal states that the function name is intentionally only declared
// in this module and is defined elsewhere.
func (m *Module) MarkExternal(name string) {
	m.external[name] = struct{}{}
}

// DeclareExternal declares a function defined outside of the module.
func (m *Module) DeclareExternal(name string, funcType FunctionType) Function {
	fn := m.AddFunction(name, funcType)
	m.MarkExternal(name)
	return fn
}

// Unresolved returns the sorted names of forward referenced functions which
// have neither a body nor an external mark.
func (m *Module) Unresolved() []string {
	var names []string
	for name, fn := range m.pending {
		if !m.resolved(name, fn) {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}

func (m *Module) resolved(name string, fn Function) bool {
	_, ok := m.external[name]
	return ok || fn.NumBlocks() > 0
}

// prunePending forgets the forward references resolved so far.
func (m *Module) prunePending() {
	for name, fn := range m.pending {
		if m.resolved(name, fn) {
			delete(m.pending, name)
		}
	}
}

// GetIntrinsic returns the declaration of the intrinsic called name overloaded
// on overloadTypes.
func (m *Module) GetIntrinsic(name string, overloadTypes ...Type) (fn Function, exists bool) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	id := C.LLVMLookupIntrinsicID(cname, n)
	if id == 0 {
		return Function{}, false
	}

	types, count := typeArray(sc, overloadTypes)
	decl := C.LLVMGetIntrinsicDeclaration(m.ptr(), id, types, C.size_t(count))
	return Function{GlobalValue{wrapValue(decl)}}, true
}

// Functions returns an iterator of the functions of the module.
func (m *Module) Functions() Iterator[Function] {
	mod := m.ptr()
	return &linkedIter[C.LLVMValueRef, Function]{
		first: func() C.LLVMValueRef { return C.LLVMGetFirstFunction(mod) },
		next:  func(fn C.LLVMValueRef) C.LLVMValueRef { return C.LLVMGetNextFunction(fn) },
		wrap:  func(fn C.LLVMValueRef) Function { return Function{GlobalValue{wrapValue(fn)}} },
	}
}

// Globals returns an iterator of the global variables of the module.
func (m *Module) Globals() Iterator[GlobalVariable] {
	mod := m.ptr()
	return &linkedIter[C.LLVMValueRef, GlobalVariable]{
		first: func() C.LLVMValueRef { return C.LLVMGetFirstGlobal(mod) },
		next:  func(gv C.LLVMValueRef) C.LLVMValueRef { return C.LLVMGetNextGlobal(gv) },
		wrap:  func(gv C.LLVMValueRef) GlobalVariable { return GlobalVariable{GlobalValue{wrapValue(gv)}} },
	}
}

// -----------------------------------------------------------------------------

// Verify verifies that the module is correct/well-formed.  Unresolved forward
// references are reported ahead of the diagnostics of the LLVM verifier; the
// resolved ones are no longer tracked afterwards.
func (m *Module) Verify() error {
	m.prunePending()

	var diag strings.Builder
	for _, name := range m.Unresolved() {
		fmt.Fprintf(&diag, "call to undefined function @%s\n", name)
	}

	var cmsg *C.char
	action := C.LLVMVerifierFailureAction(abi.VerifierFailureActions.Encode(abi.ReturnStatusAction))
	failed := C.LLVMVerifyModule(m.ptr(), action, byref(&cmsg)) == 1
	if msg := takeMessage(cmsg); failed {
		diag.WriteString(msg)
	}

	if diag.Len() > 0 {
		return &errs.VerificationError{Module: m.Name(), Diagnostic: strings.TrimSpace(diag.String())}
	}

	return nil
}

// IsVerificationError returns whether err reports an ill-formed module.
func IsVerificationError(err error) bool {
	return errors.Is(err, errs.ErrVerificationFailed)
}
