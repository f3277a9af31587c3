package llvm

/*
#include <stdlib.h>

#include "llvm-c/Core.h"
#include "llvm-c/Target.h"
#include "llvm-c/TargetMachine.h"
*/
import "C"

import (
	"unsafe"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// HostTriple returns the target triple of the host system.
func HostTriple() string {
	return takeMessage(C.LLVMGetDefaultTargetTriple())
}

// HostCPU returns the CPU name of the host system.
func HostCPU() string {
	return takeMessage(C.LLVMGetHostCPUName())
}

// HostFeatures returns the CPU feature string of the host system.
func HostFeatures() string {
	return takeMessage(C.LLVMGetHostCPUFeatures())
}

// -----------------------------------------------------------------------------

// Target represents an LLVM output target.  Targets are static and never
// disposed.
type Target struct {
	h handle.Handle
}

// TargetFromTriple finds the target corresponding to triple.
func TargetFromTriple(triple string) (Target, error) {
	sc := nativebuf.NewScope()
	defer sc.Release()

	var (
		target C.LLVMTargetRef
		errMsg *C.char
	)
	if C.LLVMGetTargetFromTriple(cname(sc, triple), byref(&target), byref(&errMsg)) != 0 {
		return Target{}, &errs.NativeCallError{Op: "lookup target " + triple, Message: takeMessage(errMsg)}
	}

	return Target{h: handle.MustWrap(handle.Target, unsafe.Pointer(target))}, nil
}

func (t Target) Handle() handle.Handle {
	return t.h
}

func (t Target) ptr() C.LLVMTargetRef {
	return C.LLVMTargetRef(handle.Require(t.h, handle.Target).Pointer())
}

// Name returns the name of the target.
func (t Target) Name() string {
	return C.GoString(C.LLVMGetTargetName(t.ptr()))
}

// Description returns the description of the target.
func (t Target) Description() string {
	return C.GoString(C.LLVMGetTargetDescription(t.ptr()))
}

// HasMachine returns if the target has a machine.
func (t Target) HasMachine() bool {
	return C.LLVMTargetHasTargetMachine(t.ptr()) == 1
}

// HasASMBackend returns if the target has an ASM backend.
func (t Target) HasASMBackend() bool {
	return C.LLVMTargetHasAsmBackend(t.ptr()) == 1
}

// -----------------------------------------------------------------------------

// MachineOptions describes the target machine to create.  An empty Triple,
// CPU or Features selects the host's.
type MachineOptions struct {
	Triple   string
	CPU      string
	Features string

	OptLevel  abi.OptLevel
	Reloc     abi.RelocMode
	CodeModel abi.CodeModel
}

// TargetMachine represents an LLVM target machine: used to generate output.
type TargetMachine struct {
	h   handle.Handle
	ctx *Context
}

// NewTargetMachine creates a new target machine owned by the context.
func (c *Context) NewTargetMachine(opts MachineOptions) (*TargetMachine, error) {
	c.check("NewTargetMachine")

	if opts.Triple == "" {
		opts.Triple = HostTriple()
		if opts.CPU == "" {
			opts.CPU = HostCPU()
		}

		if opts.Features == "" {
			opts.Features = HostFeatures()
		}
	}

	target, err := TargetFromTriple(opts.Triple)
	if err != nil {
		return nil, err
	}

	sc := nativebuf.NewScope()
	defer sc.Release()

	ctm := C.LLVMCreateTargetMachine(
		target.ptr(),
		cname(sc, opts.Triple),
		cname(sc, opts.CPU),
		cname(sc, opts.Features),
		C.LLVMCodeGenOptLevel(abi.OptLevels.Encode(opts.OptLevel)),
		C.LLVMRelocMode(abi.RelocModes.Encode(opts.Reloc)),
		C.LLVMCodeModel(abi.CodeModels.Encode(opts.CodeModel)),
	)
	if ctm == nil {
		return nil, &errs.NativeCallError{Op: "create target machine for " + opts.Triple}
	}

	tm := &TargetMachine{h: handle.MustWrap(handle.TargetMachine, unsafe.Pointer(ctm)), ctx: c}
	c.takeOwnership(tm)
	return tm, nil
}

// dispose disposes of target machine.
func (tm *TargetMachine) dispose() {
	if !tm.h.IsNull() {
		C.LLVMDisposeTargetMachine(C.LLVMTargetMachineRef(tm.h.Pointer()))
		tm.h = handle.Wrap(handle.TargetMachine, nil)
	}
}

// Dispose releases the target machine before its context is disposed.
func (tm *TargetMachine) Dispose() {
	tm.ctx.Release(tm)
}

func (tm *TargetMachine) Handle() handle.Handle {
	return tm.h
}

func (tm *TargetMachine) ptr() C.LLVMTargetMachineRef {
	tm.ctx.check("TargetMachine")
	return C.LLVMTargetMachineRef(handle.Require(tm.h, handle.TargetMachine).Pointer())
}

// Target returns the target associated with the target machine.
func (tm *TargetMachine) Target() Target {
	return Target{h: handle.MustWrap(handle.Target, unsafe.Pointer(C.LLVMGetTargetMachineTarget(tm.ptr())))}
}

// Triple returns the target triple of the target machine.
func (tm *TargetMachine) Triple() string {
	return takeMessage(C.LLVMGetTargetMachineTriple(tm.ptr()))
}

// CPU returns the CPU of the target machine.
func (tm *TargetMachine) CPU() string {
	return takeMessage(C.LLVMGetTargetMachineCPU(tm.ptr()))
}

// Features returns the feature string of the target machine.
func (tm *TargetMachine) Features() string {
	return takeMessage(C.LLVMGetTargetMachineFeatureString(tm.ptr()))
}

// SetASMVerbosity sets the ASM verbosity of the target machine.
func (tm *TargetMachine) SetASMVerbosity(verbose bool) {
	C.LLVMSetTargetMachineAsmVerbosity(tm.ptr(), llvmBool(verbose))
}

// DataLayout creates the target data layout of the target machine.  The
// layout is owned by the machine's context.
func (tm *TargetMachine) DataLayout() *TargetData {
	td := &TargetData{
		h:   handle.MustWrap(handle.TargetData, unsafe.Pointer(C.LLVMCreateTargetDataLayout(tm.ptr()))),
		ctx: tm.ctx,
	}

	tm.ctx.takeOwnership(td)
	return td
}

// EmitToFile compiles m to fileType and writes it to path.
func (tm *TargetMachine) EmitToFile(m *Module, path string, fileType abi.FileType) error {
	sc := nativebuf.NewScope()
	defer sc.Release()

	// LLVM takes the file name as a mutable string.
	cpath := cname(sc, path)

	var errMsg *C.char
	if C.LLVMTargetMachineEmitToFile(tm.ptr(), m.ptr(), cpath, C.LLVMCodeGenFileType(abi.FileTypes.Encode(fileType)), byref(&errMsg)) != 0 {
		return &errs.NativeCallError{Op: "emit " + path, Message: takeMessage(errMsg)}
	}

	return nil
}

// EmitToMemory compiles m to fileType and returns the output.
func (tm *TargetMachine) EmitToMemory(m *Module, fileType abi.FileType) ([]byte, error) {
	var (
		errMsg *C.char
		buf    C.LLVMMemoryBufferRef
	)
	if C.LLVMTargetMachineEmitToMemoryBuffer(tm.ptr(), m.ptr(), C.LLVMCodeGenFileType(abi.FileTypes.Encode(fileType)), byref(&errMsg), byref(&buf)) != 0 {
		return nil, &errs.NativeCallError{Op: "emit " + m.Name(), Message: takeMessage(errMsg)}
	}
	defer C.LLVMDisposeMemoryBuffer(buf)

	return bufferBytes(buf), nil
}

// SetTarget sets the triple and data layout of the module to those of tm.
func (m *Module) SetTarget(tm *TargetMachine) {
	m.SetTargetTriple(tm.Triple())

	td := tm.DataLayout()
	defer td.Dispose()

	m.SetDataLayout(td)
}

// -----------------------------------------------------------------------------

// TargetData represents an LLVM target data layout.
type TargetData struct {
	h   handle.Handle
	ctx *Context
}

// NewTargetData creates a new target data from the data layout string layout.
func (c *Context) NewTargetData(layout string) *TargetData {
	c.check("NewTargetData")

	sc := nativebuf.NewScope()
	defer sc.Release()

	td := &TargetData{
		h:   handle.MustWrap(handle.TargetData, unsafe.Pointer(C.LLVMCreateTargetData(cname(sc, layout)))),
		ctx: c,
	}

	c.takeOwnership(td)
	return td
}

// dispose disposes of the target data.
func (td *TargetData) dispose() {
	if !td.h.IsNull() {
		C.LLVMDisposeTargetData(C.LLVMTargetDataRef(td.h.Pointer()))
		td.h = handle.Wrap(handle.TargetData, nil)
	}
}

// Dispose releases the target data before its context is disposed.
func (td *TargetData) Dispose() {
	td.ctx.Release(td)
}

func (td *TargetData) Handle() handle.Handle {
	return td.h
}

func (td *TargetData) ptr() C.LLVMTargetDataRef {
	td.ctx.check("TargetData")
	return C.LLVMTargetDataRef(handle.Require(td.h, handle.TargetData).Pointer())
}

// String returns the data layout string.
func (td *TargetData) String() string {
	return takeMessage(C.LLVMCopyStringRepOfTargetData(td.ptr()))
}

// PointerSize returns the pointer size in bytes.
func (td *TargetData) PointerSize() int {
	return abi.Int(uint32(C.LLVMPointerSize(td.ptr())))
}

// IntPtrType returns the integer type with the size of a pointer on td.
func (c *Context) IntPtrType(td *TargetData) IntegerType {
	return IntegerType{typeBase{typeHandle(C.LLVMIntPtrTypeInContext(c.ptr(), td.ptr()))}}
}

// SizeOf returns the ABI size of typ in bytes: the offset between successive
// objects of typ, including alignment padding.
func (td *TargetData) SizeOf(typ Type) uint64 {
	return uint64(C.LLVMABISizeOfType(td.ptr(), typ.ptr()))
}

// BitSizeOf returns the size of typ in bits.
func (td *TargetData) BitSizeOf(typ Type) uint64 {
	return uint64(C.LLVMSizeOfTypeInBits(td.ptr(), typ.ptr()))
}

// StoreSizeOf returns the maximum number of bytes a store of typ may
// overwrite.
func (td *TargetData) StoreSizeOf(typ Type) uint64 {
	return uint64(C.LLVMStoreSizeOfType(td.ptr(), typ.ptr()))
}

// ABIAlignmentOf returns the minimum ABI-required alignment of typ.
func (td *TargetData) ABIAlignmentOf(typ Type) int {
	return abi.Int(uint32(C.LLVMABIAlignmentOfType(td.ptr(), typ.ptr())))
}

// PreferredAlignmentOf returns the preferred alignment of typ.
func (td *TargetData) PreferredAlignmentOf(typ Type) int {
	return abi.Int(uint32(C.LLVMPreferredAlignmentOfType(td.ptr(), typ.ptr())))
}

// OffsetOfElement returns the byte offset of field ndx of st.
func (td *TargetData) OffsetOfElement(st StructType, ndx int) uint64 {
	return uint64(C.LLVMOffsetOfElement(td.ptr(), st.ptr(), C.uint(abi.Uint32(ndx))))
}
