package llvm

/*
#include "llvm-c/Core.h"
#include "llvm-c/Error.h"
#include "llvm-c/Transforms/PassBuilder.h"
*/
import "C"

import (
	"unsafe"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// PassOptions represents the tuning options of the new pass manager.
type PassOptions struct {
	h   handle.Handle
	ctx *Context
}

// NewPassOptions creates a new set of pass options owned by the context.
func (c *Context) NewPassOptions() *PassOptions {
	c.check("NewPassOptions")

	po := &PassOptions{
		h:   handle.MustWrap(handle.PassBuilderOptions, unsafe.Pointer(C.LLVMCreatePassBuilderOptions())),
		ctx: c,
	}

	c.takeOwnership(po)
	return po
}

func (po *PassOptions) dispose() {
	if !po.h.IsNull() {
		C.LLVMDisposePassBuilderOptions(C.LLVMPassBuilderOptionsRef(po.h.Pointer()))
		po.h = handle.Wrap(handle.PassBuilderOptions, nil)
	}
}

// Dispose releases the options before their context is disposed.
func (po *PassOptions) Dispose() {
	po.ctx.Release(po)
}

func (po *PassOptions) Handle() handle.Handle {
	return po.h
}

func (po *PassOptions) ptr() C.LLVMPassBuilderOptionsRef {
	po.ctx.check("PassOptions")
	return C.LLVMPassBuilderOptionsRef(handle.Require(po.h, handle.PassBuilderOptions).Pointer())
}

// VerifyEach makes the pass manager verify the module after every pass.
func (po *PassOptions) VerifyEach(enabled bool) {
	C.LLVMPassBuilderOptionsSetVerifyEach(po.ptr(), llvmBool(enabled))
}

// DebugLogging makes the pass manager log every pass it runs.
func (po *PassOptions) DebugLogging(enabled bool) {
	C.LLVMPassBuilderOptionsSetDebugLogging(po.ptr(), llvmBool(enabled))
}

func (po *PassOptions) LoopInterleaving(enabled bool) {
	C.LLVMPassBuilderOptionsSetLoopInterleaving(po.ptr(), llvmBool(enabled))
}

func (po *PassOptions) LoopVectorization(enabled bool) {
	C.LLVMPassBuilderOptionsSetLoopVectorization(po.ptr(), llvmBool(enabled))
}

func (po *PassOptions) SLPVectorization(enabled bool) {
	C.LLVMPassBuilderOptionsSetSLPVectorization(po.ptr(), llvmBool(enabled))
}

func (po *PassOptions) LoopUnrolling(enabled bool) {
	C.LLVMPassBuilderOptionsSetLoopUnrolling(po.ptr(), llvmBool(enabled))
}

func (po *PassOptions) MergeFunctions(enabled bool) {
	C.LLVMPassBuilderOptionsSetMergeFunctions(po.ptr(), llvmBool(enabled))
}

func (po *PassOptions) CallGraphProfile(enabled bool) {
	C.LLVMPassBuilderOptionsSetCallGraphProfile(po.ptr(), llvmBool(enabled))
}

// InlinerThreshold sets the cost threshold below which calls are inlined.
func (po *PassOptions) InlinerThreshold(threshold int) {
	C.LLVMPassBuilderOptionsSetInlinerThreshold(po.ptr(), C.int(abi.Int32(threshold)))
}

// -----------------------------------------------------------------------------

// takeError extracts the message of a native error and disposes of it.
func takeError(op string, err C.LLVMErrorRef) error {
	if err == nil {
		return nil
	}

	msg := C.LLVMGetErrorMessage(err)
	defer C.LLVMDisposeErrorMessage(msg)

	return &errs.NativeCallError{Op: op, Message: C.GoString(msg)}
}

// RunPasses runs the textual pass pipeline, eg. `default<O2>`, over m.  tm
// may be nil when no target specific passes are needed.  A nil opts runs the
// pipeline with default options.
func RunPasses(m *Module, pipeline string, tm *TargetMachine, opts *PassOptions) error {
	if opts == nil {
		opts = m.ctx.NewPassOptions()
		defer opts.Dispose()
	}

	var ctm C.LLVMTargetMachineRef
	if tm != nil {
		ctm = tm.ptr()
	}

	sc := nativebuf.NewScope()
	defer sc.Release()

	return takeError("run passes `"+pipeline+"`", C.LLVMRunPasses(m.ptr(), cname(sc, pipeline), ctm, opts.ptr()))
}
