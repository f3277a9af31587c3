package llvm

/*
#include "llvm-c/Core.h"
*/
import "C"

import (
	"unsafe"

	"github.com/llir/llvm/ir/enum"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// CursorState is the insertion state of a builder.
type CursorState int

// Enumeration of cursor states.
const (
	Unpositioned CursorState = iota
	PositionedAtEnd
	PositionedBefore
)

func (cs CursorState) String() string {
	switch cs {
	case PositionedAtEnd:
		return "at end"
	case PositionedBefore:
		return "before"
	default:
		return "unpositioned"
	}
}

// Cursor is the insertion point of a builder.  Block is set unless the cursor
// is unpositioned; Before is only set when positioned before an instruction.
type Cursor struct {
	State  CursorState
	Block  BasicBlock
	Before Instruction
}

// Builder represents an LLVM IR builder.  Every Build method panics with a
// not positioned error if the builder has no insertion point.
type Builder struct {
	h   handle.Handle
	ctx *Context

	cursor Cursor
	loc    DILocation
	hasLoc bool
}

// NewBuilder creates a new IR builder in the given context.
func (c *Context) NewBuilder() *Builder {
	b := &Builder{
		h:   handle.MustWrap(handle.Builder, unsafe.Pointer(C.LLVMCreateBuilderInContext(c.ptr()))),
		ctx: c,
	}

	c.takeOwnership(b)
	return b
}

// dispose disposes of the builder.
func (b *Builder) dispose() {
	C.LLVMDisposeBuilder(C.LLVMBuilderRef(b.h.Pointer()))
	b.h = handle.Wrap(handle.Builder, nil)
	b.cursor = Cursor{}
}

// detach clears the insertion point of the builder if it lies in m.
func (b *Builder) detach(m *Module) {
	if b.h.IsNull() || b.cursor.State == Unpositioned {
		return
	}

	fn := C.LLVMGetBasicBlockParent(b.cursor.Block.ptr())
	if fn != nil && unsafe.Pointer(C.LLVMGetGlobalParent(fn)) == m.h.Pointer() {
		C.LLVMClearInsertionPosition(C.LLVMBuilderRef(b.h.Pointer()))
		b.cursor = Cursor{}
	}
}

// Dispose releases the builder before its context is disposed.
func (b *Builder) Dispose() {
	b.ctx.Release(b)
}

// Handle returns the native handle of the builder.
func (b *Builder) Handle() handle.Handle {
	return b.h
}

func (b *Builder) ptr() C.LLVMBuilderRef {
	b.ctx.check("builder")
	return C.LLVMBuilderRef(handle.Require(b.h, handle.Builder).Pointer())
}

// emit returns the builder reference for the emission of op, which requires
// an insertion point.
func (b *Builder) emit(op string) C.LLVMBuilderRef {
	irb := b.ptr()
	if b.cursor.State == Unpositioned {
		errs.Fail(&errs.NotPositionedError{Op: op})
	}

	return irb
}

// build emits a named instruction using fn.
func (b *Builder) build(op, name string, fn func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef) Instruction {
	irb := b.emit(op)

	sc := nativebuf.NewScope()
	defer sc.Release()

	return Instruction{UserValue{wrapValue(fn(irb, cname(sc, name)))}}
}

// -----------------------------------------------------------------------------

// Cursor returns the current insertion point of the builder.
func (b *Builder) Cursor() Cursor {
	return b.cursor
}

// Block returns the current basic block the builder is positioned over.
func (b *Builder) Block() (BasicBlock, bool) {
	return b.cursor.Block, b.cursor.State != Unpositioned
}

// PositionAtEnd moves the builder to the end of bb.
func (b *Builder) PositionAtEnd(bb BasicBlock) {
	C.LLVMPositionBuilderAtEnd(b.ptr(), bb.ptr())
	b.cursor = Cursor{State: PositionedAtEnd, Block: bb}
}

// PositionBefore moves the builder before instr.
func (b *Builder) PositionBefore(instr Instruction) {
	C.LLVMPositionBuilderBefore(b.ptr(), instr.ptr())
	b.cursor = Cursor{State: PositionedBefore, Block: instr.Parent(), Before: instr}
}

// PositionAfter moves the builder after instr.
func (b *Builder) PositionAfter(instr Instruction) {
	if next, ok := instr.Next(); ok {
		b.PositionBefore(next)
	} else {
		b.PositionAtEnd(instr.Parent())
	}
}

// PositionAtStart moves the builder to the start of bb.
func (b *Builder) PositionAtStart(bb BasicBlock) {
	if first, ok := bb.First(); ok {
		b.PositionBefore(first)
	} else {
		b.PositionAtEnd(bb)
	}
}

// ClearPosition removes the insertion point of the builder.
func (b *Builder) ClearPosition() {
	C.LLVMClearInsertionPosition(b.ptr())
	b.cursor = Cursor{}
}

// -----------------------------------------------------------------------------

// SetDebugLocation sets the debug location attached to every instruction
// built from now on.
func (b *Builder) SetDebugLocation(loc DILocation) {
	C.LLVMSetCurrentDebugLocation2(b.ptr(), loc.ptr())
	b.loc, b.hasLoc = loc, true
}

// ClearDebugLocation stops attaching a debug location to new instructions.
func (b *Builder) ClearDebugLocation() {
	C.LLVMSetCurrentDebugLocation2(b.ptr(), nil)
	b.loc, b.hasLoc = DILocation{}, false
}

// DebugLocation returns the current debug location of the builder.
func (b *Builder) DebugLocation() (DILocation, bool) {
	return b.loc, b.hasLoc
}

// -----------------------------------------------------------------------------

// BuildRet builds a `ret` instruction.  Multiple values are returned as an
// aggregate and no values build a `ret void`.
func (b *Builder) BuildRet(values ...Value) Terminator {
	irb := b.emit("ret")

	var ret C.LLVMValueRef
	switch len(values) {
	case 0:
		ret = C.LLVMBuildRetVoid(irb)
	case 1:
		ret = C.LLVMBuildRet(irb, values[0].ptr())
	default:
		sc := nativebuf.NewScope()
		defer sc.Release()

		vals, n := valueArray(sc, values)
		ret = C.LLVMBuildAggregateRet(irb, vals, n)
	}

	return Terminator{Instruction{UserValue{wrapValue(ret)}}}
}

// BuildRetVoid builds a `ret void` instruction.
func (b *Builder) BuildRetVoid() Terminator {
	return b.BuildRet()
}

// BuildBr builds an unconditional `br` instruction.
func (b *Builder) BuildBr(dest BasicBlock) Terminator {
	irb := b.emit("br")
	return Terminator{Instruction{UserValue{wrapValue(C.LLVMBuildBr(irb, dest.ptr()))}}}
}

// BuildCondBr builds a conditional `br` instruction.
func (b *Builder) BuildCondBr(cond Value, thenBlock, elseBlock BasicBlock) Terminator {
	irb := b.emit("condbr")
	return Terminator{Instruction{UserValue{wrapValue(C.LLVMBuildCondBr(irb, cond.ptr(), thenBlock.ptr(), elseBlock.ptr()))}}}
}

// BuildSwitch builds a `switch` instruction.
func (b *Builder) BuildSwitch(v Value, defaultBlock BasicBlock, expectedNumCases int) SwitchInstruction {
	irb := b.emit("switch")
	sw := C.LLVMBuildSwitch(irb, v.ptr(), defaultBlock.ptr(), C.uint(abi.Uint32(expectedNumCases)))
	return SwitchInstruction{Terminator{Instruction{UserValue{wrapValue(sw)}}}}
}

// BuildUnreachable builds an `unreachable` instruction.
func (b *Builder) BuildUnreachable() Terminator {
	irb := b.emit("unreachable")
	return Terminator{Instruction{UserValue{wrapValue(C.LLVMBuildUnreachable(irb))}}}
}

// -----------------------------------------------------------------------------

// BuildBinOp builds the binary operator op.
func (b *Builder) BuildBinOp(op abi.Opcode, lhs, rhs Value, name string) Instruction {
	code := C.LLVMOpcode(abi.Opcodes.Encode(op))
	return b.build(opName(op), name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildBinOp(irb, code, lhs.ptr(), rhs.ptr(), cname)
	})
}

// BuildAdd builds an `add` instruction.
func (b *Builder) BuildAdd(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpAdd, lhs, rhs, name)
}

// BuildNSWAdd builds an `add nsw` instruction.
func (b *Builder) BuildNSWAdd(lhs, rhs Value, name string) Instruction {
	return b.build("add nsw", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildNSWAdd(irb, lhs.ptr(), rhs.ptr(), cname)
	})
}

// BuildNUWAdd builds an `add nuw` instruction.
func (b *Builder) BuildNUWAdd(lhs, rhs Value, name string) Instruction {
	return b.build("add nuw", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildNUWAdd(irb, lhs.ptr(), rhs.ptr(), cname)
	})
}

// BuildFAdd builds an `fadd` instruction.
func (b *Builder) BuildFAdd(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpFAdd, lhs, rhs, name)
}

// BuildSub builds a `sub` instruction.
func (b *Builder) BuildSub(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpSub, lhs, rhs, name)
}

// BuildNSWSub builds a `sub nsw` instruction.
func (b *Builder) BuildNSWSub(lhs, rhs Value, name string) Instruction {
	return b.build("sub nsw", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildNSWSub(irb, lhs.ptr(), rhs.ptr(), cname)
	})
}

// BuildNUWSub builds a `sub nuw` instruction.
func (b *Builder) BuildNUWSub(lhs, rhs Value, name string) Instruction {
	return b.build("sub nuw", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildNUWSub(irb, lhs.ptr(), rhs.ptr(), cname)
	})
}

// BuildFSub builds an `fsub` instruction.
func (b *Builder) BuildFSub(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpFSub, lhs, rhs, name)
}

// BuildMul builds a `mul` instruction.
func (b *Builder) BuildMul(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpMul, lhs, rhs, name)
}

// BuildNSWMul builds a `mul nsw` instruction.
func (b *Builder) BuildNSWMul(lhs, rhs Value, name string) Instruction {
	return b.build("mul nsw", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildNSWMul(irb, lhs.ptr(), rhs.ptr(), cname)
	})
}

// BuildNUWMul builds a `mul nuw` instruction.
func (b *Builder) BuildNUWMul(lhs, rhs Value, name string) Instruction {
	return b.build("mul nuw", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildNUWMul(irb, lhs.ptr(), rhs.ptr(), cname)
	})
}

// BuildFMul builds an `fmul` instruction.
func (b *Builder) BuildFMul(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpFMul, lhs, rhs, name)
}

// BuildUDiv builds a `udiv` instruction.
func (b *Builder) BuildUDiv(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpUDiv, lhs, rhs, name)
}

// BuildSDiv builds an `sdiv` instruction.
func (b *Builder) BuildSDiv(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpSDiv, lhs, rhs, name)
}

// BuildFDiv builds an `fdiv` instruction.
func (b *Builder) BuildFDiv(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpFDiv, lhs, rhs, name)
}

// BuildURem builds a `urem` instruction.
func (b *Builder) BuildURem(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpURem, lhs, rhs, name)
}

// BuildSRem builds an `srem` instruction.
func (b *Builder) BuildSRem(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpSRem, lhs, rhs, name)
}

// BuildFRem builds an `frem` instruction.
func (b *Builder) BuildFRem(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpFRem, lhs, rhs, name)
}

// BuildShl builds a `shl` instruction.
func (b *Builder) BuildShl(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpShl, lhs, rhs, name)
}

// BuildLShr builds an `lshr` instruction.
func (b *Builder) BuildLShr(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpLShr, lhs, rhs, name)
}

// BuildAShr builds an `ashr` instruction.
func (b *Builder) BuildAShr(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpAShr, lhs, rhs, name)
}

// BuildAnd builds an `and` instruction.
func (b *Builder) BuildAnd(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpAnd, lhs, rhs, name)
}

// BuildOr builds an `or` instruction.
func (b *Builder) BuildOr(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpOr, lhs, rhs, name)
}

// BuildXor builds an `xor` instruction.
func (b *Builder) BuildXor(lhs, rhs Value, name string) Instruction {
	return b.BuildBinOp(abi.OpXor, lhs, rhs, name)
}

// BuildNeg builds a `neg` instruction.
func (b *Builder) BuildNeg(v Value, name string) Instruction {
	return b.build("neg", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildNeg(irb, v.ptr(), cname)
	})
}

// BuildFNeg builds an `fneg` instruction.
func (b *Builder) BuildFNeg(v Value, name string) Instruction {
	return b.build("fneg", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildFNeg(irb, v.ptr(), cname)
	})
}

// BuildNot builds a `not` instruction.
func (b *Builder) BuildNot(v Value, name string) Instruction {
	return b.build("not", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildNot(irb, v.ptr(), cname)
	})
}

// -----------------------------------------------------------------------------

// BuildICmp builds an `icmp` instruction.
func (b *Builder) BuildICmp(pred enum.IPred, lhs, rhs Value, name string) Instruction {
	p := C.LLVMIntPredicate(abi.IntPredicates.Encode(pred))
	return b.build("icmp", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildICmp(irb, p, lhs.ptr(), rhs.ptr(), cname)
	})
}

// BuildFCmp builds an `fcmp` instruction.
func (b *Builder) BuildFCmp(pred enum.FPred, lhs, rhs Value, name string) Instruction {
	p := C.LLVMRealPredicate(abi.RealPredicates.Encode(pred))
	return b.build("fcmp", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildFCmp(irb, p, lhs.ptr(), rhs.ptr(), cname)
	})
}

// BuildIsNull builds a comparison of v against null.
func (b *Builder) BuildIsNull(v Value, name string) Instruction {
	return b.build("isnull", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildIsNull(irb, v.ptr(), cname)
	})
}

// BuildIsNotNull builds a comparison of v against non-null.
func (b *Builder) BuildIsNotNull(v Value, name string) Instruction {
	return b.build("isnotnull", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildIsNotNull(irb, v.ptr(), cname)
	})
}

// -----------------------------------------------------------------------------

// BuildAlloca builds an `alloca` instruction.
func (b *Builder) BuildAlloca(typ Type, name string) AllocaInstruction {
	return AllocaInstruction{b.build("alloca", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildAlloca(irb, typ.ptr(), cname)
	})}
}

// BuildArrayAlloca builds an `alloca` instruction for n elements of typ.
func (b *Builder) BuildArrayAlloca(typ Type, n Value, name string) AllocaInstruction {
	return AllocaInstruction{b.build("alloca", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildArrayAlloca(irb, typ.ptr(), n.ptr(), cname)
	})}
}

// BuildLoad builds a `load` instruction.
func (b *Builder) BuildLoad(loadedType Type, ptr Value, name string) Instruction {
	return b.build("load", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildLoad2(irb, loadedType.ptr(), ptr.ptr(), cname)
	})
}

// BuildStore builds a `store` instruction.
func (b *Builder) BuildStore(val, ptr Value) Instruction {
	irb := b.emit("store")
	return Instruction{UserValue{wrapValue(C.LLVMBuildStore(irb, val.ptr(), ptr.ptr()))}}
}

// BuildGEP builds a `getelementptr` instruction.
func (b *Builder) BuildGEP(pointeeType Type, ptr Value, indices []Value, name string) Instruction {
	return b.build("getelementptr", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		sc := nativebuf.NewScope()
		defer sc.Release()

		ndx, n := valueArray(sc, indices)
		return C.LLVMBuildGEP2(irb, pointeeType.ptr(), ptr.ptr(), ndx, n, cname)
	})
}

// BuildInBoundsGEP builds a `getelementptr inbounds` instruction.
func (b *Builder) BuildInBoundsGEP(pointeeType Type, ptr Value, indices []Value, name string) Instruction {
	return b.build("getelementptr inbounds", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		sc := nativebuf.NewScope()
		defer sc.Release()

		ndx, n := valueArray(sc, indices)
		return C.LLVMBuildInBoundsGEP2(irb, pointeeType.ptr(), ptr.ptr(), ndx, n, cname)
	})
}

// BuildStructGEP builds a `getelementptr` instruction for the struct field at
// ndx.
func (b *Builder) BuildStructGEP(structType StructType, ptr Value, ndx int, name string) Instruction {
	return b.build("getelementptr", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildStructGEP2(irb, structType.ptr(), ptr.ptr(), C.uint(abi.Uint32(ndx)), cname)
	})
}

// BuildMemCpy builds a call to the `memcpy` intrinsic.  Alignments are in
// bytes.
func (b *Builder) BuildMemCpy(dst Value, dstAlign int, src Value, srcAlign int, size Value) Instruction {
	irb := b.emit("memcpy")
	cpy := C.LLVMBuildMemCpy(irb, dst.ptr(), C.uint(abi.Uint32(dstAlign)), src.ptr(), C.uint(abi.Uint32(srcAlign)), size.ptr())
	return Instruction{UserValue{wrapValue(cpy)}}
}

// BuildMemSet builds a call to the `memset` intrinsic.  The alignment is in
// bytes.
func (b *Builder) BuildMemSet(ptr, val, size Value, align int) Instruction {
	irb := b.emit("memset")
	set := C.LLVMBuildMemSet(irb, ptr.ptr(), val.ptr(), size.ptr(), C.uint(abi.Uint32(align)))
	return Instruction{UserValue{wrapValue(set)}}
}

// -----------------------------------------------------------------------------

// BuildCast builds the cast instruction op converting src to dest.
func (b *Builder) BuildCast(op abi.Opcode, src Value, dest Type, name string) Instruction {
	code := C.LLVMOpcode(abi.Opcodes.Encode(op))
	return b.build(opName(op), name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildCast(irb, code, src.ptr(), dest.ptr(), cname)
	})
}

// BuildTrunc builds a `trunc` instruction.
func (b *Builder) BuildTrunc(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpTrunc, src, dest, name)
}

// BuildZExt builds a `zext` instruction.
func (b *Builder) BuildZExt(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpZExt, src, dest, name)
}

// BuildSExt builds a `sext` instruction.
func (b *Builder) BuildSExt(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpSExt, src, dest, name)
}

// BuildFPTrunc builds an `fptrunc` instruction.
func (b *Builder) BuildFPTrunc(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpFPTrunc, src, dest, name)
}

// BuildFPExt builds an `fpext` instruction.
func (b *Builder) BuildFPExt(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpFPExt, src, dest, name)
}

// BuildFPToSI builds an `fptosi` instruction.
func (b *Builder) BuildFPToSI(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpFPToSI, src, dest, name)
}

// BuildFPToUI builds an `fptoui` instruction.
func (b *Builder) BuildFPToUI(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpFPToUI, src, dest, name)
}

// BuildSIToFP builds a `sitofp` instruction.
func (b *Builder) BuildSIToFP(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpSIToFP, src, dest, name)
}

// BuildUIToFP builds a `uitofp` instruction.
func (b *Builder) BuildUIToFP(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpUIToFP, src, dest, name)
}

// BuildPtrToInt builds a `ptrtoint` instruction.
func (b *Builder) BuildPtrToInt(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpPtrToInt, src, dest, name)
}

// BuildIntToPtr builds an `inttoptr` instruction.
func (b *Builder) BuildIntToPtr(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpIntToPtr, src, dest, name)
}

// BuildBitCast builds a `bitcast` instruction.
func (b *Builder) BuildBitCast(src Value, dest Type, name string) Instruction {
	return b.BuildCast(abi.OpBitCast, src, dest, name)
}

// -----------------------------------------------------------------------------

// BuildPhi builds a `phi` instruction.
func (b *Builder) BuildPhi(typ Type, name string) PHINode {
	return PHINode{b.build("phi", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildPhi(irb, typ.ptr(), cname)
	})}
}

// BuildSelect builds a `select` instruction.
func (b *Builder) BuildSelect(cond, thenVal, elseVal Value, name string) Instruction {
	return b.build("select", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildSelect(irb, cond.ptr(), thenVal.ptr(), elseVal.ptr(), cname)
	})
}

// BuildCall builds a `call` instruction.  Calls to functions returning void
// are never named.
func (b *Builder) BuildCall(fnType FunctionType, fn Value, args []Value, name string) CallInstruction {
	if kind, err := fnType.ReturnType().Kind(); err == nil && kind == abi.VoidTypeKind {
		name = ""
	}

	return CallInstruction{b.build("call", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		sc := nativebuf.NewScope()
		defer sc.Release()

		argv, n := valueArray(sc, args)
		return C.LLVMBuildCall2(irb, fnType.ptr(), fn.ptr(), argv, n, cname)
	})}
}

// BuildExtractValue builds an `extractvalue` instruction.
func (b *Builder) BuildExtractValue(agg Value, ndx int, name string) Instruction {
	return b.build("extractvalue", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildExtractValue(irb, agg.ptr(), C.uint(abi.Uint32(ndx)), cname)
	})
}

// BuildInsertValue builds an `insertvalue` instruction.
func (b *Builder) BuildInsertValue(agg, elem Value, ndx int, name string) Instruction {
	return b.build("insertvalue", name, func(irb C.LLVMBuilderRef, cname *C.char) C.LLVMValueRef {
		return C.LLVMBuildInsertValue(irb, agg.ptr(), elem.ptr(), C.uint(abi.Uint32(ndx)), cname)
	})
}

// opName returns the IR mnemonic of op for diagnostics.
func opName(op abi.Opcode) string {
	if name, ok := abi.Opcodes.NameOf(op); ok {
		return name
	}

	return "instruction"
}
