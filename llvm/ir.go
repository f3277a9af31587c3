package llvm

/*
#include "llvm-c/Core.h"
#include "llvm-c/DebugInfo.h"
*/
import "C"

import (
	"github.com/llir/llvm/ir/enum"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/handle"
	"github.com/emerge-lang/compiler/nativebuf"
)

// Function represents an LLVM function.
type Function struct {
	GlobalValue
}

// FuncType returns the signature of the function.
func (f Function) FuncType() FunctionType {
	return FunctionType{typeBase{typeHandle(C.LLVMGlobalGetValueType(f.ptr()))}}
}

// NumParams returns the number of parameters of the function.
func (f Function) NumParams() int {
	return abi.Int(uint32(C.LLVMCountParams(f.ptr())))
}

// Param returns the function parameter at index ndx.
func (f Function) Param(ndx int) FuncParam {
	return FuncParam{
		valueBase: wrapValue(C.LLVMGetParam(f.ptr(), C.uint(abi.Uint32(ndx)))),
		fn:        f,
		ndx:       ndx,
	}
}

// Params returns all the parameters of the function.
func (f Function) Params() []FuncParam {
	params := make([]FuncParam, f.NumParams())
	for i := range params {
		params[i] = f.Param(i)
	}

	return params
}

// CallConv returns the calling convention of the function.
func (f Function) CallConv() (enum.CallingConv, error) {
	return abi.CallConvs.Decode(int32(C.LLVMGetFunctionCallConv(f.ptr())))
}

// SetCallConv sets the calling convention of the function to cc.
func (f Function) SetCallConv(cc enum.CallingConv) {
	C.LLVMSetFunctionCallConv(f.ptr(), C.uint(abi.CallConvs.Encode(cc)))
}

// IntrinsicID returns the intrinsic ID of the function if it is intrinsic.
func (f Function) IntrinsicID() (id uint, isIntrinsic bool) {
	id = uint(C.LLVMGetIntrinsicID(f.ptr()))
	return id, id != 0
}

// Subprogram returns the debug subprogram attached to the function.
func (f Function) Subprogram() (DISubprogram, bool) {
	if md := C.LLVMGetSubprogram(f.ptr()); md != nil {
		return DISubprogram{metaBase{metadataHandle(md)}}, true
	}

	return DISubprogram{}, false
}

// SetSubprogram attaches a debug subprogram to the function.  It is required
// before any instruction of the function carries a debug location.
func (f Function) SetSubprogram(sp DISubprogram) {
	C.LLVMSetSubprogram(f.ptr(), sp.ptr())
}

// -----------------------------------------------------------------------------

// NumBlocks returns the number of basic blocks in the function body.
func (f Function) NumBlocks() int {
	return abi.Int(uint32(C.LLVMCountBasicBlocks(f.ptr())))
}

// EntryBlock returns the first basic block of the function body.
func (f Function) EntryBlock() (bb BasicBlock, exists bool) {
	if f.NumBlocks() == 0 {
		return BasicBlock{}, false
	}

	return BasicBlock{blockHandle(C.LLVMGetEntryBasicBlock(f.ptr()))}, true
}

// LastBlock returns the last basic block of the function body.
func (f Function) LastBlock() (bb BasicBlock, exists bool) {
	if last := C.LLVMGetLastBasicBlock(f.ptr()); last != nil {
		return BasicBlock{blockHandle(last)}, true
	}

	return BasicBlock{}, false
}

// Blocks returns an iterator over the blocks of the function body.
func (f Function) Blocks() Iterator[BasicBlock] {
	fn := f.ptr()
	return &linkedIter[C.LLVMBasicBlockRef, BasicBlock]{
		first: func() C.LLVMBasicBlockRef { return C.LLVMGetFirstBasicBlock(fn) },
		next:  func(bb C.LLVMBasicBlockRef) C.LLVMBasicBlockRef { return C.LLVMGetNextBasicBlock(bb) },
		wrap:  func(bb C.LLVMBasicBlockRef) BasicBlock { return BasicBlock{blockHandle(bb)} },
	}
}

// AppendBlock appends a new block named name to the function.
func (f Function) AppendBlock(name string) BasicBlock {
	sc := nativebuf.NewScope()
	defer sc.Release()

	ctx := C.LLVMGetTypeContext(C.LLVMTypeOf(f.ptr()))
	return BasicBlock{blockHandle(C.LLVMAppendBasicBlockInContext(ctx, f.ptr(), cname(sc, name)))}
}

// InsertBlock inserts a new block named name into the function before ibb.
func (f Function) InsertBlock(ibb BasicBlock, name string) BasicBlock {
	sc := nativebuf.NewScope()
	defer sc.Release()

	ctx := C.LLVMGetTypeContext(C.LLVMTypeOf(f.ptr()))
	return BasicBlock{blockHandle(C.LLVMInsertBasicBlockInContext(ctx, ibb.ptr(), cname(sc, name)))}
}

// -----------------------------------------------------------------------------

// FuncParam represents a function parameter.
type FuncParam struct {
	valueBase

	fn  Function
	ndx int
}

// Index returns the position of the parameter in the signature.
func (fp FuncParam) Index() int {
	return fp.ndx
}

// Parent returns the function the parameter belongs to.
func (fp FuncParam) Parent() Function {
	return fp.fn
}

// -----------------------------------------------------------------------------

// BasicBlock represents an LLVM basic block.
type BasicBlock struct {
	h handle.Handle
}

// Handle returns the native handle of the block.
func (bb BasicBlock) Handle() handle.Handle {
	return bb.h
}

func (bb BasicBlock) ptr() C.LLVMBasicBlockRef {
	return C.LLVMBasicBlockRef(handle.Require(bb.h, handle.BasicBlock).Pointer())
}

// Name returns the name of the basic block.
func (bb BasicBlock) Name() string {
	return C.GoString(C.LLVMGetBasicBlockName(bb.ptr()))
}

// Parent returns the function containing the block.
func (bb BasicBlock) Parent() Function {
	return Function{GlobalValue{wrapValue(C.LLVMGetBasicBlockParent(bb.ptr()))}}
}

// AsValue returns the block as a label value.
func (bb BasicBlock) AsValue() Value {
	return wrapValue(C.LLVMBasicBlockAsValue(bb.ptr()))
}

// Terminator returns the terminator of the block if it has one.
func (bb BasicBlock) Terminator() (Terminator, bool) {
	if term := C.LLVMGetBasicBlockTerminator(bb.ptr()); term != nil {
		return Terminator{Instruction{UserValue{wrapValue(term)}}}, true
	}

	return Terminator{}, false
}

// Instructions returns an iterator over the instructions of a basic block.
func (bb BasicBlock) Instructions() Iterator[Instruction] {
	block := bb.ptr()
	return &linkedIter[C.LLVMValueRef, Instruction]{
		first: func() C.LLVMValueRef { return C.LLVMGetFirstInstruction(block) },
		next:  func(instr C.LLVMValueRef) C.LLVMValueRef { return C.LLVMGetNextInstruction(instr) },
		wrap:  func(instr C.LLVMValueRef) Instruction { return Instruction{UserValue{wrapValue(instr)}} },
	}
}

// First returns the first instruction in a basic block.
func (bb BasicBlock) First() (instr Instruction, exists bool) {
	if first := C.LLVMGetFirstInstruction(bb.ptr()); first != nil {
		return Instruction{UserValue{wrapValue(first)}}, true
	}

	return Instruction{}, false
}

// Last returns the last instruction in a basic block.
func (bb BasicBlock) Last() (instr Instruction, exists bool) {
	if last := C.LLVMGetLastInstruction(bb.ptr()); last != nil {
		return Instruction{UserValue{wrapValue(last)}}, true
	}

	return Instruction{}, false
}

// -----------------------------------------------------------------------------

// Instruction represents an LLVM instruction.
type Instruction struct {
	UserValue
}

// Opcode returns the LLVM opcode of the instruction.
func (instr Instruction) Opcode() (abi.Opcode, error) {
	return abi.Opcodes.Decode(int32(C.LLVMGetInstructionOpcode(instr.ptr())))
}

// IsTerminator returns whether the instruction is a terminator.
func (instr Instruction) IsTerminator() bool {
	return C.LLVMIsATerminatorInst(instr.ptr()) != nil
}

// Parent returns the parent block of the instruction.
func (instr Instruction) Parent() BasicBlock {
	return BasicBlock{blockHandle(C.LLVMGetInstructionParent(instr.ptr()))}
}

// Next returns the instruction following this one in its block.
func (instr Instruction) Next() (Instruction, bool) {
	if next := C.LLVMGetNextInstruction(instr.ptr()); next != nil {
		return Instruction{UserValue{wrapValue(next)}}, true
	}

	return Instruction{}, false
}

// DebugLocation returns the debug location attached to the instruction.
func (instr Instruction) DebugLocation() (DILocation, bool) {
	if loc := C.LLVMInstructionGetDebugLoc(instr.ptr()); loc != nil {
		return DILocation{metaBase{metadataHandle(loc)}}, true
	}

	return DILocation{}, false
}

// EraseFromParent removes the instruction from its block and deletes it.
func (instr Instruction) EraseFromParent() {
	C.LLVMInstructionEraseFromParent(instr.ptr())
}

// -----------------------------------------------------------------------------

// CallInstruction represents a `call` instruction.
type CallInstruction struct {
	Instruction
}

// NumArgs returns the number of arguments passed to the call instruction.
func (ci CallInstruction) NumArgs() int {
	return abi.Int(uint32(C.LLVMGetNumArgOperands(ci.ptr())))
}

// CallConv returns the calling convention of the `call` instruction.
func (ci CallInstruction) CallConv() (enum.CallingConv, error) {
	return abi.CallConvs.Decode(int32(C.LLVMGetInstructionCallConv(ci.ptr())))
}

// SetCallConv sets the calling convention of the `call` instruction to cc.
func (ci CallInstruction) SetCallConv(cc enum.CallingConv) {
	C.LLVMSetInstructionCallConv(ci.ptr(), C.uint(abi.CallConvs.Encode(cc)))
}

// IsTailCall returns whether the `call` instruction is a tail call.
func (ci CallInstruction) IsTailCall() bool {
	return C.LLVMIsTailCall(ci.ptr()) == 1
}

// SetTailCall sets whether the `call` instruction is a tail call.
func (ci CallInstruction) SetTailCall(tc bool) {
	C.LLVMSetTailCall(ci.ptr(), llvmBool(tc))
}

// -----------------------------------------------------------------------------

// Terminator represents a terminator instruction.
type Terminator struct {
	Instruction
}

// NumSuccessors returns the number of successors of this terminator.
func (term Terminator) NumSuccessors() int {
	return abi.Int(uint32(C.LLVMGetNumSuccessors(term.ptr())))
}

// Successor gets the successor of this terminator at ndx.
func (term Terminator) Successor(ndx int) BasicBlock {
	return BasicBlock{blockHandle(C.LLVMGetSuccessor(term.ptr(), C.uint(abi.Uint32(ndx))))}
}

// SetSuccessor sets the successor of this terminator at ndx.
func (term Terminator) SetSuccessor(ndx int, bb BasicBlock) {
	C.LLVMSetSuccessor(term.ptr(), C.uint(abi.Uint32(ndx)), bb.ptr())
}

// SwitchInstruction represents an LLVM `switch` instruction.
type SwitchInstruction struct {
	Terminator
}

// AddCase adds a new case to the `switch` instruction.
func (si SwitchInstruction) AddCase(caseVal Constant, caseBlock BasicBlock) {
	C.LLVMAddCase(si.ptr(), caseVal.ptr(), caseBlock.ptr())
}

// Default returns the default case block of the `switch` instruction.
func (si SwitchInstruction) Default() BasicBlock {
	return BasicBlock{blockHandle(C.LLVMGetSwitchDefaultDest(si.ptr()))}
}

// -----------------------------------------------------------------------------

// AllocaInstruction represents an LLVM `alloca` instruction.
type AllocaInstruction struct {
	Instruction
}

// AllocatedType returns the allocated type of the instruction.
func (ai AllocaInstruction) AllocatedType() Type {
	return wrapType(C.LLVMGetAllocatedType(ai.ptr()))
}

// SetAlignment sets the alignment of the allocation in bytes.
func (ai AllocaInstruction) SetAlignment(bytes int) {
	C.LLVMSetAlignment(ai.ptr(), C.uint(abi.Uint32(bytes)))
}

// PHINode represents an LLVM `phi` instruction.
type PHINode struct {
	Instruction
}

// AddIncoming adds an incoming value of the node flowing from block.
func (phi PHINode) AddIncoming(val Value, block BasicBlock) {
	v, bb := val.ptr(), block.ptr()
	C.LLVMAddIncoming(phi.ptr(), byref(&v), byref(&bb), 1)
}

// NumIncoming returns the number of incoming values of the node.
func (phi PHINode) NumIncoming() int {
	return abi.Int(uint32(C.LLVMCountIncoming(phi.ptr())))
}
