package llvm

/*
#include "llvm-c/Core.h"
#include "llvm-c/DebugInfo.h"
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

// DefaultDwarfVersion is the DWARF version recorded in modules with debug info
// unless another one is requested.
const DefaultDwarfVersion = 4

// DIScope is a debug descriptor which can contain other descriptors.
type DIScope interface {
	Metadata

	isScope()
}

// DIFile is a debug descriptor for a source file.
type DIFile struct {
	metaBase
}

func (DIFile) isScope() {}

// FileName returns the name of the file.
func (dif DIFile) FileName() string {
	var strlen C.uint
	str := C.LLVMDIFileGetFilename(dif.ptr(), byref(&strlen))
	return goStringN(str, uint64(strlen))
}

// Directory returns the directory of the file.
func (dif DIFile) Directory() string {
	var strlen C.uint
	str := C.LLVMDIFileGetDirectory(dif.ptr(), byref(&strlen))
	return goStringN(str, uint64(strlen))
}

// DICompileUnit is a debug descriptor for a compile unit.
type DICompileUnit struct {
	metaBase
}

func (DICompileUnit) isScope() {}

// DISubprogram is a debug descriptor for a function.
type DISubprogram struct {
	metaBase
}

func (DISubprogram) isScope() {}

// DILexicalBlock is a debug descriptor for a lexical block.
type DILexicalBlock struct {
	metaBase
}

func (DILexicalBlock) isScope() {}

// DIType is a debug descriptor for a type.  The zero DIType stands for
// `void` where a type list allows it.
type DIType struct {
	metaBase

	// ph is the placeholder the type was obtained from, if any.
	ph *Placeholder
}

func (DIType) isScope() {}

// checkLive panics with a stale placeholder error if dit was obtained from a
// placeholder which has since been replaced.
func (dit DIType) checkLive(op string) {
	if dit.ph != nil && dit.ph.retired {
		errs.Fail(errs.StalePlaceholder(op))
	}
}

func (dit DIType) ptr() C.LLVMMetadataRef {
	dit.checkLive("debug type")
	return dit.metaBase.ptr()
}

func (dit DIType) Kind() (abi.MetadataKind, error) {
	return abi.MetadataKinds.Decode(int32(C.LLVMGetMetadataKind(dit.ptr())))
}

func (dit DIType) AsValue(c *Context) Value {
	return wrapValue(C.LLVMMetadataAsValue(c.ptr(), dit.ptr()))
}

// Name returns the name of the type.
func (dit DIType) Name() string {
	var strlen C.size_t
	str := C.LLVMDITypeGetName(dit.ptr(), byref(&strlen))
	return goStringN(str, uint64(strlen))
}

// SizeInBits returns the size of the type in bits.
func (dit DIType) SizeInBits() uint64 {
	return uint64(C.LLVMDITypeGetSizeInBits(dit.ptr()))
}

// Flags returns the flags of the type.
func (dit DIType) Flags() (abi.DIFlags, error) {
	return abi.DecodeFlags(int32(C.LLVMDITypeGetFlags(dit.ptr())))
}

// DISubrange is a debug descriptor for an array dimension.
type DISubrange struct {
	metaBase
}

// DIVariable is a debug descriptor for a local variable or parameter.
type DIVariable struct {
	metaBase
}

// Line returns the line the variable is declared on.
func (div DIVariable) Line() int {
	return abi.Int(uint32(C.LLVMDIVariableGetLine(div.ptr())))
}

// DIExpression is a DWARF address expression.
type DIExpression struct {
	metaBase
}

// DILocation is a debug source location.
type DILocation struct {
	metaBase
}

// DILocation creates a new debug location in the context.  inlinedAt may be
// nil.
func (c *Context) DILocation(line, col int, scope DIScope, inlinedAt *DILocation) DILocation {
	var inlined C.LLVMMetadataRef
	if inlinedAt != nil {
		inlined = inlinedAt.ptr()
	}

	loc := C.LLVMDIBuilderCreateDebugLocation(c.ptr(), C.uint(abi.Uint32(line)), C.uint(abi.Uint32(col)), mdRef(scope), inlined)
	return DILocation{metaBase{metadataHandle(loc)}}
}

// Line returns the line of the location.
func (dil DILocation) Line() int {
	return abi.Int(uint32(C.LLVMDILocationGetLine(dil.ptr())))
}

// Column returns the column of the location.
func (dil DILocation) Column() int {
	return abi.Int(uint32(C.LLVMDILocationGetColumn(dil.ptr())))
}

// Scope returns the scope of the location.
func (dil DILocation) Scope() Metadata {
	return metaBase{metadataHandle(C.LLVMDILocationGetScope(dil.ptr()))}
}

// -----------------------------------------------------------------------------

// DIBuilder represents an LLVM debug info builder for a single module.
type DIBuilder struct {
	h   handle.Handle
	mod *Module

	finalized bool
}

// NewDIBuilder creates a new DI builder for the module and records the debug
// info and DWARF versions as module flags.  A dwarfVersion of zero selects
// DefaultDwarfVersion.
func (m *Module) NewDIBuilder(dwarfVersion int) *DIBuilder {
	if dwarfVersion == 0 {
		dwarfVersion = DefaultDwarfVersion
	}

	i32 := m.ctx.Int32Type()
	m.AddModuleFlag(abi.FlagWarning, "Debug Info Version", ConstInt(i32, uint64(C.LLVMDebugMetadataVersion()), false).AsMetadata())
	m.AddModuleFlag(abi.FlagWarning, "Dwarf Version", ConstInt(i32, abi.Uint64(dwarfVersion), false).AsMetadata())

	dib := &DIBuilder{
		h:   handle.MustWrap(handle.DIBuilder, unsafe.Pointer(C.LLVMCreateDIBuilder(m.ptr()))),
		mod: m,
	}

	m.ctx.takeOwnership(dib)
	m.dibuilders = append(m.dibuilders, dib)
	return dib
}

// Finalize resolves the debug info generated so far.  It must be called
// before the module is verified or emitted; only the first call has an
// effect.
func (dib *DIBuilder) Finalize() {
	if dib.finalized {
		return
	}

	C.LLVMDIBuilderFinalize(dib.ptr())
	dib.finalized = true
}

// Finalized returns whether Finalize has run.
func (dib *DIBuilder) Finalized() bool {
	return dib.finalized
}

// dispose finalizes the DI builder if needed and disposes of it.
func (dib *DIBuilder) dispose() {
	if !dib.h.IsNull() {
		dib.Finalize()
		C.LLVMDisposeDIBuilder(C.LLVMDIBuilderRef(dib.h.Pointer()))
		dib.h = handle.Wrap(handle.DIBuilder, nil)
	}
}

// Dispose releases the DI builder before its context is disposed.
func (dib *DIBuilder) Dispose() {
	dib.mod.ctx.Release(dib)
}

func (dib *DIBuilder) ptr() C.LLVMDIBuilderRef {
	dib.mod.ptr()
	return C.LLVMDIBuilderRef(handle.Require(dib.h, handle.DIBuilder).Pointer())
}

// create returns the builder reference for the creation of a new node after
// checking that none of the operands refers to a retired placeholder.
func (dib *DIBuilder) create(op string, operands ...Metadata) C.LLVMDIBuilderRef {
	if dib.finalized {
		errs.Fail(errs.InvalidHandle(op+" after finalize", handle.DIBuilder.String()))
	}

	for _, md := range operands {
		if dit, ok := md.(DIType); ok {
			dit.checkLive(op)
		}
	}

	return dib.ptr()
}

func typeOperands(ts []DIType) []Metadata {
	mds := make([]Metadata, len(ts))
	for i, t := range ts {
		mds[i] = t
	}

	return mds
}

// -----------------------------------------------------------------------------

// File creates a new debug descriptor for a file.
func (dib *DIBuilder) File(fileName, dirName string) DIFile {
	irb := dib.create("file")

	sc := nativebuf.NewScope()
	defer sc.Release()

	fname, nfname := cstr(sc, fileName)
	dname, ndname := cstr(sc, dirName)
	return DIFile{metaBase{metadataHandle(C.LLVMDIBuilderCreateFile(irb, fname, nfname, dname, ndname))}}
}

// CompileUnitOptions represents the additional options used to create a DWARF
// compile unit.  This helps manage the excessive number of extraneous options
// LLVM expects to create a DICompileUnit.
type CompileUnitOptions struct {
	// The identifying string of the compiler which produced this compile unit.
	Producer string

	// Whether the compile unit is optimized.
	Optimized bool

	// The compile flags used to generate this compile unit.
	Flags string

	// The amount of debug information to emit.
	Emission abi.EmissionKind

	// The runtime version (if relevant).
	RuntimeVersion int

	// The name of the split debug file, if one is produced.
	SplitName string

	// The DWO ID if this is a split skeleton compile unit.
	DWOID uint32

	// Whether to emit inline debug info in split units.
	SplitDebugInlining bool

	// Whether to emit extra info for profile collection.
	DebugInfoForProfiling bool

	// The `clang` system root and SDK strings.
	SysRoot, SDK string
}

// CompileUnit creates a new debug descriptor for a compile unit.
func (dib *DIBuilder) CompileUnit(lang abi.SourceLanguage, file DIFile, opts CompileUnitOptions) DICompileUnit {
	irb := dib.create("compile unit", file)

	sc := nativebuf.NewScope()
	defer sc.Release()

	producer, nproducer := cstr(sc, opts.Producer)
	flags, nflags := cstr(sc, opts.Flags)
	split, nsplit := cstr(sc, opts.SplitName)
	sysroot, nsysroot := cstr(sc, opts.SysRoot)
	sdk, nsdk := cstr(sc, opts.SDK)

	cu := C.LLVMDIBuilderCreateCompileUnit(
		irb,
		C.LLVMDWARFSourceLanguage(abi.SourceLanguages.Encode(lang)),
		file.ptr(),
		producer, nproducer,
		llvmBool(opts.Optimized),
		flags, nflags,
		C.uint(abi.Uint32(opts.RuntimeVersion)),
		split, nsplit,
		C.LLVMDWARFEmissionKind(abi.EmissionKinds.Encode(opts.Emission)),
		C.uint(opts.DWOID),
		llvmBool(opts.SplitDebugInlining),
		llvmBool(opts.DebugInfoForProfiling),
		sysroot, nsysroot,
		sdk, nsdk,
	)
	return DICompileUnit{metaBase{metadataHandle(cu)}}
}

// -----------------------------------------------------------------------------

// BasicType creates a new debug descriptor for a scalar type.
func (dib *DIBuilder) BasicType(name string, bits int, encoding enum.DwarfAttEncoding, flags abi.DIFlags) DIType {
	irb := dib.create("basic type")

	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	dit := C.LLVMDIBuilderCreateBasicType(
		irb,
		cname, n,
		C.uint64_t(abi.Uint64(bits)),
		C.LLVMDWARFTypeEncoding(abi.TypeEncodings.Encode(encoding)),
		C.LLVMDIFlags(abi.EncodeFlags(flags)),
	)
	return DIType{metaBase: metaBase{metadataHandle(dit)}}
}

// PointerType creates a new debug descriptor for a pointer to pointee.
func (dib *DIBuilder) PointerType(pointee DIType, bits, align int, name string) DIType {
	irb := dib.create("pointer type", pointee)

	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	dit := C.LLVMDIBuilderCreatePointerType(
		irb,
		mdRef(pointee),
		C.uint64_t(abi.Uint64(bits)),
		C.uint32_t(abi.Uint32(align)),
		0,
		cname, n,
	)
	return DIType{metaBase: metaBase{metadataHandle(dit)}}
}

// StructType creates a new debug descriptor for a struct with the given
// members.
func (dib *DIBuilder) StructType(
	scope DIScope,
	name string,
	file DIFile,
	line, bits, align int,
	flags abi.DIFlags,
	members []DIType,
) DIType {
	irb := dib.create("struct type", append(typeOperands(members), scope, file)...)

	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	elems, nelems := metadataArray(sc, members)
	dit := C.LLVMDIBuilderCreateStructType(
		irb,
		mdRef(scope),
		cname, n,
		file.ptr(),
		C.uint(abi.Uint32(line)),
		C.uint64_t(abi.Uint64(bits)),
		C.uint32_t(abi.Uint32(align)),
		C.LLVMDIFlags(abi.EncodeFlags(flags)),
		nil,
		elems, nelems,
		0,
		nil,
		nil, 0,
	)
	return DIType{metaBase: metaBase{metadataHandle(dit)}}
}

// MemberType creates a new debug descriptor for a struct member.
func (dib *DIBuilder) MemberType(
	scope DIScope,
	name string,
	file DIFile,
	line, bits, align, offsetBits int,
	flags abi.DIFlags,
	typ DIType,
) DIType {
	irb := dib.create("member type", scope, file, typ)

	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	dit := C.LLVMDIBuilderCreateMemberType(
		irb,
		mdRef(scope),
		cname, n,
		file.ptr(),
		C.uint(abi.Uint32(line)),
		C.uint64_t(abi.Uint64(bits)),
		C.uint32_t(abi.Uint32(align)),
		C.uint64_t(abi.Uint64(offsetBits)),
		C.LLVMDIFlags(abi.EncodeFlags(flags)),
		typ.ptr(),
	)
	return DIType{metaBase: metaBase{metadataHandle(dit)}}
}

// Subrange creates a new array dimension descriptor.
func (dib *DIBuilder) Subrange(lowerBound, count int64) DISubrange {
	irb := dib.create("subrange")
	return DISubrange{metaBase{metadataHandle(C.LLVMDIBuilderGetOrCreateSubrange(irb, C.int64_t(lowerBound), C.int64_t(count)))}}
}

// ArrayType creates a new debug descriptor for an array of elem.
func (dib *DIBuilder) ArrayType(bits, align int, elem DIType, subranges []DISubrange) DIType {
	irb := dib.create("array type", elem)

	sc := nativebuf.NewScope()
	defer sc.Release()

	subs, nsubs := metadataArray(sc, subranges)
	dit := C.LLVMDIBuilderCreateArrayType(
		irb,
		C.uint64_t(abi.Uint64(bits)),
		C.uint32_t(abi.Uint32(align)),
		elem.ptr(),
		subs, nsubs,
	)
	return DIType{metaBase: metaBase{metadataHandle(dit)}}
}

// SubroutineType creates a new debug descriptor for a function signature.
// types[0] is the return type; a zero DIType stands for `void`.
func (dib *DIBuilder) SubroutineType(file DIFile, types []DIType, flags abi.DIFlags) DIType {
	irb := dib.create("subroutine type", append(typeOperands(types), file)...)

	sc := nativebuf.NewScope()
	defer sc.Release()

	params, nparams := metadataArray(sc, types)
	dit := C.LLVMDIBuilderCreateSubroutineType(irb, file.ptr(), params, nparams, C.LLVMDIFlags(abi.EncodeFlags(flags)))
	return DIType{metaBase: metaBase{metadataHandle(dit)}}
}

// -----------------------------------------------------------------------------

// Placeholder is a temporary composite type used to build recursive debug
// types.  It is replaced exactly once by its final definition.
type Placeholder struct {
	dib     *DIBuilder
	node    DIType
	retired bool
}

// CompositeOptions holds the optional attributes of a replaceable composite.
type CompositeOptions struct {
	RuntimeLang int
	SizeInBits  int
	AlignInBits int
	Flags       abi.DIFlags
	UniqueID    string
}

// ReplaceableComposite creates a placeholder for a composite type of the
// given DWARF tag which can be referenced before it is defined.
func (dib *DIBuilder) ReplaceableComposite(
	tag enum.DwarfTag,
	name string,
	scope DIScope,
	file DIFile,
	line int,
	opts CompositeOptions,
) *Placeholder {
	irb := dib.create("replaceable composite", scope, file)

	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	uid, nuid := cstr(sc, opts.UniqueID)
	dit := C.LLVMDIBuilderCreateReplaceableCompositeType(
		irb,
		C.uint(abi.CompositeTags.Encode(tag)),
		cname, n,
		mdRef(scope),
		file.ptr(),
		C.uint(abi.Uint32(line)),
		C.uint(abi.Uint32(opts.RuntimeLang)),
		C.uint64_t(abi.Uint64(opts.SizeInBits)),
		C.uint32_t(abi.Uint32(opts.AlignInBits)),
		C.LLVMDIFlags(abi.EncodeFlags(opts.Flags)),
		uid, nuid,
	)

	p := &Placeholder{dib: dib}
	p.node = DIType{metaBase: metaBase{metadataHandle(dit)}, ph: p}
	return p
}

// Type returns the placeholder as a type to be referenced by other nodes.
func (p *Placeholder) Type() DIType {
	if p.retired {
		errs.Fail(errs.StalePlaceholder("placeholder type"))
	}

	return p.node
}

// Retired returns whether the placeholder has been replaced.
func (p *Placeholder) Retired() bool {
	return p.retired
}

// ReplaceAllUses replaces every use of the placeholder by final and deletes
// the placeholder node.  The placeholder may not be used afterwards.
func (dib *DIBuilder) ReplaceAllUses(p *Placeholder, final DIType) {
	if p.retired {
		errs.Fail(errs.StalePlaceholder("replace all uses"))
	}

	dib.create("replace all uses", final)
	C.LLVMMetadataReplaceAllUsesWith(p.node.metaBase.ptr(), final.ptr())
	p.retired = true
}

// -----------------------------------------------------------------------------

// LexicalBlock creates a new debug descriptor for a lexical block.
func (dib *DIBuilder) LexicalBlock(scope DIScope, file DIFile, line, col int) DILexicalBlock {
	irb := dib.create("lexical block", scope, file)

	lb := C.LLVMDIBuilderCreateLexicalBlock(irb, mdRef(scope), file.ptr(), C.uint(abi.Uint32(line)), C.uint(abi.Uint32(col)))
	return DILexicalBlock{metaBase{metadataHandle(lb)}}
}

// FunctionOptions holds the attributes of a function debug descriptor.
type FunctionOptions struct {
	// Whether the function is not visible outside its compile unit.
	LocalToUnit bool

	// Whether the descriptor is for a definition rather than a declaration.
	Definition bool

	// The line the body of the function starts on.
	ScopeLine int

	Flags     abi.DIFlags
	Optimized bool
}

// Function creates a new debug descriptor for a function.
func (dib *DIBuilder) Function(
	scope DIScope,
	name, linkageName string,
	file DIFile,
	line int,
	typ DIType,
	opts FunctionOptions,
) DISubprogram {
	irb := dib.create("function", scope, file, typ)

	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	clinkage, nlinkage := cstr(sc, linkageName)
	sp := C.LLVMDIBuilderCreateFunction(
		irb,
		mdRef(scope),
		cname, n,
		clinkage, nlinkage,
		file.ptr(),
		C.uint(abi.Uint32(line)),
		typ.ptr(),
		llvmBool(opts.LocalToUnit),
		llvmBool(opts.Definition),
		C.uint(abi.Uint32(opts.ScopeLine)),
		C.LLVMDIFlags(abi.EncodeFlags(opts.Flags)),
		llvmBool(opts.Optimized),
	)
	return DISubprogram{metaBase{metadataHandle(sp)}}
}

// ParameterVariable creates a new debug descriptor for a parameter.  argNo
// starts at 1.
func (dib *DIBuilder) ParameterVariable(
	scope DIScope,
	name string,
	argNo int,
	file DIFile,
	line int,
	typ DIType,
	alwaysPreserve bool,
	flags abi.DIFlags,
) DIVariable {
	irb := dib.create("parameter variable", scope, file, typ)

	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	v := C.LLVMDIBuilderCreateParameterVariable(
		irb,
		mdRef(scope),
		cname, n,
		C.uint(abi.Uint32(argNo)),
		file.ptr(),
		C.uint(abi.Uint32(line)),
		typ.ptr(),
		llvmBool(alwaysPreserve),
		C.LLVMDIFlags(abi.EncodeFlags(flags)),
	)
	return DIVariable{metaBase{metadataHandle(v)}}
}

// AutoVariable creates a new debug descriptor for a local variable.
func (dib *DIBuilder) AutoVariable(
	scope DIScope,
	name string,
	file DIFile,
	line int,
	typ DIType,
	alwaysPreserve bool,
	flags abi.DIFlags,
	alignBits int,
) DIVariable {
	irb := dib.create("auto variable", scope, file, typ)

	sc := nativebuf.NewScope()
	defer sc.Release()

	cname, n := cstr(sc, name)
	v := C.LLVMDIBuilderCreateAutoVariable(
		irb,
		mdRef(scope),
		cname, n,
		file.ptr(),
		C.uint(abi.Uint32(line)),
		typ.ptr(),
		llvmBool(alwaysPreserve),
		C.LLVMDIFlags(abi.EncodeFlags(flags)),
		C.uint32_t(abi.Uint32(alignBits)),
	)
	return DIVariable{metaBase{metadataHandle(v)}}
}

// Expression creates a DWARF expression from raw DW_OP operations.  No
// operations make the empty expression.
func (dib *DIBuilder) Expression(ops ...uint64) DIExpression {
	irb := dib.create("expression")

	sc := nativebuf.NewScope()
	defer sc.Release()

	u := sc.Uint64s(ops)
	expr := C.LLVMDIBuilderCreateExpression(irb, (*C.uint64_t)(u.Ptr()), C.size_t(u.Len()))
	return DIExpression{metaBase{metadataHandle(expr)}}
}

// Location creates a new debug location.  inlinedAt may be nil.
func (dib *DIBuilder) Location(line, col int, scope DIScope, inlinedAt *DILocation) DILocation {
	dib.create("location", scope)
	return dib.mod.ctx.DILocation(line, col, scope, inlinedAt)
}

// -----------------------------------------------------------------------------

// insertionPoint returns the instruction before which a debug record for
// block must go: the builder's cursor if it sits inside block, otherwise none.
func insertionPoint(b *Builder, block BasicBlock) (Instruction, bool) {
	cur := b.Cursor()
	if cur.State == PositionedBefore && cur.Block.Handle() == block.Handle() {
		return cur.Before, true
	}

	return Instruction{}, false
}

// InsertDeclare inserts a record declaring that storage holds the variable v.
// The record goes before the builder's cursor if the cursor is inside block
// and at the end of block otherwise.  A zero expr is the empty expression.
func (dib *DIBuilder) InsertDeclare(b *Builder, storage Value, v DIVariable, expr DIExpression, loc DILocation, block BasicBlock) Instruction {
	irb := dib.create("insert declare", v, expr, loc)
	if expr.h.IsNull() {
		expr = dib.Expression()
	}

	var rec C.LLVMValueRef
	if before, ok := insertionPoint(b, block); ok {
		rec = C.LLVMDIBuilderInsertDeclareBefore(irb, storage.ptr(), v.ptr(), expr.ptr(), loc.ptr(), before.ptr())
	} else {
		rec = C.LLVMDIBuilderInsertDeclareAtEnd(irb, storage.ptr(), v.ptr(), expr.ptr(), loc.ptr(), block.ptr())
	}

	return Instruction{UserValue{wrapValue(rec)}}
}

// InsertValueRecord inserts a record stating that the variable v currently
// has value val.  Placement follows the same rule as InsertDeclare.
func (dib *DIBuilder) InsertValueRecord(b *Builder, val Value, v DIVariable, expr DIExpression, loc DILocation, block BasicBlock) Instruction {
	irb := dib.create("insert value record", v, expr, loc)
	if expr.h.IsNull() {
		expr = dib.Expression()
	}

	var rec C.LLVMValueRef
	if before, ok := insertionPoint(b, block); ok {
		rec = C.LLVMDIBuilderInsertDbgValueBefore(irb, val.ptr(), v.ptr(), expr.ptr(), loc.ptr(), before.ptr())
	} else {
		rec = C.LLVMDIBuilderInsertDbgValueAtEnd(irb, val.ptr(), v.ptr(), expr.ptr(), loc.ptr(), block.ptr())
	}

	return Instruction{UserValue{wrapValue(rec)}}
}
