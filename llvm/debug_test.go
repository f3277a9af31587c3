package llvm

import (
	"testing"

	"github.com/llir/llvm/ir/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
)

type debugFixture struct {
	c    *Context
	m    *Module
	b    *Builder
	dib  *DIBuilder
	file DIFile
	cu   DICompileUnit
}

func newDebugFixture(t *testing.T) *debugFixture {
	t.Helper()

	c := newTestContext(t)
	m := c.NewModule("debug")
	dib := m.NewDIBuilder(0)

	file := dib.File("node.em", "/src")
	cu := dib.CompileUnit(abi.LangC, file, CompileUnitOptions{
		Producer: "emergec",
		Emission: abi.EmitFullDebug,
	})

	return &debugFixture{c: c, m: m, b: c.NewBuilder(), dib: dib, file: file, cu: cu}
}

// recursiveNode builds the debug type of `struct Node { next *Node }` through
// a placeholder and returns the placeholder and the final type.
func (f *debugFixture) recursiveNode() (*Placeholder, DIType, DIType) {
	p := f.dib.ReplaceableComposite(enum.DwarfTagStructureType, "Node", f.file, f.file, 1, CompositeOptions{
		SizeInBits:  64,
		AlignInBits: 64,
	})

	ptr := f.dib.PointerType(p.Type(), 64, 64, "")
	next := f.dib.MemberType(f.file, "next", f.file, 2, 64, 64, 0, abi.DIFlagZero, ptr)
	node := f.dib.StructType(f.file, "Node", f.file, 1, 64, 64, abi.DIFlagZero, []DIType{next})

	f.dib.ReplaceAllUses(p, node)
	return p, node, ptr
}

func TestDIBuilderRecordsVersions(t *testing.T) {
	f := newDebugFixture(t)
	f.dib.Finalize()

	_, ok := f.m.ModuleFlag("Debug Info Version")
	assert.True(t, ok)
	_, ok = f.m.ModuleFlag("Dwarf Version")
	assert.True(t, ok)
	assert.Contains(t, f.m.String(), `!"Dwarf Version", i32 4`)
}

func TestRecursiveTypeThroughPlaceholder(t *testing.T) {
	f := newDebugFixture(t)

	p, node, ptr := f.recursiveNode()
	assert.True(t, p.Retired())
	assert.Equal(t, "Node", node.Name())
	assert.Equal(t, uint64(64), node.SizeInBits())

	// A function taking a *Node keeps the type reachable.
	voidPtr := NewFunctionType(f.c.VoidType(), []Type{f.c.PointerType(0)}, false)
	fn := f.m.AddFunction("visit", voidPtr)

	subTy := f.dib.SubroutineType(f.file, []DIType{{}, ptr}, abi.DIFlagZero)
	sp := f.dib.Function(f.cu, "visit", "visit", f.file, 3, subTy, FunctionOptions{Definition: true, ScopeLine: 3})
	fn.SetSubprogram(sp)

	entry := fn.AppendBlock("entry")
	f.b.PositionAtEnd(entry)
	slot := f.b.BuildAlloca(f.c.PointerType(0), "n.addr")
	f.b.BuildStore(fn.Param(0), slot)

	param := f.dib.ParameterVariable(sp, "n", 1, f.file, 3, ptr, true, abi.DIFlagZero)
	loc := f.dib.Location(3, 12, sp, nil)
	f.dib.InsertDeclare(f.b, slot, param, DIExpression{}, loc, entry)
	f.b.BuildRetVoid()

	f.dib.Finalize()
	require.NoError(t, f.m.Verify())

	ir := f.m.String()
	assert.Contains(t, ir, `name: "Node"`)
	assert.Contains(t, ir, "llvm.dbg.declare")
}

func TestRetiredPlaceholderIsStale(t *testing.T) {
	f := newDebugFixture(t)

	p := f.dib.ReplaceableComposite(enum.DwarfTagStructureType, "Tmp", f.file, f.file, 1, CompositeOptions{})
	stale := p.Type()
	final := f.dib.StructType(f.file, "Tmp", f.file, 1, 0, 0, abi.DIFlagZero, nil)
	f.dib.ReplaceAllUses(p, final)

	for name, use := range map[string]func(){
		"type":         func() { p.Type() },
		"replace":      func() { f.dib.ReplaceAllUses(p, final) },
		"pointer":      func() { f.dib.PointerType(stale, 64, 64, "") },
		"member":       func() { f.dib.MemberType(f.file, "x", f.file, 1, 64, 64, 0, abi.DIFlagZero, stale) },
		"struct scope": func() { f.dib.StructType(stale, "Inner", f.file, 1, 0, 0, abi.DIFlagZero, nil) },
		"subroutine":   func() { f.dib.SubroutineType(f.file, []DIType{stale}, abi.DIFlagZero) },
		"md node":      func() { f.c.MDNode(f.file, stale) },
		"location":     func() { f.c.DILocation(1, 1, stale, nil) },
		"name":         func() { _ = stale.Name() },
		"size":         func() { _ = stale.SizeInBits() },
		"kind":         func() { _, _ = stale.Kind() },
		"as value":     func() { stale.AsValue(f.c) },
	} {
		err := errs.Catch(use)
		assert.ErrorIs(t, err, errs.ErrStalePlaceholder, name)
		assert.ErrorIs(t, err, errs.ErrInvalidHandle, name)
	}

	// The final type stays usable.
	assert.Equal(t, "Tmp", final.Name())
	f.c.MDNode(final)

	f.dib.Finalize()
}

func TestDebugRecordPlacement(t *testing.T) {
	f := newDebugFixture(t)

	i32 := f.c.Int32Type()
	fn := f.m.AddFunction("id", NewFunctionType(i32, []Type{i32}, false))

	intTy := f.dib.BasicType("int", 32, enum.DwarfAttEncodingSigned, abi.DIFlagZero)
	subTy := f.dib.SubroutineType(f.file, []DIType{intTy, intTy}, abi.DIFlagZero)
	sp := f.dib.Function(f.cu, "id", "id", f.file, 1, subTy, FunctionOptions{Definition: true, ScopeLine: 1})
	fn.SetSubprogram(sp)

	v := f.dib.ParameterVariable(sp, "x", 1, f.file, 1, intTy, false, abi.DIFlagZero)
	loc := f.dib.Location(1, 8, sp, nil)

	entry := fn.AppendBlock("entry")
	f.b.PositionAtEnd(entry)
	f.b.SetDebugLocation(loc)
	ret := f.b.BuildRet(fn.Param(0))

	// The builder sits before `ret` inside entry: the record goes before it.
	f.b.PositionBefore(ret.Instruction)
	rec := f.dib.InsertValueRecord(f.b, fn.Param(0), v, f.dib.Expression(), loc, entry)
	next, ok := rec.Next()
	require.True(t, ok)
	assert.Equal(t, ret.Handle(), next.Handle())

	// Positioned in another block: the record goes to the end of entry.
	other := fn.AppendBlock("other")
	f.b.PositionAtEnd(other)
	f.b.BuildUnreachable()
	f.b.PositionAtStart(other)

	tail := f.dib.InsertValueRecord(f.b, fn.Param(0), v, DIExpression{}, loc, entry)
	assert.Equal(t, entry.Handle(), tail.Parent().Handle())
	assert.Equal(t, other.Handle(), f.b.Cursor().Block.Handle())

	f.dib.Finalize()
	require.NoError(t, f.m.Verify())
	assert.Contains(t, f.m.String(), "llvm.dbg.value")
}
