package llvm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/llir/llvm/ir/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
)

// buildForwardCall builds a function A which calls B before B is defined.
func buildForwardCall(c *Context, m *Module, b *Builder) (callee Function, fnType FunctionType) {
	fnType = NewFunctionType(c.VoidType(), nil, false)

	a := m.AddFunction("A", fnType)
	callee = m.Callee("B", fnType)

	b.PositionAtEnd(a.AppendBlock("entry"))
	b.BuildCall(fnType, callee, nil, "")
	b.BuildRetVoid()
	return
}

func TestForwardReferenceFailsVerification(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("forward")
	b := c.NewBuilder()

	callee, _ := buildForwardCall(c, m, b)

	err := m.Verify()
	require.Error(t, err)
	assert.True(t, IsVerificationError(err))
	assert.ErrorIs(t, err, errs.ErrVerificationFailed)
	assert.Contains(t, err.Error(), "call to undefined function @B")
	assert.Equal(t, []string{"B"}, m.Unresolved())

	// Defining the callee resolves the reference.
	b.PositionAtEnd(callee.AppendBlock("entry"))
	b.BuildRetVoid()

	require.NoError(t, m.Verify())
	assert.Empty(t, m.Unresolved())
}

func TestMarkExternalResolvesForwardReference(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("external")
	b := c.NewBuilder()

	buildForwardCall(c, m, b)
	require.Error(t, m.Verify())

	m.MarkExternal("B")
	require.NoError(t, m.Verify())
}

func TestCalleeReusesDefinition(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("reuse")

	fnType := NewFunctionType(c.Int32Type(), nil, false)
	defined := m.AddFunction("f", fnType)

	assert.Equal(t, defined.Handle(), m.Callee("f", fnType).Handle())
	assert.Equal(t, defined.Handle(), m.AddFunction("f", fnType).Handle())
	assert.Empty(t, m.Unresolved())
}

func TestAddFunctionRejectsConflictingType(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("conflict")

	m.Callee("f", NewFunctionType(c.VoidType(), nil, false))

	err := errs.Catch(func() {
		m.AddFunction("f", NewFunctionType(c.Int32Type(), []Type{c.Int32Type()}, false))
	})
	assert.ErrorIs(t, err, errs.ErrSymbolConflict)
	assert.ErrorIs(t, err, errs.ErrInvalidHandle)
	assert.Contains(t, err.Error(), "`f`")

	// No renamed twin was added.
	_, exists := m.GetFunction("f.1")
	assert.False(t, exists)
	assert.Len(t, Collect(m.Functions()), 1)
}

func TestUnresolvedIsRepeatable(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("repeat")
	b := c.NewBuilder()

	callee, _ := buildForwardCall(c, m, b)
	m.Callee("C", NewFunctionType(c.VoidType(), nil, false))
	m.MarkExternal("C")

	assert.Equal(t, []string{"B"}, m.Unresolved())
	assert.Equal(t, []string{"B"}, m.Unresolved())
	assert.Len(t, m.pending, 2)

	b.PositionAtEnd(callee.AppendBlock("entry"))
	b.BuildRetVoid()
	assert.Empty(t, m.Unresolved())
	assert.Len(t, m.pending, 2)

	require.NoError(t, m.Verify())
	assert.Empty(t, m.pending)
}

func TestVerifierDiagnosticIsReturned(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("broken")

	// A block without a terminator.
	fn := m.AddFunction("f", NewFunctionType(c.VoidType(), nil, false))
	fn.AppendBlock("entry")

	err := m.Verify()
	require.Error(t, err)

	var verr *errs.VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "broken", verr.Module)
	assert.NotEmpty(t, verr.Diagnostic)
}

func TestConstantGlobal(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("globals")

	gv := m.AddConstantGlobal("greeting", c.ConstString("hi", true))

	found, ok := m.GetGlobal("greeting")
	require.True(t, ok)
	assert.Equal(t, gv.Handle(), found.Handle())
	assert.True(t, gv.IsGlobalConstant())

	linkage, err := gv.Linkage()
	require.NoError(t, err)
	assert.Equal(t, enum.LinkagePrivate, linkage)

	ua, err := gv.UnnamedAddr()
	require.NoError(t, err)
	assert.Equal(t, abi.GlobalUnnamedAddr, ua)

	assert.Contains(t, m.String(), `@greeting = private unnamed_addr constant [3 x i8] c"hi\00"`)
	assert.Len(t, Collect(m.Globals()), 1)
}

func TestModuleFlagsAndMetadata(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("flags")

	m.SetSourceFileName("flags.em")
	assert.Equal(t, "flags.em", m.SourceFileName())

	m.AddModuleFlag(abi.FlagWarning, "answer", ConstInt(c.Int32Type(), 42, false).AsMetadata())

	_, ok := m.ModuleFlag("answer")
	assert.True(t, ok)

	_, ok = m.ModuleFlag("missing")
	assert.False(t, ok)

	assert.Contains(t, m.String(), `!"answer", i32 42`)
}

func TestWriteOutputs(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("outputs")
	m.AddFunction("main", NewFunctionType(c.Int32Type(), nil, false))

	dir := t.TempDir()

	irPath := filepath.Join(dir, "outputs.ll")
	require.NoError(t, m.WriteIRToFile(irPath))
	ir, err := os.ReadFile(irPath)
	require.NoError(t, err)
	assert.Contains(t, string(ir), "declare i32 @main()")

	bcPath := filepath.Join(dir, "outputs.bc")
	require.NoError(t, m.WriteBitcodeToFile(bcPath))
	bc, err := os.ReadFile(bcPath)
	require.NoError(t, err)
	assert.Equal(t, m.BitcodeBytes(), bc)

	err = m.WriteIRToFile(filepath.Join(dir, "missing", "dir", "x.ll"))
	assert.ErrorIs(t, err, errs.ErrNativeCallFailed)
}

func TestIntrinsicLookup(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("intrinsics")

	fn, ok := m.GetIntrinsic("llvm.trap")
	require.True(t, ok)

	id, isIntrinsic := fn.IntrinsicID()
	assert.True(t, isIntrinsic)
	assert.NotZero(t, id)

	_, ok = m.GetIntrinsic("llvm.definitely.not.real")
	assert.False(t, ok)
}
