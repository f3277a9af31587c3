package llvm

import (
	"testing"

	"github.com/llir/llvm/ir/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
)

func TestBuildSimpleFunction(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("arith")
	b := c.NewBuilder()

	i32 := c.Int32Type()
	fn := m.AddFunction("add", NewFunctionType(i32, []Type{i32, i32}, false))

	b.PositionAtEnd(fn.AppendBlock("entry"))
	sum := b.BuildAdd(fn.Param(0), fn.Param(1), "sum")
	b.BuildRet(sum)

	require.NoError(t, m.Verify())
	assert.Contains(t, m.String(), "%sum = add i32 %0, %1")

	op, err := sum.Opcode()
	require.NoError(t, err)
	assert.Equal(t, abi.OpAdd, op)
}

func TestUnpositionedBuilderPanics(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("unpositioned")
	b := c.NewBuilder()

	i32 := c.Int32Type()
	fnType := NewFunctionType(i32, []Type{i32}, false)
	fn := m.AddFunction("f", fnType)
	bb := fn.AppendBlock("entry")
	x := fn.Param(0)

	ops := map[string]func(){
		"ret":         func() { b.BuildRet(x) },
		"ret void":    func() { b.BuildRetVoid() },
		"br":          func() { b.BuildBr(bb) },
		"unreachable": func() { b.BuildUnreachable() },
		"add":         func() { b.BuildAdd(x, x, "") },
		"neg":         func() { b.BuildNeg(x, "") },
		"icmp":        func() { b.BuildICmp(enum.IPredEQ, x, x, "") },
		"alloca":      func() { b.BuildAlloca(i32, "") },
		"store":       func() { b.BuildStore(x, x) },
		"trunc":       func() { b.BuildTrunc(x, c.Int8Type(), "") },
		"phi":         func() { b.BuildPhi(i32, "") },
		"call":        func() { b.BuildCall(fnType, fn, []Value{x}, "") },
	}

	for name, op := range ops {
		err := errs.Catch(op)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, errs.ErrBuilderNotPositioned, name)
	}

	// Clearing the position makes the builder unusable again.
	b.PositionAtEnd(bb)
	b.ClearPosition()
	assert.Equal(t, Unpositioned, b.Cursor().State)
	assert.ErrorIs(t, errs.Catch(func() { b.BuildRet(x) }), errs.ErrBuilderNotPositioned)
}

func TestNullOperandPanics(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("null")
	b := c.NewBuilder()

	i32 := c.Int32Type()
	fnType := NewFunctionType(i32, []Type{i32}, false)
	fn := m.AddFunction("f", fnType)
	b.PositionAtEnd(fn.AppendBlock("entry"))
	x := fn.Param(0)

	ops := map[string]func(){
		"store to null":      func() { b.BuildStore(x, Function{}) },
		"call null":          func() { b.BuildCall(fnType, Function{}, []Value{x}, "") },
		"call null arg":      func() { b.BuildCall(fnType, fn, []Value{nil}, "") },
		"ret null":           func() { b.BuildRet(Instruction{}) },
		"add null":           func() { b.BuildAdd(x, Constant{}, "") },
		"null param type":    func() { NewFunctionType(i32, []Type{nil}, false) },
		"zero param type":    func() { NewFunctionType(i32, []Type{IntegerType{}}, false) },
		"struct null field":  func() { c.StructType([]Type{i32, nil}, false) },
		"kind of null value": func() { _, _ = Constant{}.Kind() },
	}

	for name, op := range ops {
		assert.ErrorIs(t, errs.Catch(op), errs.ErrInvalidHandle, name)
	}

	// Nothing was emitted by the rejected calls.
	b.BuildRet(x)
	require.NoError(t, m.Verify())
}

func TestCursorTracksPosition(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("cursor")
	b := c.NewBuilder()

	i32 := c.Int32Type()
	fn := m.AddFunction("f", NewFunctionType(i32, []Type{i32}, false))
	entry := fn.AppendBlock("entry")

	b.PositionAtEnd(entry)
	assert.Equal(t, PositionedAtEnd, b.Cursor().State)

	ret := b.BuildRet(fn.Param(0))

	b.PositionBefore(ret.Instruction)
	cur := b.Cursor()
	assert.Equal(t, PositionedBefore, cur.State)
	assert.Equal(t, ret.Handle(), cur.Before.Handle())
	assert.Equal(t, entry.Handle(), cur.Block.Handle())

	doubled := b.BuildMul(fn.Param(0), ConstInt(i32, 2, false), "doubled")
	next, ok := doubled.Next()
	require.True(t, ok)
	assert.Equal(t, ret.Handle(), next.Handle())

	b.PositionAfter(ret.Instruction)
	assert.Equal(t, PositionedAtEnd, b.Cursor().State)

	b.PositionAtStart(entry)
	assert.Equal(t, doubled.Handle(), b.Cursor().Before.Handle())
}

func TestVoidCallIsNeverNamed(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("calls")
	b := c.NewBuilder()

	voidFn := NewFunctionType(c.VoidType(), nil, false)
	callee := m.DeclareExternal("effect", voidFn)
	caller := m.AddFunction("caller", voidFn)

	b.PositionAtEnd(caller.AppendBlock("entry"))
	call := b.BuildCall(voidFn, callee, nil, "ignored")
	b.BuildRetVoid()

	assert.Equal(t, "", call.Name())
	assert.Equal(t, 0, call.NumArgs())
	require.NoError(t, m.Verify())
}

func TestBranchesAndPhi(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("branches")
	b := c.NewBuilder()

	i1, i32 := c.Int1Type(), c.Int32Type()
	fn := m.AddFunction("pick", NewFunctionType(i32, []Type{i1}, false))
	entry := fn.AppendBlock("entry")
	then := fn.AppendBlock("then")
	els := fn.AppendBlock("else")
	join := fn.AppendBlock("join")

	b.PositionAtEnd(entry)
	br := b.BuildCondBr(fn.Param(0), then, els)
	assert.Equal(t, 2, br.NumSuccessors())

	b.PositionAtEnd(then)
	b.BuildBr(join)
	b.PositionAtEnd(els)
	b.BuildBr(join)

	b.PositionAtEnd(join)
	phi := b.BuildPhi(i32, "r")
	phi.AddIncoming(ConstInt(i32, 1, false), then)
	phi.AddIncoming(ConstInt(i32, 2, false), els)
	b.BuildRet(phi)

	assert.Equal(t, 2, phi.NumIncoming())
	require.NoError(t, m.Verify())

	term, ok := join.Terminator()
	require.True(t, ok)
	assert.True(t, term.IsTerminator())
}
