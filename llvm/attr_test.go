package llvm

import (
	"testing"

	"github.com/llir/llvm/ir/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
)

func TestEveryNamedAttributeResolves(t *testing.T) {
	for attr, name := range abi.FuncAttrNames {
		_, ok := AttributeKindOf(name)
		assert.True(t, ok, "function attribute %v (%s)", attr, name)
	}

	for attr, name := range abi.ParamAttrNames {
		_, ok := AttributeKindOf(name)
		assert.True(t, ok, "parameter attribute %v (%s)", attr, name)
	}

	_, ok := AttributeKindOf("definitely-not-an-attribute")
	assert.False(t, ok)
}

func TestFunctionAttributes(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("attrs")

	ptr := c.PointerType(0)
	fn := m.AddFunction("f", NewFunctionType(ptr, []Type{ptr}, false))

	nounwind, err := c.FuncAttribute(enum.FuncAttrNoUnwind)
	require.NoError(t, err)
	fn.Attrs().Add(nounwind)

	noalias, err := c.ParamAttribute(enum.ParamAttrNoAlias)
	require.NoError(t, err)
	fn.Param(0).Attrs().Add(noalias)

	nonnull, err := c.ParamAttribute(enum.ParamAttrNonNull)
	require.NoError(t, err)
	fn.ReturnAttrs().Add(nonnull)

	fn.Attrs().Add(c.StringAttribute("frame-pointer", "all"))

	got, ok := fn.Attrs().EnumAttr("nounwind")
	require.True(t, ok)
	assert.Equal(t, EnumAttr, got.Variant())

	fp, ok := fn.Attrs().StringAttr("frame-pointer")
	require.True(t, ok)
	assert.Equal(t, "all", fp.(StringAttribute).Value())
	assert.Equal(t, 2, fn.Attrs().NumAttrs())

	ir := m.String()
	assert.Contains(t, ir, "declare nonnull ptr @f(ptr noalias)")
	assert.Contains(t, ir, `"frame-pointer"="all"`)

	fn.Attrs().RemoveString("frame-pointer")
	fn.Attrs().RemoveEnum("nounwind")
	assert.Equal(t, 0, fn.Attrs().NumAttrs())
}

func TestUnknownAttributeName(t *testing.T) {
	c := newTestContext(t)

	_, err := c.EnumAttribute("definitely-not-an-attribute", 0)
	assert.ErrorIs(t, err, errs.ErrUnknownEnumValue)

	_, err = c.FuncAttribute(enum.FuncAttr(200))
	assert.ErrorIs(t, err, errs.ErrUnknownEnumValue)
}

func TestCallSiteAttributes(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("callsite")
	b := c.NewBuilder()

	i32 := c.Int32Type()
	fnType := NewFunctionType(i32, []Type{i32}, false)
	callee := m.DeclareExternal("g", fnType)
	caller := m.AddFunction("caller", fnType)

	b.PositionAtEnd(caller.AppendBlock("entry"))
	call := b.BuildCall(fnType, callee, []Value{caller.Param(0)}, "r")
	b.BuildRet(call)

	zext, err := c.ParamAttribute(enum.ParamAttrZExt)
	require.NoError(t, err)
	call.ParamAttrs(0).Add(zext)

	_, ok := call.ParamAttrs(0).EnumAttr("zeroext")
	assert.True(t, ok)
	assert.Contains(t, m.String(), "call i32 @g(i32 zeroext %0)")
	require.NoError(t, m.Verify())
}
