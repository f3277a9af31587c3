package llvm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/errs"
)

// newTestContext returns a context disposed when the test ends.
func newTestContext(t *testing.T) *Context {
	t.Helper()

	c := NewContext()
	t.Cleanup(c.Dispose)
	return c
}

func TestDisposeIsIdempotent(t *testing.T) {
	c := NewContext()
	c.NewModule("m")
	c.NewBuilder()

	c.Dispose()
	assert.True(t, c.Disposed())
	assert.NotPanics(t, c.Dispose)
}

func TestUseAfterDisposePanics(t *testing.T) {
	c := NewContext()
	m := c.NewModule("m")
	b := c.NewBuilder()
	c.Dispose()

	for name, use := range map[string]func(){
		"type":    func() { c.Int32Type() },
		"module":  func() { _ = m.Name() },
		"builder": func() { b.ClearPosition() },
		"owned":   func() { c.NewModule("again") },
	} {
		err := errs.Catch(use)
		assert.ErrorIs(t, err, errs.ErrInvalidHandle, name)
	}
}

func TestReleaseDisposesEarly(t *testing.T) {
	c := newTestContext(t)

	m := c.NewModule("early")
	keep := c.NewModule("kept")
	require.True(t, c.Owns(m))

	m.Dispose()
	assert.False(t, c.Owns(m))
	assert.True(t, c.Owns(keep))
	assert.ErrorIs(t, errs.Catch(func() { _ = m.Name() }), errs.ErrInvalidHandle)

	// Releasing twice is harmless.
	assert.NotPanics(t, func() { c.Release(m) })
	assert.Equal(t, "kept", keep.Name())
}

func TestModuleDisposeReleasesDependents(t *testing.T) {
	c := NewContext()
	i32 := c.Int32Type()

	m := c.NewModule("short")
	dib := m.NewDIBuilder(0)
	dib.File("short.em", "/src")
	b := c.NewBuilder()
	fn := m.AddFunction("f", NewFunctionType(i32, nil, false))
	b.PositionAtEnd(fn.AppendBlock("entry"))

	other := c.NewModule("long")
	ob := c.NewBuilder()
	ofn := other.AddFunction("g", NewFunctionType(i32, nil, false))
	ob.PositionAtEnd(ofn.AppendBlock("entry"))

	m.Dispose()
	assert.False(t, c.Owns(m))
	assert.False(t, c.Owns(dib))
	assert.True(t, dib.Finalized())

	err := errs.Catch(func() { dib.File("again.em", "/src") })
	assert.ErrorIs(t, err, errs.ErrInvalidHandle)
	err = errs.Catch(func() { dib.BasicType("int", 32, 0, 0) })
	assert.ErrorIs(t, err, errs.ErrInvalidHandle)

	// Only the builder inside the disposed module loses its position.
	assert.Equal(t, Unpositioned, b.Cursor().State)
	assert.ErrorIs(t, errs.Catch(func() { b.BuildRet(ConstInt(i32, 0, false)) }), errs.ErrBuilderNotPositioned)
	assert.Equal(t, PositionedAtEnd, ob.Cursor().State)
	ob.BuildRet(ConstInt(i32, 1, false))
	require.NoError(t, other.Verify())

	assert.NotPanics(t, dib.Dispose)
	assert.NotPanics(t, c.Dispose)
	assert.True(t, c.Disposed())
}

func TestContextDisposeWithDIBuilder(t *testing.T) {
	c := NewContext()
	m := c.NewModule("m")
	dib := m.NewDIBuilder(0)
	dib.File("m.em", "/src")

	assert.NotPanics(t, c.Dispose)
	assert.True(t, dib.Finalized())
	assert.ErrorIs(t, errs.Catch(func() { dib.File("x.em", "/src") }), errs.ErrInvalidHandle)
}

func TestCollectIteratesInOrder(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("blocks")

	fn := m.AddFunction("f", NewFunctionType(c.VoidType(), nil, false))
	for _, name := range []string{"entry", "loop", "exit"} {
		fn.AppendBlock(name)
	}

	var names []string
	for _, bb := range Collect(fn.Blocks()) {
		names = append(names, bb.Name())
	}

	assert.Equal(t, []string{"entry", "loop", "exit"}, names)
	assert.Equal(t, 3, fn.NumBlocks())
}
