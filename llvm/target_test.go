package llvm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/errs"
)

const testTriple = "x86_64-pc-linux-gnu"

func newTestMachine(t *testing.T, c *Context) *TargetMachine {
	t.Helper()

	tm, err := c.NewTargetMachine(MachineOptions{
		Triple:    testTriple,
		CPU:       "x86-64",
		OptLevel:  abi.OptDefault,
		Reloc:     abi.RelocPIC,
		CodeModel: abi.CodeModelDefault,
	})
	require.NoError(t, err)
	return tm
}

// buildAnswer builds `i32 answer() { return 42 }`.
func buildAnswer(c *Context, m *Module) Function {
	i32 := c.Int32Type()
	fn := m.AddFunction("answer", NewFunctionType(i32, nil, false))

	b := c.NewBuilder()
	defer b.Dispose()

	b.PositionAtEnd(fn.AppendBlock("entry"))
	b.BuildRet(ConstInt(i32, 42, false))
	return fn
}

func TestHostQueries(t *testing.T) {
	assert.NotEmpty(t, HostTriple())
	assert.NotEmpty(t, HostCPU())

	_, err := TargetFromTriple(HostTriple())
	assert.NoError(t, err)
}

func TestUnknownTriple(t *testing.T) {
	_, err := TargetFromTriple("nonsense-unknown-nowhere")
	require.Error(t, err)

	var ncerr *errs.NativeCallError
	require.ErrorAs(t, err, &ncerr)
	assert.NotEmpty(t, ncerr.Message)
}

func TestTargetMachineAndLayout(t *testing.T) {
	c := newTestContext(t)
	tm := newTestMachine(t, c)

	assert.Equal(t, testTriple, tm.Triple())
	assert.Equal(t, "x86-64", tm.CPU())
	assert.Equal(t, "x86-64", tm.Target().Name())

	td := tm.DataLayout()
	assert.Equal(t, 8, td.PointerSize())
	assert.Equal(t, 64, c.IntPtrType(td).BitWidth())

	i8, i64 := c.Int8Type(), c.Int64Type()
	st := c.StructType([]Type{i8, i64}, false)
	assert.Equal(t, uint64(16), td.SizeOf(st))
	assert.Equal(t, uint64(8), td.OffsetOfElement(st, 1))
	assert.Equal(t, 8, td.ABIAlignmentOf(i64))
	assert.Equal(t, uint64(64), td.BitSizeOf(i64))

	m := c.NewModule("layout")
	m.SetTarget(tm)
	assert.Equal(t, testTriple, m.TargetTriple())
	assert.Equal(t, td.String(), m.DataLayout())
}

func TestEmitObjectAndAssembly(t *testing.T) {
	c := newTestContext(t)
	tm := newTestMachine(t, c)

	m := c.NewModule("emit")
	m.SetTarget(tm)
	buildAnswer(c, m)
	require.NoError(t, m.Verify())

	asm, err := tm.EmitToMemory(m, abi.AssemblyFile)
	require.NoError(t, err)
	assert.Contains(t, string(asm), "answer:")

	path := filepath.Join(t.TempDir(), "emit.o")
	require.NoError(t, tm.EmitToFile(m, path, abi.ObjectFile))

	obj, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x7fELF"), obj[:4])
}

func TestRunPasses(t *testing.T) {
	c := newTestContext(t)
	tm := newTestMachine(t, c)

	m := c.NewModule("passes")
	m.SetTarget(tm)
	buildAnswer(c, m)

	opts := c.NewPassOptions()
	opts.VerifyEach(true)
	opts.LoopVectorization(true)
	opts.InlinerThreshold(250)

	require.NoError(t, RunPasses(m, "default<O2>", tm, opts))
	require.NoError(t, m.Verify())

	// No target machine and default options.
	require.NoError(t, RunPasses(m, "instcombine", nil, nil))
}

func TestRunPassesRejectsBadPipeline(t *testing.T) {
	c := newTestContext(t)
	m := c.NewModule("bad")
	buildAnswer(c, m)

	err := RunPasses(m, "no-such-pass", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNativeCallFailed)
	assert.Contains(t, err.Error(), "no-such-pass")
}
