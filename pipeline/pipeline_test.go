package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/config"
	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/llvm"
	"github.com/emerge-lang/compiler/report"
)

func newTestConfig(t *testing.T, emit ...config.OutputKind) *config.Config {
	t.Helper()
	report.InitReporter(report.LogLevelSilent, io.Discard)

	cfg := config.Default()
	cfg.Target.Triple = "x86_64-pc-linux-gnu"
	cfg.Target.CPU = "x86-64"
	cfg.Output.Dir = t.TempDir()
	cfg.Output.Emit = emit
	cfg.Output.Jobs = 2
	return cfg
}

// answerUnit builds `i32 <name>() { return 42 }`.
func answerUnit(name string) Unit {
	return Unit{
		Name: name,
		Build: func(c *llvm.Context) (*llvm.Module, error) {
			m := c.NewModule(name)
			i32 := c.Int32Type()
			fn := m.AddFunction(name, llvm.NewFunctionType(i32, nil, false))

			b := c.NewBuilder()
			defer b.Dispose()

			b.PositionAtEnd(fn.AppendBlock("entry"))
			b.BuildRet(llvm.ConstInt(i32, 42, false))
			return m, nil
		},
	}
}

// forwardUnit calls a function it never defines.
func forwardUnit(name string) Unit {
	return Unit{
		Name: name,
		Build: func(c *llvm.Context) (*llvm.Module, error) {
			m := c.NewModule(name)
			fnType := llvm.NewFunctionType(c.VoidType(), nil, false)
			fn := m.AddFunction("a", fnType)

			b := c.NewBuilder()
			defer b.Dispose()

			b.PositionAtEnd(fn.AppendBlock("entry"))
			b.BuildCall(fnType, m.Callee("b", fnType), nil, "")
			b.BuildRetVoid()
			return m, nil
		},
	}
}

func TestFinalizeWritesArtifacts(t *testing.T) {
	cfg := newTestConfig(t, config.OutputIR, config.OutputBitcode, config.OutputAssembly, config.OutputObject)
	p := New(cfg)

	c := llvm.NewContext()
	defer c.Dispose()

	m, err := answerUnit("answer").Build(c)
	require.NoError(t, err)

	art, err := p.Finalize(context.Background(), c, m)
	require.NoError(t, err)
	assert.Equal(t, "answer", art.Unit)
	assert.Len(t, art.Paths, 4)

	assert.Equal(t, cfg.Target.Triple, m.TargetTriple())
	assert.NotEmpty(t, m.DataLayout())

	for kind, path := range art.Paths {
		assert.Equal(t, filepath.Join(cfg.Output.Dir, "answer"+kind.Ext()), path)

		info, err := os.Stat(path)
		require.NoError(t, err, kind.String())
		assert.NotZero(t, info.Size(), kind.String())
	}

	asm, err := os.ReadFile(art.Paths[config.OutputAssembly])
	require.NoError(t, err)
	assert.Contains(t, string(asm), "answer:")
}

func TestFinalizeSurfacesVerificationError(t *testing.T) {
	p := New(newTestConfig(t, config.OutputIR))

	c := llvm.NewContext()
	defer c.Dispose()

	m, err := forwardUnit("fwd").Build(c)
	require.NoError(t, err)

	_, err = p.Finalize(context.Background(), c, m)
	require.Error(t, err)

	var verr *errs.VerificationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fwd", verr.Module)

	_, err = os.Stat(filepath.Join(p.Config().Output.Dir, "fwd.ll"))
	assert.True(t, os.IsNotExist(err))
}

func TestFinalizeBadPipeline(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Passes.Pipeline = "no-such-pass"
	p := New(cfg)

	c := llvm.NewContext()
	defer c.Dispose()

	m, err := answerUnit("answer").Build(c)
	require.NoError(t, err)

	_, err = p.Finalize(context.Background(), c, m)
	assert.ErrorIs(t, err, errs.ErrNativeCallFailed)
}

func TestFinalizeWithoutPasses(t *testing.T) {
	cfg := newTestConfig(t, config.OutputIR)
	cfg.Passes.Pipeline = ""
	cfg.Target.OptLevel = abi.OptNone

	c := llvm.NewContext()
	defer c.Dispose()

	m, err := answerUnit("plain").Build(c)
	require.NoError(t, err)

	art, err := New(cfg).Finalize(context.Background(), c, m)
	require.NoError(t, err)

	ir, err := os.ReadFile(art.Paths[config.OutputIR])
	require.NoError(t, err)
	assert.Contains(t, string(ir), "define i32 @plain()")
}

func TestCompileAll(t *testing.T) {
	cfg := newTestConfig(t, config.OutputObject)

	units := []Unit{answerUnit("one"), answerUnit("two"), answerUnit("three")}
	arts, err := New(cfg).CompileAll(context.Background(), units)
	require.NoError(t, err)
	require.Len(t, arts, 3)

	for i, art := range arts {
		assert.Equal(t, units[i].Name, art.Unit)
		assert.FileExists(t, art.Paths[config.OutputObject])
	}
	assert.True(t, report.ShouldProceed())
}

func TestCompileAllReportsFailures(t *testing.T) {
	cfg := newTestConfig(t, config.OutputIR)

	buildErr := errors.New("no frontend for this unit")
	units := []Unit{
		forwardUnit("fwd"),
		{Name: "broken", Build: func(*llvm.Context) (*llvm.Module, error) { return nil, buildErr }},
	}

	_, err := New(cfg).CompileAll(context.Background(), units)
	require.Error(t, err)
	assert.True(t, errors.Is(err, buildErr) || errors.Is(err, errs.ErrVerificationFailed) || errors.Is(err, context.Canceled))
	assert.False(t, report.ShouldProceed())
}

func TestCompileAllRecoversUnpositionedBuild(t *testing.T) {
	cfg := newTestConfig(t, config.OutputIR)

	units := []Unit{{
		Name: "unpositioned",
		Build: func(c *llvm.Context) (*llvm.Module, error) {
			m := c.NewModule("unpositioned")
			i32 := c.Int32Type()
			fn := m.AddFunction("f", llvm.NewFunctionType(i32, []llvm.Type{i32}, false))
			fn.AppendBlock("entry")

			b := c.NewBuilder()
			b.BuildAdd(fn.Param(0), fn.Param(0), "")
			return m, nil
		},
	}}

	_, err := New(cfg).CompileAll(context.Background(), units)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrBuilderNotPositioned)
	assert.False(t, report.ShouldProceed())
}

func TestCompileAllRecoversFinalizePanic(t *testing.T) {
	cfg := newTestConfig(t, config.OutputIR)

	units := []Unit{{
		Name: "released",
		Build: func(c *llvm.Context) (*llvm.Module, error) {
			m := c.NewModule("released")
			m.Dispose()
			return m, nil
		},
	}}

	_, err := New(cfg).CompileAll(context.Background(), units)
	assert.ErrorIs(t, err, errs.ErrInvalidHandle)
}
