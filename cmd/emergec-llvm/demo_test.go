package main

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/config"
	"github.com/emerge-lang/compiler/llvm"
	"github.com/emerge-lang/compiler/pipeline"
	"github.com/emerge-lang/compiler/report"
)

func TestDemoUnitsVerify(t *testing.T) {
	cfg := config.Default()

	for _, unit := range demoUnits(cfg) {
		c := llvm.NewContext()

		m, err := unit.Build(c)
		require.NoError(t, err, unit.Name)
		assert.NoError(t, m.Verify(), unit.Name)
		assert.Empty(t, m.Unresolved(), unit.Name)

		c.Dispose()
	}
}

func TestNodeDebugInfo(t *testing.T) {
	cfg := config.Default()

	c := llvm.NewContext()
	defer c.Dispose()

	lines, err := buildNode(c, cfg)
	require.NoError(t, err)
	assert.Contains(t, lines.String(), "emissionKind: LineTablesOnly")

	cfg.Debug.Emission = abi.EmitFullDebug
	m, err := buildNode(c, cfg)
	require.NoError(t, err)

	ir := m.String()
	assert.Contains(t, ir, "emissionKind: FullDebug")
	assert.Contains(t, ir, `name: "Node"`)
	assert.Contains(t, ir, `producer: "emergec"`)
	assert.Contains(t, ir, "llvm.dbg.value")

	cfg.Debug.Emission = abi.EmitNoDebug
	plain, err := buildNode(c, cfg)
	require.NoError(t, err)
	assert.NotContains(t, plain.String(), "!dbg")
}

func TestDemoCompiles(t *testing.T) {
	report.InitReporter(report.LogLevelSilent, io.Discard)

	cfg := config.Default()
	cfg.Target.Triple = "x86_64-pc-linux-gnu"
	cfg.Target.CPU = "x86-64"
	cfg.Output.Dir = t.TempDir()
	cfg.Output.Emit = []config.OutputKind{config.OutputIR, config.OutputObject}

	arts, err := pipeline.New(cfg).CompileAll(context.Background(), demoUnits(cfg))
	require.NoError(t, err)
	require.Len(t, arts, 3)

	ir, err := os.ReadFile(arts[2].Paths[config.OutputIR])
	require.NoError(t, err)
	assert.Contains(t, string(ir), `c"hello, world\00"`)
	assert.Contains(t, string(ir), "@puts(")
}
