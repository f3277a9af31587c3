package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emerge-lang/compiler/abi"
)

const fullConfig = `
[llvm]
version = ">= 18, < 19"

[target]
triple = "x86_64-pc-linux-gnu"
cpu = "x86-64"
features = "+sse4.2"
opt-level = "aggressive"
reloc = "static"
code-model = "small"

[passes]
pipeline = "default<O3>"
timeout = "30s"
verify-each = true
loop-vectorize = false
merge-functions = true
inliner-threshold = 300

[debug]
emission = "full"
producer = "emergec 0.1"
dwarf-version = 5

[output]
dir = "build"
emit = ["ir", "obj", "ir"]
jobs = 2
`

func TestDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Target, cfg.Target)
	assert.Equal(t, def.Passes, cfg.Passes)
	assert.Equal(t, def.Debug, cfg.Debug)
	assert.Equal(t, def.Output, cfg.Output)

	assert.Equal(t, DefaultPipeline, cfg.Passes.Pipeline)
	assert.Equal(t, abi.EmitLineTablesOnly, cfg.Debug.Emission)
	assert.Equal(t, "emergec", cfg.Debug.Producer)
	assert.Equal(t, time.Duration(0), cfg.Timeout())
	assert.True(t, cfg.LLVMVersion.Check(semver.MustParse("18.1.8")))
	assert.False(t, cfg.LLVMVersion.Check(semver.MustParse("17.0.6")))
	assert.True(t, cfg.Emits(OutputObject))
	assert.False(t, cfg.Emits(OutputIR))
}

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, TargetConfig{
		Triple:    "x86_64-pc-linux-gnu",
		CPU:       "x86-64",
		Features:  "+sse4.2",
		OptLevel:  abi.OptAggressive,
		Reloc:     abi.RelocStatic,
		CodeModel: abi.CodeModelSmall,
	}, cfg.Target)

	assert.Equal(t, "default<O3>", cfg.Passes.Pipeline)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.True(t, cfg.Passes.VerifyEach)
	assert.False(t, cfg.Passes.LoopVectorize)
	assert.True(t, cfg.Passes.SLPVectorize)
	assert.True(t, cfg.Passes.MergeFunctions)
	assert.Equal(t, 300, cfg.Passes.InlinerThreshold)

	assert.Equal(t, DebugConfig{
		Emission:     abi.EmitFullDebug,
		Producer:     "emergec 0.1",
		DwarfVersion: 5,
	}, cfg.Debug)

	assert.Equal(t, "build", cfg.Output.Dir)
	assert.Equal(t, []OutputKind{OutputIR, OutputObject}, cfg.Output.Emit)
	assert.Equal(t, 2, cfg.Output.Jobs)
}

func TestEmptyPipelineSkipsOptimization(t *testing.T) {
	cfg, err := Parse([]byte("[passes]\npipeline = \"\"\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Passes.Pipeline)
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]struct {
		src   string
		field string
	}{
		"opt level":    {"[target]\nopt-level = \"ludicrous\"", "target.opt-level"},
		"reloc":        {"[target]\nreloc = \"pie\"", "target.reloc"},
		"code model":   {"[target]\ncode-model = \"huge\"", "target.code-model"},
		"emission":     {"[debug]\nemission = \"some\"", "debug.emission"},
		"dwarf":        {"[debug]\ndwarf-version = 7", "debug.dwarf-version"},
		"timeout":      {"[passes]\ntimeout = \"soon\"", "passes.timeout"},
		"inliner":      {"[passes]\ninliner-threshold = -1", "passes.inliner-threshold"},
		"emit":         {"[output]\nemit = [\"exe\"]", "output.emit"},
		"jobs":         {"[output]\njobs = 0", "output.jobs"},
		"dir":          {"[output]\ndir = \"\"", "output.dir"},
		"llvm version": {"[llvm]\nversion = \"eighteen\"", "llvm.version"},
	}

	for name, tc := range cases {
		_, err := Parse([]byte(tc.src))
		require.Error(t, err, name)

		var cerr *Error
		require.ErrorAs(t, err, &cerr, name)
		assert.Equal(t, tc.field, cerr.Field, name)
		assert.Contains(t, err.Error(), tc.field, name)
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[target\ntriple = "))
	require.Error(t, err)

	var cerr *Error
	assert.False(t, errors.As(err, &cerr))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "build", cfg.Output.Dir)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[output]\njobs = 0\n"), 0o644))
	_, err = Load(bad)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), bad)
}

func TestOutputKinds(t *testing.T) {
	assert.Equal(t, ".ll", OutputIR.Ext())
	assert.Equal(t, ".bc", OutputBitcode.Ext())
	assert.Equal(t, ".s", OutputAssembly.Ext())
	assert.Equal(t, ".o", OutputObject.Ext())
	assert.Equal(t, "asm", OutputAssembly.String())
}
