// Package config loads the backend configuration file, `backend.toml`.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/emerge-lang/compiler/abi"
)

// FileName is the name of the backend configuration file.
const FileName = "backend.toml"

// Default values for settings a configuration file may leave out.
const (
	DefaultLLVMVersion  = "~18.1"
	DefaultPipeline     = "default<O2>"
	DefaultProducer     = "emergec"
	DefaultDwarfVersion = 4
	DefaultOutputDir    = "out"
)

// Config is the validated backend configuration.
type Config struct {
	// LLVMVersion is the constraint the loaded LLVM library must satisfy.
	LLVMVersion *semver.Constraints

	Target TargetConfig
	Passes PassConfig
	Debug  DebugConfig
	Output OutputConfig
}

// TargetConfig selects the machine code is generated for.  An empty triple
// means the host, in which case CPU and Features also default to the host.
type TargetConfig struct {
	Triple    string
	CPU       string
	Features  string
	OptLevel  abi.OptLevel
	Reloc     abi.RelocMode
	CodeModel abi.CodeModel
}

// PassConfig controls the optimization pipeline.
type PassConfig struct {
	// Pipeline is a new pass manager pipeline string.  Empty skips
	// optimization entirely.
	Pipeline string

	// Timeout bounds how long a single unit may spend in the pipeline.  Zero
	// means no bound.
	Timeout time.Duration

	VerifyEach     bool
	LoopVectorize  bool
	SLPVectorize   bool
	LoopUnroll     bool
	MergeFunctions bool

	// InlinerThreshold is passed through when nonzero.
	InlinerThreshold int
}

// DebugConfig controls debug information.
type DebugConfig struct {
	Emission     abi.EmissionKind
	Producer     string
	DwarfVersion int
}

// OutputConfig controls which artifacts are written and where.
type OutputConfig struct {
	Dir  string
	Emit []OutputKind

	// Jobs is the number of units compiled at once.
	Jobs int
}

// Default returns the configuration used when there is no config file.
func Default() *Config {
	c, _ := semver.NewConstraint(DefaultLLVMVersion)

	return &Config{
		LLVMVersion: c,
		Target: TargetConfig{
			OptLevel:  abi.OptDefault,
			Reloc:     abi.RelocPIC,
			CodeModel: abi.CodeModelDefault,
		},
		Passes: PassConfig{
			Pipeline:      DefaultPipeline,
			LoopVectorize: true,
			SLPVectorize:  true,
			LoopUnroll:    true,
		},
		Debug: DebugConfig{
			Emission:     abi.EmitLineTablesOnly,
			Producer:     DefaultProducer,
			DwarfVersion: DefaultDwarfVersion,
		},
		Output: OutputConfig{
			Dir:  DefaultOutputDir,
			Emit: []OutputKind{OutputObject},
			Jobs: runtime.NumCPU(),
		},
	}
}

// Timeout returns the pass pipeline timeout.
func (c *Config) Timeout() time.Duration {
	return c.Passes.Timeout
}

// Emits reports whether the given output kind was requested.
func (c *Config) Emits(k OutputKind) bool {
	for _, e := range c.Output.Emit {
		if e == k {
			return true
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// Error is a configuration value that could not be accepted.
type Error struct {
	Field string
	Value string

	// Reason is optional: it defaults to "invalid value".
	Reason string
}

func (e *Error) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "invalid value"
	}

	return fmt.Sprintf("config: %s: %s `%s`", e.Field, reason, e.Value)
}
