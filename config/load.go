package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml"

	"github.com/emerge-lang/compiler/abi"
)

// tomlConfig represents the backend configuration as it is encoded in TOML
type tomlConfig struct {
	LLVM struct {
		Version string `toml:"version"`
	} `toml:"llvm"`

	Target struct {
		Triple    string `toml:"triple"`
		CPU       string `toml:"cpu"`
		Features  string `toml:"features"`
		OptLevel  string `toml:"opt-level"`
		Reloc     string `toml:"reloc"`
		CodeModel string `toml:"code-model"`
	} `toml:"target"`

	Passes struct {
		Pipeline         string `toml:"pipeline"`
		Timeout          string `toml:"timeout"`
		VerifyEach       bool   `toml:"verify-each"`
		LoopVectorize    bool   `toml:"loop-vectorize"`
		SLPVectorize     bool   `toml:"slp-vectorize"`
		LoopUnroll       bool   `toml:"loop-unroll"`
		MergeFunctions   bool   `toml:"merge-functions"`
		InlinerThreshold int    `toml:"inliner-threshold"`
	} `toml:"passes"`

	Debug struct {
		Emission     string `toml:"emission"`
		Producer     string `toml:"producer"`
		DwarfVersion int    `toml:"dwarf-version"`
	} `toml:"debug"`

	Output struct {
		Dir  string   `toml:"dir"`
		Emit []string `toml:"emit"`
		Jobs int      `toml:"jobs"`
	} `toml:"output"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	buff, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file at `%s`: %w", path, err)
	}

	cfg, err := Parse(buff)
	if err != nil {
		return nil, fmt.Errorf("error loading config file at `%s`: %w", path, err)
	}

	return cfg, nil
}

// Parse validates a configuration from the contents of a config file.
// Settings the file leaves out keep the values of Default.
func Parse(buff []byte) (*Config, error) {
	tree, err := toml.LoadBytes(buff)
	if err != nil {
		return nil, err
	}

	tc := &tomlConfig{}
	if err := tree.Unmarshal(tc); err != nil {
		return nil, err
	}

	cfg := Default()
	v := validator{tree: tree}

	if tree.Has("llvm.version") {
		c, err := semver.NewConstraint(tc.LLVM.Version)
		if err != nil {
			return nil, &Error{Field: "llvm.version", Value: tc.LLVM.Version, Reason: "invalid version constraint"}
		}
		cfg.LLVMVersion = c
	}

	cfg.Target.Triple = tc.Target.Triple
	cfg.Target.CPU = tc.Target.CPU
	cfg.Target.Features = tc.Target.Features
	if err := parseEnum(&v, "target.opt-level", tc.Target.OptLevel, abi.OptLevels, &cfg.Target.OptLevel); err != nil {
		return nil, err
	}
	if err := parseEnum(&v, "target.reloc", tc.Target.Reloc, abi.RelocModes, &cfg.Target.Reloc); err != nil {
		return nil, err
	}
	if err := parseEnum(&v, "target.code-model", tc.Target.CodeModel, abi.CodeModels, &cfg.Target.CodeModel); err != nil {
		return nil, err
	}

	if err := v.passes(tc, &cfg.Passes); err != nil {
		return nil, err
	}

	if err := parseEnum(&v, "debug.emission", tc.Debug.Emission, abi.EmissionKinds, &cfg.Debug.Emission); err != nil {
		return nil, err
	}
	if v.has("debug.producer") {
		cfg.Debug.Producer = tc.Debug.Producer
	}
	if v.has("debug.dwarf-version") {
		if dv := tc.Debug.DwarfVersion; dv < 2 || dv > 5 {
			return nil, &Error{Field: "debug.dwarf-version", Value: fmt.Sprint(dv), Reason: "unsupported DWARF version"}
		}
		cfg.Debug.DwarfVersion = tc.Debug.DwarfVersion
	}

	if err := v.output(tc, &cfg.Output); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validator knows which keys the file actually sets.
type validator struct {
	tree *toml.Tree
}

func (v *validator) has(key string) bool {
	return v.tree.Has(key)
}

// parseEnum sets dest from name if the file sets the key.
func parseEnum[T comparable](v *validator, key, name string, tab *abi.Table[T], dest *T) error {
	if !v.has(key) {
		return nil
	}

	val, err := tab.Parse(name)
	if err != nil {
		return &Error{Field: key, Value: name}
	}

	*dest = val
	return nil
}

func (v *validator) passes(tc *tomlConfig, pc *PassConfig) error {
	if v.has("passes.pipeline") {
		pc.Pipeline = tc.Passes.Pipeline
	}

	if v.has("passes.timeout") {
		d, err := time.ParseDuration(tc.Passes.Timeout)
		if err != nil || d < 0 {
			return &Error{Field: "passes.timeout", Value: tc.Passes.Timeout, Reason: "invalid duration"}
		}
		pc.Timeout = d
	}

	if v.has("passes.verify-each") {
		pc.VerifyEach = tc.Passes.VerifyEach
	}
	if v.has("passes.loop-vectorize") {
		pc.LoopVectorize = tc.Passes.LoopVectorize
	}
	if v.has("passes.slp-vectorize") {
		pc.SLPVectorize = tc.Passes.SLPVectorize
	}
	if v.has("passes.loop-unroll") {
		pc.LoopUnroll = tc.Passes.LoopUnroll
	}
	if v.has("passes.merge-functions") {
		pc.MergeFunctions = tc.Passes.MergeFunctions
	}

	if v.has("passes.inliner-threshold") {
		if tc.Passes.InlinerThreshold < 0 {
			return &Error{Field: "passes.inliner-threshold", Value: fmt.Sprint(tc.Passes.InlinerThreshold)}
		}
		pc.InlinerThreshold = tc.Passes.InlinerThreshold
	}

	return nil
}

func (v *validator) output(tc *tomlConfig, oc *OutputConfig) error {
	if v.has("output.dir") {
		if tc.Output.Dir == "" {
			return &Error{Field: "output.dir", Value: "", Reason: "empty directory"}
		}
		oc.Dir = tc.Output.Dir
	}

	if v.has("output.emit") {
		oc.Emit = nil
		seen := make(map[OutputKind]struct{})

		for _, name := range tc.Output.Emit {
			k, err := OutputKinds.Parse(name)
			if err != nil {
				return &Error{Field: "output.emit", Value: name}
			}

			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			oc.Emit = append(oc.Emit, k)
		}
	}

	if v.has("output.jobs") {
		if tc.Output.Jobs < 1 {
			return &Error{Field: "output.jobs", Value: fmt.Sprint(tc.Output.Jobs), Reason: "must be at least 1"}
		}
		oc.Jobs = tc.Output.Jobs
	}

	return nil
}
