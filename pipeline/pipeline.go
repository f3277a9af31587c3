// Package pipeline finalizes built modules: it verifies and optimizes them and
// writes the requested artifacts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/emerge-lang/compiler/abi"
	"github.com/emerge-lang/compiler/config"
	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/llvm"
	"github.com/emerge-lang/compiler/report"
)

// Unit is an independent piece of compilation: it builds one module into a
// context it is handed.
type Unit struct {
	Name  string
	Build func(c *llvm.Context) (*llvm.Module, error)
}

// Artifacts lists the files written for a unit.
type Artifacts struct {
	Unit  string
	Paths map[config.OutputKind]string
}

// Pipeline finalizes modules according to a backend configuration.
type Pipeline struct {
	cfg *config.Config
}

// New creates a new pipeline.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Config returns the configuration of the pipeline.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// MachineOptions returns the target machine options the config selects.
func MachineOptions(cfg *config.Config) llvm.MachineOptions {
	return llvm.MachineOptions{
		Triple:    cfg.Target.Triple,
		CPU:       cfg.Target.CPU,
		Features:  cfg.Target.Features,
		OptLevel:  cfg.Target.OptLevel,
		Reloc:     cfg.Target.Reloc,
		CodeModel: cfg.Target.CodeModel,
	}
}

// Finalize readies m for output and writes its artifacts.  Target machine
// creation, optimization and code generation run on a worker that is
// abandoned if ctx is done first; an ErrAbandoned error means the worker now
// owns c and will dispose it, so the caller must not touch c again.
func (p *Pipeline) Finalize(ctx context.Context, c *llvm.Context, m *llvm.Module) (Artifacts, error) {
	art := Artifacts{Unit: m.Name(), Paths: make(map[config.OutputKind]string)}

	if p.cfg.Timeout() > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout())
		defer cancel()
	}

	abandon := func() {
		report.ReportWarning("Abandoned", fmt.Sprintf("native work on `%s` finished after its deadline", art.Unit))
		c.Dispose()
	}

	var tm *llvm.TargetMachine
	err := runAbandonable(ctx, func() (err error) {
		tm, err = c.NewTargetMachine(MachineOptions(p.cfg))
		return
	}, abandon)
	if err != nil {
		return art, err
	}

	m.SetTarget(tm)
	if err := m.Verify(); err != nil {
		return art, err
	}

	if pipeline := p.cfg.Passes.Pipeline; pipeline != "" {
		phase := report.ReportBeginPhase(fmt.Sprintf("Optimizing `%s`", art.Unit))

		err := runAbandonable(ctx, func() error {
			return llvm.RunPasses(m, pipeline, tm, p.passOptions(c))
		}, abandon)
		if err == nil {
			err = m.Verify()
		}

		report.ReportEndPhase(phase, err == nil)
		if err != nil {
			return art, err
		}
	}

	if err := os.MkdirAll(p.cfg.Output.Dir, 0o755); err != nil {
		return art, fmt.Errorf("unable to create output directory: %w", err)
	}

	phase := report.ReportBeginPhase(fmt.Sprintf("Emitting `%s`", art.Unit))
	err = p.emit(ctx, m, tm, &art, abandon)
	report.ReportEndPhase(phase, err == nil)

	return art, err
}

// passOptions builds pass options from the config.  They are owned by c.
func (p *Pipeline) passOptions(c *llvm.Context) *llvm.PassOptions {
	pc := p.cfg.Passes

	opts := c.NewPassOptions()
	opts.VerifyEach(pc.VerifyEach)
	opts.LoopVectorization(pc.LoopVectorize)
	opts.SLPVectorization(pc.SLPVectorize)
	opts.LoopUnrolling(pc.LoopUnroll)
	opts.MergeFunctions(pc.MergeFunctions)

	if pc.InlinerThreshold > 0 {
		opts.InlinerThreshold(pc.InlinerThreshold)
	}

	return opts
}

var codegenFileTypes = map[config.OutputKind]abi.FileType{
	config.OutputAssembly: abi.AssemblyFile,
	config.OutputObject:   abi.ObjectFile,
}

// emit writes every requested artifact of m.
func (p *Pipeline) emit(ctx context.Context, m *llvm.Module, tm *llvm.TargetMachine, art *Artifacts, abandon func()) error {
	for _, kind := range p.cfg.Output.Emit {
		path := filepath.Join(p.cfg.Output.Dir, art.Unit+kind.Ext())

		var err error
		switch kind {
		case config.OutputIR:
			err = m.WriteIRToFile(path)
		case config.OutputBitcode:
			err = m.WriteBitcodeToFile(path)
		default:
			ft := codegenFileTypes[kind]
			err = runAbandonable(ctx, func() error {
				return tm.EmitToFile(m, path, ft)
			}, abandon)
		}

		if err != nil {
			return err
		}

		art.Paths[kind] = path
	}

	return nil
}

// -----------------------------------------------------------------------------

// CompileAll builds and finalizes every unit, each in its own context.  At
// most cfg.Output.Jobs units are in flight at once.  Every failure is
// reported; the first one is returned and cancels the units still running.
// A programming error raised while handling a unit is reported as an internal
// compiler error for that unit.
func (p *Pipeline) CompileAll(ctx context.Context, units []Unit) ([]Artifacts, error) {
	results := make([]Artifacts, len(units))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.Output.Jobs, 1))

	for i, unit := range units {
		g.Go(func() error {
			art, err := p.compileUnit(ctx, unit)
			if errs.IsProgrammingError(err) {
				report.ReportICE("unit `%s`: %s", unit.Name, err)
				return err
			} else if err != nil {
				report.ReportError(fmt.Sprintf("Unit `%s`", unit.Name), err)
				return err
			}

			results[i] = art
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (p *Pipeline) compileUnit(ctx context.Context, unit Unit) (art Artifacts, err error) {
	if err := ctx.Err(); err != nil {
		return art, err
	}

	c := llvm.NewContext()
	defer func() {
		if !errors.Is(err, ErrAbandoned) {
			c.Dispose()
		}
	}()

	var m *llvm.Module
	phase := report.ReportBeginPhase(fmt.Sprintf("Building `%s`", unit.Name))
	err = guard(func() (err error) {
		m, err = unit.Build(c)
		return
	})
	report.ReportEndPhase(phase, err == nil)
	if err != nil {
		return art, err
	}

	err = guard(func() (err error) {
		report.ReportDebug("unresolved", m.Unresolved())
		art, err = p.Finalize(ctx, c, m)
		return
	})
	return art, err
}
