package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ComedicChimera/olive"

	"github.com/emerge-lang/compiler/config"
	"github.com/emerge-lang/compiler/errs"
	"github.com/emerge-lang/compiler/llvm"
	"github.com/emerge-lang/compiler/pipeline"
	"github.com/emerge-lang/compiler/report"
)

// Execute is the main entry point for the `emergec-llvm` CLI utility
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("emergec-llvm", "emergec-llvm drives the LLVM backend of the emerge compiler", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the backend log level", false, []string{"silent", "error", "warn", "verbose", "debug"})
	logLvlArg.SetDefaultValue("verbose")
	cli.AddStringArg("config", "c", "the path to the backend config file", false)

	cli.AddSubcommand("version", "print the pinned and installed LLVM versions", false)
	cli.AddSubcommand("check", "check the installed LLVM against the config", false)
	demoCmd := cli.AddSubcommand("demo", "compile the sample units", false)
	demoCmd.AddStringArg("out", "o", "the output directory, overriding the config", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	report.InitReporter(report.LogLevelNames[result.Arguments["loglevel"].(string)], os.Stdout)

	// programming errors inside the backend surface as panics: turn them into
	// an ICE rather than a stack trace
	err = errs.Catch(func() {
		subcmdName, subResult, _ := result.Subcommand()
		switch subcmdName {
		case "version":
			execVersionCommand()
		case "check":
			execCheckCommand(loadConfig(result))
		case "demo":
			execDemoCommand(loadConfig(result), subResult)
		}
	})
	if err != nil {
		report.ReportICE("%s", err)
		os.Exit(1)
	}

	if !report.ShouldProceed() {
		os.Exit(1)
	}
}

// loadConfig loads the config file named on the command line, or the one in
// the working directory if it exists, or the defaults.
func loadConfig(result *olive.ArgParseResult) *config.Config {
	path, ok := result.Arguments["config"].(string)
	if !ok {
		if _, err := os.Stat(config.FileName); err != nil {
			report.ReportInfo("Config", "no config file: using defaults")
			return config.Default()
		}

		path = config.FileName
	}

	cfg, err := config.Load(path)
	if err != nil {
		report.ReportFatal("%s", err)
	}

	report.ReportDebug("config", cfg)
	return cfg
}

// -----------------------------------------------------------------------------

func execVersionCommand() {
	report.ReportInfo("Pinned LLVM", fmt.Sprintf("%d.x", llvm.PinnedMajor))
	report.ReportInfo("Headers", llvm.HeaderVersion().String())
	report.ReportInfo("Installed LLVM", llvm.Version().String())
}

func execCheckCommand(cfg *config.Config) {
	if ok, problems := cfg.LLVMVersion.Validate(llvm.Version()); !ok {
		for _, p := range problems {
			report.ReportError("LLVM Version", p)
		}
		return
	}

	if err := llvm.CheckABI(); err != nil {
		report.ReportError("ABI", err)
		return
	}

	c := llvm.NewContext()
	defer c.Dispose()

	tm, err := c.NewTargetMachine(pipeline.MachineOptions(cfg))
	if err != nil {
		report.ReportError("Target", err)
		return
	}

	report.ReportInfo("Target", tm.Target().Description())
	report.ReportInfo("Triple", tm.Triple())
	report.ReportInfo("CPU", tm.CPU())
	report.ReportInfo("Data Layout", tm.DataLayout().String())
}

func execDemoCommand(cfg *config.Config, result *olive.ArgParseResult) {
	if out, ok := result.Arguments["out"].(string); ok {
		cfg.Output.Dir = out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	arts, err := pipeline.New(cfg).CompileAll(ctx, demoUnits(cfg))
	if err == nil {
		for _, art := range arts {
			for _, kind := range cfg.Output.Emit {
				report.ReportInfo(art.Unit, art.Paths[kind])
			}
		}
	}

	report.ReportSummary()
}
