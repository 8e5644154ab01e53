package commands

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"testflo/internal/discovery"
	"testflo/internal/execution"
	"testflo/internal/parser"
	"testflo/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	env    *Env
	viewer ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(env *Env, viewer ui.Viewer) *RunCommand {
	return &RunCommand{
		env:    env,
		viewer: viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.env.Config
	flags := cfg.Flags

	ids := rc.env.discover(args)

	out := bufio.NewWriter(rc.env.Stdout)
	defer out.Flush()

	if flags.DryRun {
		for range discovery.DryRun(out, ids) {
		}
		return nil
	}

	runner := execution.NewRunner(cfg, rc.env.Loader, parser.NewGoTestParser(), rc.env.Logger)
	executor := execution.NewSequentialExecutor(runner, rc.env.Logger, execution.WithStopOnFailure(flags.Stop))

	var printerOpts []ui.PrinterOption
	if !flags.NoColor {
		printerOpts = append(printerOpts, ui.WithColor())
	}
	printer := ui.NewPrinter(out, flags.Verbose, printerOpts...)
	summary := ui.NewSummary(out)
	collector := ui.NewFailureCollector()

	results := executor.Stage(cmd.Context(), ids)
	if flags.Progress {
		results = ui.NewProgressBar(rc.env.Stderr).Stage(results)
	}
	results = printer.Stage(results)
	results = summary.Stage(results)
	results = collector.Stage(results)

	for range results {
	}

	if err := errors.Join(printer.Err(), summary.Err()); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	failures := collector.Failures()
	if flags.OpenFailures && len(failures) > 0 {
		if err := rc.viewer.View(failures); err != nil {
			return fmt.Errorf("failed to open failure viewer: %w", err)
		}
	}

	if len(failures) > 0 {
		return ErrTestsFailed
	}
	return nil
}
