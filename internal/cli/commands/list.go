package commands

import (
	"bufio"
	"slices"

	"github.com/spf13/cobra"

	"testflo/internal/discovery"
	"testflo/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	env *Env
}

// NewListCommand creates a new ListCommand
func NewListCommand(env *Env) *ListCommand {
	return &ListCommand{env: env}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := lc.env.Config.Flags
	ids := lc.env.discover(args)

	out := bufio.NewWriter(lc.env.Stdout)
	defer out.Flush()

	switch {
	case flags.Table:
		if err := ui.NewFormatter(out).PrintTable(slices.Collect(ids)); err != nil {
			return err
		}
	case flags.Tree:
		if err := ui.NewFormatter(out).PrintTree(slices.Collect(ids)); err != nil {
			return err
		}
	default:
		for range discovery.DryRun(out, ids) {
		}
	}

	return out.Flush()
}
