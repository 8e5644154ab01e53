package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"testflo/internal/cli"
	"testflo/internal/cli/commands"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "testflo",
		Short: "Go test discovery and runner",
		Long: `Discover Go tests in files, directories, packages or by identifier, ` +
			`run them one at a time and report results as they finish.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var flags cli.Flags
	cmds := commands.NewCommands(os.Stdout, os.Stderr)
	cmds.Register(rootCmd, &flags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, commands.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
