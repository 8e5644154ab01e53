package commands

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"testflo/internal/cli"
	"testflo/internal/config"
	"testflo/internal/discovery"
	"testflo/internal/domain"
	"testflo/internal/logging"
	"testflo/internal/source"
	"testflo/internal/ui"
)

// ErrTestsFailed is returned by the run command when at least one test failed
var ErrTestsFailed = errors.New("tests failed")

// Env holds the dependencies shared by all commands. It is filled in once
// flags are parsed.
type Env struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Loader     *source.Loader
	Discoverer *discovery.Discoverer
	Filter     *discovery.Filter
	Stdout     io.Writer
	Stderr     io.Writer
}

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	List *ListCommand

	env *Env
}

// NewCommands creates all commands writing to stdout and stderr
func NewCommands(stdout, stderr io.Writer) *Commands {
	env := &Env{
		Stdout: stdout,
		Stderr: stderr,
		Logger: zerolog.Nop(),
	}

	return &Commands{
		Run:  NewRunCommand(env, ui.NewFailureViewer()),
		List: NewListCommand(env),
		env:  env,
	}
}

// Setup loads the configuration and builds the discovery pipeline
func (c *Commands) Setup(flags *cli.Flags) error {
	cfg, err := config.Load(flags.ToConfigFlags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if flags.NoColor {
		color.NoColor = true
	}

	logger := logging.New(c.env.Stderr, flags.Debug)
	loader := source.NewLoader(cfg.ProjectPath, logger)
	walker := discovery.NewWalker(cfg.DirExclude, logger)

	c.env.Config = cfg
	c.env.Logger = logger
	c.env.Loader = loader
	c.env.Discoverer = discovery.NewDiscoverer(cfg, walker, loader, logger)
	c.env.Filter = discovery.NewFilter()

	logger.Debug().
		Str("unit_pattern", cfg.UnitPattern).
		Str("method_pattern", cfg.MethodPattern).
		Str("package_init", cfg.PackageInit).
		Strs("exclude", cfg.DirExclude).
		Msg("configuration loaded")

	return nil
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.Setup(flags)
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.ConfigFile, "config", "", "Path to the config file (default .testflo.yaml)")
	pf.StringVar(&flags.UnitPattern, "unit-pattern", "", "Glob matched against file names to find test units (default \"*_test.go\")")
	pf.StringVar(&flags.MethodPattern, "method-pattern", "", "Glob matched against test function names (default \"Test*\")")
	pf.StringVar(&flags.PackageInit, "package-init", "", "Glob of files standing for their whole package (default \"doc.go\")")
	pf.StringArrayVar(&flags.Exclude, "exclude", nil, "Directory name glob to skip; repeatable")
	pf.BoolVar(&flags.Debug, "debug", false, "Log discovery and execution details")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [inputs...]",
		Short: "Discover and run tests",
		Long: "Discover tests under the given files, directories, packages or test identifiers " +
			"and run them one at a time, reporting each result as it finishes.",
		RunE: c.Run.Execute,
	}
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Print a line for every test")
	runCmd.Flags().BoolVarP(&flags.Stop, "stop", "x", false, "Stop after the first failure")
	runCmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the discovered tests without running them")
	runCmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failure viewer when the run has failures")
	runCmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Timeout for each test (0 means none)")
	runCmd.Flags().StringArrayVar(&flags.GoArgs, "go-arg", nil, "Extra argument for go test; repeatable")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Only run tests whose name matches (supports wildcards, e.g. '*Suite.TestAdd*')")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list [inputs...]",
		Short: "List discovered tests",
		Long:  "Discover tests and print their identifiers without running them",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().BoolVar(&flags.Table, "table", false, "Print the tests as a table")
	listCmd.Flags().BoolVar(&flags.Tree, "tree", false, "Print the tests grouped by unit and case")
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Only list tests whose name matches (supports wildcards)")
	rootCmd.AddCommand(listCmd)
}

// discover runs discovery over inputs, the current directory when empty,
// and applies the name filter
func (env *Env) discover(args []string) iter.Seq[domain.Identifier] {
	if len(args) == 0 {
		args = []string{"."}
	}
	ids := env.Discoverer.Discover(args)
	if pattern := env.Config.Flags.NameFilter; pattern != "" {
		ids = env.Filter.Stage(pattern, ids)
	}
	return ids
}
