package cli

import (
	"time"

	"testflo/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ConfigFile    string
	UnitPattern   string
	MethodPattern string
	PackageInit   string
	Exclude       []string
	Debug         bool

	Verbose      bool
	Stop         bool
	DryRun       bool
	Progress     bool
	OpenFailures bool
	NoColor      bool
	Timeout      time.Duration
	GoArgs       []string
	NameFilter   string

	Table bool
	Tree  bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ConfigFile:    f.ConfigFile,
		UnitPattern:   f.UnitPattern,
		MethodPattern: f.MethodPattern,
		PackageInit:   f.PackageInit,
		DirExclude:    f.Exclude,
		Debug:         f.Debug,
		Verbose:       f.Verbose,
		Stop:          f.Stop,
		DryRun:        f.DryRun,
		Progress:      f.Progress,
		OpenFailures:  f.OpenFailures,
		NoColor:       f.NoColor,
		Table:         f.Table,
		Tree:          f.Tree,
		NameFilter:    f.NameFilter,
		Timeout:       f.Timeout,
		GoArgs:        f.GoArgs,
	}
}
