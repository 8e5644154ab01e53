package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	ConfigFile  string

	// Discovery settings
	UnitPattern   string
	MethodPattern string
	PackageInit   string
	DirExclude    []string

	// Execution settings
	GoBinary string
	GoArgs   []string
	Timeout  time.Duration

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile    string
	UnitPattern   string
	MethodPattern string
	PackageInit   string
	DirExclude    []string
	Debug         bool
	Verbose       bool
	Stop          bool
	DryRun        bool
	Progress      bool
	OpenFailures  bool
	NoColor       bool
	Table         bool
	Tree          bool
	NameFilter    string
	Timeout       time.Duration
	GoArgs        []string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:   DefaultProjectPath,
		ConfigFile:    DefaultConfigFile,
		UnitPattern:   DefaultUnitPattern,
		MethodPattern: DefaultMethodPattern,
		PackageInit:   DefaultPackageInit,
		GoBinary:      DefaultGoBinary,
	}
	// Copy default exclusions
	cfg.DirExclude = make([]string, len(DefaultDirExclude))
	copy(cfg.DirExclude, DefaultDirExclude)
	return cfg
}

// Load creates a config from defaults, the project config file, the
// environment (including .env) and finally the flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags

	if flags.ConfigFile != "" {
		cfg.ConfigFile = flags.ConfigFile
	}
	if err := cfg.applyFile(flags.ConfigFile != ""); err != nil {
		return nil, err
	}

	// .env might not exist, that's okay - use environment variables
	_ = godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))
	cfg.applyEnv()

	cfg.applyFlags(flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TESTFLO_UNIT_PATTERN"); v != "" {
		c.UnitPattern = v
	}
	if v := os.Getenv("TESTFLO_METHOD_PATTERN"); v != "" {
		c.MethodPattern = v
	}
	if v := os.Getenv("TESTFLO_PACKAGE_INIT"); v != "" {
		c.PackageInit = v
	}
	if v := os.Getenv("TESTFLO_GO"); v != "" {
		c.GoBinary = v
	}
}

func (c *Config) applyFlags(flags Flags) {
	if flags.UnitPattern != "" {
		c.UnitPattern = flags.UnitPattern
	}
	if flags.MethodPattern != "" {
		c.MethodPattern = flags.MethodPattern
	}
	if flags.PackageInit != "" {
		c.PackageInit = flags.PackageInit
	}
	if len(flags.DirExclude) > 0 {
		c.DirExclude = append(c.DirExclude, flags.DirExclude...)
	}
	if flags.Timeout > 0 {
		c.Timeout = flags.Timeout
	}
	if len(flags.GoArgs) > 0 {
		c.GoArgs = append(c.GoArgs, flags.GoArgs...)
	}
}

// Validate checks that every glob pattern is well formed
func (c *Config) Validate() error {
	patterns := append([]string{c.UnitPattern, c.MethodPattern, c.PackageInit}, c.DirExclude...)
	for _, pattern := range patterns {
		if pattern == "" {
			return fmt.Errorf("empty pattern in configuration")
		}
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid pattern %q", pattern)
		}
	}
	return nil
}

// GetConfigPath returns the path to the project config file
func (c *Config) GetConfigPath() string {
	if filepath.IsAbs(c.ConfigFile) {
		return c.ConfigFile
	}
	return filepath.Join(c.ProjectPath, c.ConfigFile)
}
