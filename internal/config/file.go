package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors .testflo.yaml
type fileConfig struct {
	UnitPattern   string   `yaml:"unit_pattern"`
	MethodPattern string   `yaml:"method_pattern"`
	PackageInit   string   `yaml:"package_init"`
	DirExclude    []string `yaml:"dir_exclude"`
	Go            string   `yaml:"go"`
	GoArgs        []string `yaml:"go_args"`
	Timeout       string   `yaml:"timeout"`
}

// applyFile merges the project config file into c. A missing file is only
// an error when it was asked for explicitly.
func (c *Config) applyFile(required bool) error {
	path := c.GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	if err := ValidateFile(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.UnitPattern != "" {
		c.UnitPattern = fc.UnitPattern
	}
	if fc.MethodPattern != "" {
		c.MethodPattern = fc.MethodPattern
	}
	if fc.PackageInit != "" {
		c.PackageInit = fc.PackageInit
	}
	if fc.DirExclude != nil {
		c.DirExclude = fc.DirExclude
	}
	if fc.Go != "" {
		c.GoBinary = fc.Go
	}
	c.GoArgs = append(c.GoArgs, fc.GoArgs...)
	if fc.Timeout != "" {
		timeout, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("parse timeout: %w", err)
		}
		c.Timeout = timeout
	}

	return nil
}
