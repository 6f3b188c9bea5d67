// Package config handles .nxgraphrc.yml project-level configuration:
// default bounds for the chain and cycle searches and a default project
// filter, so repeated invocations don't need to repeat flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig represents the .nxgraphrc.yml configuration file.
type ProjectConfig struct {
	Version  int              `yaml:"version"`
	Defaults defaultOverrides `yaml:"defaults"`
}

// defaultOverrides contains query-default overrides. Zero values mean
// "not set": the CLI flag defaults apply.
type defaultOverrides struct {
	MaxDepth  int    `yaml:"max_depth"`
	MaxPaths  int    `yaml:"max_paths"`
	MaxCycles int    `yaml:"max_cycles"`
	Project   string `yaml:"project"`
}

// LoadProjectConfig loads configuration from .nxgraphrc.yml or
// .nxgraphrc.yaml in dir. If explicitPath is provided, that file is
// loaded instead. Returns nil (no error) if no config file is found.
func LoadProjectConfig(dir string, explicitPath string) (*ProjectConfig, error) {
	var configPath string

	if explicitPath != "" {
		configPath = explicitPath
	} else {
		ymlPath := filepath.Join(dir, ".nxgraphrc.yml")
		yamlPath := filepath.Join(dir, ".nxgraphrc.yaml")

		if _, err := os.Stat(ymlPath); err == nil {
			configPath = ymlPath
		} else if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			return nil, nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read project config %s: %w", configPath, err)
	}

	cfg := &ProjectConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse project config %s: %w", configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project config %s: %w", configPath, err)
	}

	return cfg, nil
}

// Validate checks that the ProjectConfig values are valid.
func (c *ProjectConfig) Validate() error {
	if c.Version != 0 && c.Version != 1 {
		return fmt.Errorf("unsupported config version %d (expected 1)", c.Version)
	}
	if c.Defaults.MaxDepth < 0 || c.Defaults.MaxPaths < 0 || c.Defaults.MaxCycles < 0 {
		return fmt.Errorf("defaults must be >= 0")
	}
	switch c.Defaults.Project {
	case "", "web", "mobile", "libs":
	default:
		return fmt.Errorf("unknown project %q (expected web, mobile, or libs)", c.Defaults.Project)
	}
	return nil
}

// MaxDepth returns the configured max depth, or fallback when unset.
func (c *ProjectConfig) MaxDepth(fallback int) int {
	if c != nil && c.Defaults.MaxDepth > 0 {
		return c.Defaults.MaxDepth
	}
	return fallback
}

// MaxPaths returns the configured max paths, or fallback when unset.
func (c *ProjectConfig) MaxPaths(fallback int) int {
	if c != nil && c.Defaults.MaxPaths > 0 {
		return c.Defaults.MaxPaths
	}
	return fallback
}

// MaxCycles returns the configured max cycles, or fallback when unset.
func (c *ProjectConfig) MaxCycles(fallback int) int {
	if c != nil && c.Defaults.MaxCycles > 0 {
		return c.Defaults.MaxCycles
	}
	return fallback
}

// Project returns the configured project filter, or fallback when unset.
func (c *ProjectConfig) Project(fallback string) string {
	if c != nil && c.Defaults.Project != "" {
		return c.Defaults.Project
	}
	return fallback
}
