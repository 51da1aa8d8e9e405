// Package config loads the project-level provisioning configuration,
// a small file declaring which tools a project wants and at which
// versions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"
)

// Config is the project provisioning configuration.
type Config struct {
	Project ProjectConfig     `json:"project" yaml:"project"`
	Tools   map[string]string `json:"tools" yaml:"tools"`
}

// ProjectConfig holds project metadata.
type ProjectConfig struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// configFiles are probed in order of preference.
var configFiles = []string{
	".tfprovision.yml",
	".tfprovision.yaml",
	".tfprovision.json5",
	".tfprovision.json",
}

// Load reads the configuration from the project directory. Each tool
// entry maps a tool name to a version request: an exact version,
// "latest", "skip", or "" to defer to that tool's pin file.
func Load(projectRoot string) (*Config, error) {
	for _, filename := range configFiles {
		path := filepath.Join(projectRoot, filename)
		if _, err := os.Stat(path); err == nil {
			return loadFile(path)
		}
	}

	return nil, fmt.Errorf("no configuration file found in %s (tried: %s)",
		projectRoot, strings.Join(configFiles, ", "))
}

// loadFile parses one configuration file by extension.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json5", ".json":
		err = json5.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate rejects configurations with no tools declared.
func (c *Config) Validate() error {
	if len(c.Tools) == 0 {
		return fmt.Errorf("no tools declared")
	}
	return nil
}
