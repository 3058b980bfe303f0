// Package config loads the objectlists settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the settings file read when no --config flag is given.
	DefaultPath = "config.yaml"
	// DefaultTemplatePath is copied to DefaultPath on first run.
	DefaultTemplatePath = "config-template.yaml"

	defaultOutputPath = "../src/standardobjectlist.ts"
)

// Environment overrides, applied after the file is read.
const (
	EnvInstallPath = "OBJECTLISTS_OPENRCT2_PATH"
	EnvOutputPath  = "OBJECTLISTS_OUTPUT_PATH"
)

var (
	// ErrConfigCreated is returned after a fresh settings file was put in
	// place; the operator has to edit it before running again.
	ErrConfigCreated = errors.New("config file created")
	// ErrInvalidInstallPath is returned when openrct2_path is not a directory.
	ErrInvalidInstallPath = errors.New("invalid OpenRCT2 install path")
)

// Config holds the objectlists settings.
type Config struct {
	// OpenRCT2Path is the install folder holding the executables and data/.
	OpenRCT2Path string `yaml:"openrct2_path"`
	// OutputPath is where the generated TypeScript module is written.
	OutputPath string `yaml:"output_path"`
}

// DefaultConfig returns the settings written when no template is available.
func DefaultConfig() *Config {
	return &Config{
		OpenRCT2Path: "/path/to/OpenRCT2",
		OutputPath:   defaultOutputPath,
	}
}

// Load reads the settings file at path. When the file does not exist it is
// created from templatePath (or from DefaultConfig when there is no template)
// and ErrConfigCreated is returned.
func Load(path, templatePath string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := createFromTemplate(path, templatePath); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s needs to be modified to point to your OpenRCT2 install folder, then run again", ErrConfigCreated, path)
	}

	cfg := &Config{OutputPath: defaultOutputPath}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	if cfg.OutputPath == "" {
		cfg.OutputPath = defaultOutputPath
	}
	return cfg, nil
}

func createFromTemplate(path, templatePath string) error {
	if templatePath != "" {
		data, err := os.ReadFile(templatePath)
		if err == nil {
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to copy config template: %w", err)
			}
			return nil
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config template: %w", err)
		}
	}
	return DefaultConfig().Save(path)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvInstallPath); v != "" {
		c.OpenRCT2Path = v
	}
	if v := os.Getenv(EnvOutputPath); v != "" {
		c.OutputPath = v
	}
}

// Validate checks that the install path exists.
func (c *Config) Validate() error {
	if c.OpenRCT2Path == "" {
		return fmt.Errorf("%w: openrct2_path is empty; edit the config to point to your OpenRCT2 install folder", ErrInvalidInstallPath)
	}
	info, err := os.Stat(c.OpenRCT2Path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory; edit the config to point to your OpenRCT2 install folder, where the executables and the stock data/ are", ErrInvalidInstallPath, c.OpenRCT2Path)
	}
	return nil
}

// ObjectRoot returns the directory holding the bundled object definitions.
func (c *Config) ObjectRoot() string {
	return filepath.Join(c.OpenRCT2Path, "data", "object")
}
