package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the tscat configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the tscat configuration directory
const ConfigDirName = ".tscat"

// Config holds all tscat configuration
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Extract ExtractConfig `yaml:"extract"`
	Output  OutputConfig  `yaml:"output"`
}

// ScanConfig holds configuration for file discovery
type ScanConfig struct {
	// Exclude lists glob patterns for paths to skip during scans.
	Exclude []string `yaml:"exclude"`
	// IncludeJS enables scanning plain JavaScript files (.js, .mjs, .cjs)
	// alongside TypeScript.
	IncludeJS bool `yaml:"include_js"`
}

// ExtractConfig holds configuration for catalog extraction
type ExtractConfig struct {
	// Mode is the default extraction mode: "raw" or "detailed".
	Mode string `yaml:"mode"`
	// ReexportImports synthesizes import records for re-export sources.
	// Nil means the default (enabled).
	ReexportImports *bool `yaml:"reexport_imports"`
	// Jobs bounds extraction parallelism; 0 means one worker per CPU.
	Jobs int `yaml:"jobs"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format is the default output format: "yaml" or "json".
	Format string `yaml:"format"`
}

// ReexportImportsEnabled reports the effective re-export import setting.
// Unset means enabled.
func (c *Config) ReexportImportsEnabled() bool {
	if c.Extract.ReexportImports == nil {
		return true
	}
	return *c.Extract.ReexportImports
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .tscat/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .tscat directory by walking up from startDir.
// Returns the path to the .tscat directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .tscat directory if it doesn't exist.
// Returns the path to the .tscat directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if cfg.Extract.Mode != "raw" && cfg.Extract.Mode != "detailed" {
		return fmt.Errorf("%w: extract.mode must be raw or detailed, got %q",
			ErrInvalidConfig, cfg.Extract.Mode)
	}

	if cfg.Extract.Jobs < 0 {
		return fmt.Errorf("%w: extract.jobs must be non-negative, got %d",
			ErrInvalidConfig, cfg.Extract.Jobs)
	}

	if cfg.Output.Format != "yaml" && cfg.Output.Format != "json" {
		return fmt.Errorf("%w: output.format must be yaml or json, got %q",
			ErrInvalidConfig, cfg.Output.Format)
	}

	return nil
}

// SaveDefault writes the default configuration to .tscat/config.yaml in
// workDir. Creates the .tscat directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
