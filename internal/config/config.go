package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how Analyze results are rendered by the CLI.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputTree OutputFormat = "tree"
	OutputDot  OutputFormat = "dot"
)

// Config holds varinsight's run-time settings.
type Config struct {
	// WorkspaceRoot is the directory Workspace.Load scans for .cs files.
	WorkspaceRoot string `yaml:"workspace_root" env:"VARI_WORKSPACE_ROOT"`

	// MaxDepth bounds the backward traversal (§4.9). Zero falls back to
	// insight.MaxDepth.
	MaxDepth int `yaml:"max_depth" env:"VARI_MAX_DEPTH"`

	// OutputFormat controls how the CLI renders a VariableInsightGraph.
	OutputFormat OutputFormat `yaml:"output_format" env:"VARI_OUTPUT_FORMAT"`

	// CacheDir, if set, enables the on-disk signature cache (pkg/csoracle's
	// parseCache) at <CacheDir>/signatures.msgpack.
	CacheDir string `yaml:"cache_dir" env:"VARI_CACHE_DIR"`

	Verbose bool `yaml:"verbose" env:"VARI_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WorkspaceRoot: ".",
		MaxDepth:      0,
		OutputFormat:  OutputTree,
		CacheDir:      "",
		Verbose:       false,
	}
}

// globalConfigFilePath returns the global config file path (~/.varinsight/config.yaml).
func globalConfigFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".varinsight/config.yaml"
	}
	return filepath.Join(home, ".varinsight", "config.yaml")
}

// projectConfigFilePath returns the project-level config file path (./.varinsight/config.yaml).
func projectConfigFilePath() string {
	return ".varinsight/config.yaml"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.varinsight/config.yaml)
// 3. Global config (~/.varinsight/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	globalConfigPath := globalConfigFilePath()
	if data, err := os.ReadFile(globalConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", globalConfigPath, err)
		}
	}

	projectConfigPath := projectConfigFilePath()
	if data, err := os.ReadFile(projectConfigPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", projectConfigPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file path, creating
// parent directories if they don't exist.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VARI_WORKSPACE_ROOT"); v != "" {
		cfg.WorkspaceRoot = v
	}
	if v := os.Getenv("VARI_MAX_DEPTH"); v != "" {
		if i := parseInt(v); i > 0 {
			cfg.MaxDepth = i
		}
	}
	if v := os.Getenv("VARI_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}
	if v := os.Getenv("VARI_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("VARI_VERBOSE"); v != "" {
		cfg.Verbose = v == "true" || v == "1" || v == "yes"
	}
}

// Validate checks that the configuration has valid required fields.
func (c *Config) Validate() error {
	if c.WorkspaceRoot == "" {
		return fmt.Errorf("workspace_root must not be empty")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be non-negative")
	}
	switch c.OutputFormat {
	case OutputJSON, OutputTree, OutputDot:
	default:
		return fmt.Errorf("invalid output_format: %s (must be 'json', 'tree' or 'dot')", c.OutputFormat)
	}
	return nil
}

// parseInt attempts to parse a string as int.
func parseInt(s string) int {
	var i int
	if _, err := fmt.Sscanf(s, "%d", &i); err != nil {
		return 0
	}
	return i
}
