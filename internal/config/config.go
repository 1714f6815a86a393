// Package config provides project configuration for ruleport.
// It supports a YAML or TOML file at the project root, RULEPORT_* environment
// variables, and sensible defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/lewiesnyder/RulePort/internal/logging"
	"github.com/lewiesnyder/RulePort/internal/model"
)

// Config file names, in lookup order.
const (
	YAMLFileName = ".ruleport.yaml"
	TOMLFileName = ".ruleport.toml"
)

// Environment variables that override file values.
const (
	EnvSource   = "RULEPORT_SOURCE"
	EnvTargets  = "RULEPORT_TARGETS"
	EnvLogLevel = "RULEPORT_LOG_LEVEL"
	EnvRoot     = "RULEPORT_ROOT"
)

// Config represents the complete ruleport configuration.
type Config struct {
	// Source is the tool whose rules are read.
	Source string `json:"source" yaml:"source" toml:"source"`
	// Targets are the tools rendered on sync, in order.
	Targets []string `json:"targets" yaml:"targets" toml:"targets"`
	// LogLevel is one of error, warn, info, debug, trace.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// Paths overrides tool locations, keyed by tool name.
	Paths map[string]ToolPaths `json:"paths,omitempty" yaml:"paths,omitempty" toml:"paths,omitempty"`
}

// ToolPaths holds per-tool location overrides relative to the project root.
type ToolPaths struct {
	Rules        string `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
	Consolidated string `json:"consolidated,omitempty" yaml:"consolidated,omitempty" toml:"consolidated,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Source:   string(model.Cursor),
		Targets:  toolNames(model.DefaultTargets()),
		LogLevel: "warn",
	}
}

func toolNames(tools []model.Tool) []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.String()
	}
	return names
}

// FilePath returns the config file used for root: the first existing of
// .ruleport.yaml and .ruleport.toml, or the YAML path when neither exists.
func FilePath(root string) string {
	for _, name := range []string{YAMLFileName, TOMLFileName} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(root, YAMLFileName)
}

// Exists reports whether root has a config file.
func Exists(root string) bool {
	_, err := os.Stat(FilePath(root))
	return err == nil
}

// Load loads the configuration for root, merging with defaults.
// If no config file exists, returns the defaults with environment overrides.
func Load(root string) (*Config, error) {
	path := FilePath(root)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.applyEnvironment()
		return cfg, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific path. Files ending in
// .toml are decoded as TOML, everything else as YAML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// SaveToPath writes the configuration as YAML to path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := c.YAML()
	if err != nil {
		return err
	}

	// #nosec G306 - config file should be readable by user
	return os.WriteFile(path, data, 0o644)
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// applyEnvironment applies environment variable overrides.
func (c *Config) applyEnvironment() {
	if v := strings.TrimSpace(os.Getenv(EnvSource)); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvTargets); v != "" {
		if targets := splitList(v); len(targets) > 0 {
			c.Targets = targets
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

// splitList splits a comma-separated string. Empty segments are filtered out.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// ResolveRoot returns the project root: arg when set, else RULEPORT_ROOT,
// else the working directory. The result is absolute.
func ResolveRoot(arg string) (string, error) {
	root := arg
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		root = "."
	}
	return filepath.Abs(root)
}

// Validate checks tool names and the log level.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required, validation.By(knownTool)),
		validation.Field(&c.Targets, validation.Required, validation.Each(validation.By(knownTool))),
		validation.Field(&c.LogLevel, validation.By(knownLevel)),
		validation.Field(&c.Paths, validation.By(knownToolKeys)),
	)
}

func knownTool(value any) error {
	s, _ := value.(string)
	if _, err := model.ParseTool(s); err != nil {
		return errors.New("must be one of " + strings.Join(model.ToolNames(), ", "))
	}
	return nil
}

func knownLevel(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := logging.ParseLevel(s); err != nil {
		return errors.New("must be one of " + strings.Join(logging.LevelNames, ", "))
	}
	return nil
}

func knownToolKeys(value any) error {
	paths, _ := value.(map[string]ToolPaths)
	for name := range paths {
		if _, err := model.ParseTool(name); err != nil {
			return fmt.Errorf("unknown tool %q", name)
		}
	}
	return nil
}

// SourceTool returns the configured source as a model.Tool.
func (c *Config) SourceTool() (model.Tool, error) {
	return model.ParseTool(c.Source)
}

// TargetTools returns the configured targets, deduplicated, in order.
func (c *Config) TargetTools() ([]model.Tool, error) {
	return model.ParseTools(c.Targets)
}

// PathConfig resolves tool locations under root, applying any overrides.
// Relative overrides are joined to root.
func (c *Config) PathConfig(root string) model.PathConfig {
	p := model.DefaultPaths(root)
	for name, override := range c.Paths {
		t, err := model.ParseTool(name)
		if err != nil {
			continue
		}
		if override.Rules != "" {
			p.Rules[t] = resolve(root, override.Rules)
		}
		if override.Consolidated != "" {
			p.Consolidated[t] = resolve(root, override.Consolidated)
		}
	}
	return p
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
