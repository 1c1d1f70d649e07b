package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration.
type Config struct {
	DefaultValues map[string]string `yaml:"defaultValues" json:"defaultValues" toml:"defaultValues"`
	Options       Options           `yaml:"options" json:"options" toml:"options"`
}

// Options represents generation options.
type Options struct {
	Platform            Platform `yaml:"platform" json:"platform" toml:"platform"`
	FieldPrefixes       []string `yaml:"fieldPrefixes" json:"fieldPrefixes" toml:"fieldPrefixes"`
	NotifyMethod        string   `yaml:"notifyMethod" json:"notifyMethod" toml:"notifyMethod"`
	CommandNotifyMethod string   `yaml:"commandNotifyMethod" json:"commandNotifyMethod" toml:"commandNotifyMethod"`
	BusyPropertyName    string   `yaml:"busyPropertyName" json:"busyPropertyName" toml:"busyPropertyName"`
	ValidateMethod      string   `yaml:"validateMethod" json:"validateMethod" toml:"validateMethod"`
	Usings              []string `yaml:"usings" json:"usings" toml:"usings"`
	IncludeTypes        []string `yaml:"includeTypes" json:"includeTypes" toml:"includeTypes"`
	ExcludeTypes        []string `yaml:"excludeTypes" json:"excludeTypes" toml:"excludeTypes"`
	PublicOnly          bool     `yaml:"publicOnly" json:"publicOnly" toml:"publicOnly"`
	Strict              bool     `yaml:"strict" json:"strict" toml:"strict"`
	Quiet               bool     `yaml:"quiet" json:"quiet" toml:"quiet"`
	Parallelism         int      `yaml:"parallelism" json:"parallelism" toml:"parallelism"`
	IndentSize          int      `yaml:"indentSize" json:"indentSize" toml:"indentSize"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		DefaultValues: DefaultValues(),
		Options:       DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML, JSON or TOML based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded Config
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing TOML config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)

	return c.Validate()
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *Config) {
	// Loaded default values override the built-in vocabulary
	for k, v := range loaded.DefaultValues {
		c.DefaultValues[k] = v
	}

	o := loaded.Options
	if o.Platform != "" {
		c.Options.Platform = Platform(strings.ToLower(string(o.Platform)))
	}
	if o.FieldPrefixes != nil {
		c.Options.FieldPrefixes = o.FieldPrefixes
	}
	if o.NotifyMethod != "" {
		c.Options.NotifyMethod = o.NotifyMethod
	}
	if o.CommandNotifyMethod != "" {
		c.Options.CommandNotifyMethod = o.CommandNotifyMethod
	}
	if o.BusyPropertyName != "" {
		c.Options.BusyPropertyName = o.BusyPropertyName
	}
	if o.ValidateMethod != "" {
		c.Options.ValidateMethod = o.ValidateMethod
	}
	if o.Parallelism > 0 {
		c.Options.Parallelism = o.Parallelism
	}
	if o.IndentSize > 0 {
		c.Options.IndentSize = o.IndentSize
	}
	c.Options.Usings = append(c.Options.Usings, o.Usings...)
	c.Options.IncludeTypes = o.IncludeTypes
	c.Options.ExcludeTypes = o.ExcludeTypes
	c.Options.PublicOnly = c.Options.PublicOnly || o.PublicOnly
	c.Options.Strict = c.Options.Strict || o.Strict
	c.Options.Quiet = c.Options.Quiet || o.Quiet
}

// Validate checks option values that would otherwise surface as broken output.
func (c *Config) Validate() error {
	if !c.Options.Platform.Valid() {
		return fmt.Errorf("unsupported platform %q (supported: wpf, winui, avalonia)", c.Options.Platform)
	}
	if c.Options.NotifyMethod == "" {
		return fmt.Errorf("notifyMethod must not be empty")
	}
	return nil
}

// DefaultValueFor returns the configured default-value expression for a type.
func (c *Config) DefaultValueFor(typeName string) (string, bool) {
	v, ok := c.DefaultValues[typeName]
	return v, ok
}

// ShouldIncludeType checks if a type should be included based on config.
func (c *Config) ShouldIncludeType(name string, isPublic bool) bool {
	if c.Options.PublicOnly && !isPublic {
		return false
	}

	// Check include list (if specified, type must be in it)
	if len(c.Options.IncludeTypes) > 0 && !slices.Contains(c.Options.IncludeTypes, name) {
		return false
	}

	return !slices.Contains(c.Options.ExcludeTypes, name)
}
