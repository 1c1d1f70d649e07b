// Package cmd holds the command line commands of mvvmgen.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvvmgen/internal/config"
	"mvvmgen/internal/logs"
)

// RunID correlates the log lines and reports of one invocation.
type RunID string

// CLI is the root command line grammar.
type CLI struct {
	Config   string `help:"Generator config file (YAML, JSON or TOML). Defaults to mvvmgen.{yaml,yml,json,toml} in the working directory." short:"c" type:"path" env:"MVVMGEN_CONFIG"`
	Platform string `help:"Target UI platform (wpf, winui, avalonia); overrides the config file." short:"p"`
	Strict   bool   `help:"Report warnings as errors and unresolved dependency names as info."`
	Quiet    bool   `help:"Suppress warnings and info diagnostics." short:"q"`

	Log logs.Config `embed:"" prefix:"log."`

	Generate Generate      `cmd:"" help:"Generate C# sources from declaration manifests."`
	Watch    Watch         `cmd:"" help:"Regenerate whenever a manifest changes."`
	Cfg      ConfigCommand `cmd:"" name:"config" help:"Configuration helpers."`
}

var defaultConfigNames = []string{"mvvmgen.yaml", "mvvmgen.yml", "mvvmgen.json", "mvvmgen.toml"}

// ConfigCandidatePaths splits the configuration files to try by format. A
// user supplied path comes first; the working directory defaults follow.
func ConfigCandidatePaths(user string) (jsonPaths, yamlPaths, tomlPaths []string) {
	paths := defaultConfigNames
	if user != "" {
		paths = append([]string{user}, paths...)
	}
	for _, p := range paths {
		switch strings.ToLower(filepath.Ext(p)) {
		case ".json":
			jsonPaths = append(jsonPaths, p)
		case ".toml":
			tomlPaths = append(tomlPaths, p)
		default:
			yamlPaths = append(yamlPaths, p)
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}

// LoadConfig builds the generator configuration: defaults, then the config
// file, then command line overrides.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg := config.New()

	path := c.Config
	if path == "" {
		for _, name := range defaultConfigNames {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if c.Platform != "" {
		cfg.Options.Platform = config.Platform(strings.ToLower(c.Platform))
	}
	cfg.Options.Strict = cfg.Options.Strict || c.Strict
	cfg.Options.Quiet = cfg.Options.Quiet || c.Quiet
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
