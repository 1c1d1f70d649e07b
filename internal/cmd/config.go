package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	toml "github.com/pelletier/go-toml"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"mvvmgen/internal/config"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Write a configuration file holding the default settings."`
}

// ConfigInit scaffolds a configuration file.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to mvvmgen.<format> in the current directory)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// Run is called by Kong when the config init command is executed.
func (c *ConfigInit) Run(logger *zap.Logger) error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	dest := c.Output
	if dest == "" {
		dest = "mvvmgen." + format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}

	data, err := marshalConfig(config.New(), format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	logger.Info("wrote config", zap.String("file", dest), zap.String("format", format))
	return nil
}

func marshalConfig(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.Marshal(cfg, jsontext.WithIndent("  "))
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}
