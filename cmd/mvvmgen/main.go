// mvvmgen reads declaration manifests of annotated view models and controls
// and generates the C# partial classes implementing them.
package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/google/uuid"

	"mvvmgen/internal/cmd"
	"mvvmgen/internal/config"
	"mvvmgen/internal/logs"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := cmd.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("mvvmgen"),
		kong.Description("MVVM boilerplate generator for WPF, WinUI and Avalonia"),
		kong.UsageOnError(),
		// Flags override values from the config files.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	runID := cmd.RunID(uuid.NewString())
	logger := logs.WithRun(logs.New("mvvmgen", cli.Log, os.Stderr), string(runID))
	defer func() { _ = logger.Sync() }()

	ctx.Bind(logger, runID)
	ctx.FatalIfErrorf(ctx.BindToProvider(func() (*config.Config, error) {
		return cli.LoadConfig()
	}))

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}
		if (a == "--config" || a == "-c") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("MVVMGEN_CONFIG")
}
