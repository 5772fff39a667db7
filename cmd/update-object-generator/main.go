package main

import (
	"os"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"update-object-generator/internal/config"
	"update-object-generator/internal/configpaths"
	"update-object-generator/internal/log"
)

var version = "dev"

func main() {
	userCfg := configpaths.FindUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name(configpaths.AppName),
		kong.Description("Generates update objects and partial objects for annotated record types"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Flags and env override config values; earlier files win.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}

	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
