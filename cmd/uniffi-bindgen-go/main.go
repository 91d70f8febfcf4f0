package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/Alia5/uniffi-bindgen-go/internal/cmd"
	"github.com/Alia5/uniffi-bindgen-go/internal/codegen/common"
	"github.com/Alia5/uniffi-bindgen-go/internal/configpaths"
	"github.com/Alia5/uniffi-bindgen-go/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version := "unknown"
	if v, err := common.GetVersion(); err == nil {
		version = v.String()
	}

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("uniffi-bindgen-go"),
		kong.Description("Go bindings generator for UniFFI component interfaces"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File, cli.Log.Format)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx.Bind(logger)
	ctx.BindTo(sigCtx, (*context.Context)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("UNIFFI_BINDGEN_GO_CONFIG"); v != "" {
		return v
	}
	return ""
}
