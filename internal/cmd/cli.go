package cmd

import "github.com/alecthomas/kong"

// CLI is the root command line of uniffi-bindgen-go.
type CLI struct {
	Config  string           `help:"Path to a JSON, YAML or TOML configuration file" type:"path" env:"UNIFFI_BINDGEN_GO_CONFIG"`
	Log     Log              `embed:"" prefix:"log."`
	Version kong.VersionFlag `help:"Print the generator version and exit"`

	Generate  Generate      `cmd:"" default:"withargs" help:"Generate Go bindings"`
	ConfigCmd ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}

// Log configures the process logger.
type Log struct {
	Level  string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"UNIFFI_BINDGEN_GO_LOG_LEVEL"`
	File   string `help:"Also write logs to this file" env:"UNIFFI_BINDGEN_GO_LOG_FILE"`
	Format string `help:"Log record format" enum:"auto,text,json" default:"auto" env:"UNIFFI_BINDGEN_GO_LOG_FORMAT"`
}
