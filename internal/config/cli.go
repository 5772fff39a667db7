// Package config defines the command line interface. Flags may also come from
// environment variables and from JSON, YAML or TOML configuration files.
package config

import (
	"github.com/alecthomas/kong"

	"update-object-generator/internal/cmd"
)

// CLI is the root of the command line.
type CLI struct {
	Log cmd.LogOptions `embed:"" prefix:"log-"`

	Config  string           `help:"Configuration file (.json, .yaml, .yml or .toml)" type:"path" env:"UPDATE_OBJECT_GENERATOR_CONFIG"`
	Version kong.VersionFlag `help:"Print the version and exit"`

	Generate cmd.Generate      `cmd:"" help:"Generate update objects for annotated classes"`
	Inspect  cmd.Inspect       `cmd:"" help:"Show how annotated classes would be generated"`
	ConfigC  cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
