package cmd

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"update-object-generator/internal/configpaths"
)

// LogOptions configure logging. They are shared by every command.
type LogOptions struct {
	Level string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"UOG_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" type:"path" env:"UOG_LOG_FILE"`
}

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"generate,inspect"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output  string `help:"Destination file path (defaults to .update-object-generator.<ext> in the current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run generates a configuration template from the command's flags and their defaults.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	root, err := Template(c.Command, format)
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = "." + configpaths.AppName + "." + format
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}

	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	data, err := marshalTemplate(root, format)
	if err != nil {
		return err
	}

	return os.WriteFile(dest, data, 0o644)
}

// Template returns the configuration keys of a command with their defaults,
// laid out the way the loader of format resolves them:
//
//   - json: flat snake_case keys (log_level, mutable_collections);
//   - yaml: command flags nested under the command, root flags under their
//     prefix (generate.mutable-collections, log.level);
//   - toml: flat kebab-case command flags and a [log] table, since the TOML
//     loader rejects keys that are not flag names.
func Template(command, format string) (map[string]any, error) {
	format = normalizeFormat(format)
	if format == "" {
		return nil, errors.New("unsupported format; expected json, yaml or toml")
	}

	settings, err := templateSettings(command)
	if err != nil {
		return nil, err
	}

	root := map[string]any{}

	for _, s := range settings {
		switch {
		case format == "json":
			root[strings.ReplaceAll(s.flag, "-", "_")] = s.value
		case s.command == "":
			group, key, ok := strings.Cut(s.flag, "-")
			if !ok {
				root[s.flag] = s.value
				continue
			}

			table(root, group)[key] = s.value
		case format == "yaml":
			table(root, s.command)[s.flag] = s.value
		default:
			root[s.flag] = s.value
		}
	}

	return root, nil
}

// setting is a flag that can be set from a configuration file. Root flags have
// no command.
type setting struct {
	command string
	flag    string
	value   any
}

// templateCLI mirrors the flags of the root command line that configuration
// files may set.
type templateCLI struct {
	Log      LogOptions `embed:"" prefix:"log-"`
	Generate Generate   `cmd:""`
	Inspect  Inspect    `cmd:""`
}

// templateSettings lists the settings of a command in declaration order, root
// flags first. Flags without a default are left out: an empty path in a
// configuration file would resolve to the working directory.
func templateSettings(command string) ([]setting, error) {
	parser, err := kong.New(&templateCLI{}, kong.Name(configpaths.AppName))
	if err != nil {
		return nil, fmt.Errorf("build flag model: %w", err)
	}

	app := parser.Model

	var node *kong.Node

	for _, child := range app.Children {
		if child.Name == command {
			node = child
		}
	}

	if node == nil {
		return nil, errors.New("unknown command; expected 'generate' or 'inspect'")
	}

	var out []setting

	add := func(cmdName string, flags []*kong.Flag) {
		for _, f := range flags {
			if f == app.HelpFlag || f.Hidden {
				continue
			}

			if v := defaultValue(f.Target.Type(), f.Default); v != nil {
				out = append(out, setting{command: cmdName, flag: f.Name, value: v})
			}
		}
	}

	add("", app.Flags)
	add(node.Name, node.Flags)

	return out, nil
}

func table(root map[string]any, name string) map[string]any {
	if t, ok := root[name].(map[string]any); ok {
		return t
	}

	t := map[string]any{}
	root[name] = t

	return t
}

func marshalTemplate(root map[string]any, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.Marshal(root, json.Deterministic(true), jsontext.WithIndent("  "))
	case "yaml":
		return yaml.Marshal(root)
	case "toml":
		tree, err := toml.TreeFromMap(root)
		if err != nil {
			return nil, err
		}

		return tree.Marshal()
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

func defaultValue(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		if def == "" {
			return nil
		}

		return def
	case reflect.Bool:
		b, err := strconv.ParseBool(def)
		if err != nil {
			return false
		}

		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(def, 10, 64)
		if err != nil {
			return int64(0)
		}

		return n
	default:
		return nil
	}
}
