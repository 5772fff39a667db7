// Package configpaths locates configuration files.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// AppName names the per-user configuration directory and the config file base.
const AppName = "update-object-generator"

// EnvConfig selects a configuration file when --config is not given.
const EnvConfig = "UPDATE_OBJECT_GENERATOR_CONFIG"

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, AppName), nil
		}

		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}

		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", AppName), nil
		}

		return "", errors.New("HOME not set")
	}
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths builds candidate paths for config files per format, in
// priority order: userPath, the working directory, then the config home.
// userPath is routed to the loader matching its extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	wd, _ := os.Getwd()
	home, _ := DefaultConfigDir()

	return candidatePaths(userPath, wd, home)
}

func candidatePaths(userPath, wd, home string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}

	addDir := func(dir, base string) {
		jsonPaths = append(jsonPaths, filepath.Join(dir, base+".json"))
		yamlPaths = append(yamlPaths, filepath.Join(dir, base+".yaml"), filepath.Join(dir, base+".yml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, base+".toml"))
	}

	if wd != "" {
		addDir(wd, "."+AppName)
	}

	if home != "" {
		addDir(home, "config")
	}

	return jsonPaths, yamlPaths, tomlPaths
}

// FindUserConfig returns the value of --config in args, falling back to the
// EnvConfig environment variable.
func FindUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]

		if v, ok := strings.CutPrefix(a, "--config="); ok {
			return v
		}

		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}

	return os.Getenv(EnvConfig)
}
