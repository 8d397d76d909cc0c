// Package config loads the optional viewgen.toml tool configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the tool looks for its configuration when no
// --config flag is given.
const DefaultPath = "viewgen.toml"

// Config holds tool-level settings. Definition files themselves are YAML;
// this file only configures how the tool runs.
type Config struct {
	// OutDir is the directory generated files are written to.
	OutDir string `toml:"out_dir"`
	// FileSuffix is appended to the lowercased record name.
	FileSuffix string `toml:"file_suffix"`
	// Header toggles the generated-code header comment.
	Header bool `toml:"header"`
	// LogLevel sets the default log verbosity (trace|debug|info|warn|error).
	LogLevel string `toml:"log_level"`
	// Defs lists definition file globs used when the command line names none.
	Defs []string `toml:"defs"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutDir:     "./generated",
		FileSuffix: "_views.rs",
		Header:     true,
		LogLevel:   "warn",
	}
}

// Load reads the configuration file at path, layered over the defaults.
// A missing file at the default path is not an error; an explicitly named
// file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}

		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}
