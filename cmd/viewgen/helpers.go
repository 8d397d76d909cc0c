package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"viewgen/internal/config"
)

// setup loads the tool configuration and builds the CLI logger from the
// persistent flags.
func setup(cmd *cobra.Command) (config.Config, zerolog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, zerolog.Nop(), fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	if verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)

	return cfg, logger, nil
}

// definitionPaths returns the definition files to process: the command
// line arguments when present, otherwise the configured globs.
func definitionPaths(cfg config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var paths []string

	for _, pattern := range cfg.Defs {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad definition glob %q: %w", pattern, err)
		}

		paths = append(paths, matches...)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no definition files: pass them as arguments or set defs in %s", config.DefaultPath)
	}

	return paths, nil
}
