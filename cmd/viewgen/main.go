// Package main provides the CLI entrypoint for viewgen.
//
// viewgen reads annotated record definitions and generates, for each
// declared view, a borrow-scoped view type, a reborrow (scope narrowing)
// method and a constructor template.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"viewgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "viewgen",
	Short: "Generate borrow-scoped view types from annotated record definitions",
	Long: `viewgen synthesizes auxiliary view types for annotated records: each view
exposes a declared subset of the record's fields, borrowed shared or
exclusive, so several non-overlapping views of one owner can be live at
once.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to viewgen.toml (default: ./viewgen.toml if present)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
