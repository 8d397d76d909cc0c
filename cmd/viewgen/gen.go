package main

import (
	"errors"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"viewgen/internal/diag"
	"viewgen/internal/driver"
	"viewgen/internal/emit"
)

var (
	genOut      string
	genDumpPlan bool
)

func init() {
	genCmd.Flags().StringVarP(&genOut, "out", "o", "", "output directory (overrides config)")
	genCmd.Flags().BoolVar(&genDumpPlan, "dump-plan", false, "dump resolved views to stderr before emitting")
}

var genCmd = &cobra.Command{
	Use:   "gen [definition files...]",
	Short: "Generate view types from record definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		paths, err := definitionPaths(cfg, args)
		if err != nil {
			return err
		}

		opts := driver.Options{
			Emit: emit.Config{
				OutputDir:  cfg.OutDir,
				FileSuffix: cfg.FileSuffix,
				Header:     cfg.Header,
			},
		}
		if genOut != "" {
			opts.Emit.OutputDir = genOut
		}

		summary, err := driver.Run(cmd.Context(), logger, opts, paths)
		if err != nil {
			return err
		}

		if genDumpPlan {
			spew.Fdump(os.Stderr, summary.Resolved())
		}

		diag.FprintAll(os.Stderr, &summary.Diagnostics)

		if summary.Diagnostics.HasErrors() {
			return errors.New(summary.Diagnostics.Summary())
		}

		return nil
	},
}
