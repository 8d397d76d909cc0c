package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"viewgen/internal/diag"
	"viewgen/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [definition files...]",
	Short: "Parse and resolve definitions without generating anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		paths, err := definitionPaths(cfg, args)
		if err != nil {
			return err
		}

		summary, err := driver.Run(cmd.Context(), logger, driver.Options{CheckOnly: true}, paths)
		if err != nil {
			return err
		}

		diag.FprintAll(os.Stderr, &summary.Diagnostics)

		if summary.Diagnostics.HasErrors() {
			return errors.New(summary.Diagnostics.Summary())
		}

		return nil
	},
}
