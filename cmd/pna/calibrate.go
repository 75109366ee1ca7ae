package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/pna/layout"
)

func newCalibrateCmd() *cobra.Command {
	cfgCols := layout.DefaultColumnConfig()

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Derive column separators from the selected pages",
		Long: `Calibrate finds the whitespace gutters between the register columns on the
selected pages and prints separators for COLUMN_SEPARATORS. Pick a few
ordinary pages: the table area of the profile still applies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProcessor(cfg)
			if err != nil {
				return err
			}

			profile, err := p.Calibrate(cmd.Context(), cfgCols)
			if err != nil {
				return err
			}

			seps := make([]string, len(profile.Separators))
			for i, s := range profile.Separators {
				seps[i] = strconv.FormatFloat(s, 'f', -1, 64)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "COLUMN_SEPARATORS=%s\n", strings.Join(seps, ","))
			return nil
		},
	}

	cmd.Flags().Float64Var(&cfgCols.MinGapWidth, "min-gap", cfgCols.MinGapWidth, "minimum gutter width in points")
	cmd.Flags().Float64Var(&cfgCols.MinClearRatio, "clear-ratio", cfgCols.MinClearRatio, "fraction of lines that must leave a gutter empty")
	return cmd
}
