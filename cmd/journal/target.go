package main

import (
	"errors"
	"fmt"

	"trade-journal-go/internal/models"

	"github.com/spf13/cobra"
)

var errNoTarget = errors.New("no target: entry and stop must be non-zero numbers and ratio of the form 1:n")

func newTargetCmd() *cobra.Command {
	var entry, stop, ratio string

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Derive a target price from entry, stop loss and ratio",
		Long: `Derive the target price as (entry - stop) * reward + entry, where reward is
the right-hand side of the ratio.

Example:
  journal target --entry 100 --stop 90 --ratio 1:3   # 130.00`,
		Args: cobra.NoArgs,
		// no configuration or remote API involved
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			target := models.DeriveTarget(entry, stop, ratio)
			if target == "" {
				return errNoTarget
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
	cmd.Flags().StringVar(&entry, "entry", "", "entry price")
	cmd.Flags().StringVar(&stop, "stop", "", "stop loss")
	cmd.Flags().StringVar(&ratio, "ratio", "", "target ratio, e.g. 1:3")
	return cmd
}
