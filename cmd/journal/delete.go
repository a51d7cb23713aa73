package main

import (
	"bufio"
	"fmt"
	"strings"

	"trade-journal-go/internal/screen"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, "Are you sure you want to delete this trade?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			listing := screen.NewListing(a.client, a.log, a.cfg.UI.ListingNotice)
			if err := listing.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("%s", listing.Notice().Message)
			}
			fmt.Fprintln(cmd.OutOrStdout(), listing.Notice().Message)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

// confirm asks a yes/no question on the command's input. Only "y" or "yes" confirms.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
