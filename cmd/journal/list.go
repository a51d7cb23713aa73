package main

import (
	"fmt"

	"trade-journal-go/internal/screen"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every trade in the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			listing := screen.NewListing(a.client, a.log, a.cfg.UI.ListingNotice)
			listing.Load(cmd.Context())
			if err := noticeError(listing.Notice()); err != nil {
				return err
			}

			trades := listing.Trades()
			if output == outputTable {
				return writeTradeTable(cmd.OutOrStdout(), trades)
			}
			views := make([]tradeView, 0, len(trades))
			for _, t := range trades {
				views = append(views, newTradeView(t.ID, screen.FieldsFromTrade(t)))
			}
			return writeStructured(cmd.OutOrStdout(), output, views)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show every field of one trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			form := screen.NewForm(a.client, a.log, a.cfg.UI.FormNotice, args[0])
			if err := form.Load(cmd.Context()); err != nil {
				return fmt.Errorf("%s", form.Notice().Message)
			}

			if output == outputTable {
				return writeFieldTable(cmd.OutOrStdout(), form.ID(), form.Fields())
			}
			return writeStructured(cmd.OutOrStdout(), output, newTradeView(form.ID(), form.Fields()))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}
