package main

import (
	"fmt"

	"trade-journal-go/internal/screen"

	"github.com/spf13/cobra"
)

// fieldFlags registers one string flag per form field, named like the field.
func fieldFlags(cmd *cobra.Command) map[string]*string {
	values := make(map[string]*string, len(screen.FieldNames))
	for _, name := range screen.FieldNames {
		values[name] = cmd.Flags().String(name, "", "trade "+name)
	}
	return values
}

// applyFieldFlags copies the flags the user gave onto the form, in form
// order, so an explicit --target wins over the derived one.
func applyFieldFlags(cmd *cobra.Command, form *screen.Form, values map[string]*string) error {
	for _, name := range screen.FieldNames {
		if !cmd.Flags().Changed(name) {
			continue
		}
		if err := form.Set(name, *values[name]); err != nil {
			return err
		}
	}
	return nil
}

func submit(cmd *cobra.Command, form *screen.Form) error {
	if err := form.Submit(cmd.Context()); err != nil {
		return fmt.Errorf("%s", form.Notice().Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), form.Notice().Message)
	return nil
}

func newAddCmd(a *app) *cobra.Command {
	var values map[string]*string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new trade",
		Long: `Record a new trade. The buy date defaults to today and pyramiding to "0 times".
The target is derived from --entryPrice, --stopLoss and --targetRatio unless --target is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := screen.NewForm(a.client, a.log, a.cfg.UI.FormNotice, "")
			if err := applyFieldFlags(cmd, form, values); err != nil {
				return err
			}
			return submit(cmd, form)
		},
	}
	values = fieldFlags(cmd)
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var values map[string]*string

	cmd := &cobra.Command{
		Use:   "edit <trade-id>",
		Short: "Change fields of a recorded trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := screen.NewForm(a.client, a.log, a.cfg.UI.FormNotice, args[0])
			if err := form.Load(cmd.Context()); err != nil {
				return fmt.Errorf("%s", form.Notice().Message)
			}
			if err := applyFieldFlags(cmd, form, values); err != nil {
				return err
			}
			return submit(cmd, form)
		},
	}
	values = fieldFlags(cmd)
	return cmd
}
