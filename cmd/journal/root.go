package main

import (
	"fmt"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
	"trade-journal-go/internal/screen"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every command needs once the root command has set it up.
type app struct {
	configDir string
	cfg       config.Config
	log       *zap.Logger
	client    journal.ClientInterface
}

// newRootCmd builds the command tree. A nil client means the remote trade
// API from the configuration is used.
func newRootCmd(client journal.ClientInterface) *cobra.Command {
	a := &app{client: client}

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Keep a trade journal from the terminal",
		Long: `Journal lists, records and edits trades kept by the remote trade journal API.

Examples:
  journal list
  journal show <trade-id> --output yaml
  journal add --strategy breakout --entryPrice 100 --stopLoss 90 --targetRatio 1:3
  journal edit <trade-id> --exitPrice 128.5 --profitOrLoss profit
  journal delete <trade-id>
  journal target --entry 100 --stop 90 --ratio 1:3`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configDir, "config", "c", "./configs", "directory holding config.yml")

	rootCmd.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newTargetCmd(),
	)
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if a.log == nil {
		if a.log, err = logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	if a.client == nil {
		a.client = journal.NewRestClient(&cfg.Journal, a.log)
	}
	return nil
}

// noticeError turns an error notice into the command's error.
func noticeError(n *screen.Notice) error {
	if n.IsError() {
		return fmt.Errorf("%s", n.Message)
	}
	return nil
}
