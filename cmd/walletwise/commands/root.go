// Package commands implements the walletwise command line.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/walletwise/internal/config"
	"github.com/mmynk/walletwise/internal/storage/sqlstore"
	"github.com/mmynk/walletwise/pkg/logging"
)

var (
	cfg   *config.Config
	debug bool
)

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "walletwise",
		Short:         "Shared wallets, expenses and balances",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				logging.SetupWithLevel(slog.LevelDebug)
			} else {
				logging.Setup()
			}

			var err error
			cfg, err = config.Load()
			return err
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level (overrides LOG_LEVEL)")

	root.AddCommand(serveCmd(), migrateCmd(), seedCmd(), balancesCmd())

	if err := root.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		return err
	}
	return nil
}

// openStore connects to the configured database, applying migrations.
func openStore() (*sqlstore.SQLStore, error) {
	store, err := sqlstore.New(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	slog.Info("Storage initialized", "driver", cfg.DBDriver)
	return store, nil
}
