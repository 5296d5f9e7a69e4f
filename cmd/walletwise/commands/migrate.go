package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/walletwise/internal/models"
	"github.com/mmynk/walletwise/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			slog.Info("Schema is up to date", "driver", store.Driver())
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert or refresh the default system categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			return seedCategories(cmd.Context(), store)
		},
	}
}

func seedCategories(ctx context.Context, store storage.CategoryStore) error {
	for _, c := range models.DefaultCategories {
		c := c
		if err := store.UpsertSystemCategory(ctx, &c); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}
	slog.Info("System categories seeded", "count", len(models.DefaultCategories))
	return nil
}
