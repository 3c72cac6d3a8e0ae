package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ohc225/gestion-terrain-immobilier/internal/config"
	"github.com/ohc225/gestion-terrain-immobilier/internal/database"
	"github.com/ohc225/gestion-terrain-immobilier/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context())
		},
	}
}

func runMigrate(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.Server.Env)

	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"name": cfg.Database.Name,
		})
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error("Migration failed", err, nil)
		return err
	}

	log.Info("Schema applied", map[string]interface{}{
		"database": cfg.Database.Name,
	})
	return nil
}
