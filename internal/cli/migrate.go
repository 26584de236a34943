package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/easeaico/virtual-companion/internal/config"
	"github.com/easeaico/virtual-companion/internal/logging"
	"github.com/easeaico/virtual-companion/internal/storage"
)

func cmdMigrate(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the PostgreSQL tables",
		Action: func(ctx context.Context, c *cli.Command) error {
			if cfg.DatabaseURL == "" {
				return goerr.Wrap(config.ErrInvalidConfig, "database URL is required for migration")
			}

			db, err := storage.OpenPostgres(ctx, cfg.DatabaseURL, cfg.UserID)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					logging.From(ctx).Warn("failed to close database", "error", err)
				}
			}()

			if err := withSpinner("Migrating companion tables", func() error {
				return db.Migrate(ctx)
			}); err != nil {
				return err
			}

			logging.From(ctx).Info("migration completed", "database", maskDatabaseURL(cfg.DatabaseURL))
			_, err = fmt.Fprintln(c.Root().Writer, "Migration completed")
			return err
		},
	}
}
