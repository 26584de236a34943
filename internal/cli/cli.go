// Package cli implements the companion command line.
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/easeaico/virtual-companion/internal/config"
	"github.com/easeaico/virtual-companion/internal/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var cfg config.Config

	app := &cli.Command{
		Name:    "companion",
		Usage:   "Emotional companion chat with a mood-reactive avatar",
		Version: version,
		Flags:   cfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger := logging.New(cfg.LogLevel, c.Root().ErrWriter)
			logging.SetDefault(logger)
			return logging.With(ctx, logger), nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runChat(ctx, &cfg, c)
		},
		Commands: []*cli.Command{
			cmdChat(&cfg),
			cmdMigrate(&cfg),
			cmdValidate(&cfg),
			cmdVersion(version),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
