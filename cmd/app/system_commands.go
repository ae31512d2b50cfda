package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secretkeeper/cmd/app/commands"
	"github.com/allisson/secretkeeper/internal/app"
	"github.com/allisson/secretkeeper/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the admin HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Create or upgrade the secrets table in the store database",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.StoreDriver(), cfg.StoreDSN())
			},
		},
	}
}
