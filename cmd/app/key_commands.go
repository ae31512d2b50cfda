package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secretkeeper/cmd/app/commands"
	"github.com/allisson/secretkeeper/internal/app"
	"github.com/allisson/secretkeeper/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-encryption-key",
			Usage: "Print a new STORE_ENCRYPTION_KEY",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateEncryptionKey(commands.DefaultIO().Writer)
			},
		},
		{
			Name:  "create-admin-credential",
			Usage: "Generate an admin token and its ADMIN_CREDENTIALS entry",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "actor",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Administrator name recorded on every write",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				adminUseCase, err := container.AdminUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateAdminCredential(
					ctx,
					adminUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("actor"),
					cmd.String("format"),
				)
			},
		},
	}
}
