package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/secretkeeper/cmd/app/commands"
	"github.com/allisson/secretkeeper/internal/app"
	"github.com/allisson/secretkeeper/internal/config"
)

func getSecretCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "get-secret",
			Usage: "Resolve a secret and print its value",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Secret name, e.g. OPENAI_API_KEY",
				},
				&cli.StringFlag{
					Name:    "actor",
					Aliases: []string{"a"},
					Usage:   "Recorded as last_used_by; omit to record no actor",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunGetSecret(
					ctx,
					container.EnvironmentSecretUseCase(),
					container.SecretUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("actor"),
				)
			},
		},
		{
			Name:  "set-secret",
			Usage: "Store a new secret version, or edit the latest note when --value is omitted",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Secret name, e.g. OPENAI_API_KEY",
				},
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Secret value; omit to update only the note",
				},
				&cli.StringFlag{
					Name:  "note",
					Usage: "Short note shown to administrators (100 characters max)",
				},
				&cli.StringFlag{
					Name:     "actor",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Administrator name recorded on the version",
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

				secretUseCase, err := container.SecretUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetSecret(
					ctx,
					secretUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("value"),
					cmd.String("note"),
					cmd.String("actor"),
					cmd.String("format"),
				)
			},
		},
	}
}
