package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/onetime/cmd/app/commands"
	"github.com/allisson/onetime/internal/app"
	"github.com/allisson/onetime/internal/config"
)

// passwordFlag reads the password from ONETIME_PASSWORD when the flag is omitted, which keeps
// it out of shell history.
func passwordFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "password",
		Aliases:  []string{"p"},
		Required: true,
		Sources:  cli.EnvVars("ONETIME_PASSWORD"),
		Usage:    "Password protecting the secret",
	}
}

func getSecretCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-secret",
			Usage: "Encrypt and store a one-time secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "value",
					Aliases: []string{"v"},
					Usage:   "Secret content (read from stdin when omitted)",
				},
				passwordFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				secretUseCase, err := container.SecretUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateSecret(
					ctx,
					secretUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("value"),
					cmd.String("password"),
					cfg.SecretMaxSizeBytes,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "reveal-secret",
			Usage: "Consume a one-time secret and print its content",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Secret ID (UUID)",
				},
				passwordFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				secretUseCase, err := container.SecretUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevealSecret(
					ctx,
					secretUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("id"),
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "purge-expired-secrets",
			Usage: "Delete expired secrets from SQL stores (Redis expires keys on its own)",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				secretUseCase, err := container.SecretUseCase()
				if err != nil {
					return err
				}

				return commands.RunPurgeExpiredSecrets(
					ctx,
					secretUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
