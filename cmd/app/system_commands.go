package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/onetime/cmd/app/commands"
	"github.com/allisson/onetime/internal/app"
	"github.com/allisson/onetime/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations for the postgres and mysql store drivers",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.StoreDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "healthcheck",
			Usage: "Check that the configured secret store is reachable",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				secretRepository, err := container.SecretRepository()
				if err != nil {
					return err
				}

				return commands.RunHealthcheck(
					ctx,
					secretRepository,
					container.Logger(),
					commands.DefaultIO().Writer,
					cfg.StoreDriver,
					cmd.String("format"),
				)
			},
		},
	}
}
