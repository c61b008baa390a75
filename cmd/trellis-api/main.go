package main

import (
	"context"
	"os"

	"github.com/trellishq/trellis/pkg/log"
	"github.com/trellishq/trellis/pkg/nodeconfig"
	"github.com/trellishq/trellis/pkg/persistence/file"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9090

func main() {
	cmd := &cli.Command{
		Name:                  "trellis-api",
		Usage:                 "Compose and deploy node-based workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Document store URL (file://path)",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("api")
			logger.InfoContext(ctx, "Initializing Trellis API")

			persistence := file.NewPersistence(command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			registry := nodeconfig.NewRegistry()

			api := NewAPI(logger, persistence, registry)

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)

				return err
			}

			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
