package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/teranga-immo/teranga/pkg/cli/config"
	"github.com/teranga-immo/teranga/pkg/utils/logging"
)

// cmdSeed creates bootstrap accounts from a TOML seed file. Staff and
// agent accounts cannot register themselves, so a fresh deployment is
// populated through this command.
func cmdSeed() *cli.Command {
	var seedPath string
	var dryRun bool
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "seed-file",
			Usage:       "Path to TOML seed file (required)",
			Required:    true,
			Sources:     cli.EnvVars("TERANGA_SEED_FILE"),
			Destination: &seedPath,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Validate the seed file without creating accounts",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "seed",
		Usage: "Create bootstrap accounts from a seed file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			seed, err := config.LoadSeed(seedPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load seed file")
			}

			if dryRun {
				logger.Info("Seed file is valid", "path", seedPath, "actors", len(seed.Actors))
				return nil
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			for _, entry := range seed.Actors {
				actor := entry.ToActor()
				created, err := repo.Actor().Create(ctx, actor)
				if err != nil {
					return goerr.Wrap(err, "failed to create actor", goerr.V("email", entry.Email))
				}
				logger.Info("Created actor",
					"publicID", created.PublicID,
					"role", created.Role,
					"email", created.Email)
			}

			logger.Info("Seeding completed", "actors", len(seed.Actors))
			return nil
		},
	}
}
