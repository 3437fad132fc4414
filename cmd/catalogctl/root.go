package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rentcatalog/internal/config"
	"rentcatalog/internal/pkg/logging"
	"rentcatalog/internal/repository"
)

// cli carries what every subcommand needs once flags and env are loaded.
type cli struct {
	envFile string
	cfg     *config.Config
	log     zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Maintenance tasks for the rental catalog",
		Long: `catalogctl works on the same data files and image tree as the API server.
It reads the same environment variables (DATA_DIR, STATIC_DIR, CATALOG_STORE...).

Examples:
  # Show images nobody references, then delete them
  catalogctl cleanup-images
  catalogctl cleanup-images --delete

  # Rewrite equipment categories stored by name to category ids
  catalogctl normalize-categories

  # Preview the slug for a name
  catalogctl slugify "Осветительное оборудование"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.envFile != "" {
				if err := godotenv.Load(c.envFile); err != nil {
					return err
				}
			} else {
				_ = godotenv.Load()
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.log = logging.New(cfg.LogLevel, "console", cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "Load environment from this file instead of ./.env")

	root.AddCommand(
		newCleanupImagesCmd(c),
		newNormalizeCategoriesCmd(c),
		newSlugifyCmd(),
		newImportDBCmd(c),
	)
	return root
}

func (c *cli) openStore() (repository.CatalogStore, error) {
	return repository.OpenCatalog(c.cfg, c.log)
}
