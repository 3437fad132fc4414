package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rentcatalog/internal/database"
	"rentcatalog/internal/domain"
	"rentcatalog/internal/repository"
)

func newImportDBCmd(c *cli) *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "import-db",
		Short: "Copy the YAML catalog into the SQL database",
		Long: `Loads equipment.yaml and categories.yaml from DATA_DIR and replaces the
contents of the catalog tables at DATABASE_URL (or --database) with them.
Use this before switching CATALOG_STORE to db.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if dsn == "" {
				dsn = c.cfg.DatabaseURL
			}

			files := repository.NewFileCatalogRepository(c.cfg.EquipmentFile(), c.cfg.CategoryFile())
			equipment, err := files.ListEquipment(ctx)
			if err != nil {
				return err
			}
			categories, err := files.ListCategories(ctx)
			if err != nil {
				return err
			}

			db, err := database.Connect(dsn, c.log)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err := repository.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			store := repository.NewDBCatalogRepository(db)
			defer store.Close()

			if err := store.UpdateCategories(ctx, func([]domain.Category) ([]domain.Category, error) {
				return categories, nil
			}); err != nil {
				return err
			}
			if err := store.UpdateEquipment(ctx, func([]domain.Equipment) ([]domain.Equipment, error) {
				return equipment, nil
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d categories and %d equipment records\n", len(categories), len(equipment))
			return err
		},
	}

	cmd.Flags().StringVar(&dsn, "database", "", "Target database (defaults to DATABASE_URL)")
	return cmd
}
