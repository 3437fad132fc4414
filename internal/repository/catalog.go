package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"rentcatalog/internal/config"
	"rentcatalog/internal/database"
	"rentcatalog/internal/domain"
)

// CatalogStore is the storage contract shared by the file and database
// backends. Update* run fn against the current collection under the
// backend's write lock and persist whatever fn returns.
type CatalogStore interface {
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateEquipment(ctx context.Context, fn func([]domain.Equipment) ([]domain.Equipment, error)) error
	UpdateCategories(ctx context.Context, fn func([]domain.Category) ([]domain.Category, error)) error
	Close() error
}

var (
	_ CatalogStore = (*FileCatalogRepository)(nil)
	_ CatalogStore = (*DBCatalogRepository)(nil)
)

// OpenCatalog builds the store selected by CATALOG_STORE.
func OpenCatalog(cfg *config.Config, log zerolog.Logger) (CatalogStore, error) {
	switch cfg.StoreDriver {
	case config.StoreFile:
		log.Info().
			Str("equipment", cfg.EquipmentFile()).
			Str("categories", cfg.CategoryFile()).
			Msg("using file catalog store")
		return NewFileCatalogRepository(cfg.EquipmentFile(), cfg.CategoryFile()), nil
	case config.StoreDB:
		db, err := database.Connect(cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("connect catalog database: %w", err)
		}
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate catalog database: %w", err)
		}
		return NewDBCatalogRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown catalog store %q", cfg.StoreDriver)
	}
}
