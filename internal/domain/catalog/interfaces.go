package catalog

import (
	"context"

	"rentcatalog/internal/domain"
)

// Repository is the catalog store. Update* hand fn the current collection
// under the store's write lock and persist whatever fn returns; an error
// from fn aborts the write.
type Repository interface {
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateEquipment(ctx context.Context, fn func([]domain.Equipment) ([]domain.Equipment, error)) error
	UpdateCategories(ctx context.Context, fn func([]domain.Category) ([]domain.Category, error)) error
}

// ImageRemover deletes image files by public URL and reports how many were
// removed. Failures are handled by the implementation.
type ImageRemover interface {
	RemoveImages(ctx context.Context, urls []string) int
}
