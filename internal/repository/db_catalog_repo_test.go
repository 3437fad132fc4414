package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcatalog/internal/database"
	"rentcatalog/internal/domain"
)

func newTestDBRepo(t *testing.T) *DBCatalogRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:catalog_repo_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	repo := NewDBCatalogRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestDBCatalogRepository_UpdateAndList(t *testing.T) {
	repo := newTestDBRepo(t)
	ctx := context.Background()

	featured := true
	want := []domain.Equipment{
		{
			ID:             "b",
			Name:           "Второй",
			Slug:           "vtoroj",
			Category:       "light",
			Specifications: []domain.Specification{{Label: "Вес", Value: "10 кг"}},
			Images:         []string{"/images/equipment/vtoroj/1.jpg"},
			Available:      true,
			Featured:       &featured,
			RelatedIDs:     []string{"a"},
		},
		{ID: "a", Name: "Первый", Slug: "pervyj", Category: "light"},
	}

	err := repo.UpdateEquipment(ctx, func(items []domain.Equipment) ([]domain.Equipment, error) {
		assert.Empty(t, items)
		return want, nil
	})
	require.NoError(t, err)

	got, err := repo.ListEquipment(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("equipment mismatch (-want +got):\n%s", diff)
	}
}

func TestDBCatalogRepository_UpdateRollsBack(t *testing.T) {
	repo := newTestDBRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateCategories(ctx, func([]domain.Category) ([]domain.Category, error) {
		return []domain.Category{{ID: "light", Name: "Свет", Slug: "svet"}}, nil
	}))

	boom := errors.New("boom")
	err := repo.UpdateCategories(ctx, func([]domain.Category) ([]domain.Category, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "light", cats[0].ID)
}

func TestDBCatalogRepository_DeleteAll(t *testing.T) {
	repo := newTestDBRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateCategories(ctx, func([]domain.Category) ([]domain.Category, error) {
		return []domain.Category{{ID: "x", Name: "X", Slug: "x"}}, nil
	}))
	require.NoError(t, repo.UpdateCategories(ctx, func([]domain.Category) ([]domain.Category, error) {
		return nil, nil
	}))

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}
