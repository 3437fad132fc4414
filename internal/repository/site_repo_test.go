package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcatalog/internal/domain/site"
)

const siteDoc = `company:
  name: ООО «Свет и Ток»
  ogrn: "1234567890123"
  legalAddress: Москва
  website: https://example.ru
  email: info@example.ru
  description: Аренда оборудования для кино
services:
  - id: lighting
    name: Световое оборудование
    slug: svetovoe-oborudovanie
    shortDescription: Свет для съёмок
    longDescription: Полный парк приборов
    image: /images/services/light.jpg
`

func TestSiteRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(siteDoc), 0o644))
	repo := NewSiteRepository(path)
	ctx := context.Background()

	company, err := repo.Company(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1234567890123", company.OGRN)

	services, err := repo.Services(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)

	svc, err := repo.ServiceBySlug(ctx, "svetovoe-oborudovanie")
	require.NoError(t, err)
	assert.Equal(t, "lighting", svc.ID)

	_, err = repo.ServiceBySlug(ctx, "missing")
	assert.ErrorIs(t, err, site.ErrServiceNotFound)
}
