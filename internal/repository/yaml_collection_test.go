package repository

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcatalog/internal/domain"
)

const equipmentDoc = `# Equipment catalog.
# Managed through the admin panel; hand edits are fine too.
version: 1

equipment:
  - id: gen-1
    name: Генератор 100 кВт
    slug: generator-100-kvt
    category: generators
    description: Дизельный генератор
    specifications:
      - label: Мощность
        value: 100 кВт
    images:
      - /images/equipment/generator-100-kvt/a.jpg
    available: true
  - id: light-1
    name: ARRI SkyPanel
    slug: arri-skypanel
    category: light
    description: LED панель
    specifications: []
    images: []
    available: false
    featured: true
    relatedIds: [gen-1]

# helpers below are not part of the collection
aliases:
  gen: gen-1
`

func TestDecodeCollection(t *testing.T) {
	items, err := DecodeCollection[domain.Equipment]([]byte(equipmentDoc), EquipmentKey)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "gen-1", items[0].ID)
	assert.Equal(t, "Генератор 100 кВт", items[0].Name)
	assert.Equal(t, []domain.Specification{{Label: "Мощность", Value: "100 кВт"}}, items[0].Specifications)
	assert.False(t, items[0].IsFeatured())
	assert.True(t, items[1].IsFeatured())
	assert.Equal(t, []string{"gen-1"}, items[1].RelatedIDs)
}

func TestDecodeCollection_NullIsEmpty(t *testing.T) {
	items, err := DecodeCollection[domain.Category]([]byte("categories:\n"), CategoriesKey)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDecodeCollection_MissingKey(t *testing.T) {
	_, err := DecodeCollection[domain.Category]([]byte("services: []\n"), CategoriesKey)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCollectionNotFound))

	_, err = DecodeCollection[domain.Category]([]byte(""), CategoriesKey)
	assert.True(t, errors.Is(err, ErrCollectionNotFound))
}

func TestDecodeCollection_NotASequence(t *testing.T) {
	_, err := DecodeCollection[domain.Category]([]byte("categories:\n  id: x\n"), CategoriesKey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a sequence")
}

func TestSpliceCollection_RoundTrip(t *testing.T) {
	items, err := DecodeCollection[domain.Equipment]([]byte(equipmentDoc), EquipmentKey)
	require.NoError(t, err)

	out, err := SpliceCollection([]byte(equipmentDoc), EquipmentKey, items)
	require.NoError(t, err)

	again, err := DecodeCollection[domain.Equipment](out, EquipmentKey)
	require.NoError(t, err)

	if diff := cmp.Diff(items, again, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSpliceCollection_PreservesSurroundingText(t *testing.T) {
	items := []domain.Equipment{{
		ID:       "cam-1",
		Name:     "Камера",
		Slug:     "kamera",
		Category: "cameras",
	}}

	out, err := SpliceCollection([]byte(equipmentDoc), EquipmentKey, items)
	require.NoError(t, err)

	header := equipmentDoc[:strings.Index(equipmentDoc, "equipment:")]
	footer := equipmentDoc[strings.Index(equipmentDoc, "\n# helpers"):]

	assert.True(t, strings.HasPrefix(string(out), header), "header changed:\n%s", out)
	assert.True(t, strings.HasSuffix(string(out), footer), "footer changed:\n%s", out)
	assert.NotContains(t, string(out), "gen-1\n    name")
	assert.Contains(t, string(out), "id: cam-1")
}

func TestSpliceCollection_EmptyWritesFlowSequence(t *testing.T) {
	out, err := SpliceCollection([]byte("# cats\ncategories:\n  - id: a\n    name: A\n    slug: a\n"), CategoriesKey, []domain.Category(nil))
	require.NoError(t, err)
	assert.Equal(t, "# cats\ncategories: []\n", string(out))
}

func TestSpliceCollection_MissingKey(t *testing.T) {
	_, err := SpliceCollection([]byte("other: 1\n"), CategoriesKey, []domain.Category{})
	assert.True(t, errors.Is(err, ErrCollectionNotFound))
}
