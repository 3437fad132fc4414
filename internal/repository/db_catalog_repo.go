package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"rentcatalog/internal/domain"
)

type equipmentRow struct {
	ID             string                 `gorm:"primaryKey;size:191"`
	Position       int                    `gorm:"not null;index"`
	Name           string                 `gorm:"not null"`
	Slug           string                 `gorm:"size:191;index"`
	Category       string                 `gorm:"size:191;index"`
	Description    string                 `gorm:"type:text"`
	Specifications []domain.Specification `gorm:"serializer:json;type:text"`
	Images         []string               `gorm:"serializer:json;type:text"`
	Available      bool                   `gorm:"not null;default:false"`
	Featured       *bool
	RelatedIDs     []string `gorm:"serializer:json;type:text"`
}

func (equipmentRow) TableName() string { return "equipment" }

func (r equipmentRow) toDomain() domain.Equipment {
	return domain.Equipment{
		ID:             r.ID,
		Name:           r.Name,
		Slug:           r.Slug,
		Category:       r.Category,
		Description:    r.Description,
		Specifications: r.Specifications,
		Images:         r.Images,
		Available:      r.Available,
		Featured:       r.Featured,
		RelatedIDs:     r.RelatedIDs,
	}
}

func equipmentRowFrom(e domain.Equipment, pos int) equipmentRow {
	return equipmentRow{
		ID:             e.ID,
		Position:       pos,
		Name:           e.Name,
		Slug:           e.Slug,
		Category:       e.Category,
		Description:    e.Description,
		Specifications: e.Specifications,
		Images:         e.Images,
		Available:      e.Available,
		Featured:       e.Featured,
		RelatedIDs:     e.RelatedIDs,
	}
}

type categoryRow struct {
	ID          string `gorm:"primaryKey;size:191"`
	Position    int    `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Slug        string `gorm:"size:191;index"`
	Description string `gorm:"type:text"`
}

func (categoryRow) TableName() string { return "categories" }

// Migrate creates the catalog tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&equipmentRow{}, &categoryRow{})
}

// DBCatalogRepository stores the catalog in SQL tables. Document order is
// kept in the position column so list output matches the file store.
type DBCatalogRepository struct {
	db *gorm.DB
}

func NewDBCatalogRepository(db *gorm.DB) *DBCatalogRepository {
	return &DBCatalogRepository{db: db}
}

func (r *DBCatalogRepository) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return listEquipment(r.db.WithContext(ctx))
}

func (r *DBCatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return listCategories(r.db.WithContext(ctx))
}

func (r *DBCatalogRepository) UpdateEquipment(ctx context.Context, fn func([]domain.Equipment) ([]domain.Equipment, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := listEquipment(tx)
		if err != nil {
			return err
		}
		next, err := fn(items)
		if err != nil {
			return err
		}

		if err := tx.Where("1 = 1").Delete(&equipmentRow{}).Error; err != nil {
			return fmt.Errorf("clear equipment: %w", err)
		}
		if len(next) == 0 {
			return nil
		}

		rows := make([]equipmentRow, len(next))
		for i, e := range next {
			rows[i] = equipmentRowFrom(e, i)
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("write equipment: %w", err)
		}
		return nil
	})
}

func (r *DBCatalogRepository) UpdateCategories(ctx context.Context, fn func([]domain.Category) ([]domain.Category, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := listCategories(tx)
		if err != nil {
			return err
		}
		next, err := fn(items)
		if err != nil {
			return err
		}

		if err := tx.Where("1 = 1").Delete(&categoryRow{}).Error; err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}
		if len(next) == 0 {
			return nil
		}

		rows := make([]categoryRow, len(next))
		for i, c := range next {
			rows[i] = categoryRow{ID: c.ID, Position: i, Name: c.Name, Slug: c.Slug, Description: c.Description}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("write categories: %w", err)
		}
		return nil
	})
}

func (r *DBCatalogRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func listEquipment(db *gorm.DB) ([]domain.Equipment, error) {
	var rows []equipmentRow
	if err := db.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	items := make([]domain.Equipment, len(rows))
	for i, row := range rows {
		items[i] = row.toDomain()
	}
	return items, nil
}

func listCategories(db *gorm.DB) ([]domain.Category, error) {
	var rows []categoryRow
	if err := db.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	items := make([]domain.Category, len(rows))
	for i, row := range rows {
		items[i] = domain.Category{ID: row.ID, Name: row.Name, Slug: row.Slug, Description: row.Description}
	}
	return items, nil
}
