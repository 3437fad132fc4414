package catalog

import (
	"rentcatalog/internal/domain"
)

// EquipmentRequest is the admin create/update payload.
type EquipmentRequest struct {
	ID             string                 `json:"id" validate:"notblank"`
	Name           string                 `json:"name" validate:"notblank"`
	Slug           string                 `json:"slug" validate:"notblank,slug"`
	Category       string                 `json:"category" validate:"notblank"`
	Description    string                 `json:"description" validate:"notblank"`
	Specifications []domain.Specification `json:"specifications"`
	Images         []string               `json:"images" validate:"required"`
	Available      bool                   `json:"available"`
	Featured       *bool                  `json:"featured,omitempty"`
	RelatedIDs     []string               `json:"relatedIds,omitempty"`

	issues fieldIssues
}

func (r *EquipmentRequest) toDomain() domain.Equipment {
	e := domain.Equipment{
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
	if e.Specifications == nil {
		e.Specifications = []domain.Specification{}
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	if len(e.RelatedIDs) == 0 {
		e.RelatedIDs = nil
	}
	return e
}

// CategoryRequest is the admin create/update payload.
type CategoryRequest struct {
	ID          string `json:"id" validate:"notblank"`
	Name        string `json:"name" validate:"notblank"`
	Slug        string `json:"slug" validate:"notblank,slug"`
	Description string `json:"description,omitempty"`

	issues fieldIssues
}

func (r *CategoryRequest) toDomain() domain.Category {
	return domain.Category{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
	}
}

// EquipmentFilter narrows the public equipment listing. Category matches a
// category id or slug; nil booleans do not filter.
type EquipmentFilter struct {
	Category  string
	Available *bool
	Featured  *bool
}

type EquipmentDetail struct {
	Equipment domain.Equipment   `json:"equipment"`
	Related   []domain.Equipment `json:"related"`
}

type CategoryDetail struct {
	Category  domain.Category    `json:"category"`
	Equipment []domain.Equipment `json:"equipment"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
