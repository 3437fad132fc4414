package catalog

import (
	"context"

	"github.com/rs/zerolog"

	"rentcatalog/internal/domain"
	"rentcatalog/internal/pkg/slug"
	"rentcatalog/internal/pkg/validator"
)

// Service holds the catalog business rules on top of a Repository.
type Service struct {
	repo   Repository
	images ImageRemover
	log    zerolog.Logger
}

func NewService(repo Repository, images ImageRemover, log zerolog.Logger) *Service {
	return &Service{repo: repo, images: images, log: log}
}

/* ==================== EQUIPMENT ==================== */

func (s *Service) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.repo.ListEquipment(ctx)
}

// CreateEquipment derives missing slug/id from the name, validates and
// appends the record.
func (s *Service) CreateEquipment(ctx context.Context, req *EquipmentRequest) (*domain.Equipment, error) {
	if req.Slug == "" && req.Name != "" && !req.issues.wasRejected("slug") {
		req.Slug = slug.Make(req.Name)
	}
	if req.ID == "" && req.Name != "" && !req.issues.wasRejected("id") {
		req.ID = slug.Make(req.Name)
	}
	if err := validateRequest(req, req.issues.kindErrors); err != nil {
		return nil, err
	}

	item := req.toDomain()
	if err := s.normalizeCategory(ctx, &item); err != nil {
		return nil, err
	}

	err := s.repo.UpdateEquipment(ctx, func(items []domain.Equipment) ([]domain.Equipment, error) {
		for _, e := range items {
			if e.ID == item.ID {
				return nil, ErrDuplicateID
			}
			if e.Slug == item.Slug {
				return nil, ErrDuplicateSlug
			}
		}
		return append(items, item), nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateEquipment replaces the record with the same id. The slug follows the
// name when the name changed.
func (s *Service) UpdateEquipment(ctx context.Context, req *EquipmentRequest) (*domain.Equipment, error) {
	current, err := s.repo.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}
	if existing := findEquipment(current, req.ID); existing != nil && existing.Name != req.Name && req.Name != "" && !req.issues.wasRejected("slug") {
		req.Slug = slug.Make(req.Name)
	}
	if err := validateRequest(req, req.issues.kindErrors); err != nil {
		return nil, err
	}

	item := req.toDomain()
	if err := s.normalizeCategory(ctx, &item); err != nil {
		return nil, err
	}

	err = s.repo.UpdateEquipment(ctx, func(items []domain.Equipment) ([]domain.Equipment, error) {
		idx := -1
		for i, e := range items {
			if e.ID == item.ID {
				idx = i
				continue
			}
			if e.Slug == item.Slug {
				return nil, ErrDuplicateSlug
			}
		}
		if idx == -1 {
			return nil, ErrEquipmentNotFound
		}
		items[idx] = item
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteEquipment removes the record, then its image files. Image removal
// is best-effort and never fails the delete.
func (s *Service) DeleteEquipment(ctx context.Context, id string) error {
	var removed domain.Equipment
	err := s.repo.UpdateEquipment(ctx, func(items []domain.Equipment) ([]domain.Equipment, error) {
		for i, e := range items {
			if e.ID == id {
				removed = e
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, ErrEquipmentNotFound
	})
	if err != nil {
		return err
	}

	if s.images != nil && len(removed.Images) > 0 {
		n := s.images.RemoveImages(ctx, removed.Images)
		s.log.Info().
			Str("equipment_id", id).
			Int("images", len(removed.Images)).
			Int("removed", n).
			Msg("equipment images cleaned up")
	}
	return nil
}

// normalizeCategory turns a legacy category name reference into the id of
// that category. Unknown values are kept as they are.
func (s *Service) normalizeCategory(ctx context.Context, item *domain.Equipment) error {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	item.Category = resolveCategoryRef(cats, item.Category)
	return nil
}

func resolveCategoryRef(cats []domain.Category, ref string) string {
	for _, c := range cats {
		if c.ID == ref {
			return ref
		}
	}
	for _, c := range cats {
		if c.Name == ref {
			return c.ID
		}
	}
	return ref
}

/* ==================== CATEGORIES ==================== */

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req *CategoryRequest) (*domain.Category, error) {
	if req.Slug == "" && req.Name != "" && !req.issues.wasRejected("slug") {
		req.Slug = slug.Make(req.Name)
	}
	if req.ID == "" && req.Name != "" && !req.issues.wasRejected("id") {
		req.ID = slug.Make(req.Name)
	}
	if err := validateRequest(req, req.issues.kindErrors); err != nil {
		return nil, err
	}

	item := req.toDomain()
	err := s.repo.UpdateCategories(ctx, func(items []domain.Category) ([]domain.Category, error) {
		for _, c := range items {
			if c.ID == item.ID {
				return nil, ErrDuplicateID
			}
			if c.Slug == item.Slug {
				return nil, ErrDuplicateSlug
			}
		}
		return append(items, item), nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) UpdateCategory(ctx context.Context, req *CategoryRequest) (*domain.Category, error) {
	current, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if existing := findCategory(current, req.ID); existing != nil && existing.Name != req.Name && req.Name != "" && !req.issues.wasRejected("slug") {
		req.Slug = slug.Make(req.Name)
	}
	if err := validateRequest(req, req.issues.kindErrors); err != nil {
		return nil, err
	}

	item := req.toDomain()
	err = s.repo.UpdateCategories(ctx, func(items []domain.Category) ([]domain.Category, error) {
		idx := -1
		for i, c := range items {
			if c.ID == item.ID {
				idx = i
				continue
			}
			if c.Slug == item.Slug {
				return nil, ErrDuplicateSlug
			}
		}
		if idx == -1 {
			return nil, ErrCategoryNotFound
		}
		items[idx] = item
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteCategory refuses to remove a category that equipment still points
// at, by id or by its legacy name.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	equipment, err := s.repo.ListEquipment(ctx)
	if err != nil {
		return err
	}

	return s.repo.UpdateCategories(ctx, func(items []domain.Category) ([]domain.Category, error) {
		for i, c := range items {
			if c.ID != id {
				continue
			}
			if n := countByCategory(equipment, c); n > 0 {
				return nil, &CategoryInUseError{Name: c.Name, Count: n}
			}
			return append(items[:i], items[i+1:]...), nil
		}
		return nil, ErrCategoryNotFound
	})
}

func countByCategory(equipment []domain.Equipment, c domain.Category) int {
	n := 0
	for _, e := range equipment {
		if e.Category == c.ID || e.Category == c.Name {
			n++
		}
	}
	return n
}

// NormalizeCategoryRefs rewrites every equipment category that holds a
// category name to the category id. It returns the number of records changed.
func (s *Service) NormalizeCategoryRefs(ctx context.Context) (int, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	err = s.repo.UpdateEquipment(ctx, func(items []domain.Equipment) ([]domain.Equipment, error) {
		for i := range items {
			ref := resolveCategoryRef(cats, items[i].Category)
			if ref != items[i].Category {
				items[i].Category = ref
				changed++
			}
		}
		return items, nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

/* ==================== PUBLIC QUERIES ==================== */

func (s *Service) FilterEquipment(ctx context.Context, f EquipmentFilter) ([]domain.Equipment, error) {
	items, err := s.repo.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}

	var refs map[string]bool
	if f.Category != "" {
		cats, err := s.repo.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		refs = map[string]bool{f.Category: true}
		for _, c := range cats {
			if c.ID == f.Category || c.Slug == f.Category {
				refs[c.ID] = true
				refs[c.Name] = true
			}
		}
	}

	out := make([]domain.Equipment, 0, len(items))
	for _, e := range items {
		if refs != nil && !refs[e.Category] {
			continue
		}
		if f.Available != nil && e.Available != *f.Available {
			continue
		}
		if f.Featured != nil && e.IsFeatured() != *f.Featured {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Service) EquipmentBySlug(ctx context.Context, slugValue string) (*EquipmentDetail, error) {
	items, err := s.repo.ListEquipment(ctx)
	if err != nil {
		return nil, err
	}

	for _, e := range items {
		if e.Slug != slugValue {
			continue
		}
		related := make([]domain.Equipment, 0, len(e.RelatedIDs))
		for _, id := range e.RelatedIDs {
			if r := findEquipment(items, id); r != nil {
				related = append(related, *r)
			}
		}
		return &EquipmentDetail{Equipment: e, Related: related}, nil
	}
	return nil, ErrEquipmentNotFound
}

func (s *Service) CategoryBySlug(ctx context.Context, slugValue string) (*CategoryDetail, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range cats {
		if c.Slug != slugValue {
			continue
		}
		items, err := s.FilterEquipment(ctx, EquipmentFilter{Category: c.ID})
		if err != nil {
			return nil, err
		}
		return &CategoryDetail{Category: c, Equipment: items}, nil
	}
	return nil, ErrCategoryNotFound
}

/* ==================== HELPERS ==================== */

func validateRequest(req any, extra []string) error {
	msgs := append(validator.Messages(req), extra...)
	if len(msgs) == 0 {
		return nil
	}
	return &ValidationError{Messages: msgs}
}

func findEquipment(items []domain.Equipment, id string) *domain.Equipment {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

func findCategory(items []domain.Category, id string) *domain.Category {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
