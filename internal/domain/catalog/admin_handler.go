package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentcatalog/internal/pkg/response"
)

// AdminHandler serves the dev-only catalog editing endpoints.
type AdminHandler struct {
	service *Service
}

func NewAdminHandler(service *Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListEquipment handles GET /admin/equipment
// @Summary List equipment (admin)
// @Tags Admin Catalog
// @Produce json
// @Success 200 {object} response.Response{data=[]domain.Equipment}
// @Failure 500 {object} response.Response
// @Router /admin/equipment [get]
func (h *AdminHandler) ListEquipment(c *gin.Context) {
	items, err := h.service.ListEquipment(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to fetch equipment data")
		return
	}
	response.Success(c, http.StatusOK, items)
}

// CreateEquipment handles POST /admin/equipment
// @Summary Create equipment
// @Description Slug and id are derived from the name when omitted.
// @Tags Admin Catalog
// @Accept json
// @Produce json
// @Param request body EquipmentRequest true "Equipment"
// @Success 201 {object} response.Response{data=domain.Equipment}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/equipment [post]
func (h *AdminHandler) CreateEquipment(c *gin.Context) {
	req, ok := bindEquipment(c)
	if !ok {
		return
	}

	item, err := h.service.CreateEquipment(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "equipment", req.ID, "Failed to create equipment")
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// UpdateEquipment handles PUT /admin/equipment
// @Summary Update equipment
// @Tags Admin Catalog
// @Accept json
// @Produce json
// @Param request body EquipmentRequest true "Equipment"
// @Success 200 {object} response.Response{data=domain.Equipment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/equipment [put]
func (h *AdminHandler) UpdateEquipment(c *gin.Context) {
	req, ok := bindEquipment(c)
	if !ok {
		return
	}

	item, err := h.service.UpdateEquipment(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "equipment", req.ID, "Failed to update equipment")
		return
	}
	response.Success(c, http.StatusOK, item)
}

// DeleteEquipment handles DELETE /admin/equipment?id=
// @Summary Delete equipment and its images
// @Tags Admin Catalog
// @Produce json
// @Param id query string true "Equipment ID"
// @Success 200 {object} response.Response{data=MessageResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/equipment [delete]
func (h *AdminHandler) DeleteEquipment(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_ID", "id query parameter is required")
		return
	}

	if err := h.service.DeleteEquipment(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "equipment", id, "Failed to delete equipment")
		return
	}
	response.Success(c, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Equipment with id '%s' deleted successfully", id),
	})
}

// ListCategories handles GET /admin/categories
// @Summary List categories (admin)
// @Tags Admin Catalog
// @Produce json
// @Success 200 {object} response.Response{data=[]domain.Category}
// @Failure 500 {object} response.Response
// @Router /admin/categories [get]
func (h *AdminHandler) ListCategories(c *gin.Context) {
	items, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to fetch category data")
		return
	}
	response.Success(c, http.StatusOK, items)
}

// CreateCategory handles POST /admin/categories
// @Summary Create category
// @Description Slug and id are derived from the name when omitted.
// @Tags Admin Catalog
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category"
// @Success 201 {object} response.Response{data=domain.Category}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	req, ok := bindCategory(c)
	if !ok {
		return
	}

	item, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "category", req.ID, "Failed to create category")
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// UpdateCategory handles PUT /admin/categories
// @Summary Update category
// @Tags Admin Catalog
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category"
// @Success 200 {object} response.Response{data=domain.Category}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/categories [put]
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	req, ok := bindCategory(c)
	if !ok {
		return
	}

	item, err := h.service.UpdateCategory(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "category", req.ID, "Failed to update category")
		return
	}
	response.Success(c, http.StatusOK, item)
}

// DeleteCategory handles DELETE /admin/categories?id=
// Categories that still have equipment are refused with equipmentCount in
// the error details.
// @Summary Delete category
// @Tags Admin Catalog
// @Produce json
// @Param id query string true "Category ID"
// @Success 200 {object} response.Response{data=MessageResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /admin/categories [delete]
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_ID", "id query parameter is required")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "category", id, "Failed to delete category")
		return
	}
	response.Success(c, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Category with id '%s' deleted successfully", id),
	})
}

func (h *AdminHandler) writeError(c *gin.Context, err error, kind, id, fallback string) {
	var verr *ValidationError
	var inUse *CategoryInUseError

	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verr.Messages)
	case errors.As(err, &inUse):
		response.ErrorWithDetails(c, http.StatusBadRequest, "CATEGORY_IN_USE", inUse.Error(), gin.H{
			"equipmentCount": inUse.Count,
		})
	case errors.Is(err, ErrDuplicateID):
		response.Error(c, http.StatusBadRequest, "DUPLICATE_ID",
			fmt.Sprintf("%s with id '%s' already exists", title(kind), id))
	case errors.Is(err, ErrDuplicateSlug):
		response.Error(c, http.StatusBadRequest, "DUPLICATE_SLUG",
			fmt.Sprintf("%s with the same slug already exists", title(kind)))
	case errors.Is(err, ErrEquipmentNotFound):
		response.Error(c, http.StatusNotFound, "EQUIPMENT_NOT_FOUND",
			fmt.Sprintf("Equipment with id '%s' not found", id))
	case errors.Is(err, ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, "CATEGORY_NOT_FOUND",
			fmt.Sprintf("Category with id '%s' not found", id))
	default:
		response.Internal(c, err, fallback)
	}
}

func title(kind string) string {
	if kind == "category" {
		return "Category"
	}
	return "Equipment"
}

func bindEquipment(c *gin.Context) (*EquipmentRequest, bool) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return nil, false
	}
	req, err := DecodeEquipment(body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return nil, false
	}
	return req, true
}

func bindCategory(c *gin.Context) (*CategoryRequest, bool) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return nil, false
	}
	req, err := DecodeCategory(body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return nil, false
	}
	return req, true
}
