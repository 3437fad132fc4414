package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentcatalog/internal/pkg/response"
)

// Handler serves the public read-only catalog.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListEquipment handles GET /api/v1/equipment
// @Summary List equipment
// @Tags Catalog
// @Produce json
// @Param category query string false "Category id or slug"
// @Param available query bool false "Only available / unavailable items"
// @Param featured query bool false "Only featured / non-featured items"
// @Success 200 {object} response.Response{data=[]domain.Equipment}
// @Failure 400 {object} response.Response
// @Router /equipment [get]
func (h *Handler) ListEquipment(c *gin.Context) {
	filter := EquipmentFilter{Category: c.Query("category")}

	var err error
	if filter.Available, err = queryBool(c, "available"); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "available must be true or false")
		return
	}
	if filter.Featured, err = queryBool(c, "featured"); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "featured must be true or false")
		return
	}

	items, err := h.service.FilterEquipment(c.Request.Context(), filter)
	if err != nil {
		response.Internal(c, err, "Failed to fetch equipment")
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetEquipment handles GET /api/v1/equipment/:slug
// @Summary Get equipment with related items
// @Tags Catalog
// @Produce json
// @Param slug path string true "Equipment slug"
// @Success 200 {object} response.Response{data=EquipmentDetail}
// @Failure 404 {object} response.Response
// @Router /equipment/{slug} [get]
func (h *Handler) GetEquipment(c *gin.Context) {
	detail, err := h.service.EquipmentBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrEquipmentNotFound) {
			response.Error(c, http.StatusNotFound, "EQUIPMENT_NOT_FOUND", "Equipment not found")
			return
		}
		response.Internal(c, err, "Failed to fetch equipment")
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// ListCategories handles GET /api/v1/categories
func (h *Handler) ListCategories(c *gin.Context) {
	items, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to fetch categories")
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetCategory handles GET /api/v1/categories/:slug
func (h *Handler) GetCategory(c *gin.Context) {
	detail, err := h.service.CategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.Error(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found")
			return
		}
		response.Internal(c, err, "Failed to fetch category")
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
