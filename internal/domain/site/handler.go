package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentcatalog/internal/domain"
	"rentcatalog/internal/pkg/response"
)

var ErrServiceNotFound = errors.New("service not found")

// Repository reads the marketing content. ServiceBySlug returns an error
// matching ErrServiceNotFound (via errors.Is) for unknown slugs.
type Repository interface {
	Services(ctx context.Context) ([]domain.Service, error)
	ServiceBySlug(ctx context.Context, slug string) (*domain.Service, error)
	Company(ctx context.Context) (*domain.CompanyInfo, error)
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListServices handles GET /api/v1/services
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.repo.Services(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to fetch services")
		return
	}
	response.Success(c, http.StatusOK, services)
}

// GetService handles GET /api/v1/services/:slug
func (h *Handler) GetService(c *gin.Context) {
	svc, err := h.repo.ServiceBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found")
			return
		}
		response.Internal(c, err, "Failed to fetch service")
		return
	}
	response.Success(c, http.StatusOK, svc)
}

// GetCompany handles GET /api/v1/company
func (h *Handler) GetCompany(c *gin.Context) {
	info, err := h.repo.Company(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to fetch company info")
		return
	}
	response.Success(c, http.StatusOK, info)
}
