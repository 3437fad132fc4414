package site

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentcatalog/internal/domain"
)

type fakeRepo struct {
	services []domain.Service
	company  domain.CompanyInfo
	err      error
}

func (f *fakeRepo) Services(context.Context) ([]domain.Service, error) {
	return f.services, f.err
}

func (f *fakeRepo) ServiceBySlug(_ context.Context, slug string) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.services {
		if f.services[i].Slug == slug {
			return &f.services[i], nil
		}
	}
	return nil, ErrServiceNotFound
}

func (f *fakeRepo) Company(context.Context) (*domain.CompanyInfo, error) {
	return &f.company, f.err
}

func setupTestRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), NewHandler(repo))
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestSiteEndpoints(t *testing.T) {
	r := setupTestRouter(&fakeRepo{
		services: []domain.Service{{ID: "lighting", Slug: "svet", Name: "Свет"}},
		company:  domain.CompanyInfo{Name: "Кинопрокат", OGRN: "1234567890123"},
	})

	rr := get(r, "/api/v1/services")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = get(r, "/api/v1/services/svet")
	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data domain.Service `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "lighting", body.Data.ID)

	rr = get(r, "/api/v1/services/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = get(r, "/api/v1/company")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ogrn":"1234567890123"`)
}

func TestSiteEndpoints_ReadFailure(t *testing.T) {
	r := setupTestRouter(&fakeRepo{err: errors.New("disk on fire")})

	for _, path := range []string{"/api/v1/services", "/api/v1/services/x", "/api/v1/company"} {
		rr := get(r, path)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, path)
		assert.NotContains(t, rr.Body.String(), "disk on fire")
	}
}
