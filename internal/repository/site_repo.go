package repository

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rentcatalog/internal/domain"
	"rentcatalog/internal/domain/site"
)

// SiteRepository serves the read-only company and services content.
// The file is re-read on every call so edits show up without a restart.
type SiteRepository struct {
	path string
}

func NewSiteRepository(path string) *SiteRepository {
	return &SiteRepository{path: path}
}

func (r *SiteRepository) load() (*domain.SiteData, error) {
	content, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	var data domain.SiteData
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	if data.Services == nil {
		data.Services = []domain.Service{}
	}
	return &data, nil
}

func (r *SiteRepository) Services(_ context.Context) ([]domain.Service, error) {
	data, err := r.load()
	if err != nil {
		return nil, err
	}
	return data.Services, nil
}

func (r *SiteRepository) ServiceBySlug(_ context.Context, slug string) (*domain.Service, error) {
	data, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range data.Services {
		if data.Services[i].Slug == slug {
			return &data.Services[i], nil
		}
	}
	return nil, site.ErrServiceNotFound
}

func (r *SiteRepository) Company(_ context.Context) (*domain.CompanyInfo, error) {
	data, err := r.load()
	if err != nil {
		return nil, err
	}
	return &data.Company, nil
}
