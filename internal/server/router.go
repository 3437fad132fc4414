package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"rentcatalog/internal/config"
	"rentcatalog/internal/domain/catalog"
	"rentcatalog/internal/domain/site"
	"rentcatalog/internal/domain/upload"
	"rentcatalog/internal/middleware"
	"rentcatalog/internal/repository"
)

// NewRouter wires handlers, middleware and static files into one engine.
func NewRouter(cfg *config.Config, log zerolog.Logger, store repository.CatalogStore, siteRepo site.Repository) *gin.Engine {
	images := upload.NewService(cfg.StaticDir, upload.Options{
		MaxBytes: cfg.UploadMaxBytes,
		MaxWidth: cfg.ImageMaxWidth,
		Quality:  cfg.ImageQuality,
	}, store, log.With().Str("component", "upload").Logger())

	catalogService := catalog.NewService(store, images, log.With().Str("component", "catalog").Logger())

	r := gin.New()
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.AccessLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "env": cfg.AppEnv, "store": cfg.StoreDriver})
	})

	r.Static("/images", filepath.Join(cfg.StaticDir, "images"))

	devOnly := middleware.DevOnly(cfg.IsDev())

	// admin
	admin := r.Group("/admin")
	admin.Use(devOnly)
	{
		catalog.RegisterAdminRoutes(admin, catalog.NewAdminHandler(catalogService))
	}

	// dev-only file management
	api := r.Group("/api")
	api.Use(devOnly)
	{
		upload.RegisterRoutes(api, upload.NewHandler(images))
	}

	// public
	v1 := r.Group("/api/v1")
	{
		catalog.RegisterPublicRoutes(v1, catalog.NewHandler(catalogService))
		site.RegisterRoutes(v1, site.NewHandler(siteRepo))
	}

	return r
}
