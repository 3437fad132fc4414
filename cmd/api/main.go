package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"rentcatalog/internal/config"
	"rentcatalog/internal/pkg/logging"
	"rentcatalog/internal/repository"
	"rentcatalog/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		errLog := logging.New("error", "console", os.Stderr)
		errLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := repository.OpenCatalog(cfg, log)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer store.Close()

	siteRepo := repository.NewSiteRepository(cfg.SiteFile())

	log.Info().
		Str("env", cfg.AppEnv).
		Bool("admin_enabled", cfg.IsDev()).
		Str("store", cfg.StoreDriver).
		Msg("starting catalog server")

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(cfg, log, store, siteRepo),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.Run(context.Background(), srv, log)
}
