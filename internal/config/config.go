package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultAppEnv         = "production"
	defaultHTTPAddr       = ":8080"
	defaultStoreDriver    = "file"
	defaultDataDir        = "./data"
	defaultDatabaseURL    = "catalog.db"
	defaultStaticDir      = "./static"
	defaultUploadMaxBytes = "5242880" // 5 MiB
	defaultImageMaxWidth  = "1920"
	defaultImageQuality   = "80"
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"

	StoreFile = "file"
	StoreDB   = "db"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	StoreDriver    string
	DataDir        string
	DatabaseURL    string
	StaticDir      string
	UploadMaxBytes int64
	ImageMaxWidth  int
	ImageQuality   int
	LogLevel       string
	LogFormat      string
	CORSOrigins    []string
}

// Load reads the configuration from the environment.
// Callers that want .env support load it with godotenv before calling.
func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = defaultAppEnv
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(getEnv("CATALOG_STORE", defaultStoreDriver)))
	cfg.DataDir = strings.TrimSpace(getEnv("DATA_DIR", defaultDataDir))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.StaticDir = strings.TrimSpace(getEnv("STATIC_DIR", defaultStaticDir))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.LogFormat = strings.TrimSpace(getEnv("LOG_FORMAT", defaultLogFormat))
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.UploadMaxBytes, err = parseInt64Env("UPLOAD_MAX_BYTES", defaultUploadMaxBytes)
	if err != nil {
		return nil, err
	}

	maxWidth, err := parseInt64Env("IMAGE_MAX_WIDTH", defaultImageMaxWidth)
	if err != nil {
		return nil, err
	}
	cfg.ImageMaxWidth = int(maxWidth)

	quality, err := parseInt64Env("IMAGE_QUALITY", defaultImageQuality)
	if err != nil {
		return nil, err
	}
	cfg.ImageQuality = int(quality)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDev reports whether the admin surface may be served.
func (c *Config) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

func (c *Config) EquipmentFile() string { return filepath.Join(c.DataDir, "equipment.yaml") }
func (c *Config) CategoryFile() string  { return filepath.Join(c.DataDir, "categories.yaml") }
func (c *Config) SiteFile() string      { return filepath.Join(c.DataDir, "site.yaml") }

func validateConfig(cfg *Config) error {
	if cfg.StoreDriver != StoreFile && cfg.StoreDriver != StoreDB {
		return fmt.Errorf("CATALOG_STORE must be one of: %s, %s", StoreFile, StoreDB)
	}
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if cfg.StaticDir == "" {
		return fmt.Errorf("STATIC_DIR must not be empty")
	}
	if cfg.StoreDriver == StoreDB && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when CATALOG_STORE=db")
	}
	if cfg.UploadMaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be > 0")
	}
	if cfg.ImageMaxWidth <= 0 {
		return fmt.Errorf("IMAGE_MAX_WIDTH must be > 0")
	}
	if cfg.ImageQuality < 1 || cfg.ImageQuality > 100 {
		return fmt.Errorf("IMAGE_QUALITY must be between 1 and 100")
	}

	return nil
}

func parseInt64Env(name, fallback string) (int64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
