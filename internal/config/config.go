package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultBind                 = ":8080"
	DefaultStorageRoot          = "/srv/praline/images"
	DefaultMaxUploadBytes int64 = 20 * 1024 * 1024
)

type Config struct {
	Bind               string
	DBDSN              string
	StorageRoot        string
	MaxUploadBytes     int64
	CORSAllowedOrigins []string
	LogLevel           string
	SwaggerUIPath      string
	OpenAPIPath        string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Bind:               getenv("PRALINE_BIND", DefaultBind),
		StorageRoot:        getenv("PRALINE_STORAGE_ROOT", DefaultStorageRoot),
		MaxUploadBytes:     getInt64("PRALINE_MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		CORSAllowedOrigins: splitAndTrim(os.Getenv("PRALINE_CORS_ALLOWED_ORIGINS")),
		LogLevel:           os.Getenv("PRALINE_LOG_LEVEL"),
		SwaggerUIPath:      "/swagger",
		OpenAPIPath:        "/openapi.yaml",
	}

	cfg.DBDSN = os.Getenv("PRALINE_DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("PRALINE_DB_DSN is required")
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("PRALINE_MAX_UPLOAD_BYTES must be positive")
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

func splitAndTrim(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
