package config

import "testing"

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("PRALINE_DB_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without PRALINE_DB_DSN")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PRALINE_DB_DSN", "praline:praline@tcp(localhost:3306)/praline?parseTime=true")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Bind != DefaultBind {
		t.Fatalf("unexpected bind: %s", cfg.Bind)
	}
	if cfg.StorageRoot != DefaultStorageRoot {
		t.Fatalf("unexpected storage root: %s", cfg.StorageRoot)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Fatalf("unexpected max upload: %d", cfg.MaxUploadBytes)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PRALINE_DB_DSN", "dsn")
	t.Setenv("PRALINE_BIND", ":9090")
	t.Setenv("PRALINE_STORAGE_ROOT", "/tmp/praline")
	t.Setenv("PRALINE_MAX_UPLOAD_BYTES", "1024")
	t.Setenv("PRALINE_CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://localhost:8080 ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Bind != ":9090" || cfg.StorageRoot != "/tmp/praline" || cfg.MaxUploadBytes != 1024 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("cors origins not parsed: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadRejectsNonPositiveUploadCap(t *testing.T) {
	t.Setenv("PRALINE_DB_DSN", "dsn")
	t.Setenv("PRALINE_MAX_UPLOAD_BYTES", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative upload cap")
	}
}
