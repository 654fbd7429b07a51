package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StorageDriver != "file" {
		t.Errorf("StorageDriver = %q, want file", cfg.StorageDriver)
	}
	if cfg.StoragePath != "data/library.json" {
		t.Errorf("StoragePath = %q", cfg.StoragePath)
	}
	if cfg.RAWGAPIKey != "" {
		t.Errorf("RAWGAPIKey should default empty, got %q", cfg.RAWGAPIKey)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Error("CORSOrigins should have a default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_PATH", "data/library.db")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.StorageDriver != "sqlite" {
		t.Errorf("StorageDriver = %q, want sqlite", cfg.StorageDriver)
	}
	if cfg.StoragePath != "data/library.db" {
		t.Errorf("StoragePath = %q", cfg.StoragePath)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}
