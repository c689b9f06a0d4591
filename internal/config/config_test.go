package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Auth.TokenTTL != 72 {
		t.Errorf("expected token ttl 72, got %d", cfg.Auth.TokenTTL)
	}
	if cfg.Sync.FetchTimeoutMS != 10000 {
		t.Errorf("expected fetch timeout 10000, got %d", cfg.Sync.FetchTimeoutMS)
	}
	if cfg.Storage.DBPath == "" {
		t.Error("expected a default db path")
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	t.Setenv("DEVTRACK_JWT_SECRET", "test-secret")

	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %s", cfg.Server.Addr)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[server]
addr = ":9090"

[storage]
db_path = "/tmp/test.db"

[auth]
jwt_secret = "file-secret"
token_ttl_hours = 24

[sync]
github_token = "tok123"
fetch_timeout_ms = 5000
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Errorf("expected file-secret, got %s", cfg.Auth.JWTSecret)
	}
	if cfg.FetchTimeout() != 5*time.Second {
		t.Errorf("expected 5s fetch timeout, got %v", cfg.FetchTimeout())
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %v", cfg.TokenTTL())
	}
	if cfg.Sync.GitHubToken != "tok123" {
		t.Errorf("expected github token tok123, got %s", cfg.Sync.GitHubToken)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[server]
addr = ":9090"

[auth]
jwt_secret = "file-secret"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("DEVTRACK_ADDR", ":7070")
	t.Setenv("DEVTRACK_JWT_SECRET", "env-secret")
	t.Setenv("DEVTRACK_FETCH_TIMEOUT_MS", "2500")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":7070" {
		t.Errorf("expected env override :7070, got %s", cfg.Server.Addr)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("expected env override env-secret, got %s", cfg.Auth.JWTSecret)
	}
	if cfg.Sync.FetchTimeoutMS != 2500 {
		t.Errorf("expected env override 2500, got %d", cfg.Sync.FetchTimeoutMS)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected an error for malformed toml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"empty db path", func(c *Config) { c.Storage.DBPath = "" }},
		{"empty jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"zero fetch timeout", func(c *Config) { c.Sync.FetchTimeoutMS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
