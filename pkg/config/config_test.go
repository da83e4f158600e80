package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}

	if cfg.Backend.BaseURL != "https://api.thali.example" {
		t.Fatalf("unexpected backend base url: %q", cfg.Backend.BaseURL)
	}

	if got := cfg.Backend.Timeout; got != 15*time.Second {
		t.Fatalf("expected default backend timeout 15s, got %v", got)
	}

	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}

	if cfg.Profile.Dir != ".thali" {
		t.Fatalf("unexpected profile dir %q", cfg.Profile.Dir)
	}

	if cfg.Checkout.IdempotencyTTL != 168*time.Hour {
		t.Fatalf("unexpected checkout idempotency ttl %v", cfg.Checkout.IdempotencyTTL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsNonHTTPBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvBackendBaseURL, "ftp://api.thali.example")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http backend url to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvAppPort, "8081")
	t.Setenv(EnvBackendBaseURL, "https://api.thali.example")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
