package config

import (
	"testing"
	"time"
)

func TestLoadRequiresHashSecret(t *testing.T) {
	t.Setenv("HASH_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when HASH_SECRET is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HASH_SECRET", "s3cr3t")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %s", cfg.Port)
	}
	if cfg.MaxChecks != 5 {
		t.Fatalf("expected default quota 5, got %d", cfg.MaxChecks)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected default token TTL 1h, got %s", cfg.TokenTTL)
	}
	if cfg.TLSEnabled() {
		t.Fatal("TLS should be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HASH_SECRET", "s3cr3t")
	t.Setenv("MAX_CHECKS", "3")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.MaxChecks != 3 {
		t.Fatalf("expected quota 3, got %d", cfg.MaxChecks)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected token TTL 30m, got %s", cfg.TokenTTL)
	}
	if cfg.ShutdownPeriod != 5*time.Second {
		t.Fatalf("expected shutdown period 5s, got %s", cfg.ShutdownPeriod)
	}
}

func TestLoadRejectsInvalidQuota(t *testing.T) {
	t.Setenv("HASH_SECRET", "s3cr3t")
	t.Setenv("MAX_CHECKS", "zero")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric MAX_CHECKS")
	}
}

func TestAddress(t *testing.T) {
	cfg := Config{Port: "8080"}
	if cfg.Address() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Address())
	}
	cfg.Port = ":9090"
	if cfg.Address() != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Address())
	}
}

func TestLoadRejectsHalfConfiguredTLS(t *testing.T) {
	t.Setenv("HASH_SECRET", "s3cr3t")
	t.Setenv("TLS_CERT_FILE", "/tmp/cert.pem")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when only the certificate is configured")
	}
}
