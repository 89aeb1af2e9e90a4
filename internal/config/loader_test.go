package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing yaml must not fail: %v", err)
	}
	want := Defaults()
	if cfg.Server.Port != want.Server.Port {
		t.Errorf("port: got %s, want %s", cfg.Server.Port, want.Server.Port)
	}
	if cfg.Postgres.TenantRole != "aegis_tenant" {
		t.Errorf("tenant role default: got %s", cfg.Postgres.TenantRole)
	}
	if cfg.Cache.TenantTTL != time.Minute {
		t.Errorf("tenant ttl default: got %s", cfg.Cache.TenantTTL)
	}
}

func TestLoadFromYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aegis.yaml")
	yaml := `
server:
  port: "9090"
postgres:
  max_conns: 30
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port: got %s", cfg.Server.Port)
	}
	if cfg.Postgres.MaxConns != 30 {
		t.Errorf("max_conns: got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level: got %s", cfg.Logging.Level)
	}
	// Untouched keys keep their defaults.
	if cfg.NATS.URL != Defaults().NATS.URL {
		t.Errorf("nats url: got %s", cfg.NATS.URL)
	}
}

func TestLoadFromEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aegis.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AEGIS_PORT", "7070")
	t.Setenv("AEGIS_LOG_ASYNC", "true")
	t.Setenv("AEGIS_CACHE_TENANT_TTL", "5m")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("env must win over yaml, got %s", cfg.Server.Port)
	}
	if !cfg.Logging.Async {
		t.Error("async flag not applied")
	}
	if cfg.Cache.TenantTTL != 5*time.Minute {
		t.Errorf("ttl: got %s", cfg.Cache.TenantTTL)
	}
}

func TestValidateRejectsUnlistedTenantRole(t *testing.T) {
	t.Setenv("AEGIS_PG_TENANT_ROLE", "evil_role")

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("a tenant role outside allowed_roles must be rejected")
	}
}

func TestValidateRejectsBadConnBounds(t *testing.T) {
	t.Setenv("AEGIS_PG_MAX_CONNS", "0")

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("max_conns below 1 must be rejected")
	}
}
