package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "aegis.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "AEGIS_PORT")
	setString(&cfg.Server.CORSOrigin, "AEGIS_CORS_ORIGIN")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "AEGIS_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "AEGIS_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "AEGIS_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "AEGIS_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "AEGIS_PG_HEALTH_CHECK")
	setString(&cfg.Postgres.TenantRole, "AEGIS_PG_TENANT_ROLE")
	setString(&cfg.NATS.URL, "NATS_URL")
	setInt64(&cfg.Cache.MaxCostBytes, "AEGIS_CACHE_MAX_COST")
	setDuration(&cfg.Cache.TenantTTL, "AEGIS_CACHE_TENANT_TTL")
	setString(&cfg.Logging.Level, "AEGIS_LOG_LEVEL")
	setString(&cfg.Logging.Service, "AEGIS_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "AEGIS_LOG_ASYNC")
	setBool(&cfg.Telemetry.Enabled, "AEGIS_OTEL_ENABLED")
	setString(&cfg.Telemetry.OTLPEndpoint, "AEGIS_OTLP_ENDPOINT")
}

// validate rejects configurations that cannot be run safely.
func validate(cfg *Config) error {
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return fmt.Errorf("postgres max_conns must be >= 1, got %d", cfg.Postgres.MaxConns)
	}
	if cfg.Postgres.MinConns > cfg.Postgres.MaxConns {
		return fmt.Errorf("postgres min_conns (%d) exceeds max_conns (%d)",
			cfg.Postgres.MinConns, cfg.Postgres.MaxConns)
	}
	// The tenant role is interpolated into SQL as an identifier; it must
	// come from the closed allow-list, never from free-form input.
	if cfg.Postgres.TenantRole != "" && !slices.Contains(cfg.Postgres.AllowedRoles, cfg.Postgres.TenantRole) {
		return fmt.Errorf("postgres tenant_role %q is not in allowed_roles", cfg.Postgres.TenantRole)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
