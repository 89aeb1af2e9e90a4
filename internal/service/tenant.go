// Package service holds the application services that sit between the
// HTTP surface and the scoped data-access clients.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	aegisotel "github.com/halvardlabs/aegis/internal/adapter/otel"
	"github.com/halvardlabs/aegis/internal/adapter/postgres"
	"github.com/halvardlabs/aegis/internal/domain"
	"github.com/halvardlabs/aegis/internal/domain/tenant"
	"github.com/halvardlabs/aegis/internal/port/cache"
)

// slugRe constrains tenant slugs to lowercase kebab-case.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// TenantService manages the tenant registry. Reads go through the
// in-process cache because tenant metadata is checked on nearly every
// request and changes rarely.
type TenantService struct {
	registry *postgres.Registry
	cache    cache.Cache
	ttl      time.Duration
	metrics  *aegisotel.Metrics
	log      *slog.Logger
}

// NewTenantService creates a TenantService. metrics may be nil.
func NewTenantService(registry *postgres.Registry, c cache.Cache, ttl time.Duration, metrics *aegisotel.Metrics, log *slog.Logger) *TenantService {
	return &TenantService{registry: registry, cache: c, ttl: ttl, metrics: metrics, log: log}
}

// Create registers a new tenant.
func (s *TenantService) Create(ctx context.Context, req tenant.CreateRequest) (*tenant.Tenant, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !slugRe.MatchString(req.Slug) {
		return nil, fmt.Errorf("%w: invalid slug %q, must be lowercase kebab-case", domain.ErrValidation, req.Slug)
	}
	return s.registry.System().CreateTenant(ctx, req)
}

// Get returns tenant metadata, served from cache when fresh.
func (s *TenantService) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	if s.metrics != nil {
		s.metrics.TenantLookups.Add(ctx, 1)
	}

	key := "tenant:" + id
	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		var t tenant.Tenant
		if err := json.Unmarshal(data, &t); err == nil {
			if s.metrics != nil {
				s.metrics.TenantCacheHits.Add(ctx, 1)
			}
			return &t, nil
		}
	}

	t, err := s.registry.System().GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(t); err == nil {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.log.Warn("tenant cache set failed", "tenant_id", id, "error", err)
		}
	}
	return t, nil
}

// List returns all tenants, bypassing the cache.
func (s *TenantService) List(ctx context.Context) ([]tenant.Tenant, error) {
	return s.registry.System().ListTenants(ctx)
}

// Update applies req to a tenant and invalidates its cache entry.
func (s *TenantService) Update(ctx context.Context, id string, req tenant.UpdateRequest) (*tenant.Tenant, error) {
	t, err := s.registry.System().GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		t.Name = req.Name
	}
	if req.Enabled != nil {
		t.Enabled = *req.Enabled
	}
	if err := s.registry.System().UpdateTenant(ctx, t); err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, "tenant:"+id); err != nil {
		s.log.Warn("tenant cache invalidation failed", "tenant_id", id, "error", err)
	}
	return t, nil
}

// Delete removes a tenant and, through cascading deletes, everything it
// owns. The cache entry is invalidated so a stale lookup cannot outlive
// the registry row by more than the TTL.
func (s *TenantService) Delete(ctx context.Context, id string) error {
	if err := s.registry.System().DeleteTenant(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, "tenant:"+id); err != nil {
		s.log.Warn("tenant cache invalidation failed", "tenant_id", id, "error", err)
	}
	return nil
}

// ValidateExists reports whether a tenant exists and is enabled.
func (s *TenantService) ValidateExists(ctx context.Context, id string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !t.Enabled {
		return fmt.Errorf("tenant %s is disabled", id)
	}
	return nil
}
