package service

import (
	"context"

	"github.com/halvardlabs/aegis/internal/adapter/postgres"
	"github.com/halvardlabs/aegis/internal/port/audit"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

const defaultAuditLimit = 100

// AuditService exposes the tenant's own audit trail.
type AuditService struct {
	registry *postgres.Registry
}

// NewAuditService creates an AuditService.
func NewAuditService(registry *postgres.Registry) *AuditService {
	return &AuditService{registry: registry}
}

// List returns the tenant's recorded mutations, newest first.
func (s *AuditService) List(ctx context.Context, tc tenancy.Context, limit int) ([]audit.Entry, error) {
	if limit <= 0 || limit > 1000 {
		limit = defaultAuditLimit
	}
	return s.registry.Scoped(tc).ListAuditEvents(ctx, limit)
}
