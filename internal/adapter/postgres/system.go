package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halvardlabs/aegis/internal/domain"
	"github.com/halvardlabs/aegis/internal/domain/document"
	"github.com/halvardlabs/aegis/internal/domain/tenant"
)

// SystemClient is the unscoped client for global records: the tenant
// registry, shared-document administration, and the health probe. It does
// not carry the interceptor pipeline, so it must never be handed to
// tenant-facing code paths.
type SystemClient struct {
	pool *pgxpool.Pool
}

// Healthy reports database liveness with a single no-op query. It is
// independent of any tenant context.
func (s *SystemClient) Healthy(ctx context.Context) bool {
	var one int
	return s.pool.QueryRow(ctx, `SELECT 1`).Scan(&one) == nil
}

// SessionTenant reports the tenant id bound to the session configuration
// of whichever pooled connection serves the query. Outside a policy
// transaction it must come back empty; a non-empty value means
// transaction-local scoping was violated somewhere.
func (s *SystemClient) SessionTenant(ctx context.Context) (string, error) {
	var v *string
	if err := s.pool.QueryRow(ctx, `SELECT current_setting('app.tenant_id', true)`).Scan(&v); err != nil {
		return "", fmt.Errorf("read session tenant: %w", err)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// --- Tenant registry ---

func (s *SystemClient) CreateTenant(ctx context.Context, req tenant.CreateRequest) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var settingsJSON []byte
	err := s.pool.QueryRow(ctx,
		`INSERT INTO tenants (name, slug) VALUES ($1, $2)
		 RETURNING id, name, slug, enabled, settings, created_at, updated_at`,
		req.Name, req.Slug,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.Enabled, &settingsJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	if settingsJSON != nil {
		_ = json.Unmarshal(settingsJSON, &t.Settings)
	}
	return &t, nil
}

func (s *SystemClient) GetTenant(ctx context.Context, id string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	var settingsJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, slug, enabled, settings, created_at, updated_at
		 FROM tenants WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.Enabled, &settingsJSON, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get tenant %s", id)
	}
	if settingsJSON != nil {
		_ = json.Unmarshal(settingsJSON, &t.Settings)
	}
	return &t, nil
}

func (s *SystemClient) ListTenants(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, slug, enabled, settings, created_at, updated_at
		 FROM tenants ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		var settingsJSON []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Enabled, &settingsJSON, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		if settingsJSON != nil {
			_ = json.Unmarshal(settingsJSON, &t.Settings)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (s *SystemClient) UpdateTenant(ctx context.Context, t *tenant.Tenant) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET name = $2, enabled = $3, updated_at = now()
		 WHERE id = $1`,
		t.ID, t.Name, t.Enabled)
	if err != nil {
		return fmt.Errorf("update tenant %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update tenant %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

// DeleteTenant removes a tenant; all of its rows cascade.
func (s *SystemClient) DeleteTenant(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tenant %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete tenant %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// --- Shared documents ---
//
// Shared rows (tenant_id IS NULL) are read-only under tenant contexts;
// creating and mutating them is system-level administration.

func (s *SystemClient) CreateSharedDocument(ctx context.Context, req document.CreateRequest) (*document.Document, error) {
	var d document.Document
	err := s.pool.QueryRow(ctx,
		`INSERT INTO documents (tenant_id, title, source, content)
		 VALUES (NULL, $1, $2, $3)
		 RETURNING id, title, source, content, created_at, updated_at`,
		req.Title, req.Source, req.Content,
	).Scan(&d.ID, &d.Title, &d.Source, &d.Content, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create shared document: %w", err)
	}
	return &d, nil
}

func (s *SystemClient) UpdateSharedDocument(ctx context.Context, id string, req document.UpdateRequest) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE documents SET
		   title = COALESCE(NULLIF($2, ''), title),
		   content = COALESCE(NULLIF($3, ''), content),
		   updated_at = now()
		 WHERE id = $1 AND tenant_id IS NULL`,
		id, req.Title, req.Content)
	if err != nil {
		return fmt.Errorf("update shared document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update shared document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *SystemClient) DeleteSharedDocument(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND tenant_id IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete shared document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete shared document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
