package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halvardlabs/aegis/internal/port/audit"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

// AuditStore persists audit entries to the audit_events table. It writes
// through the shared pool on the system path; tenants read their own
// trail through the scoped client.
type AuditStore struct {
	pool *pgxpool.Pool
}

// NewAuditStore creates an AuditStore on the given pool.
func NewAuditStore(pool *pgxpool.Pool) *AuditStore {
	return &AuditStore{pool: pool}
}

// Record inserts one audit entry.
func (s *AuditStore) Record(ctx context.Context, e audit.Entry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO audit_events (id, tenant_id, kind, target, actor_id, at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.TenantID, e.Kind, e.Target, e.ActorID, e.At)
	if err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}

var auditColumns = []string{"id", "kind", "target", "tenant_id", "actor_id", "at"}

// ListAuditEvents returns the tenant's audit trail, newest first. The
// read goes through the interceptor pipeline like any other scoped
// operation.
func (c *Client) ListAuditEvents(ctx context.Context, limit int) ([]audit.Entry, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindFindMany,
		Target:  TargetAuditEvents,
		Columns: auditColumns,
		OrderBy: "at DESC",
		Limit:   limit,
	}
	rows, err := c.selectRows(ctx, op)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Target, &e.TenantID, &e.ActorID, &e.At); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
