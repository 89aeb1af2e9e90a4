package tenancy

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/halvardlabs/aegis/internal/port/audit"
)

// AuditInterceptor records mutation operations to a sink after isolation
// rewriting has succeeded and before the call reaches storage. It is a
// pure observer: it never rejects an operation, and sink failures are
// logged rather than propagated.
type AuditInterceptor struct {
	tc   Context
	sink audit.Sink
	log  *slog.Logger
}

// NewAuditInterceptor builds an audit interceptor for the given context.
// log may be nil, in which case the default logger is used.
func NewAuditInterceptor(tc Context, sink audit.Sink, log *slog.Logger) *AuditInterceptor {
	if log == nil {
		log = slog.Default()
	}
	return &AuditInterceptor{tc: tc, sink: sink, log: log}
}

// Intercept records op when it is a mutation against a tenant-scoped
// target. Reads and global targets are not audited.
func (a *AuditInterceptor) Intercept(ctx context.Context, op *Operation) error {
	if a.sink == nil || !op.Kind.Mutation() || op.Target.Scope == ScopeGlobal {
		return nil
	}

	e := audit.Entry{
		ID:       uuid.NewString(),
		Kind:     string(op.Kind),
		Target:   op.Target.Table,
		TenantID: a.tc.TenantID,
		ActorID:  a.tc.ActorID,
		At:       time.Now().UTC(),
	}
	if err := a.sink.Record(ctx, e); err != nil {
		a.log.Warn("audit record failed",
			"kind", e.Kind, "target", e.Target, "tenant", e.TenantID, "error", err)
	}
	return nil
}
