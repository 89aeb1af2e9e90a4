package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	aegisotel "github.com/halvardlabs/aegis/internal/adapter/otel"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

// Session configuration keys read by the row-level security policies.
// Both are set transaction-locally (set_config third argument true), so
// pooled-connection reuse across requests cannot leak one tenant's
// context into another's transaction.
const (
	sessionTenantKey    = "app.tenant_id"
	sessionIsolationKey = "app.tenant_isolation"
)

// WithTenantContext opens one transaction, switches to the allow-listed
// tenant role (when configured), enables policy evaluation and binds the
// session tenant, then runs body against the transaction. The session
// configuration is cleared and the role reset on every exit path before
// the transaction commits or rolls back. A body error rolls the
// transaction back and propagates unmodified; there is no retry.
//
// Statements issued on tx, raw SQL included, are filtered by the
// per-table policies, independent of the interceptor pipeline.
func (r *Registry) WithTenantContext(ctx context.Context, tenantID string, body func(tx pgx.Tx) error) error {
	if tenantID == "" {
		return &tenancy.ContextValidationError{Op: "policy_tx"}
	}

	ctx, span := aegisotel.StartPolicyTxSpan(ctx, tenantID)
	defer span.End()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin policy tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if r.tenantRole != "" {
		// The role name was validated against the closed allow-list at
		// config load; Sanitize quotes it as an identifier regardless.
		if _, err := tx.Exec(ctx, "SET LOCAL ROLE "+pgx.Identifier{r.tenantRole}.Sanitize()); err != nil {
			return fmt.Errorf("set tenant role: %w", err)
		}
	}

	if _, err := tx.Exec(ctx,
		fmt.Sprintf(`SELECT set_config('%s', $1, true), set_config('%s', 'on', true)`,
			sessionTenantKey, sessionIsolationKey),
		tenantID,
	); err != nil {
		return fmt.Errorf("set tenant session config: %w", err)
	}

	bodyErr := body(tx)

	// Clear the session configuration whether body succeeded or failed.
	// Transaction-local settings die with the transaction anyway, but
	// resetting before commit never leaves a window where a committed
	// transaction carried live tenant state. When body failed the
	// transaction may already be aborted, so cleanup is best-effort and
	// the body error wins.
	_, clearErr := tx.Exec(ctx,
		fmt.Sprintf(`SELECT set_config('%s', '', true), set_config('%s', '', true)`,
			sessionTenantKey, sessionIsolationKey))
	if r.tenantRole != "" {
		_, _ = tx.Exec(ctx, "RESET ROLE")
	}

	if bodyErr != nil {
		return bodyErr
	}
	if clearErr != nil {
		return fmt.Errorf("clear tenant session config: %w", clearErr)
	}
	return tx.Commit(ctx)
}
