// Package tenancy implements the tenant isolation enforcement engine: the
// request-scoped tenant context, the operation interceptor pipeline, and
// the target metadata that drives both. The database side of the guarantee
// (policy transactions and row-level security) lives in adapter/postgres.
package tenancy

import "fmt"

// Context identifies the active tenant, and optionally the acting user,
// for one unit of work. It is an immutable value: construct it once per
// inbound request and pass it by value. Construction is total; an empty
// TenantID is only rejected when the first data operation runs through the
// isolation interceptor.
type Context struct {
	TenantID string
	ActorID  string
}

// NewContext builds a tenant context. actorID may be empty for
// non-interactive work.
func NewContext(tenantID, actorID string) Context {
	return Context{TenantID: tenantID, ActorID: actorID}
}

// System reports whether the context carries no tenant, i.e. it was built
// for the unscoped system client.
func (c Context) System() bool { return c.TenantID == "" }

// ContextValidationError is returned when a data operation is attempted
// under a context with no tenant identifier. It is raised before any
// database round-trip so the failure is attributable to the call site.
// It is the only error type owned by this layer; policy rejections and
// connectivity failures surface as driver errors.
type ContextValidationError struct {
	Op     string // operation kind that was attempted
	Target string // table the operation addressed
}

func (e *ContextValidationError) Error() string {
	if e.Op == "" {
		return "tenant context: missing tenant id"
	}
	return fmt.Sprintf("tenant context: missing tenant id for %s on %s", e.Op, e.Target)
}
