package postgres

import "github.com/halvardlabs/aegis/internal/tenancy"

// Target definitions for every table the clients touch. Table names and
// scopes are compiled in; nothing here is derived from caller input.
var (
	// TargetTenants is the tenant registry itself: a global table exempt
	// from isolation, reachable only through the system client.
	TargetTenants = tenancy.Target{Table: "tenants", Scope: tenancy.ScopeGlobal}

	TargetConversations = tenancy.Target{Table: "conversations", Scope: tenancy.ScopeStrict}
	TargetMessages      = tenancy.Target{Table: "conversation_messages", Scope: tenancy.ScopeStrict}
	TargetPersonas      = tenancy.Target{Table: "personas", Scope: tenancy.ScopeStrict}
	TargetAuditEvents   = tenancy.Target{Table: "audit_events", Scope: tenancy.ScopeStrict}

	// TargetDocuments is shareable: rows with a NULL tenant_id are
	// company-wide and readable under every tenant context. They stay
	// read-only for tenants (SharedWritable is off); mutation of shared
	// rows goes through the system client.
	TargetDocuments = tenancy.Target{Table: "documents", Scope: tenancy.ScopeShared}
)
