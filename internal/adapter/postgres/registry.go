package postgres

import (
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halvardlabs/aegis/internal/port/audit"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

// Registry builds and caches one scoped client per (tenant, actor) pair.
// It is an explicit object with a constructor and a dispose lifecycle:
// inject it where clients are needed rather than reaching for a global.
// Lookup and construction happen under one lock, so concurrent first-time
// lookups for the same key converge on a single instance; clients are
// cheap stateless wrappers, so the serialization is free.
type Registry struct {
	pool       *pgxpool.Pool
	sink       audit.Sink
	log        *slog.Logger
	tenantRole string

	mu      sync.Mutex
	clients map[string]*Client
	closed  bool
}

// Options configures optional registry collaborators.
type Options struct {
	// AuditSink receives mutation audit entries; nil disables auditing.
	AuditSink audit.Sink
	// TenantRole is the allow-listed database role switched to inside
	// policy transactions; empty disables the role switch. Validation
	// against the closed allow-list happens at config load.
	TenantRole string
	// Logger for audit-failure warnings; nil uses the default logger.
	Logger *slog.Logger
}

// NewRegistry creates a registry that owns the given pool. DisposeAll
// closes the pool; the registry is the pool's sole owner from here on.
func NewRegistry(pool *pgxpool.Pool, opts Options) *Registry {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		pool:       pool,
		sink:       opts.AuditSink,
		log:        log,
		tenantRole: opts.TenantRole,
		clients:    make(map[string]*Client),
	}
}

// Scoped returns the client bound to tc, building it on first use. The
// pipeline order is fixed here: isolation first, audit observing the
// rewritten operation second.
func (r *Registry) Scoped(tc tenancy.Context) *Client {
	key := tc.TenantID + "\x00" + actorOrSystem(tc.ActorID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[key]; ok {
		return c
	}
	c := &Client{
		pool: r.pool,
		tc:   tc,
		chain: tenancy.NewChain(
			tenancy.NewIsolationInterceptor(tc),
			tenancy.NewAuditInterceptor(tc, r.sink, r.log),
		),
	}
	r.clients[key] = c
	return c
}

// System returns the unscoped client for global records. It bypasses the
// isolation pipeline entirely; callers are trusted not to touch
// tenant-scoped tables through it, except for shared-row administration.
func (r *Registry) System() *SystemClient {
	return &SystemClient{pool: r.pool}
}

// Len reports how many scoped clients are cached.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// DisposeAll tears down every cached client and closes the underlying
// pool. It is the only supported way to release the registry's resources
// and is idempotent; use it at process shutdown.
func (r *Registry) DisposeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.clients = make(map[string]*Client)
	if r.pool != nil {
		r.pool.Close()
	}
}

func actorOrSystem(actorID string) string {
	if actorID == "" {
		return "system"
	}
	return actorID
}
