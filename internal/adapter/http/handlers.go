package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/halvardlabs/aegis/internal/service"
)

// HealthCheck probes one dependency's liveness.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// Handlers bundles the services the HTTP layer exposes.
type Handlers struct {
	Tenants       *service.TenantService
	Conversations *service.ConversationService
	Personas      *service.PersonaService
	Documents     *service.DocumentService
	Audit         *service.AuditService
	HealthChecks  []HealthCheck
}

// Healthz probes every registered dependency concurrently and reports 503
// when any of them fails.
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, check := range h.HealthChecks {
		g.Go(func() error {
			if err := check.Probe(ctx); err != nil {
				return fmt.Errorf("%s: %w", check.Name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"reason": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
