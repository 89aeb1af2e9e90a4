package http

import (
	"net/http"
	"strconv"

	"github.com/halvardlabs/aegis/internal/middleware"
	"github.com/halvardlabs/aegis/internal/port/audit"
)

// ListAuditEvents handles GET /api/v1/audit. Entries come back newest
// first; the limit query parameter caps the page size.
func (h *Handlers) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.Audit.List(r.Context(), tc, limit)
	if err != nil {
		writeDomainError(w, err, "list audit events")
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
