package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router. Tenant
// routes resolve their scope from the X-Tenant-ID header; admin routes
// operate through the system client and ignore it.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/healthz", h.Healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Tenant registry (system scope)
		r.Get("/tenants", h.ListTenants)
		r.Post("/tenants", h.CreateTenant)
		r.Get("/tenants/{id}", h.GetTenant)
		r.Put("/tenants/{id}", h.UpdateTenant)
		r.Delete("/tenants/{id}", h.DeleteTenant)

		// Shared document administration (system scope)
		r.Post("/admin/documents", h.CreateSharedDocument)
		r.Put("/admin/documents/{id}", h.UpdateSharedDocument)
		r.Delete("/admin/documents/{id}", h.DeleteSharedDocument)

		// Conversations (tenant scope)
		r.Get("/conversations", h.ListConversations)
		r.Post("/conversations", h.CreateConversation)
		r.Get("/conversations/{id}", h.GetConversation)
		r.Put("/conversations/{id}", h.UpdateConversation)
		r.Delete("/conversations/{id}", h.DeleteConversation)
		r.Get("/conversations/{id}/messages", h.ListConversationMessages)
		r.Post("/conversations/{id}/messages", h.AppendConversationMessage)

		// Personas (tenant scope)
		r.Get("/personas", h.ListPersonas)
		r.Post("/personas", h.CreatePersona)
		r.Get("/personas/{id}", h.GetPersona)
		r.Put("/personas/{id}", h.UpdatePersona)
		r.Delete("/personas/{id}", h.DeletePersona)

		// Audit trail (tenant scope, read-only)
		r.Get("/audit", h.ListAuditEvents)

		// Documents (tenant scope, shared rows included in reads)
		r.Get("/documents", h.ListDocuments)
		r.Post("/documents", h.CreateDocument)
		r.Get("/documents/{id}", h.GetDocument)
		r.Put("/documents/{id}", h.UpdateDocument)
		r.Delete("/documents/{id}", h.DeleteDocument)
	})
}
