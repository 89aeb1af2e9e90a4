package http

import (
	"net/http"

	"github.com/halvardlabs/aegis/internal/domain/persona"
	"github.com/halvardlabs/aegis/internal/middleware"
)

// CreatePersona handles POST /api/v1/personas.
func (h *Handlers) CreatePersona(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[persona.CreateRequest](w, r)
	if !ok {
		return
	}
	p, err := h.Personas.Create(r.Context(), tc, req)
	if err != nil {
		writeDomainError(w, err, "create persona")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ListPersonas handles GET /api/v1/personas.
func (h *Handlers) ListPersonas(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	personas, err := h.Personas.List(r.Context(), tc)
	if err != nil {
		writeDomainError(w, err, "list personas")
		return
	}
	if personas == nil {
		personas = []persona.Persona{}
	}
	writeJSON(w, http.StatusOK, personas)
}

// GetPersona handles GET /api/v1/personas/{id}.
func (h *Handlers) GetPersona(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	p, err := h.Personas.Get(r.Context(), tc, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "persona not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdatePersona handles PUT /api/v1/personas/{id}.
func (h *Handlers) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[persona.UpdateRequest](w, r)
	if !ok {
		return
	}
	p, err := h.Personas.Update(r.Context(), tc, urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "persona not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePersona handles DELETE /api/v1/personas/{id}.
func (h *Handlers) DeletePersona(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	if err := h.Personas.Delete(r.Context(), tc, urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "persona not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
