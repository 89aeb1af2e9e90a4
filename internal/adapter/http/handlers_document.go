package http

import (
	"net/http"

	"github.com/halvardlabs/aegis/internal/domain/document"
	"github.com/halvardlabs/aegis/internal/middleware"
)

// CreateDocument handles POST /api/v1/documents.
func (h *Handlers) CreateDocument(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[document.CreateRequest](w, r)
	if !ok {
		return
	}
	d, err := h.Documents.Create(r.Context(), tc, req)
	if err != nil {
		writeDomainError(w, err, "create document")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// ListDocuments handles GET /api/v1/documents. The response mixes the
// tenant's own documents with the company-wide shared ones.
func (h *Handlers) ListDocuments(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	documents, err := h.Documents.List(r.Context(), tc)
	if err != nil {
		writeDomainError(w, err, "list documents")
		return
	}
	if documents == nil {
		documents = []document.Document{}
	}
	writeJSON(w, http.StatusOK, documents)
}

// GetDocument handles GET /api/v1/documents/{id}.
func (h *Handlers) GetDocument(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	d, err := h.Documents.Get(r.Context(), tc, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// UpdateDocument handles PUT /api/v1/documents/{id}.
func (h *Handlers) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[document.UpdateRequest](w, r)
	if !ok {
		return
	}
	d, err := h.Documents.Update(r.Context(), tc, urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DeleteDocument handles DELETE /api/v1/documents/{id}.
func (h *Handlers) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	if err := h.Documents.Delete(r.Context(), tc, urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Shared document administration ---

// CreateSharedDocument handles POST /api/v1/admin/documents.
func (h *Handlers) CreateSharedDocument(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[document.CreateRequest](w, r)
	if !ok {
		return
	}
	d, err := h.Documents.CreateShared(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "create shared document")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// UpdateSharedDocument handles PUT /api/v1/admin/documents/{id}.
func (h *Handlers) UpdateSharedDocument(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[document.UpdateRequest](w, r)
	if !ok {
		return
	}
	if err := h.Documents.UpdateShared(r.Context(), urlParam(r, "id"), req); err != nil {
		writeDomainError(w, err, "shared document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSharedDocument handles DELETE /api/v1/admin/documents/{id}.
func (h *Handlers) DeleteSharedDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.Documents.DeleteShared(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "shared document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
