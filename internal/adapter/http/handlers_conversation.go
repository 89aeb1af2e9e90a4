package http

import (
	"net/http"

	"github.com/halvardlabs/aegis/internal/domain/conversation"
	"github.com/halvardlabs/aegis/internal/middleware"
)

// CreateConversation handles POST /api/v1/conversations.
func (h *Handlers) CreateConversation(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[conversation.CreateRequest](w, r)
	if !ok {
		return
	}
	conv, err := h.Conversations.Create(r.Context(), tc, req)
	if err != nil {
		writeDomainError(w, err, "create conversation")
		return
	}
	writeJSON(w, http.StatusCreated, conv)
}

// ListConversations handles GET /api/v1/conversations.
func (h *Handlers) ListConversations(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	conversations, err := h.Conversations.List(r.Context(), tc)
	if err != nil {
		writeDomainError(w, err, "list conversations")
		return
	}
	if conversations == nil {
		conversations = []conversation.Conversation{}
	}
	writeJSON(w, http.StatusOK, conversations)
}

// GetConversation handles GET /api/v1/conversations/{id}.
func (h *Handlers) GetConversation(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	conv, err := h.Conversations.Get(r.Context(), tc, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// UpdateConversation handles PUT /api/v1/conversations/{id}.
func (h *Handlers) UpdateConversation(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[conversation.UpdateRequest](w, r)
	if !ok {
		return
	}
	conv, err := h.Conversations.Update(r.Context(), tc, urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// DeleteConversation handles DELETE /api/v1/conversations/{id}.
func (h *Handlers) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	if err := h.Conversations.Delete(r.Context(), tc, urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "conversation not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AppendConversationMessage handles POST /api/v1/conversations/{id}/messages.
func (h *Handlers) AppendConversationMessage(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	req, ok := readJSON[conversation.AppendMessageRequest](w, r)
	if !ok {
		return
	}
	msg, err := h.Conversations.AppendMessage(r.Context(), tc, urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "conversation not found")
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// ListConversationMessages handles GET /api/v1/conversations/{id}/messages.
func (h *Handlers) ListConversationMessages(w http.ResponseWriter, r *http.Request) {
	tc := middleware.TenantFromContext(r.Context())
	messages, err := h.Conversations.ListMessages(r.Context(), tc, urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "conversation not found")
		return
	}
	if messages == nil {
		messages = []conversation.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}
