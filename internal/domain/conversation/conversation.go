// Package conversation defines the conversation domain model.
// Conversations and their messages are strictly tenant-owned.
package conversation

import "time"

// Conversation represents a chat thread owned by a single tenant.
type Conversation struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Title     string    `json:"title"`
	PersonaID string    `json:"persona_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message represents a single message in a conversation.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Role           string    `json:"role"` // "user", "assistant", "system"
	Content        string    `json:"content"`
	TokensIn       int       `json:"tokens_in,omitempty"`
	TokensOut      int       `json:"tokens_out,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateRequest is the request body for creating a new conversation.
type CreateRequest struct {
	Title     string `json:"title"`
	PersonaID string `json:"persona_id,omitempty"`
}

// UpdateRequest holds the fields that can be updated on a conversation.
type UpdateRequest struct {
	Title string `json:"title"`
}

// AppendMessageRequest is the request body for appending a message.
type AppendMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
