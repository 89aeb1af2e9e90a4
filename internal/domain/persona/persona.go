// Package persona defines the AI persona domain model.
// Personas are strictly tenant-owned; the orchestration layer that runs
// them is an external consumer of this repository.
package persona

import "time"

// Persona is a configured AI assistant profile.
type Persona struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt"`
	Model        string    `json:"model"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest holds the fields required to create a persona.
type CreateRequest struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
	Model        string `json:"model"`
}

// UpdateRequest holds the fields that can be updated on a persona.
type UpdateRequest struct {
	Name         string `json:"name,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Model        string `json:"model,omitempty"`
	Enabled      *bool  `json:"enabled,omitempty"`
}
