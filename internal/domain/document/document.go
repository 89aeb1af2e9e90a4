// Package document defines the knowledge document domain model.
//
// Documents are the shareable record category: TenantID may be empty, in
// which case the document is company-wide, readable under every tenant
// context but owned by none. Shared documents are mutable only through the
// system client.
package document

import "time"

// Document is a knowledge document used to ground persona answers.
type Document struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id,omitempty"` // empty = shared/company-wide
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Shared reports whether the document is company-wide rather than owned
// by a single tenant.
func (d *Document) Shared() bool { return d.TenantID == "" }

// CreateRequest holds the fields required to create a document.
type CreateRequest struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Content string `json:"content"`
}

// UpdateRequest holds the fields that can be updated on a document.
type UpdateRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}
