package service

import (
	"context"
	"fmt"

	"github.com/halvardlabs/aegis/internal/adapter/postgres"
	"github.com/halvardlabs/aegis/internal/domain"
	"github.com/halvardlabs/aegis/internal/domain/document"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

// DocumentService manages knowledge documents. Tenant-owned documents go
// through scoped clients; company-wide shared documents are administered
// through the system client.
type DocumentService struct {
	registry *postgres.Registry
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(registry *postgres.Registry) *DocumentService {
	return &DocumentService{registry: registry}
}

func (s *DocumentService) Create(ctx context.Context, tc tenancy.Context, req document.CreateRequest) (*document.Document, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	return s.registry.Scoped(tc).CreateDocument(ctx, req)
}

// Get returns an owned or company-wide document.
func (s *DocumentService) Get(ctx context.Context, tc tenancy.Context, id string) (*document.Document, error) {
	return s.registry.Scoped(tc).GetDocument(ctx, id)
}

// List returns the tenant's documents together with the shared ones.
func (s *DocumentService) List(ctx context.Context, tc tenancy.Context) ([]document.Document, error) {
	return s.registry.Scoped(tc).ListDocuments(ctx)
}

// Update modifies an owned document. Shared documents report not found:
// they are read-only from a tenant context.
func (s *DocumentService) Update(ctx context.Context, tc tenancy.Context, id string, req document.UpdateRequest) (*document.Document, error) {
	client := s.registry.Scoped(tc)
	affected, err := client.UpdateDocument(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("update document %s: %w", id, domain.ErrNotFound)
	}
	return client.GetDocument(ctx, id)
}

func (s *DocumentService) Delete(ctx context.Context, tc tenancy.Context, id string) error {
	affected, err := s.registry.Scoped(tc).DeleteDocument(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("delete document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// CreateShared publishes a company-wide document.
func (s *DocumentService) CreateShared(ctx context.Context, req document.CreateRequest) (*document.Document, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	return s.registry.System().CreateSharedDocument(ctx, req)
}

// UpdateShared modifies a company-wide document.
func (s *DocumentService) UpdateShared(ctx context.Context, id string, req document.UpdateRequest) error {
	return s.registry.System().UpdateSharedDocument(ctx, id, req)
}

// DeleteShared removes a company-wide document.
func (s *DocumentService) DeleteShared(ctx context.Context, id string) error {
	return s.registry.System().DeleteSharedDocument(ctx, id)
}
