package service

import (
	"context"
	"fmt"

	"github.com/halvardlabs/aegis/internal/adapter/postgres"
	"github.com/halvardlabs/aegis/internal/domain"
	"github.com/halvardlabs/aegis/internal/domain/persona"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

// PersonaService manages personas through tenant-scoped clients.
type PersonaService struct {
	registry *postgres.Registry
}

// NewPersonaService creates a PersonaService.
func NewPersonaService(registry *postgres.Registry) *PersonaService {
	return &PersonaService{registry: registry}
}

func (s *PersonaService) Create(ctx context.Context, tc tenancy.Context, req persona.CreateRequest) (*persona.Persona, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	return s.registry.Scoped(tc).CreatePersona(ctx, req)
}

func (s *PersonaService) Get(ctx context.Context, tc tenancy.Context, id string) (*persona.Persona, error) {
	return s.registry.Scoped(tc).GetPersona(ctx, id)
}

func (s *PersonaService) List(ctx context.Context, tc tenancy.Context) ([]persona.Persona, error) {
	return s.registry.Scoped(tc).ListPersonas(ctx)
}

func (s *PersonaService) Update(ctx context.Context, tc tenancy.Context, id string, req persona.UpdateRequest) (*persona.Persona, error) {
	client := s.registry.Scoped(tc)
	affected, err := client.UpdatePersona(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("update persona %s: %w", id, domain.ErrNotFound)
	}
	return client.GetPersona(ctx, id)
}

func (s *PersonaService) Delete(ctx context.Context, tc tenancy.Context, id string) error {
	affected, err := s.registry.Scoped(tc).DeletePersona(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("delete persona %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
