package service

import (
	"context"
	"fmt"

	"github.com/halvardlabs/aegis/internal/adapter/postgres"
	"github.com/halvardlabs/aegis/internal/domain"
	"github.com/halvardlabs/aegis/internal/domain/conversation"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

// validRoles are the accepted message author roles.
var validRoles = map[string]bool{"user": true, "assistant": true, "system": true}

// ConversationService manages conversations through tenant-scoped clients.
type ConversationService struct {
	registry *postgres.Registry
}

// NewConversationService creates a ConversationService.
func NewConversationService(registry *postgres.Registry) *ConversationService {
	return &ConversationService{registry: registry}
}

// Create starts a new conversation for the calling tenant.
func (s *ConversationService) Create(ctx context.Context, tc tenancy.Context, req conversation.CreateRequest) (*conversation.Conversation, error) {
	if req.Title == "" {
		req.Title = "New Conversation"
	}
	return s.registry.Scoped(tc).CreateConversation(ctx, req)
}

// Get returns one of the tenant's conversations.
func (s *ConversationService) Get(ctx context.Context, tc tenancy.Context, id string) (*conversation.Conversation, error) {
	return s.registry.Scoped(tc).GetConversation(ctx, id)
}

// List returns the tenant's conversations.
func (s *ConversationService) List(ctx context.Context, tc tenancy.Context) ([]conversation.Conversation, error) {
	return s.registry.Scoped(tc).ListConversations(ctx)
}

// Count returns how many conversations the tenant owns.
func (s *ConversationService) Count(ctx context.Context, tc tenancy.Context) (int64, error) {
	return s.registry.Scoped(tc).CountConversations(ctx)
}

// Update retitles a conversation. A conversation that does not exist for
// this tenant, including one owned by another tenant, reports not found.
func (s *ConversationService) Update(ctx context.Context, tc tenancy.Context, id string, req conversation.UpdateRequest) (*conversation.Conversation, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	client := s.registry.Scoped(tc)
	affected, err := client.UpdateConversation(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("update conversation %s: %w", id, domain.ErrNotFound)
	}
	return client.GetConversation(ctx, id)
}

// Delete removes a conversation and its messages.
func (s *ConversationService) Delete(ctx context.Context, tc tenancy.Context, id string) error {
	affected, err := s.registry.Scoped(tc).DeleteConversation(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("delete conversation %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AppendMessage adds a message to one of the tenant's conversations.
func (s *ConversationService) AppendMessage(ctx context.Context, tc tenancy.Context, conversationID string, req conversation.AppendMessageRequest) (*conversation.Message, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	if !validRoles[req.Role] {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrValidation, req.Role)
	}
	return s.registry.Scoped(tc).AppendMessage(ctx, conversationID, req)
}

// ListMessages returns a conversation's messages in order.
func (s *ConversationService) ListMessages(ctx context.Context, tc tenancy.Context, conversationID string) ([]conversation.Message, error) {
	return s.registry.Scoped(tc).ListMessages(ctx, conversationID)
}
