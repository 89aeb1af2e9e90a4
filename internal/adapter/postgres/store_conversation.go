package postgres

import (
	"context"
	"time"

	"github.com/halvardlabs/aegis/internal/domain/conversation"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

var conversationColumns = []string{"id", "tenant_id", "title", "persona_id", "created_at", "updated_at"}

var messageColumns = []string{"id", "conversation_id", "role", "content", "tokens_in", "tokens_out", "created_at"}

func scanConversation(s scannable) (*conversation.Conversation, error) {
	var cv conversation.Conversation
	var personaID *string
	if err := s.Scan(&cv.ID, &cv.TenantID, &cv.Title, &personaID, &cv.CreatedAt, &cv.UpdatedAt); err != nil {
		return nil, err
	}
	cv.PersonaID = orEmpty(personaID)
	return &cv, nil
}

func scanMessage(s scannable) (*conversation.Message, error) {
	var m conversation.Message
	if err := s.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.TokensIn, &m.TokensOut, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateConversation inserts a conversation owned by the client's tenant.
// The tenant column is filled by the isolation interceptor.
func (c *Client) CreateConversation(ctx context.Context, req conversation.CreateRequest) (*conversation.Conversation, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindCreate,
		Target:  TargetConversations,
		Columns: conversationColumns,
		Values: []tenancy.Assign{
			{Column: "title", Value: req.Title},
			{Column: "persona_id", Value: nullIfEmpty(req.PersonaID)},
		},
	}
	row, err := c.insert(ctx, op)
	if err != nil {
		return nil, err
	}
	cv, err := scanConversation(row)
	if err != nil {
		return nil, notFoundWrap(err, "create conversation")
	}
	return cv, nil
}

// GetConversation returns the conversation with the given id, or
// domain.ErrNotFound when it does not exist or belongs to another tenant.
func (c *Client) GetConversation(ctx context.Context, id string) (*conversation.Conversation, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindFindOne,
		Target:  TargetConversations,
		Columns: conversationColumns,
		Where:   []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: id}},
	}
	row, err := c.selectRow(ctx, op)
	if err != nil {
		return nil, err
	}
	cv, err := scanConversation(row)
	if err != nil {
		return nil, notFoundWrap(err, "get conversation %s", id)
	}
	return cv, nil
}

// ListConversations returns the tenant's conversations, most recently
// updated first.
func (c *Client) ListConversations(ctx context.Context) ([]conversation.Conversation, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindFindMany,
		Target:  TargetConversations,
		Columns: conversationColumns,
		OrderBy: "updated_at DESC",
	}
	rows, err := c.selectRows(ctx, op)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []conversation.Conversation
	for rows.Next() {
		cv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *cv)
	}
	return out, rows.Err()
}

// CountConversations returns how many conversations the tenant owns.
func (c *Client) CountConversations(ctx context.Context) (int64, error) {
	op := &tenancy.Operation{
		Kind:   tenancy.KindCount,
		Target: TargetConversations,
	}
	return c.count(ctx, op)
}

// UpdateConversation retitles a conversation and reports how many rows
// matched. Zero means the conversation does not exist for this tenant.
func (c *Client) UpdateConversation(ctx context.Context, id string, req conversation.UpdateRequest) (int64, error) {
	op := &tenancy.Operation{
		Kind:   tenancy.KindUpdate,
		Target: TargetConversations,
		Where:  []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: id}},
		Values: []tenancy.Assign{
			{Column: "title", Value: req.Title},
			{Column: "updated_at", Value: time.Now().UTC()},
		},
	}
	return c.exec(ctx, op)
}

// DeleteConversation removes a conversation; messages cascade.
func (c *Client) DeleteConversation(ctx context.Context, id string) (int64, error) {
	op := &tenancy.Operation{
		Kind:   tenancy.KindDelete,
		Target: TargetConversations,
		Where:  []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: id}},
	}
	return c.exec(ctx, op)
}

// AppendMessage adds a message to one of the tenant's conversations. The
// conversation is resolved through the scoped pipeline first, so a
// conversation id belonging to another tenant yields domain.ErrNotFound
// before anything is written.
func (c *Client) AppendMessage(ctx context.Context, conversationID string, req conversation.AppendMessageRequest) (*conversation.Message, error) {
	if _, err := c.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	op := &tenancy.Operation{
		Kind:    tenancy.KindCreate,
		Target:  TargetMessages,
		Columns: messageColumns,
		Values: []tenancy.Assign{
			{Column: "conversation_id", Value: conversationID},
			{Column: "role", Value: req.Role},
			{Column: "content", Value: req.Content},
		},
	}
	row, err := c.insert(ctx, op)
	if err != nil {
		return nil, err
	}
	m, err := scanMessage(row)
	if err != nil {
		return nil, notFoundWrap(err, "append message to %s", conversationID)
	}

	touch := &tenancy.Operation{
		Kind:   tenancy.KindUpdate,
		Target: TargetConversations,
		Where:  []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: conversationID}},
		Values: []tenancy.Assign{{Column: "updated_at", Value: time.Now().UTC()}},
	}
	if _, err := c.exec(ctx, touch); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMessages returns a conversation's messages in chronological order.
// Messages carry their own tenant column, so the scope predicate applies
// to the nested read as well.
func (c *Client) ListMessages(ctx context.Context, conversationID string) ([]conversation.Message, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindFindMany,
		Target:  TargetMessages,
		Columns: messageColumns,
		Where:   []tenancy.Cond{{Column: "conversation_id", Op: tenancy.CondEq, Value: conversationID}},
		OrderBy: "created_at ASC",
	}
	rows, err := c.selectRows(ctx, op)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []conversation.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
