package postgres

import (
	"context"
	"time"

	"github.com/halvardlabs/aegis/internal/domain/persona"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

var personaColumns = []string{"id", "tenant_id", "name", "system_prompt", "model", "enabled", "created_at", "updated_at"}

func scanPersona(s scannable) (*persona.Persona, error) {
	var p persona.Persona
	if err := s.Scan(&p.ID, &p.TenantID, &p.Name, &p.SystemPrompt, &p.Model, &p.Enabled, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePersona(ctx context.Context, req persona.CreateRequest) (*persona.Persona, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindCreate,
		Target:  TargetPersonas,
		Columns: personaColumns,
		Values: []tenancy.Assign{
			{Column: "name", Value: req.Name},
			{Column: "system_prompt", Value: req.SystemPrompt},
			{Column: "model", Value: req.Model},
		},
	}
	row, err := c.insert(ctx, op)
	if err != nil {
		return nil, err
	}
	p, err := scanPersona(row)
	if err != nil {
		return nil, notFoundWrap(err, "create persona")
	}
	return p, nil
}

func (c *Client) GetPersona(ctx context.Context, id string) (*persona.Persona, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindFindOne,
		Target:  TargetPersonas,
		Columns: personaColumns,
		Where:   []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: id}},
	}
	row, err := c.selectRow(ctx, op)
	if err != nil {
		return nil, err
	}
	p, err := scanPersona(row)
	if err != nil {
		return nil, notFoundWrap(err, "get persona %s", id)
	}
	return p, nil
}

func (c *Client) ListPersonas(ctx context.Context) ([]persona.Persona, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindFindMany,
		Target:  TargetPersonas,
		Columns: personaColumns,
		OrderBy: "name ASC",
	}
	rows, err := c.selectRows(ctx, op)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []persona.Persona
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// UpdatePersona applies the non-empty fields of req and reports how many
// rows matched.
func (c *Client) UpdatePersona(ctx context.Context, id string, req persona.UpdateRequest) (int64, error) {
	op := &tenancy.Operation{
		Kind:   tenancy.KindUpdate,
		Target: TargetPersonas,
		Where:  []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: id}},
	}
	if req.Name != "" {
		op.SetValue("name", req.Name)
	}
	if req.SystemPrompt != "" {
		op.SetValue("system_prompt", req.SystemPrompt)
	}
	if req.Model != "" {
		op.SetValue("model", req.Model)
	}
	if req.Enabled != nil {
		op.SetValue("enabled", *req.Enabled)
	}
	if len(op.Values) == 0 {
		return 0, nil
	}
	op.SetValue("updated_at", time.Now().UTC())
	return c.exec(ctx, op)
}

func (c *Client) DeletePersona(ctx context.Context, id string) (int64, error) {
	op := &tenancy.Operation{
		Kind:   tenancy.KindDelete,
		Target: TargetPersonas,
		Where:  []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: id}},
	}
	return c.exec(ctx, op)
}
