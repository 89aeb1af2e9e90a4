package postgres

import (
	"context"
	"time"

	"github.com/halvardlabs/aegis/internal/domain/document"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

var documentColumns = []string{"id", "tenant_id", "title", "source", "content", "created_at", "updated_at"}

func scanDocument(s scannable) (*document.Document, error) {
	var d document.Document
	var tenantID *string
	if err := s.Scan(&d.ID, &tenantID, &d.Title, &d.Source, &d.Content, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.TenantID = orEmpty(tenantID)
	return &d, nil
}

// CreateDocument inserts a tenant-owned document. Company-wide documents
// are created through the system client instead.
func (c *Client) CreateDocument(ctx context.Context, req document.CreateRequest) (*document.Document, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindCreate,
		Target:  TargetDocuments,
		Columns: documentColumns,
		Values: []tenancy.Assign{
			{Column: "title", Value: req.Title},
			{Column: "source", Value: req.Source},
			{Column: "content", Value: req.Content},
		},
	}
	row, err := c.insert(ctx, op)
	if err != nil {
		return nil, err
	}
	d, err := scanDocument(row)
	if err != nil {
		return nil, notFoundWrap(err, "create document")
	}
	return d, nil
}

// GetDocument returns an owned or shared document by id.
func (c *Client) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindFindOne,
		Target:  TargetDocuments,
		Columns: documentColumns,
		Where:   []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: id}},
	}
	row, err := c.selectRow(ctx, op)
	if err != nil {
		return nil, err
	}
	d, err := scanDocument(row)
	if err != nil {
		return nil, notFoundWrap(err, "get document %s", id)
	}
	return d, nil
}

// ListDocuments returns the tenant's own documents together with the
// company-wide shared ones.
func (c *Client) ListDocuments(ctx context.Context) ([]document.Document, error) {
	op := &tenancy.Operation{
		Kind:    tenancy.KindFindMany,
		Target:  TargetDocuments,
		Columns: documentColumns,
		OrderBy: "updated_at DESC",
	}
	rows, err := c.selectRows(ctx, op)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// UpdateDocument applies the non-empty fields of req to an owned
// document. Shared documents never match the mutation predicate, so
// updating one reports zero rows.
func (c *Client) UpdateDocument(ctx context.Context, id string, req document.UpdateRequest) (int64, error) {
	op := &tenancy.Operation{
		Kind:   tenancy.KindUpdate,
		Target: TargetDocuments,
		Where:  []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: id}},
	}
	if req.Title != "" {
		op.SetValue("title", req.Title)
	}
	if req.Content != "" {
		op.SetValue("content", req.Content)
	}
	if len(op.Values) == 0 {
		return 0, nil
	}
	op.SetValue("updated_at", time.Now().UTC())
	return c.exec(ctx, op)
}

// DeleteDocument removes an owned document; shared documents are
// untouchable from a tenant context and report zero rows.
func (c *Client) DeleteDocument(ctx context.Context, id string) (int64, error) {
	op := &tenancy.Operation{
		Kind:   tenancy.KindDelete,
		Target: TargetDocuments,
		Where:  []tenancy.Cond{{Column: "id", Op: tenancy.CondEq, Value: id}},
	}
	return c.exec(ctx, op)
}
