package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halvardlabs/aegis/internal/tenancy"
)

// Client is a data-access client bound to one tenant context. Every
// operation it issues runs through the interceptor pipeline before being
// rendered to SQL, so a client built for tenant A can never observe or
// mutate another tenant's strictly-owned rows. Clients are stateless
// wrappers around the shared connection pool and are safe for concurrent
// use.
type Client struct {
	pool  *pgxpool.Pool
	tc    tenancy.Context
	chain tenancy.Chain
}

// Tenant returns the context the client is bound to.
func (c *Client) Tenant() tenancy.Context { return c.tc }

// --- Operation execution ---

// selectRows applies the pipeline to op and executes it as a SELECT.
func (c *Client) selectRows(ctx context.Context, op *tenancy.Operation) (pgx.Rows, error) {
	if err := c.chain.Apply(ctx, op); err != nil {
		return nil, err
	}
	sql, args := buildSelect(op)
	return c.pool.Query(ctx, sql, args...)
}

// selectRow is selectRows for single-row reads.
func (c *Client) selectRow(ctx context.Context, op *tenancy.Operation) (pgx.Row, error) {
	if err := c.chain.Apply(ctx, op); err != nil {
		return nil, err
	}
	sql, args := buildSelect(op)
	return c.pool.QueryRow(ctx, sql, args...), nil
}

// count applies the pipeline to op and executes it as SELECT count(*).
func (c *Client) count(ctx context.Context, op *tenancy.Operation) (int64, error) {
	if err := c.chain.Apply(ctx, op); err != nil {
		return 0, err
	}
	var args []any
	sql := "SELECT count(*) FROM " + op.Target.Table + buildWhere(op.Where, &args)
	var n int64
	if err := c.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", op.Target.Table, err)
	}
	return n, nil
}

// insert applies the pipeline to op and executes it as an INSERT with a
// RETURNING clause built from op.Columns.
func (c *Client) insert(ctx context.Context, op *tenancy.Operation) (pgx.Row, error) {
	if err := c.chain.Apply(ctx, op); err != nil {
		return nil, err
	}
	sql, args := buildInsert(op)
	return c.pool.QueryRow(ctx, sql, args...), nil
}

// exec applies the pipeline to op and executes it as an UPDATE or DELETE,
// returning the number of affected rows. Zero affected rows is not an
// error at this layer: a cross-tenant update or delete legitimately
// matches nothing.
func (c *Client) exec(ctx context.Context, op *tenancy.Operation) (int64, error) {
	if err := c.chain.Apply(ctx, op); err != nil {
		return 0, err
	}

	var sql string
	var args []any
	switch op.Kind {
	case tenancy.KindUpdate:
		sql, args = buildUpdate(op)
	case tenancy.KindDelete:
		sql = "DELETE FROM " + op.Target.Table + buildWhere(op.Where, &args)
	default:
		return 0, fmt.Errorf("exec: unsupported operation kind %q", op.Kind)
	}

	tag, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", op.Kind, op.Target.Table, err)
	}
	return tag.RowsAffected(), nil
}

// --- SQL rendering ---
//
// Table and column identifiers come from the compiled-in target
// definitions and store methods, never from caller input; only values are
// passed as placeholders.

func buildSelect(op *tenancy.Operation) (string, []any) {
	var args []any
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(op.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(op.Target.Table)
	sb.WriteString(buildWhere(op.Where, &args))
	if op.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(op.OrderBy)
	}
	if op.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", op.Limit)
	}
	return sb.String(), args
}

func buildInsert(op *tenancy.Operation) (string, []any) {
	cols := make([]string, 0, len(op.Values))
	ph := make([]string, 0, len(op.Values))
	args := make([]any, 0, len(op.Values))
	for _, a := range op.Values {
		cols = append(cols, a.Column)
		args = append(args, a.Value)
		ph = append(ph, fmt.Sprintf("$%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(op.Target.Table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(strings.Join(ph, ", "))
	sb.WriteString(")")
	if len(op.Columns) > 0 {
		sb.WriteString(" RETURNING ")
		sb.WriteString(strings.Join(op.Columns, ", "))
	}
	return sb.String(), args
}

func buildUpdate(op *tenancy.Operation) (string, []any) {
	var args []any
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(op.Target.Table)
	sb.WriteString(" SET ")
	for i, a := range op.Values {
		if i > 0 {
			sb.WriteString(", ")
		}
		args = append(args, a.Value)
		fmt.Fprintf(&sb, "%s = $%d", a.Column, len(args))
	}
	sb.WriteString(buildWhere(op.Where, &args))
	return sb.String(), args
}

func buildWhere(conds []tenancy.Cond, args *[]any) string {
	if len(conds) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(" WHERE ")
	for i, cond := range conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		switch cond.Op {
		case tenancy.CondEqOrNull:
			*args = append(*args, cond.Value)
			fmt.Fprintf(&sb, "(%s = $%d OR %s IS NULL)", cond.Column, len(*args), cond.Column)
		default: // tenancy.CondEq
			*args = append(*args, cond.Value)
			fmt.Fprintf(&sb, "%s = $%d", cond.Column, len(*args))
		}
	}
	return sb.String()
}
