package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "aegis"

// StartPolicyTxSpan starts a span for a policy-context transaction.
func StartPolicyTxSpan(ctx context.Context, tenantID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "policy_tx",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
		),
	)
}

// StartOperationSpan starts a span for a scoped data-access operation.
func StartOperationSpan(ctx context.Context, kind, table, tenantID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "db_operation",
		trace.WithAttributes(
			attribute.String("db.operation", kind),
			attribute.String("db.table", table),
			attribute.String("tenant.id", tenantID),
		),
	)
}
