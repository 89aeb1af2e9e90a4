package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "aegis"

// Metrics holds all Aegis metric instruments.
type Metrics struct {
	AuditPublished  metric.Int64Counter
	AuditFailed     metric.Int64Counter
	TenantLookups   metric.Int64Counter
	TenantCacheHits metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.AuditPublished, err = meter.Int64Counter("aegis.audit.published",
		metric.WithDescription("Number of audit entries published"))
	if err != nil {
		return nil, err
	}

	m.AuditFailed, err = meter.Int64Counter("aegis.audit.failed",
		metric.WithDescription("Number of audit entries that failed to publish"))
	if err != nil {
		return nil, err
	}

	m.TenantLookups, err = meter.Int64Counter("aegis.tenant.lookups",
		metric.WithDescription("Number of tenant metadata lookups"))
	if err != nil {
		return nil, err
	}

	m.TenantCacheHits, err = meter.Int64Counter("aegis.tenant.cache_hits",
		metric.WithDescription("Number of tenant lookups served from cache"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
