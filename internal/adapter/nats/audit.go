// Package nats implements the audit sink port using NATS JetStream.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	aegisotel "github.com/halvardlabs/aegis/internal/adapter/otel"
	"github.com/halvardlabs/aegis/internal/port/audit"
)

const streamName = "AEGIS_AUDIT"

// Sink publishes audit entries to a JetStream stream, one subject per
// tenant, so downstream consumers can replay or filter a single tenant's
// trail.
type Sink struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	metrics *aegisotel.Metrics
}

// Connect establishes a connection to NATS and ensures the audit stream
// exists. metrics may be nil.
func Connect(ctx context.Context, url string, metrics *aegisotel.Metrics) (*Sink, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"audit.>"},
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream stream create: %w", err)
	}

	slog.Info("nats connected", "url", url, "stream", streamName)
	return &Sink{nc: nc, js: js, metrics: metrics}, nil
}

// Record publishes one audit entry to audit.<tenant_id>.
func (s *Sink) Record(ctx context.Context, entry audit.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	subject := "audit." + entry.TenantID
	if _, err := s.js.Publish(ctx, subject, data); err != nil {
		if s.metrics != nil {
			s.metrics.AuditFailed.Add(ctx, 1)
		}
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	if s.metrics != nil {
		s.metrics.AuditPublished.Add(ctx, 1)
	}
	return nil
}

// Subscribe registers a handler for audit entries on the stream. Pass
// "audit.>" to observe every tenant or audit.<tenant_id> for one. The
// returned function stops the consumer.
func (s *Sink) Subscribe(ctx context.Context, subject string, handler func(audit.Entry)) (func(), error) {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("nats consumer create: %w", err)
	}

	cons, err := consumer.Consume(func(msg jetstream.Msg) {
		var entry audit.Entry
		if err := json.Unmarshal(msg.Data(), &entry); err != nil {
			slog.Error("malformed audit entry", "subject", msg.Subject(), "error", err)
			if termErr := msg.Term(); termErr != nil {
				slog.Error("nats term failed", "error", termErr)
			}
			return
		}
		handler(entry)
		if ackErr := msg.Ack(); ackErr != nil {
			slog.Error("nats ack failed", "error", ackErr)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("nats consume: %w", err)
	}

	return cons.Stop, nil
}

// Healthy reports whether the NATS connection is up.
func (s *Sink) Healthy() bool {
	return s.nc.IsConnected()
}

// Close shuts down the NATS connection.
func (s *Sink) Close() error {
	s.nc.Close()
	return nil
}
