// Package audit defines the audit sink port (interface).
package audit

import (
	"context"
	"time"
)

// Entry records one mutation that passed isolation rewriting.
type Entry struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	Target   string    `json:"target"`
	TenantID string    `json:"tenant_id"`
	ActorID  string    `json:"actor_id,omitempty"`
	At       time.Time `json:"at"`
}

// Sink receives audit entries. Implementations must be safe for
// concurrent use; a failing sink never blocks the primary operation.
type Sink interface {
	Record(ctx context.Context, e Entry) error
}

// fanout delivers every entry to all sinks, returning the first failure
// after attempting each one.
type fanout []Sink

// Fanout composes sinks; typically the durable table plus the stream.
func Fanout(sinks ...Sink) Sink { return fanout(sinks) }

func (f fanout) Record(ctx context.Context, e Entry) error {
	var firstErr error
	for _, s := range f {
		if err := s.Record(ctx, e); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
