package logger

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// collectHandler records every slog.Record it handles.
type collectHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (c *collectHandler) Enabled(context.Context, slog.Level) bool { return true }

func (c *collectHandler) Handle(_ context.Context, rec slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, rec)
	return nil
}

func (c *collectHandler) WithAttrs([]slog.Attr) slog.Handler { return c }
func (c *collectHandler) WithGroup(string) slog.Handler      { return c }

func (c *collectHandler) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

func TestAsyncHandlerDeliversAndDrainsOnClose(t *testing.T) {
	inner := &collectHandler{}
	h := NewAsyncHandler(inner, 64, 1)
	log := slog.New(h)

	for range 10 {
		log.Info("event")
	}
	h.Close()

	if got := inner.len(); got != 10 {
		t.Errorf("expected 10 records after close, got %d", got)
	}
	if h.DroppedCount() != 0 {
		t.Errorf("expected no drops, got %d", h.DroppedCount())
	}
}

func TestAsyncHandlerDropsWhenFull(t *testing.T) {
	// Zero workers: nothing drains the channel, so overflow is dropped.
	inner := &collectHandler{}
	h := NewAsyncHandler(inner, 2, 0)

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "event", 0)
	for range 5 {
		_ = h.Handle(context.Background(), rec)
	}
	if h.DroppedCount() != 3 {
		t.Errorf("expected 3 dropped records, got %d", h.DroppedCount())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":    slog.LevelDebug,
		"warn":     slog.LevelWarn,
		"error":    slog.LevelError,
		"info":     slog.LevelInfo,
		"anything": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	if got := RequestID(ctx); got != "req-42" {
		t.Errorf("got %q", got)
	}
	if got := RequestID(context.Background()); got != "" {
		t.Errorf("expected empty id without middleware, got %q", got)
	}
}
