package audit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memSink struct {
	entries []Entry
	err     error
}

func (m *memSink) Record(_ context.Context, e Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func TestFanoutDeliversToAllSinks(t *testing.T) {
	a, b := &memSink{}, &memSink{}
	e := Entry{ID: "1", Kind: "create", Target: "documents", TenantID: "t1", At: time.Now()}

	if err := Fanout(a, b).Record(context.Background(), e); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(a.entries) != 1 || len(b.entries) != 1 {
		t.Errorf("both sinks must receive the entry, got %d and %d", len(a.entries), len(b.entries))
	}
}

func TestFanoutContinuesPastFailure(t *testing.T) {
	boom := errors.New("boom")
	a, b := &memSink{err: boom}, &memSink{}

	err := Fanout(a, b).Record(context.Background(), Entry{ID: "1"})
	if !errors.Is(err, boom) {
		t.Fatalf("first failure must surface, got %v", err)
	}
	if len(b.entries) != 1 {
		t.Error("later sinks must still receive the entry")
	}
}
