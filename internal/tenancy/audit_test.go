package tenancy

import (
	"context"
	"errors"
	"testing"

	"github.com/halvardlabs/aegis/internal/port/audit"
)

// memorySink collects entries in memory and optionally fails.
type memorySink struct {
	entries []audit.Entry
	err     error
}

func (m *memorySink) Record(_ context.Context, e audit.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func TestAuditRecordsMutations(t *testing.T) {
	sink := &memorySink{}
	ai := NewAuditInterceptor(NewContext("tenant-a", "user-1"), sink, nil)

	for _, kind := range []Kind{KindCreate, KindUpdate, KindDelete} {
		op := &Operation{Kind: kind, Target: strictTarget}
		if err := ai.Intercept(context.Background(), op); err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
	}

	if len(sink.entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(sink.entries))
	}
	e := sink.entries[0]
	if e.Kind != string(KindCreate) || e.Target != strictTarget.Table {
		t.Errorf("entry must describe the operation: %+v", e)
	}
	if e.TenantID != "tenant-a" || e.ActorID != "user-1" {
		t.Errorf("entry must carry the acting context: %+v", e)
	}
	if e.ID == "" || e.At.IsZero() {
		t.Errorf("entry must be identifiable and timestamped: %+v", e)
	}
}

func TestAuditSkipsReadsAndGlobals(t *testing.T) {
	sink := &memorySink{}
	ai := NewAuditInterceptor(NewContext("tenant-a", ""), sink, nil)

	ops := []*Operation{
		{Kind: KindFindMany, Target: strictTarget},
		{Kind: KindFindOne, Target: sharedTarget},
		{Kind: KindCount, Target: strictTarget},
		{Kind: KindCreate, Target: globalTarget},
	}
	for _, op := range ops {
		if err := ai.Intercept(context.Background(), op); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(sink.entries) != 0 {
		t.Errorf("reads and global operations must not be audited, got %+v", sink.entries)
	}
}

func TestAuditSinkFailureDoesNotBlockOperation(t *testing.T) {
	sink := &memorySink{err: errors.New("stream down")}
	ai := NewAuditInterceptor(NewContext("tenant-a", ""), sink, nil)

	op := &Operation{Kind: KindDelete, Target: strictTarget}
	if err := ai.Intercept(context.Background(), op); err != nil {
		t.Fatalf("sink failure must not propagate: %v", err)
	}
}

func TestAuditNilSinkIsNoop(t *testing.T) {
	ai := NewAuditInterceptor(NewContext("tenant-a", ""), nil, nil)
	if err := ai.Intercept(context.Background(), &Operation{Kind: KindCreate, Target: strictTarget}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
