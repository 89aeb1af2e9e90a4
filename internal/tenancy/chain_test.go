package tenancy

import (
	"context"
	"errors"
	"testing"
)

// recordingInterceptor appends its name to a shared log and optionally fails.
type recordingInterceptor struct {
	name string
	log  *[]string
	err  error
}

func (r *recordingInterceptor) Intercept(_ context.Context, _ *Operation) error {
	*r.log = append(*r.log, r.name)
	return r.err
}

func TestChainAppliesInOrder(t *testing.T) {
	var log []string
	chain := NewChain(
		&recordingInterceptor{name: "first", log: &log},
		&recordingInterceptor{name: "second", log: &log},
		&recordingInterceptor{name: "third", log: &log},
	)

	op := &Operation{Kind: KindFindMany, Target: strictTarget}
	if err := chain.Apply(context.Background(), op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first", "second", "third"}
	if len(log) != len(want) {
		t.Fatalf("expected %d invocations, got %v", len(want), log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], log[i])
		}
	}
}

func TestChainStopsAtFirstError(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	chain := NewChain(
		&recordingInterceptor{name: "first", log: &log},
		&recordingInterceptor{name: "second", log: &log, err: boom},
		&recordingInterceptor{name: "third", log: &log},
	)

	err := chain.Apply(context.Background(), &Operation{Kind: KindCreate, Target: strictTarget})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(log) != 2 {
		t.Errorf("third interceptor must not run after an error, got %v", log)
	}
}

func TestEmptyChainIsNoop(t *testing.T) {
	op := &Operation{Kind: KindFindMany, Target: strictTarget}
	if err := NewChain().Apply(context.Background(), op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
