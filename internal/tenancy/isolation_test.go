package tenancy

import (
	"context"
	"errors"
	"testing"
)

var (
	strictTarget = Target{Table: "conversations", Scope: ScopeStrict}
	sharedTarget = Target{Table: "documents", Scope: ScopeShared}
	globalTarget = Target{Table: "tenants", Scope: ScopeGlobal}
)

func TestIsolationReadAppendsTenantPredicate(t *testing.T) {
	ic := NewIsolationInterceptor(NewContext("tenant-a", "user-1"))

	for _, kind := range []Kind{KindFindMany, KindFindOne, KindCount} {
		op := &Operation{Kind: kind, Target: strictTarget}
		if err := ic.Intercept(context.Background(), op); err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		if len(op.Where) != 1 {
			t.Fatalf("%s: expected 1 predicate, got %d", kind, len(op.Where))
		}
		cond := op.Where[0]
		if cond.Column != TenantColumn || cond.Op != CondEq || cond.Value != "tenant-a" {
			t.Errorf("%s: wrong predicate: %+v", kind, cond)
		}
	}
}

func TestIsolationReadSharedTargetIncludesNullRows(t *testing.T) {
	ic := NewIsolationInterceptor(NewContext("tenant-a", ""))

	op := &Operation{Kind: KindFindMany, Target: sharedTarget}
	if err := ic.Intercept(context.Background(), op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(op.Where) != 1 || op.Where[0].Op != CondEqOrNull {
		t.Errorf("expected eq-or-null predicate, got %+v", op.Where)
	}
}

func TestIsolationPreservesExistingPredicates(t *testing.T) {
	ic := NewIsolationInterceptor(NewContext("tenant-a", ""))

	op := &Operation{
		Kind:   KindFindOne,
		Target: strictTarget,
		Where:  []Cond{{Column: "id", Op: CondEq, Value: "conv-1"}},
	}
	if err := ic.Intercept(context.Background(), op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(op.Where) != 2 {
		t.Fatalf("expected caller predicate plus tenant predicate, got %+v", op.Where)
	}
	if op.Where[0].Column != "id" {
		t.Errorf("caller predicate must come first, got %+v", op.Where[0])
	}
	if op.Where[1].Column != TenantColumn {
		t.Errorf("tenant predicate must be conjoined, got %+v", op.Where[1])
	}
}

func TestIsolationCreateFillsTenant(t *testing.T) {
	ic := NewIsolationInterceptor(NewContext("tenant-a", ""))

	op := &Operation{
		Kind:   KindCreate,
		Target: strictTarget,
		Values: []Assign{{Column: "title", Value: "hello"}},
	}
	if err := ic.Intercept(context.Background(), op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := op.Value(TenantColumn)
	if !ok || v != "tenant-a" {
		t.Errorf("expected tenant_id filled with tenant-a, got %v (present=%v)", v, ok)
	}
}

func TestIsolationCreateKeepsExplicitTenant(t *testing.T) {
	// An explicitly supplied foreign tenant passes through; the insert
	// policy in the database is the backstop for that case.
	ic := NewIsolationInterceptor(NewContext("tenant-a", ""))

	op := &Operation{
		Kind:   KindCreate,
		Target: strictTarget,
		Values: []Assign{{Column: TenantColumn, Value: "tenant-b"}},
	}
	if err := ic.Intercept(context.Background(), op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := op.Value(TenantColumn); v != "tenant-b" {
		t.Errorf("explicit tenant value must not be overwritten, got %v", v)
	}
}

func TestIsolationMutationsConjoinTenantPredicate(t *testing.T) {
	ic := NewIsolationInterceptor(NewContext("tenant-a", ""))

	for _, kind := range []Kind{KindUpdate, KindDelete} {
		op := &Operation{
			Kind:   kind,
			Target: strictTarget,
			Where:  []Cond{{Column: "id", Op: CondEq, Value: "conv-1"}},
		}
		if err := ic.Intercept(context.Background(), op); err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}
		last := op.Where[len(op.Where)-1]
		if last.Column != TenantColumn || last.Op != CondEq || last.Value != "tenant-a" {
			t.Errorf("%s: expected strict tenant predicate, got %+v", kind, last)
		}
	}
}

func TestIsolationSharedMutationsStayStrictByDefault(t *testing.T) {
	// Shared rows are read-only under tenant contexts unless the target
	// opts in with SharedWritable.
	ic := NewIsolationInterceptor(NewContext("tenant-a", ""))

	op := &Operation{Kind: KindUpdate, Target: sharedTarget}
	if err := ic.Intercept(context.Background(), op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Where[0].Op != CondEq {
		t.Errorf("expected strict predicate on shared mutation, got %+v", op.Where[0])
	}

	writable := sharedTarget
	writable.SharedWritable = true
	op = &Operation{Kind: KindDelete, Target: writable}
	if err := ic.Intercept(context.Background(), op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Where[0].Op != CondEqOrNull {
		t.Errorf("expected eq-or-null predicate on shared-writable mutation, got %+v", op.Where[0])
	}
}

func TestIsolationGlobalTargetPassesThrough(t *testing.T) {
	ic := NewIsolationInterceptor(NewContext("", ""))

	op := &Operation{Kind: KindFindMany, Target: globalTarget}
	if err := ic.Intercept(context.Background(), op); err != nil {
		t.Fatalf("global target must pass even without a tenant: %v", err)
	}
	if len(op.Where) != 0 || len(op.Values) != 0 {
		t.Errorf("global operation must not be rewritten: %+v", op)
	}
}

func TestIsolationEmptyTenantFailsBeforeIO(t *testing.T) {
	ic := NewIsolationInterceptor(NewContext("", "user-1"))

	op := &Operation{Kind: KindFindMany, Target: strictTarget}
	err := ic.Intercept(context.Background(), op)
	if err == nil {
		t.Fatal("expected error for empty tenant id")
	}
	var cve *ContextValidationError
	if !errors.As(err, &cve) {
		t.Fatalf("expected ContextValidationError, got %T: %v", err, err)
	}
	if cve.Op != string(KindFindMany) || cve.Target != strictTarget.Table {
		t.Errorf("error must identify the offending call: %+v", cve)
	}
	if len(op.Where) != 0 {
		t.Errorf("failed operation must not be rewritten: %+v", op.Where)
	}
}
