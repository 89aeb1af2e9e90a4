package tenancy

import "context"

// IsolationInterceptor rewrites every operation against a tenant-scoped
// target so it can only see or touch rows belonging to the bound tenant.
// It is the application half of the dual-layer guarantee; the row-level
// security policies are the database half.
type IsolationInterceptor struct {
	tc Context
}

// NewIsolationInterceptor binds the interceptor to a tenant context.
func NewIsolationInterceptor(tc Context) *IsolationInterceptor {
	return &IsolationInterceptor{tc: tc}
}

// Intercept applies the isolation rewrite for op's kind. Global targets
// pass through untouched. An empty tenant id fails here, before any I/O.
func (i *IsolationInterceptor) Intercept(_ context.Context, op *Operation) error {
	if op.Target.Scope == ScopeGlobal {
		return nil
	}
	if i.tc.TenantID == "" {
		return &ContextValidationError{Op: string(op.Kind), Target: op.Target.Table}
	}

	switch op.Kind {
	case KindFindMany, KindFindOne, KindCount:
		op.AddWhere(i.readCond(op.Target))

	case KindCreate:
		// Fill in the tenant when the payload omits it. An explicitly
		// supplied foreign tenant id passes through unmodified: the
		// database insert policy is the authoritative backstop.
		if _, ok := op.Value(TenantColumn); !ok {
			op.SetValue(TenantColumn, i.tc.TenantID)
		}

	case KindUpdate, KindDelete:
		// Conjoin the tenant predicate so a caller-supplied id for a
		// foreign row matches zero rows before the database is consulted.
		if op.Target.Scope == ScopeShared && op.Target.SharedWritable {
			op.AddWhere(Cond{Column: TenantColumn, Op: CondEqOrNull, Value: i.tc.TenantID})
		} else {
			op.AddWhere(Cond{Column: TenantColumn, Op: CondEq, Value: i.tc.TenantID})
		}
	}
	return nil
}

// readCond is the visibility predicate for read kinds: shared targets
// also expose their NULL-tenant rows.
func (i *IsolationInterceptor) readCond(t Target) Cond {
	if t.Scope == ScopeShared {
		return Cond{Column: TenantColumn, Op: CondEqOrNull, Value: i.tc.TenantID}
	}
	return Cond{Column: TenantColumn, Op: CondEq, Value: i.tc.TenantID}
}
