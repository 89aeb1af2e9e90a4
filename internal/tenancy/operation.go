package tenancy

// Kind classifies a data operation flowing through the pipeline.
type Kind string

// Operation kinds.
const (
	KindFindMany Kind = "find_many"
	KindFindOne  Kind = "find_one"
	KindCount    Kind = "count"
	KindCreate   Kind = "create"
	KindUpdate   Kind = "update"
	KindDelete   Kind = "delete"
)

// Mutation reports whether the kind writes data.
func (k Kind) Mutation() bool {
	return k == KindCreate || k == KindUpdate || k == KindDelete
}

// Read reports whether the kind only reads data.
func (k Kind) Read() bool { return !k.Mutation() }

// Scope classifies how a target table participates in tenant isolation.
type Scope string

const (
	// ScopeStrict marks tables whose rows are owned by exactly one tenant.
	ScopeStrict Scope = "strict"
	// ScopeShared marks tables whose rows may carry a NULL tenant_id,
	// meaning company-wide: readable under every tenant context.
	ScopeShared Scope = "shared"
	// ScopeGlobal marks tables exempt from isolation entirely, such as
	// the tenant registry itself.
	ScopeGlobal Scope = "global"
)

// TenantColumn is the column every tenant-scoped table carries.
const TenantColumn = "tenant_id"

// Target is the table metadata the interceptors act on.
type Target struct {
	Table string
	Scope Scope

	// SharedWritable permits update/delete of NULL-tenant rows under a
	// tenant context. Off by default: shared rows are read-only for
	// tenants and mutable only through the system client.
	SharedWritable bool
}

// CondOp is the comparison applied by a predicate.
type CondOp string

const (
	// CondEq renders as `col = $n`.
	CondEq CondOp = "eq"
	// CondEqOrNull renders as `(col = $n OR col IS NULL)`; used for reads
	// against shared targets.
	CondEqOrNull CondOp = "eq_or_null"
)

// Cond is a single conjunctive predicate on an operation.
type Cond struct {
	Column string
	Op     CondOp
	Value  any
}

// Assign is one column/value pair in a create or update payload.
type Assign struct {
	Column string
	Value  any
}

// Operation is the generic (kind, target, args) triple every data
// operation is expressed as before it reaches storage. Interceptors may
// mutate it or short-circuit with an error; the storage adapter renders
// it to SQL afterwards.
type Operation struct {
	Kind    Kind
	Target  Target
	Columns []string // selected (or RETURNING) columns
	Where   []Cond   // conjunctive predicates
	Values  []Assign // create/update payload, in column order
	OrderBy string
	Limit   int
}

// Value returns the payload value for a column, if present.
func (o *Operation) Value(column string) (any, bool) {
	for _, a := range o.Values {
		if a.Column == column {
			return a.Value, true
		}
	}
	return nil, false
}

// SetValue sets or replaces the payload value for a column.
func (o *Operation) SetValue(column string, v any) {
	for i := range o.Values {
		if o.Values[i].Column == column {
			o.Values[i].Value = v
			return
		}
	}
	o.Values = append(o.Values, Assign{Column: column, Value: v})
}

// AddWhere conjoins a predicate onto the operation.
func (o *Operation) AddWhere(c Cond) { o.Where = append(o.Where, c) }
