package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/halvardlabs/aegis/internal/tenancy"
)

func TestRegistryScopedCachesPerTenantActor(t *testing.T) {
	r := NewRegistry(nil, Options{})

	a1 := r.Scoped(tenancy.NewContext("tenant-a", "user-1"))
	a1Again := r.Scoped(tenancy.NewContext("tenant-a", "user-1"))
	if a1 != a1Again {
		t.Error("same tenant and actor must resolve to the same client")
	}

	a2 := r.Scoped(tenancy.NewContext("tenant-a", "user-2"))
	if a1 == a2 {
		t.Error("different actors must get distinct clients")
	}

	b1 := r.Scoped(tenancy.NewContext("tenant-b", "user-1"))
	if a1 == b1 {
		t.Error("different tenants must get distinct clients")
	}

	if r.Len() != 3 {
		t.Errorf("expected 3 cached clients, got %d", r.Len())
	}
}

func TestRegistryScopedClientCarriesContext(t *testing.T) {
	r := NewRegistry(nil, Options{})

	tc := tenancy.NewContext("tenant-a", "user-1")
	c := r.Scoped(tc)
	if c.Tenant() != tc {
		t.Errorf("client context mismatch: %+v", c.Tenant())
	}
}

func TestRegistryScopedClientEnforcesIsolation(t *testing.T) {
	// The chain is wired at construction; an empty tenant fails at the
	// first operation without touching the database.
	r := NewRegistry(nil, Options{})

	c := r.Scoped(tenancy.NewContext("", ""))
	_, err := c.GetConversation(context.Background(), "conv-1")
	var cve *tenancy.ContextValidationError
	if !errors.As(err, &cve) {
		t.Fatalf("expected ContextValidationError, got %v", err)
	}
}

func TestRegistryDisposeAllIsIdempotent(t *testing.T) {
	r := NewRegistry(nil, Options{})
	r.Scoped(tenancy.NewContext("tenant-a", ""))

	r.DisposeAll()
	if r.Len() != 0 {
		t.Errorf("dispose must clear cached clients, got %d", r.Len())
	}
	r.DisposeAll() // second call must be a no-op
}
