// Package middleware provides HTTP middleware for Aegis.
package middleware

import (
	"context"
	"net/http"

	"github.com/halvardlabs/aegis/internal/tenancy"
)

const (
	headerTenantID = "X-Tenant-ID"
	headerActorID  = "X-Actor-ID"
)

type tenantCtxKey struct{}

// TenantContext is middleware that builds a tenancy.Context from the
// X-Tenant-ID and X-Actor-ID headers and stores it in the request
// context. A missing tenant header is accepted here: construction is
// total, and the isolation interceptor rejects the empty tenant at the
// first data operation so the failure points at the offending call.
func TenantContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tc := tenancy.NewContext(r.Header.Get(headerTenantID), r.Header.Get(headerActorID))
		ctx := context.WithValue(r.Context(), tenantCtxKey{}, tc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TenantFromContext returns the tenancy.Context stored in ctx, or the
// zero value if the middleware did not run.
func TenantFromContext(ctx context.Context) tenancy.Context {
	if tc, ok := ctx.Value(tenantCtxKey{}).(tenancy.Context); ok {
		return tc
	}
	return tenancy.Context{}
}
