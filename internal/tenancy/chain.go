package tenancy

import "context"

// Interceptor transforms or observes a data operation before it reaches
// storage. Returning an error short-circuits the operation.
type Interceptor interface {
	Intercept(ctx context.Context, op *Operation) error
}

// Chain is an ordered list of interceptors composed at client
// construction time. Order is fixed by the caller: isolation runs first,
// audit observes the rewritten operation afterwards.
type Chain struct {
	interceptors []Interceptor
}

// NewChain builds a chain that applies the given interceptors in order.
func NewChain(interceptors ...Interceptor) Chain {
	return Chain{interceptors: interceptors}
}

// Apply runs every interceptor against op, stopping at the first error.
func (c Chain) Apply(ctx context.Context, op *Operation) error {
	for _, ic := range c.interceptors {
		if err := ic.Intercept(ctx, op); err != nil {
			return err
		}
	}
	return nil
}
