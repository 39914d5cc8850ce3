package identity

import "context"

type ctxKey struct{}

type resolved struct {
	token    string
	identity Identity
}

// WithIdentity records that token resolved to ident. Resolve on the
// returned context answers for the same token without a store lookup.
func WithIdentity(ctx context.Context, token string, ident Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, resolved{token: token, identity: ident})
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	r, ok := ctx.Value(ctxKey{}).(resolved)
	if !ok {
		return Identity{}, false
	}
	return r.identity, true
}

func cached(ctx context.Context, token string) (Identity, bool) {
	r, ok := ctx.Value(ctxKey{}).(resolved)
	if !ok || r.token != token {
		return Identity{}, false
	}
	return r.identity, true
}
