// Package auth holds the session store, the identity gate and the Google
// OAuth login flow.
package auth

import (
	"context"

	"drawtrack/internal/core"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the resolved caller.
func WithIdentity(ctx context.Context, id core.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller placed in the context by the
// RequireAuth middleware.
func IdentityFromContext(ctx context.Context) (core.Identity, bool) {
	id, ok := ctx.Value(identityKey).(core.Identity)
	return id, ok
}
