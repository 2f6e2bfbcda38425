package handlers

import (
	"context"

	"resultportal/internal/auth"
)

type contextKey string

const claimsContextKey contextKey = "admin_claims"

// WithClaims stores the validated admin claims on the request context.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext retrieves the admin claims the auth middleware stored.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}
