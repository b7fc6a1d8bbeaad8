package auth

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Principal represents the authenticated caller. UserID and Username come
// from the bearer token; FavoriteGenre is filled from the live user record
// when the middleware resolves the account.
type Principal struct {
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	FavoriteGenre string    `json:"favorite_genre"`
}

// WithPrincipal stores a Principal in the context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PrincipalFrom extracts the Principal from the context. A missing principal
// is a normal anonymous request, not an error.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(*Principal)
	return p, ok
}
