package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/libris-app/libris/pkg/models"
)

// UserLoader resolves a token's user id to a live account record.
// *store.Store satisfies it.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// Middleware decodes the Authorization header and, when it holds a valid
// token for an existing user, injects the Principal into the request context.
// Absent, malformed, or stale tokens never fail the request here: the request
// simply proceeds anonymously, and mutations that require a caller reject it
// themselves.
func Middleware(tokens *Tokens, users UserLoader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := tokens.Verify(raw)
			if err != nil {
				logger.Warn("ignoring invalid bearer token", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), principal.UserID)
			if err != nil {
				logger.Warn("token user not found", slog.String("user_id", principal.UserID.String()))
				next.ServeHTTP(w, r)
				return
			}

			principal.Username = user.Username
			principal.FavoriteGenre = user.FavoriteGenre
			ctx := WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
