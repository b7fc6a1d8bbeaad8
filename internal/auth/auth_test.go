package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/libris-app/libris/pkg/models"
)

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := PrincipalFrom(ctx); ok {
		t.Fatal("expected no principal in empty context")
	}

	p := &Principal{UserID: uuid.New(), Username: "alice"}
	ctx = WithPrincipal(ctx, p)

	got, ok := PrincipalFrom(ctx)
	if !ok {
		t.Fatal("expected principal in context")
	}
	if got.Username != "alice" {
		t.Fatalf("got username %q, want %q", got.Username, "alice")
	}
	if got.UserID != p.UserID {
		t.Fatalf("got user id %v, want %v", got.UserID, p.UserID)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")
	userID := uuid.New()

	raw, err := tokens.Issue(userID, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if raw == "" {
		t.Fatal("expected non-empty token")
	}

	p, err := tokens.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if p.UserID != userID {
		t.Errorf("got user id %v, want %v", p.UserID, userID)
	}
	if p.Username != "alice" {
		t.Errorf("got username %q, want %q", p.Username, "alice")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	raw, err := NewTokens("secret-a").Issue(uuid.New(), "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewTokens("secret-b").Verify(raw); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokens("test-secret")
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := tokens.Verify(raw); err == nil {
			t.Errorf("expected verification of %q to fail", raw)
		}
	}
}

type fakeUserLoader struct {
	users map[uuid.UUID]models.User
}

func (f *fakeUserLoader) GetUserByID(_ context.Context, id uuid.UUID) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func principalProbe(t *testing.T, got **Principal) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p, ok := PrincipalFrom(r.Context()); ok {
			*got = p
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareInjectsPrincipal(t *testing.T) {
	tokens := NewTokens("test-secret")
	userID := uuid.New()
	users := &fakeUserLoader{users: map[uuid.UUID]models.User{
		userID: {ID: userID, Username: "alice", FavoriteGenre: "sci-fi"},
	}}

	raw, err := tokens.Issue(userID, "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got *Principal
	handler := Middleware(tokens, users, slog.Default())(principalProbe(t, &got))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got == nil {
		t.Fatal("expected principal in request context")
	}
	if got.Username != "alice" {
		t.Errorf("got username %q, want %q", got.Username, "alice")
	}
	if got.FavoriteGenre != "sci-fi" {
		t.Errorf("got favorite genre %q, want %q", got.FavoriteGenre, "sci-fi")
	}
}

func TestMiddlewareAnonymousOnBadToken(t *testing.T) {
	tokens := NewTokens("test-secret")
	users := &fakeUserLoader{users: map[uuid.UUID]models.User{}}

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got *Principal
			handler := Middleware(tokens, users, slog.Default())(principalProbe(t, &got))

			req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			// The request must pass through anonymously, never fail.
			if rec.Code != http.StatusOK {
				t.Errorf("got status %d, want %d", rec.Code, http.StatusOK)
			}
			if got != nil {
				t.Error("expected no principal for invalid auth")
			}
		})
	}
}

func TestMiddlewareAnonymousOnUnknownUser(t *testing.T) {
	tokens := NewTokens("test-secret")
	users := &fakeUserLoader{users: map[uuid.UUID]models.User{}}

	// Token is valid but the account no longer exists.
	raw, err := tokens.Issue(uuid.New(), "ghost")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got *Principal
	handler := Middleware(tokens, users, slog.Default())(principalProbe(t, &got))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	if got != nil {
		t.Error("expected no principal when the token's user is gone")
	}
}
