package graphql

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/libris-app/libris/internal/auth"
	"github.com/libris-app/libris/internal/pubsub"
	"github.com/libris-app/libris/internal/store/postgres"
	"github.com/libris-app/libris/pkg/apierr"
	"github.com/libris-app/libris/pkg/models"
)

// Catalog is the store surface the resolver layer needs. *store.Store
// satisfies it; tests substitute an in-memory implementation.
type Catalog interface {
	CountBooks(ctx context.Context) (int64, error)
	CountAuthors(ctx context.Context) (int64, error)
	ListBooks(ctx context.Context, filter postgres.BookFilter) ([]models.Book, error)
	ListAuthors(ctx context.Context) ([]models.Author, error)
	CountBooksByAuthor(ctx context.Context) (map[uuid.UUID]int64, error)
	CountBooksForAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	GetAuthorByName(ctx context.Context, name string) (models.Author, error)
	CreateAuthor(ctx context.Context, name string) (models.Author, error)
	SetAuthorBorn(ctx context.Context, id uuid.UUID, born int32) (models.Author, error)
	CreateBook(ctx context.Context, params postgres.CreateBookParams) (models.Book, error)
	CreateUser(ctx context.Context, username, favoriteGenre string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Resolver is the root resolver for all GraphQL queries, mutations, and
// subscriptions.
type Resolver struct {
	logger      *slog.Logger
	catalog     Catalog
	broker      *pubsub.Broker
	publisher   pubsub.Publisher
	tokens      *auth.Tokens
	loginSecret string
}

// NewResolver creates the root resolver. The broker receives subscriptions;
// the publisher carries mutation events toward it (directly, or via the
// cross-instance bridge).
func NewResolver(logger *slog.Logger, catalog Catalog, broker *pubsub.Broker, publisher pubsub.Publisher, tokens *auth.Tokens, loginSecret string) *Resolver {
	return &Resolver{
		logger:      logger,
		catalog:     catalog,
		broker:      broker,
		publisher:   publisher,
		tokens:      tokens,
		loginSecret: loginSecret,
	}
}

// --- Query ---

func (r *Resolver) BookCount(ctx context.Context) (int32, error) {
	n, err := r.catalog.CountBooks(ctx)
	if err != nil {
		return 0, apierr.InternalError(err)
	}
	return int32(n), nil
}

func (r *Resolver) AuthorCount(ctx context.Context) (int32, error) {
	n, err := r.catalog.CountAuthors(ctx)
	if err != nil {
		return 0, apierr.InternalError(err)
	}
	return int32(n), nil
}

type allBooksArgs struct {
	Author *string
	Genre  *string
}

func (r *Resolver) AllBooks(ctx context.Context, args allBooksArgs) ([]*bookResolver, error) {
	books, err := r.catalog.ListBooks(ctx, postgres.BookFilter{
		Author: args.Author,
		Genre:  args.Genre,
	})
	if err != nil {
		return nil, apierr.InternalError(err)
	}
	return lo.Map(books, func(b models.Book, _ int) *bookResolver {
		return &bookResolver{r: r, book: b}
	}), nil
}

func (r *Resolver) AllAuthors(ctx context.Context) ([]*authorResolver, error) {
	authors, err := r.catalog.ListAuthors(ctx)
	if err != nil {
		return nil, apierr.InternalError(err)
	}
	counts, err := r.catalog.CountBooksByAuthor(ctx)
	if err != nil {
		return nil, apierr.InternalError(err)
	}
	return lo.Map(authors, func(a models.Author, _ int) *authorResolver {
		count := int32(counts[a.ID])
		return &authorResolver{r: r, author: a, bookCount: &count}
	}), nil
}

// Me returns the authenticated caller, or null. An anonymous request is not
// an error at this layer.
func (r *Resolver) Me(ctx context.Context) *userResolver {
	p, ok := auth.PrincipalFrom(ctx)
	if !ok {
		return nil
	}
	return &userResolver{user: models.User{
		ID:            p.UserID,
		Username:      p.Username,
		FavoriteGenre: p.FavoriteGenre,
	}}
}
