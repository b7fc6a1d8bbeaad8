package graphql

import (
	"context"
	"log/slog"

	"github.com/libris-app/libris/internal/auth"
	"github.com/libris-app/libris/internal/store/postgres"
	"github.com/libris-app/libris/pkg/apierr"
)

type addBookArgs struct {
	Title     string
	Author    *string
	Published int32
	Genres    []string
}

func (a addBookArgs) asExtension() map[string]interface{} {
	ext := map[string]interface{}{
		"title":     a.Title,
		"published": a.Published,
		"genres":    a.Genres,
	}
	if a.Author != nil {
		ext["author"] = *a.Author
	}
	return ext
}

// AddBook creates a book, creating its author first when the name has not
// been seen before. The find-or-create pair is not transactional: a created
// author survives a failed book insert, and two concurrent calls for the same
// unseen name may both create it. Both behaviors are accepted and documented.
func (r *Resolver) AddBook(ctx context.Context, args addBookArgs) (*bookResolver, error) {
	if _, ok := auth.PrincipalFrom(ctx); !ok {
		return nil, apierr.Unauthenticated()
	}

	if args.Author == nil || *args.Author == "" {
		return nil, apierr.InvalidInput("author name is required", nil, args.asExtension())
	}

	author, err := r.catalog.GetAuthorByName(ctx, *args.Author)
	if apierr.IsNotFound(err) {
		author, err = r.catalog.CreateAuthor(ctx, *args.Author)
		if err != nil {
			return nil, apierr.InvalidInput(err.Error(), err, args.asExtension())
		}
	} else if err != nil {
		return nil, apierr.InternalError(err)
	}

	book, err := r.catalog.CreateBook(ctx, postgres.CreateBookParams{
		Title:     args.Title,
		Published: args.Published,
		Genres:    args.Genres,
		AuthorID:  author.ID,
	})
	if err != nil {
		return nil, apierr.InvalidInput(err.Error(), err, args.asExtension())
	}

	r.publisher.PublishBookAdded(ctx, book)
	r.logger.Info("book added",
		slog.String("title", book.Title),
		slog.String("author", book.Author.Name))

	return &bookResolver{r: r, book: book}, nil
}

type editAuthorArgs struct {
	Name      string
	SetBornTo int32
}

// EditAuthor sets an author's birth year. An unknown name resolves to null
// rather than an error; it simply signals "no such author".
func (r *Resolver) EditAuthor(ctx context.Context, args editAuthorArgs) (*authorResolver, error) {
	if _, ok := auth.PrincipalFrom(ctx); !ok {
		return nil, apierr.Unauthenticated()
	}

	author, err := r.catalog.GetAuthorByName(ctx, args.Name)
	if apierr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apierr.InternalError(err)
	}

	updated, err := r.catalog.SetAuthorBorn(ctx, author.ID, args.SetBornTo)
	if err != nil {
		return nil, apierr.InvalidInput(err.Error(), err, map[string]interface{}{
			"name":      args.Name,
			"setBornTo": args.SetBornTo,
		})
	}

	return &authorResolver{r: r, author: updated}, nil
}

type createUserArgs struct {
	Username      string
	FavoriteGenre string
}

func (r *Resolver) CreateUser(ctx context.Context, args createUserArgs) (*userResolver, error) {
	user, err := r.catalog.CreateUser(ctx, args.Username, args.FavoriteGenre)
	if err != nil {
		return nil, apierr.InvalidInput(err.Error(), err, map[string]interface{}{
			"username":      args.Username,
			"favoriteGenre": args.FavoriteGenre,
		})
	}
	return &userResolver{user: user}, nil
}

type loginArgs struct {
	Username string
	Password string
}

// Login checks the shared login secret and issues a bearer token. Unknown
// username and wrong password yield the same error so accounts cannot be
// enumerated.
func (r *Resolver) Login(ctx context.Context, args loginArgs) (*tokenResolver, error) {
	user, err := r.catalog.GetUserByUsername(ctx, args.Username)
	if apierr.IsNotFound(err) {
		return nil, apierr.WrongCredentials()
	}
	if err != nil {
		return nil, apierr.InternalError(err)
	}

	if args.Password != r.loginSecret {
		return nil, apierr.WrongCredentials()
	}

	value, err := r.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, apierr.InternalError(err)
	}
	return &tokenResolver{value: value}, nil
}
