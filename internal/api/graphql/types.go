package graphql

import (
	"context"

	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/libris-app/libris/pkg/apierr"
	"github.com/libris-app/libris/pkg/models"
)

type bookResolver struct {
	r    *Resolver
	book models.Book
}

func (b *bookResolver) ID() graphqlgo.ID { return graphqlgo.ID(b.book.ID.String()) }
func (b *bookResolver) Title() string { return b.book.Title }
func (b *bookResolver) Published() int32 { return b.book.Published }
func (b *bookResolver) Genres() []string {
	if b.book.Genres == nil {
		return []string{}
	}
	return b.book.Genres
}

func (b *bookResolver) Author() *authorResolver {
	return &authorResolver{r: b.r, author: b.book.Author}
}

type authorResolver struct {
	r      *Resolver
	author models.Author

	// bookCount is precomputed by allAuthors via the grouped aggregate.
	// Elsewhere (a book's inline author, editAuthor responses) it is nil and
	// counted on demand, so the value always reflects the live book set.
	bookCount *int32
}

func (a *authorResolver) ID() graphqlgo.ID { return graphqlgo.ID(a.author.ID.String()) }
func (a *authorResolver) Name() string { return a.author.Name }
func (a *authorResolver) Born() *int32 { return a.author.Born }

func (a *authorResolver) BookCount(ctx context.Context) (int32, error) {
	if a.bookCount != nil {
		return *a.bookCount, nil
	}
	n, err := a.r.catalog.CountBooksForAuthor(ctx, a.author.ID)
	if err != nil {
		return 0, apierr.InternalError(err)
	}
	return int32(n), nil
}

type userResolver struct {
	user models.User
}

func (u *userResolver) ID() graphqlgo.ID { return graphqlgo.ID(u.user.ID.String()) }
func (u *userResolver) Username() string { return u.user.Username }
func (u *userResolver) FavoriteGenre() string { return u.user.FavoriteGenre }

type tokenResolver struct {
	value string
}

func (t *tokenResolver) Value() string { return t.value }
