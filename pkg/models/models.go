package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. No password is stored; see the login
// documentation in internal/api/graphql.
type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	FavoriteGenre string    `json:"favorite_genre"`
	CreatedAt     time.Time `json:"created_at"`
}

// Author is a book author. Born is nullable; a nil value means unknown.
// Author names are deliberately not unique at the store level: the
// find-or-create path in addBook can race and produce duplicates, and
// name-based lookups resolve to the first match in store order.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Born      *int32    `json:"born"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is immutable once created and always references exactly one Author.
// The Author is carried inline so listings and subscription events never
// need a second lookup.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Published int32     `json:"published"`
	Genres    []string  `json:"genres"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
