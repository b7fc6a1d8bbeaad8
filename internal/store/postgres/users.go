package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/libris-app/libris/pkg/models"
)

const userColumns = `id, username, favorite_genre, created_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.FavoriteGenre, &u.CreatedAt)
	return u, err
}

// CreateUser inserts a user. The unique constraint on username surfaces as a
// pgx error the caller maps to BAD_USER_INPUT.
func (q *Queries) CreateUser(ctx context.Context, username, favoriteGenre string) (models.User, error) {
	return scanUser(q.db.QueryRow(ctx,
		`INSERT INTO users (username, favorite_genre) VALUES ($1, $2) RETURNING `+userColumns,
		username, favoriteGenre))
}

// GetUserByUsername returns pgx.ErrNoRows when no user matches.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username))
}

// GetUserByID returns pgx.ErrNoRows when no user matches.
func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return scanUser(q.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id))
}
