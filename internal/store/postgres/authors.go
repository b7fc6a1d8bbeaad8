package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/libris-app/libris/pkg/models"
)

const authorColumns = `id, name, born, created_at`

func scanAuthor(row pgx.Row) (models.Author, error) {
	var a models.Author
	err := row.Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt)
	return a, err
}

// CountAuthors returns the total number of author records.
func (q *Queries) CountAuthors(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&n)
	return n, err
}

// ListAuthors returns every author in store order (creation order here, but
// callers must not rely on it).
func (q *Queries) ListAuthors(ctx context.Context) ([]models.Author, error) {
	rows, err := q.db.Query(ctx, `SELECT `+authorColumns+` FROM authors ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// GetAuthorByName returns the oldest author with the given name. Names are
// not unique; same-named authors are ambiguous to this lookup.
// Returns pgx.ErrNoRows when no author matches.
func (q *Queries) GetAuthorByName(ctx context.Context, name string) (models.Author, error) {
	return scanAuthor(q.db.QueryRow(ctx,
		`SELECT `+authorColumns+` FROM authors WHERE name = $1 ORDER BY created_at, id LIMIT 1`,
		name))
}

// CreateAuthor inserts an author with an unset birth year.
func (q *Queries) CreateAuthor(ctx context.Context, name string) (models.Author, error) {
	return scanAuthor(q.db.QueryRow(ctx,
		`INSERT INTO authors (name) VALUES ($1) RETURNING `+authorColumns,
		name))
}

// SetAuthorBorn updates the single mutable author field.
func (q *Queries) SetAuthorBorn(ctx context.Context, id uuid.UUID, born int32) (models.Author, error) {
	return scanAuthor(q.db.QueryRow(ctx,
		`UPDATE authors SET born = $2 WHERE id = $1 RETURNING `+authorColumns,
		id, born))
}
