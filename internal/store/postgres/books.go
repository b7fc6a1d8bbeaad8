package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/libris-app/libris/pkg/models"
)

// BookFilter narrows ListBooks. Nil fields match everything; both set means
// logical AND. Matching is exact, never fuzzy.
type BookFilter struct {
	// Author matches the referenced author's name via a join.
	Author *string
	// Genre matches exact membership in the genres array.
	Genre *string
}

// CreateBookParams carries the insert arguments for a book.
type CreateBookParams struct {
	Title     string
	Published int32
	Genres    []string
	AuthorID  uuid.UUID
}

func scanBookRow(rows pgx.Row) (models.Book, error) {
	var b models.Book
	err := rows.Scan(
		&b.ID, &b.Title, &b.Published, &b.Genres, &b.CreatedAt,
		&b.Author.ID, &b.Author.Name, &b.Author.Born, &b.Author.CreatedAt,
	)
	return b, err
}

// CountBooks returns the total number of book records.
func (q *Queries) CountBooks(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

// ListBooks returns books matching the filter, each with its author resolved
// inline (eager join).
func (q *Queries) ListBooks(ctx context.Context, filter BookFilter) ([]models.Book, error) {
	qb := sq.Select(
		"b.id", "b.title", "b.published", "b.genres", "b.created_at",
		"a.id", "a.name", "a.born", "a.created_at",
	).
		From("books b").
		Join("authors a ON a.id = b.author_id").
		OrderBy("b.created_at", "b.id").
		PlaceholderFormat(sq.Dollar)

	if filter.Author != nil {
		qb = qb.Where(sq.Eq{"a.name": *filter.Author})
	}
	if filter.Genre != nil {
		qb = qb.Where(sq.Expr("? = ANY(b.genres)", *filter.Genre))
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Book
	for rows.Next() {
		b, err := scanBookRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// CreateBook inserts a book and returns it with the author resolved.
func (q *Queries) CreateBook(ctx context.Context, params CreateBookParams) (models.Book, error) {
	return scanBookRow(q.db.QueryRow(ctx,
		`WITH inserted AS (
		    INSERT INTO books (title, published, genres, author_id)
		    VALUES ($1, $2, $3, $4)
		    RETURNING id, title, published, genres, author_id, created_at
		 )
		 SELECT i.id, i.title, i.published, i.genres, i.created_at,
		        a.id, a.name, a.born, a.created_at
		 FROM inserted i
		 JOIN authors a ON a.id = i.author_id`,
		params.Title, params.Published, params.Genres, params.AuthorID))
}

// CountBooksByAuthor groups the live book collection by author reference and
// counts each group. Authors with no books are absent from the result.
func (q *Queries) CountBooksByAuthor(ctx context.Context) (map[uuid.UUID]int64, error) {
	rows, err := q.db.Query(ctx, `SELECT author_id, COUNT(*) FROM books GROUP BY author_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int64)
	for rows.Next() {
		var id uuid.UUID
		var n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// CountBooksForAuthor counts books referencing one author.
func (q *Queries) CountBooksForAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&n)
	return n, err
}
