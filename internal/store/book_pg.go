package store

// Repository implementation (Postgres)

import (
	"context"
	"errors"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// The books.total_copies column stores the fixed copy capacity; the
// read queries below derive the shelf count (capacity minus active loans)
// into Book.TotalCopies.
type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	const query = `
	INSERT INTO books (isbn, title, author, publication_year, status, total_copies)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id
	`
	err := r.db.QueryRow(ctx, query, b.ISBN, b.Title, b.Author, b.PublicationYear, b.Status, b.TotalCopies).Scan(&b.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return usecase.NewConflict("Book with this ISBN already exists.")
		}
		return err
	}
	return nil
}

func (r *BookPG) GetByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	const query = `
	SELECT b.id, b.isbn, b.title, b.author, b.publication_year, b.status,
		(b.total_copies - COUNT(bb.user_id))::int AS copies_left
	FROM books b
	LEFT JOIN borrowed_books bb ON bb.book_id = b.id
	WHERE b.isbn = $1
	GROUP BY b.id
	`
	var b entity.Book
	err := r.db.QueryRow(ctx, query, isbn).Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.PublicationYear, &b.Status, &b.TotalCopies)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (r *BookPG) List(ctx context.Context, onlyAvailable bool) ([]entity.Book, error) {
	query := `
	SELECT b.id, b.isbn, b.title, b.author, b.publication_year, b.status,
		(b.total_copies - COUNT(bb.user_id))::int AS copies_left
	FROM books b
	LEFT JOIN borrowed_books bb ON bb.book_id = b.id
	GROUP BY b.id
	ORDER BY b.id
	`
	if onlyAvailable {
		// A book is listed as available while its active loans have not
		// used up the copy capacity.
		query = `
		SELECT b.id, b.isbn, b.title, b.author, b.publication_year, b.status,
			(b.total_copies - COUNT(bb.user_id))::int AS copies_left
		FROM books b
		LEFT JOIN borrowed_books bb ON bb.book_id = b.id
		GROUP BY b.id
		HAVING COUNT(bb.user_id) < b.total_copies
		ORDER BY b.id
		`
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []entity.Book{}
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.PublicationYear, &b.Status, &b.TotalCopies); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
