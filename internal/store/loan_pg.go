package store

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoanPG implements usecase.LoanStore. Each InTx call is one database
// transaction; the loan state machine runs entirely inside it.
type LoanPG struct {
	db *pgxpool.Pool
}

func NewLoanPG(db *pgxpool.Pool) *LoanPG {
	return &LoanPG{db: db}
}

func (s *LoanPG) InTx(ctx context.Context, fn func(tx usecase.LoanTx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&loanTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *LoanPG) MarkUnavailable(ctx context.Context, bookID int64) error {
	const query = `UPDATE books SET status = $2 WHERE id = $1`
	_, err := s.db.Exec(ctx, query, bookID, entity.BookStatusUnavailable)
	return err
}

type loanTx struct {
	tx pgx.Tx
}

func (t *loanTx) GetUserByID(ctx context.Context, id int64) (entity.User, error) {
	const query = `SELECT id, name, email FROM users WHERE id = $1 LIMIT 1`
	var u entity.User
	err := t.tx.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return u, nil
}

// GetBookByISBN locks the book row until the transaction ends, so two
// concurrent borrows of the last copy serialize here.
func (t *loanTx) GetBookByISBN(ctx context.Context, isbn string) (entity.Book, error) {
	const query = `
	SELECT id, isbn, title, author, publication_year, status, total_copies
	FROM books
	WHERE isbn = $1
	FOR UPDATE
	`
	var b entity.Book
	err := t.tx.QueryRow(ctx, query, isbn).Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.PublicationYear, &b.Status, &b.TotalCopies)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, err
	}
	return b, nil
}

func (t *loanTx) LoanExists(ctx context.Context, userID, bookID int64) (bool, error) {
	const query = `
	SELECT EXISTS (
		SELECT 1 FROM borrowed_books WHERE user_id = $1 AND book_id = $2
	)
	`
	var exists bool
	if err := t.tx.QueryRow(ctx, query, userID, bookID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (t *loanTx) CountActiveLoans(ctx context.Context, bookID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM borrowed_books WHERE book_id = $1`
	var n int
	if err := t.tx.QueryRow(ctx, query, bookID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (t *loanTx) CreateLoan(ctx context.Context, userID, bookID int64, borrowedAt time.Time) error {
	const query = `
	INSERT INTO borrowed_books (user_id, book_id, borrowed_at)
	VALUES ($1, $2, $3)
	`
	_, err := t.tx.Exec(ctx, query, userID, bookID, borrowedAt)
	return err
}

func (t *loanTx) DeleteLoan(ctx context.Context, userID, bookID int64) error {
	const query = `DELETE FROM borrowed_books WHERE user_id = $1 AND book_id = $2`
	_, err := t.tx.Exec(ctx, query, userID, bookID)
	return err
}

func (t *loanTx) UpdateBookStatus(ctx context.Context, bookID int64, status string) error {
	const query = `UPDATE books SET status = $2 WHERE id = $1`
	_, err := t.tx.Exec(ctx, query, bookID, status)
	return err
}
