package usecase

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/entity"
)

// Success messages returned to the HTTP layer.
const (
	MsgBorrowed = "Book successfully borrowed."
	MsgReturned = "Book successfully returned."
)

// LoanTx is the set of repository operations available inside a single
// borrow or return transaction. GetBookByISBN locks the book row for the
// rest of the transaction, so the capacity check below cannot race with a
// concurrent request for the same book. Inside a loan transaction
// Book.TotalCopies holds the copy capacity; the number still on the shelf
// is capacity minus the active loans.
type LoanTx interface {
	GetUserByID(ctx context.Context, id int64) (entity.User, error)
	GetBookByISBN(ctx context.Context, isbn string) (entity.Book, error)
	LoanExists(ctx context.Context, userID, bookID int64) (bool, error)
	CountActiveLoans(ctx context.Context, bookID int64) (int, error)
	CreateLoan(ctx context.Context, userID, bookID int64, borrowedAt time.Time) error
	DeleteLoan(ctx context.Context, userID, bookID int64) error
	UpdateBookStatus(ctx context.Context, bookID int64, status string) error
}

// LoanStore runs a function against the store in one transaction; any error
// rolls the whole unit back.
type LoanStore interface {
	InTx(ctx context.Context, fn func(tx LoanTx) error) error
	// MarkUnavailable persists a status fix outside a transaction.
	MarkUnavailable(ctx context.Context, bookID int64) error
}

// LoanService is what the HTTP layer depends on.
type LoanService interface {
	Borrow(ctx context.Context, isbn string, userID int64) error
	Return(ctx context.Context, isbn string, userID int64) error
}

// LoanUsecase orchestrates borrowing and returning. Each book has a fixed
// copy capacity and each loan row consumes one unit of it; availability
// emerges from the live loan count against that capacity.
type LoanUsecase struct {
	store LoanStore
	now   func() time.Time
}

func NewLoanUsecase(store LoanStore) *LoanUsecase {
	return &LoanUsecase{store: store, now: time.Now}
}

// Borrow lends one copy of the book to the user. The idempotency guard (one
// active loan per user/book pair) is checked before capacity.
func (u *LoanUsecase) Borrow(ctx context.Context, isbn string, userID int64) error {
	var resyncBookID int64

	err := u.store.InTx(ctx, func(tx LoanTx) error {
		if _, err := tx.GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return NewNotFound("User not found")
			}
			return err
		}

		book, err := tx.GetBookByISBN(ctx, isbn)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return NewNotFound("Book not found")
			}
			return err
		}

		held, err := tx.LoanExists(ctx, userID, book.ID)
		if err != nil {
			return err
		}
		if held {
			return NewConflict("Book is already borrowed by user.")
		}

		borrowed, err := tx.CountActiveLoans(ctx, book.ID)
		if err != nil {
			return err
		}
		if borrowed >= book.TotalCopies {
			// All copies are out. Remember the book so its status gets
			// re-synced after the rollback in case it still said available.
			resyncBookID = book.ID
			return NewConflict("The book is not available.")
		}

		if err := tx.CreateLoan(ctx, userID, book.ID, u.now()); err != nil {
			return err
		}

		status := entity.BookStatusAvailable
		if borrowed+1 >= book.TotalCopies {
			status = entity.BookStatusUnavailable
		}
		return tx.UpdateBookStatus(ctx, book.ID, status)
	})

	if resyncBookID != 0 {
		if markErr := u.store.MarkUnavailable(ctx, resyncBookID); markErr != nil {
			return markErr
		}
	}
	return err
}

// Return takes the user's copy back. A missing loan is a client error, not a
// missing resource: both book and user exist, the user just does not hold it.
func (u *LoanUsecase) Return(ctx context.Context, isbn string, userID int64) error {
	return u.store.InTx(ctx, func(tx LoanTx) error {
		book, err := tx.GetBookByISBN(ctx, isbn)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return NewNotFound("Book not found.")
			}
			return err
		}

		if _, err := tx.GetUserByID(ctx, userID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return NewNotFound("User not found.")
			}
			return err
		}

		held, err := tx.LoanExists(ctx, userID, book.ID)
		if err != nil {
			return err
		}
		if !held {
			return NewInvalidInput("Book is not currently borrowed.")
		}

		if err := tx.DeleteLoan(ctx, userID, book.ID); err != nil {
			return err
		}

		// Status goes back to available unconditionally; a freed copy means
		// the book can be borrowed again.
		return tx.UpdateBookStatus(ctx, book.ID, entity.BookStatusAvailable)
	})
}
