package usecase

import (
	"context"

	"libraryapi/internal/entity"
)

// BookRepository is the contract for catalog persistence.
type BookRepository interface {
	// Create persists a new book and fills in its store-assigned ID.
	Create(ctx context.Context, b *entity.Book) error
	GetByISBN(ctx context.Context, isbn string) (entity.Book, error)
	// List returns all books, or with onlyAvailable only those whose count
	// of active loans is strictly below total_copies.
	List(ctx context.Context, onlyAvailable bool) ([]entity.Book, error)
}
