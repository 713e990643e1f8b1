package entity

import "time"

// Loan links a user to a book they currently hold. Identity is the
// (user, book) pair; the row existing is what "borrowed" means, there is no
// flag on Book. ReturnBy is recorded but nothing enforces it yet.
type Loan struct {
	UserID     int64      `json:"user_id"`
	BookID     int64      `json:"book_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	ReturnBy   *time.Time `json:"return_by,omitempty"`
}
