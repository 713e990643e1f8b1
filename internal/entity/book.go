package entity

const (
	BookStatusAvailable   = "available"
	BookStatusUnavailable = "unavailable"
)

// Book is a catalog entry. In API responses TotalCopies counts the copies
// currently on the shelf, so it moves down on borrow and back up on return;
// the store keeps the fixed copy capacity and derives the shelf count from
// active loans.
type Book struct {
	ID              int64  `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
	Status          string `json:"status"`
	TotalCopies     int    `json:"total_copies"`
}
