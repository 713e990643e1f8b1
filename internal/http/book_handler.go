package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
	"libraryapi/internal/validation"
)

type BookHandler struct {
	repo usecase.BookRepository
}

func NewBookHandler(repo usecase.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

// Pointer fields so absent and empty inputs stay distinguishable for the
// field validators.
type createBookReq struct {
	ISBN            *string `json:"isbn"`
	Title           *string `json:"title"`
	Author          string  `json:"author"`
	PublicationYear *int    `json:"publication_year"`
	Status          *string `json:"status"`
	TotalCopies     *int    `json:"total_copies"`
}

// Create handles POST /books. Validators run in order (ISBN, title, year)
// and the first failure wins; a duplicate ISBN is a conflict.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if ok, msg := validation.ISBN(req.ISBN); !ok {
		JSONMessage(w, http.StatusBadRequest, msg)
		return
	}
	if ok, msg := validation.Title(req.Title); !ok {
		JSONMessage(w, http.StatusBadRequest, msg)
		return
	}
	if ok, msg := validation.PublicationYear(req.PublicationYear); !ok {
		JSONMessage(w, http.StatusBadRequest, msg)
		return
	}

	_, err := h.repo.GetByISBN(r.Context(), *req.ISBN)
	if err == nil {
		JSONMessage(w, http.StatusConflict, "Book with this ISBN already exists.")
		return
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		JSONFromError(w, err)
		return
	}

	book := entity.Book{
		ISBN:            *req.ISBN,
		Title:           *req.Title,
		Author:          req.Author,
		PublicationYear: *req.PublicationYear,
		Status:          entity.BookStatusAvailable,
		TotalCopies:     1,
	}
	if req.Status != nil && *req.Status != "" {
		book.Status = *req.Status
	}
	if req.TotalCopies != nil {
		book.TotalCopies = *req.TotalCopies
	}

	if err := h.repo.Create(r.Context(), &book); err != nil {
		JSONFromError(w, err)
		return
	}

	JSON(w, http.StatusCreated, book)
}

// List handles GET /books. "status=available" narrows the listing to books
// with a free copy; any other value returns everything.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := r.URL.Query().Get("status") == entity.BookStatusAvailable

	books, err := h.repo.List(r.Context(), onlyAvailable)
	if err != nil {
		JSONFromError(w, err)
		return
	}

	JSON(w, http.StatusOK, books)
}

// GetByISBN handles GET /books/{isbn}.
func (h *BookHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	// crude path param extraction with net/http's ServeMux
	const prefix = "/books/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	isbn := strings.TrimPrefix(r.URL.Path, prefix)
	if isbn == "" || strings.Contains(isbn, "/") {
		http.NotFound(w, r)
		return
	}

	book, err := h.repo.GetByISBN(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			JSONMessage(w, http.StatusNotFound, "Book not found")
			return
		}
		JSONFromError(w, err)
		return
	}

	JSON(w, http.StatusOK, book)
}
