package http

import (
	"encoding/json"
	"net/http"

	"libraryapi/internal/usecase"
)

type LoanHandler struct {
	loans usecase.LoanService
}

func NewLoanHandler(loans usecase.LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

type loanReq struct {
	ISBN   string `json:"isbn" validate:"required"`
	UserID int64  `json:"user_id" validate:"required"`
}

// Borrow handles POST /borrow.
func (h *LoanHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req loanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONMessage(w, http.StatusBadRequest, validationErrors[0].Message)
		return
	}

	if err := h.loans.Borrow(r.Context(), req.ISBN, req.UserID); err != nil {
		JSONFromError(w, err)
		return
	}

	JSONMessage(w, http.StatusOK, usecase.MsgBorrowed)
}

// Return handles POST /return.
func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	var req loanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONMessage(w, http.StatusBadRequest, validationErrors[0].Message)
		return
	}

	if err := h.loans.Return(r.Context(), req.ISBN, req.UserID); err != nil {
		JSONFromError(w, err)
		return
	}

	JSONMessage(w, http.StatusOK, usecase.MsgReturned)
}
