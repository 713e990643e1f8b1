package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"libraryapi/internal/entity"
	"libraryapi/internal/usecase"
)

type UserHandler struct {
	repo usecase.UserRepository
}

func NewUserHandler(repo usecase.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

type createUserReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// Create handles POST /users. Email is the membership key, so an existing
// address is a conflict.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONMessage(w, http.StatusBadRequest, validationErrors[0].Message)
		return
	}

	_, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err == nil {
		JSONMessage(w, http.StatusConflict, "User with this email already exists.")
		return
	}
	if !errors.Is(err, usecase.ErrNotFound) {
		JSONFromError(w, err)
		return
	}

	user := entity.User{
		Name:  req.Name,
		Email: req.Email,
	}
	if err := h.repo.Create(r.Context(), &user); err != nil {
		JSONFromError(w, err)
		return
	}

	JSON(w, http.StatusCreated, user)
}
