package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"libraryapi/internal/usecase"
)

type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageResponse{Message: message})
}

// JSONFromError maps the usecase error taxonomy onto status codes. Anything
// outside the taxonomy is a store failure and surfaces as a 500.
func JSONFromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		JSONMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		JSONMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrConflict):
		JSONMessage(w, http.StatusConflict, err.Error())
	default:
		JSONMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
