package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/az9589317-spec/artghar/internal/domain"
	"github.com/az9589317-spec/artghar/internal/repository"
	"github.com/az9589317-spec/artghar/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError maps domain and service errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, "empty_cart", err.Error())
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrSessionNotOwned):
		respondError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, service.ErrSignatureMismatch):
		respondError(w, http.StatusBadRequest, "signature_mismatch", err.Error())
	case errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, domain.ErrIllegalTransition),
		errors.Is(err, repository.ErrStateConflict):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrItemNotInCart):
		respondError(w, http.StatusNotFound, "item_not_in_cart", err.Error())
	case errors.Is(err, service.ErrCheckoutUnavailable):
		respondError(w, http.StatusBadGateway, "gateway_unavailable", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
