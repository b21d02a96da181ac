package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/saklain/khatabook/internal/adapter/http/dto"
	"github.com/saklain/khatabook/internal/domain"
)

var validate = validator.New()

// decodeAndValidate decodes the request body into dst and runs struct
// validation. A false return means the error response was already
// written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return false
	}

	return true
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAccountKindMatch),
		errors.Is(err, domain.ErrInvalidAccountKind),
		errors.Is(err, domain.ErrInvalidTransactionKind),
		errors.Is(err, domain.ErrInvalidPaymentKind),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrNoItems),
		errors.Is(err, domain.ErrTooManyItems),
		errors.Is(err, domain.ErrInvalidItemName),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidUnitPrice),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidNotes):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
