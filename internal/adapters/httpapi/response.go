package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"shiguang/internal/application"
	"shiguang/internal/domain"
)

// WriteJSON writes data with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteMessage writes {"message": msg}.
func WriteMessage(w http.ResponseWriter, statusCode int, msg string) {
	WriteJSON(w, statusCode, struct {
		Message string `json:"message"`
	}{
		Message: msg,
	})
}

// OurFault reports an internal error without leaking details.
func OurFault(w http.ResponseWriter) {
	WriteMessage(w, http.StatusInternalServerError, "internal server error")
}

// statusFor maps application errors to HTTP status codes; 0 means the
// error is internal.
func statusFor(err error) int {
	var valErr *application.ValidationError
	switch {
	case errors.As(err, &valErr), errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrAlreadyExists):
		return http.StatusConflict
	}
	return 0
}

func badRequest(field, msg string) error {
	return &application.ValidationError{Field: field, Message: msg}
}
