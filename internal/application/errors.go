package application

import (
	"errors"
	"fmt"

	"shiguang/internal/ports"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = ports.ErrNotFound
	ErrInvalidID        = errors.New("invalid ID")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrAlreadyExists    = errors.New("already exists")
	ErrUnauthorized     = errors.New("unauthorized")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AuthError represents a failed login or a missing session
type AuthError struct {
	Email  string
	Reason string
}

func (e *AuthError) Error() string {
	if e.Email == "" {
		return fmt.Sprintf("unauthorized: %s", e.Reason)
	}
	return fmt.Sprintf("cannot log in %s: %s", e.Email, e.Reason)
}

func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}
