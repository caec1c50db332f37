package application

import (
	"errors"
	"fmt"
	"strings"

	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "eventID" -> "event ID")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "eventID" -> "event ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"eventID":      "event ID",
		"messageID":    "message ID",
		"title":        "title",
		"name":         "name",
		"email":        "email",
		"password":     "password",
		"primaryColor": "primary color",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}

// ValidateDate checks that a calendar date exists.
// Returns a ValidationError wrapping the calendar's reason if it does not.
func ValidateDate(cal ports.Calendar, fieldName string, d domain.CalendarDate) error {
	if err := cal.Validate(d); err != nil {
		msg := err.Error()
		if errors.Is(err, domain.ErrInvalidDate) {
			msg = strings.TrimPrefix(msg, domain.ErrInvalidDate.Error()+": ")
		}
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s does not exist: %s", d, msg),
		}
	}
	return nil
}

// ValidateEmail checks the minimal shape of an email address.
func ValidateEmail(fieldName, email string) error {
	if err := ValidateRequired(fieldName, email); err != nil {
		return err
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid email: %s", email),
		}
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(fieldName, password string) error {
	if len([]rune(password)) < domain.MinPasswordLength {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be at least %d characters", formatFieldName(fieldName), domain.MinPasswordLength),
		}
	}
	return nil
}
