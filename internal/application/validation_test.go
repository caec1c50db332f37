package application

import (
	"errors"
	"strings"
	"testing"

	"shiguang/internal/adapters/lunar"
	"shiguang/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "title",
			value:     "结婚纪念日",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "title",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "title",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateRequired_FieldNameFormatting(t *testing.T) {
	err := ValidateRequired("eventID", "")
	if err == nil || !strings.Contains(err.Error(), "event ID is required") {
		t.Errorf("expected formatted field name, got %v", err)
	}
}

func TestValidateDate(t *testing.T) {
	cal := lunar.New()

	tests := []struct {
		name    string
		date    domain.CalendarDate
		wantErr bool
	}{
		{
			name: "valid solar",
			date: domain.Solar(2024, 2, 29),
		},
		{
			name: "valid lunar leap",
			date: domain.Lunar(2023, -2, 1),
		},
		{
			name:    "solar feb 29 in common year",
			date:    domain.Solar(2023, 2, 29),
			wantErr: true,
		},
		{
			name:    "missing lunar leap month",
			date:    domain.Lunar(2024, -2, 1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDate(cal, "date", tt.date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if !strings.Contains(valErr.Message, tt.date.String()) {
					t.Errorf("message %q should name the date", valErr.Message)
				}
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"user@example.com", false},
		{"", true},
		{"user", true},
		{"@example.com", true},
		{"user@", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail("email", tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("password", "12345"); err == nil {
		t.Error("expected error for 5-character password")
	}
	if err := ValidatePassword("password", "123456"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePassword("password", "时光刻时光刻"); err != nil {
		t.Errorf("six runes should pass: %v", err)
	}
}

func TestAuthError_Is(t *testing.T) {
	err := &AuthError{Email: "a@b.c", Reason: "wrong password"}
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("AuthError should match ErrUnauthorized")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("AuthError should not match ErrNotFound")
	}
}

func TestParseDateAs(t *testing.T) {
	d, err := ParseDateAs("2024-08-15", KindLunar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != domain.Lunar(2024, 8, 15) {
		t.Errorf("got %+v", d)
	}

	d, err = ParseDateAs("L2023-闰02-01", KindSolar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != domain.Lunar(2023, -2, 1) {
		t.Errorf("explicit lunar prefix should win, got %+v", d)
	}
}
