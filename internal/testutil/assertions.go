package testutil

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "spendsmart/internal/errors"
	"spendsmart/internal/validator"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertFieldErrors checks that err is a validation failure reporting every
// one of fields.
func AssertFieldErrors(t *testing.T, err error, fields ...string) {
	t.Helper()

	AssertAppError(t, err, apperrors.ErrValidation.Code)

	var verr *validator.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected field details on %v", err)
	}
	for _, field := range fields {
		if _, ok := verr.Field(field); !ok {
			t.Errorf("expected %s to be reported, got %v", field, verr.Fields)
		}
	}
}

// AssertDecimal compares a decimal by value, so "12.50" equals "12.5".
func AssertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()

	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("expected %s %s, got %s", name, want, got)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
