package errors

import (
	"errors"
	"fmt"
)

// Common error types for the SeedVault server
var (
	// Authentication errors
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrSessionNotFound        = errors.New("session not found")
	ErrSessionExpired         = errors.New("session expired")

	// Authorization errors
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrInvalidOperation    = errors.New("invalid operation")

	// CSRF errors
	ErrCsrfTokenMissing = errors.New("csrf token missing")
	ErrCsrfTokenInvalid = errors.New("csrf token invalid or expired")

	// Impersonation errors
	ErrNotImpersonating = errors.New("not currently impersonating")

	// Data errors
	ErrDataCorruption = errors.New("corrupted data")
	ErrDuplicateEmail = errors.New("email already registered")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
