package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an email that already has
	// a credential record.
	ErrEmailTaken = errors.New("email already exists")
	// ErrSessionExpired is returned when renewing claims past their expiry.
	ErrSessionExpired = errors.New("session expired")
	// ErrTokenInvalid is returned for session tokens that fail signature or
	// structural checks.
	ErrTokenInvalid = errors.New("invalid session token")
	// ErrMalformedInput is returned when input bytes are not valid UTF-8.
	ErrMalformedInput = errors.New("malformed input encoding")
)

// ValidationError reports user-correctable input problems found before any
// store access.
type ValidationError struct {
	// MissingFields lists required fields that were empty, in submission
	// order.
	MissingFields []string
	// Reason is set when all fields are present but one is unacceptable.
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(e.MissingFields, ", "))
	}
	return e.Reason
}

// IsValidation reports whether err is a user-correctable input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
